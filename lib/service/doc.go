// Package service creates, updates and deletes one replication service.
//
// A service is a set of artifacts derived from its name and the resolved
// configuration (see Identity): the static properties file generated from
// the service template, the dynamic properties file maintained by the
// running replicator, the THL log directory and, in relay mode, the relay
// log directory.
//
// Operations are not atomic across artifacts. Create stops at the first
// failed step without cleaning up what it already made; run Delete and
// then Create again to recover. Delete is best effort and never requires
// any artifact to exist.
package service
