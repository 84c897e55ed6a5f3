// Package config resolves the property set that drives service generation.
//
// # Layers
//
// Three ordered layers are merged by a pure function into one immutable
// Resolved value:
//
//  1. Persisted: the installation config file (tungsten.cfg by default),
//     written by the installer and read, never written, here.
//  2. Baseline: fixed values for the local service parameters
//     (channels, enforce-home, master and THL ports, binlog mode, shard
//     default db, the two bidi safety flags, parallelization type and
//     native slave takeover). These are reset on every load and replace
//     whatever the persisted file holds for the same keys.
//  3. Overrides: values supplied on the command line or through
//     TUNGSTEN_-prefixed environment variables.
//
// Net precedence is overrides > baseline > persisted > absent. Keys that no
// layer supplies stay absent, and consumers must treat that as "leave the
// template alone" rather than as an empty value.
package config
