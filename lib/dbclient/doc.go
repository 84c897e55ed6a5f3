// Package dbclient drives the external MySQL command line client.
//
// The configurator never links a database driver; dropping a service
// catalog is delegated to the same mysql binary an operator would run by
// hand, and Command renders that invocation for copy-paste when it fails.
package dbclient
