// Package cli implements the configure-service command.
//
// The command resolves the service configuration from the persisted config
// file, the fixed baseline and the override flags (or TUNGSTEN_* environment
// variables), then runs exactly one lifecycle operation on the named service.
package cli
