package service

import (
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/tungsten-replicator/configure-service/lib/config"
)

// Installation layout relative to the replicator home directory.
const (
	ConfDir      = "tungsten-replicator/conf"
	TemplateName = "replicator.properties.service.template"
)

// Identity names a service and every path derived from it. All fields are
// pure functions of the home directory, the name and the resolved config.
type Identity struct {
	Name              string
	Template          string
	StaticProperties  string
	DynamicProperties string
	// LogDir is empty when repl_log_dir is not configured.
	LogDir string
	// RelayLogDir is empty when repl_relay_log_dir is not configured.
	RelayLogDir string
}

// NewIdentity derives the service paths. The name must be a single path
// element so no derived path can leave its base directory.
func NewIdentity(home, name string, cfg *config.Resolved) (Identity, error) {
	if err := ValidateName(name); err != nil {
		return Identity{}, err
	}
	if home == "" {
		home = "."
	}
	confDir := filepath.Join(home, ConfDir)

	id := Identity{
		Name:              name,
		Template:          filepath.Join(confDir, TemplateName),
		StaticProperties:  filepath.Join(confDir, "static-"+name+".properties"),
		DynamicProperties: filepath.Join(confDir, "dynamic-"+name+".properties"),
	}

	var err error
	if base, ok := cfg.Lookup(config.ReplLogDir); ok && base != "" {
		if id.LogDir, err = config.SanitizePath(base, name); err != nil {
			return Identity{}, oops.With("service", name).Wrapf(ErrInvalidServiceName, "%v", err)
		}
	}
	if base, ok := cfg.Lookup(config.ReplRelayLogDir); ok && base != "" {
		if id.RelayLogDir, err = config.SanitizePath(base, name); err != nil {
			return Identity{}, oops.With("service", name).Wrapf(ErrInvalidServiceName, "%v", err)
		}
	}
	return id, nil
}

// ValidateName rejects empty names and names that are not a single,
// ordinary path element.
func ValidateName(name string) error {
	if name == "" {
		return oops.Wrapf(ErrMissingServiceName, "service name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return oops.With("service", name).Wrapf(ErrInvalidServiceName, "service name must be a plain name: %q", name)
	}
	return nil
}

// DatabaseName is the catalog the replicator keeps for a service.
func DatabaseName(service string) string {
	return "tungsten_" + service
}
