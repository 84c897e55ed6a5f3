package config

import (
	"os"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"github.com/tungsten-replicator/configure-service/lib/properties"
)

var log = logger.GetGoI2PLogger()

// DefaultConfigFile is the persisted config read when no path is given.
const DefaultConfigFile = "tungsten.cfg"

// Resolver loads the persisted layer from a filesystem and merges it with
// the baseline and override layers.
type Resolver struct {
	fs afero.Fs
}

// NewResolver returns a Resolver reading from fs.
func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{fs: fs}
}

// Resolve loads persistedPath and returns Merge(persisted, baseline, overrides).
// A missing or unreadable file yields ErrConfigNotFound.
func (r *Resolver) Resolve(persistedPath string, baseline, overrides *properties.Set) (*Resolved, error) {
	persisted, err := r.LoadPersisted(persistedPath)
	if err != nil {
		return nil, err
	}

	resolved := Merge(persisted, baseline, overrides)

	log.WithFields(logger.Fields{
		"at":        "Resolver.Resolve",
		"phase":     "resolution",
		"path":      persistedPath,
		"persisted": persisted.Len(),
		"baseline":  baseline.Len(),
		"overrides": overrides.Len(),
		"resolved":  resolved.Len(),
	}).Debug("resolved service configuration")
	return resolved, nil
}

// LoadPersisted reads the persisted layer on its own.
func (r *Resolver) LoadPersisted(path string) (*properties.Set, error) {
	if path == "" {
		return nil, oops.Wrapf(ErrConfigNotFound, "no config file specified")
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oops.With("path", path).Wrapf(ErrConfigNotFound, "config file does not exist: %s", path)
		}
		return nil, oops.With("path", path).Wrapf(ErrConfigNotFound, "config file is not readable: %s: %v", path, err)
	}
	if info.IsDir() {
		return nil, oops.With("path", path).Wrapf(ErrConfigNotFound, "config file is a directory: %s", path)
	}

	persisted, err := properties.LoadFile(r.fs, path)
	if err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":     "Resolver.LoadPersisted",
			"reason": "load failed",
			"path":   path,
		}).Warn("could not load config file")
		return nil, oops.With("path", path).Wrapf(ErrConfigNotFound, "config file is not readable: %s: %v", path, err)
	}
	return persisted, nil
}

// Merge combines layers in order into a new Resolved value; keys in later
// layers overwrite keys in earlier ones. Inputs are not modified.
func Merge(layers ...*properties.Set) *Resolved {
	merged := properties.New()
	for _, layer := range layers {
		merged.Merge(layer)
	}
	return &Resolved{props: merged}
}
