package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"github.com/tungsten-replicator/configure-service/lib/config"
	"github.com/tungsten-replicator/configure-service/lib/dbclient"
	"github.com/tungsten-replicator/configure-service/lib/transformer"
	"github.com/tungsten-replicator/configure-service/lib/util"
)

var log = logger.GetGoI2PLogger()

// CommentPrefix marks comments in generated property files.
const CommentPrefix = "#"

// DatabaseDropper removes a service catalog. Failures are advisory.
type DatabaseDropper interface {
	DropDatabase(ctx context.Context, c dbclient.Credentials, database string) error
	// Command renders the manual equivalent of DropDatabase.
	Command(c dbclient.Credentials, database string) string
}

// UpdateOptions tune Update.
type UpdateOptions struct {
	// ClearDynamic deletes the dynamic properties file so the replicator
	// falls back to defaults for runtime state on its next restart.
	ClearDynamic bool
}

// Manager runs lifecycle operations for services of one installation.
type Manager struct {
	fs       afero.Fs
	home     string
	cfg      *config.Resolved
	dropper  DatabaseDropper
	reporter Reporter
	now      func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDropper replaces the mysql client used by Delete.
func WithDropper(d DatabaseDropper) ManagerOption {
	return func(m *Manager) { m.dropper = d }
}

// WithReporter sets where progress messages go.
func WithReporter(r Reporter) ManagerOption {
	return func(m *Manager) { m.reporter = r }
}

// WithClock sets the time source for generated file trailers.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager for the installation rooted at home.
func NewManager(fs afero.Fs, home string, cfg *config.Resolved, opts ...ManagerOption) *Manager {
	m := &Manager{
		fs:       fs,
		home:     home,
		cfg:      cfg,
		dropper:  dbclient.NewMySQL(),
		reporter: NopReporter{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Identity derives the artifact paths of the named service.
func (m *Manager) Identity(name string) (Identity, error) {
	return NewIdentity(m.home, name, m.cfg)
}

// Create lays down a new service: log directory, relay-log directory in
// relay mode, then the static properties file. The dynamic properties
// file is left for the replicator to create.
func (m *Manager) Create(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := m.Identity(name)
	if err != nil {
		return err
	}
	relay := m.cfg.RelayMode()

	m.reporter.Section("Creating new replication service: " + name)

	if err := m.mustNotExist(id.StaticProperties, "static properties file"); err != nil {
		return err
	}
	if err := m.mustNotExist(id.DynamicProperties, "dynamic properties file"); err != nil {
		return err
	}
	if id.LogDir == "" {
		return oops.With("service", name, "parameter", config.ReplLogDir).
			Wrapf(ErrMissingParameter, "log directory is not configured: set %s", config.ReplLogDir)
	}
	if err := m.mustNotExist(id.LogDir, "service log directory"); err != nil {
		return err
	}
	if relay {
		if id.RelayLogDir == "" {
			return oops.With("service", name, "parameter", config.ReplRelayLogDir).
				Wrapf(ErrMissingParameter, "relay log directory is not configured: set %s", config.ReplRelayLogDir)
		}
		if err := m.mustNotExist(id.RelayLogDir, "service relay log directory"); err != nil {
			return err
		}
	}

	m.reporter.Infof("Creating disk log directory: %s", id.LogDir)
	if err := m.fs.MkdirAll(id.LogDir, config.StandardDirPermissions); err != nil {
		return oops.With("path", id.LogDir).Wrapf(ErrIO, "create log directory %s: %v", id.LogDir, err)
	}

	if relay {
		m.reporter.Infof("Creating relay log directory: %s", id.RelayLogDir)
		if err := m.fs.MkdirAll(id.RelayLogDir, config.StandardDirPermissions); err != nil {
			return oops.With("path", id.RelayLogDir).Wrapf(ErrIO, "create relay log directory %s: %v", id.RelayLogDir, err)
		}
	}

	if err := m.generate(id, false); err != nil {
		return err
	}

	log.WithFields(logger.Fields{
		"at":      "Manager.Create",
		"phase":   "create",
		"service": name,
		"relay":   relay,
	}).Info("service created")
	m.reporter.Infof("Service creation complete")
	m.reporter.Infof("You may now start the service by restarting the replicator")
	return nil
}

// Update regenerates the static properties of an existing service and,
// when asked, removes its dynamic properties.
func (m *Manager) Update(ctx context.Context, name string, opts UpdateOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := m.Identity(name)
	if err != nil {
		return err
	}

	m.reporter.Section("Updating existing replication service: " + name)

	if !util.CheckFileExists(m.fs, id.StaticProperties) {
		return oops.With("path", id.StaticProperties).
			Wrapf(ErrNotFound, "static properties file does not exist; must create service first: %s", id.StaticProperties)
	}

	if err := m.generate(id, true); err != nil {
		return err
	}

	if opts.ClearDynamic && util.CheckFileExists(m.fs, id.DynamicProperties) {
		m.reporter.Infof("Removing dynamic properties: %s", id.DynamicProperties)
		if err := m.fs.Remove(id.DynamicProperties); err != nil {
			return oops.With("path", id.DynamicProperties).Wrapf(ErrIO, "remove dynamic properties: %v", err)
		}
	}

	log.WithFields(logger.Fields{
		"at":            "Manager.Update",
		"phase":         "update",
		"service":       name,
		"clear_dynamic": opts.ClearDynamic,
	}).Info("service updated")
	m.reporter.Infof("Service update complete")
	m.reporter.Infof("You may apply the configuration changes by restarting the replicator")
	return nil
}

// Delete removes whatever artifacts of the service exist. Each removal is
// attempted independently; failures are collected and returned together
// once every artifact has been tried. A failed catalog drop is only a
// warning.
func (m *Manager) Delete(ctx context.Context, name string) error {
	id, err := m.Identity(name)
	if err != nil {
		return err
	}

	m.reporter.Section("Deleting replication service if it exists: " + name)

	var errs []error
	if util.CheckFileExists(m.fs, id.StaticProperties) {
		m.dropCatalog(ctx, id)

		m.reporter.Infof("Removing static properties: %s", id.StaticProperties)
		if err := m.fs.Remove(id.StaticProperties); err != nil {
			errs = append(errs, err)
		}
	}

	if util.CheckFileExists(m.fs, id.DynamicProperties) {
		m.reporter.Infof("Removing dynamic properties: %s", id.DynamicProperties)
		if err := m.fs.Remove(id.DynamicProperties); err != nil {
			errs = append(errs, err)
		}
	}

	if id.LogDir != "" && util.CheckFileExists(m.fs, id.LogDir) {
		m.reporter.Infof("Removing log directory: %s", id.LogDir)
		if err := m.fs.RemoveAll(id.LogDir); err != nil {
			errs = append(errs, err)
		}
	}

	if id.RelayLogDir != "" && util.CheckFileExists(m.fs, id.RelayLogDir) {
		m.reporter.Infof("Removing relay log directory: %s", id.RelayLogDir)
		if err := m.fs.RemoveAll(id.RelayLogDir); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		joined := errors.Join(errs...)
		log.WithError(joined).WithFields(logger.Fields{
			"at":       "Manager.Delete",
			"phase":    "delete",
			"service":  name,
			"failures": len(errs),
		}).Error("service deletion incomplete")
		return oops.With("service", name, "failures", len(errs)).Wrapf(ErrIO, "delete service %s: %v", name, joined)
	}

	log.WithFields(logger.Fields{
		"at":      "Manager.Delete",
		"phase":   "delete",
		"service": name,
	}).Info("service deleted")
	m.reporter.Infof("Service deletion complete")
	return nil
}

// dropCatalog drops the service catalog named in the static properties.
// Every failure degrades to a warning with the manual command.
func (m *Manager) dropCatalog(ctx context.Context, id Identity) {
	settings, err := ReadDatabaseSettings(m.fs, id.StaticProperties)
	if err != nil {
		m.reporter.Warnf("WARNING: Cannot read database settings from %s: %v", id.StaticProperties, err)
		return
	}
	service := settings.Service
	if service == "" {
		service = id.Name
	}
	database := DatabaseName(service)

	m.reporter.Infof("Attempting to drop service database: %s", database)
	if err := m.dropper.DropDatabase(ctx, settings.Credentials, database); err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":       "Manager.dropCatalog",
			"reason":   "drop failed",
			"database": database,
		}).Warn("could not drop service database")
		m.reporter.Warnf("WARNING: Cannot delete Tungsten service database: %s", database)
		m.reporter.Warnf("Use following command to delete:")
		m.reporter.Warnf("  %s", m.dropper.Command(settings.Credentials, database))
	}
}

func (m *Manager) mustNotExist(path, what string) error {
	if util.CheckFileExists(m.fs, path) {
		return oops.With("path", path, "artifact", what).Wrapf(ErrAlreadyExists, "%s already exists: %s", what, path)
	}
	return nil
}

func (m *Manager) generate(id Identity, overwrite bool) error {
	m.reporter.Infof("Generating service configuration file: %s", id.StaticProperties)
	return transformer.New(m.fs).Transform(id.Template, id.StaticProperties, Rules(m.cfg, id), transformer.Options{
		Overwrite:     overwrite,
		CommentPrefix: CommentPrefix,
		Perm:          config.SecureFilePermissions,
		Now:           m.now,
	})
}
