package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungsten-replicator/configure-service/lib/config"
	"github.com/tungsten-replicator/configure-service/lib/dbclient"
	"github.com/tungsten-replicator/configure-service/lib/properties"
	"github.com/tungsten-replicator/configure-service/lib/service"
)

const (
	testHome   = "/opt/tungsten"
	testConfig = "/etc/tungsten/tungsten.cfg"
)

const testTemplate = `service.name=template
local.service.name=template
replicator.role=slave
replicator.global.db.host=db1
replicator.global.db.port=3306
replicator.global.db.user=tungsten
replicator.global.db.password=secret
replicator.global.apply.channels=1
replicator.store.thl.log_dir=/tmp
replicator.global.extract.db.host=localhost
`

const testPersisted = `host_name=host1
local_service_name=alpha
repl_role=master
repl_log_dir=/opt/tungsten/logs
repl_relay_log_dir=/opt/tungsten/relay-logs
repl_extractor_method=direct
repl_datasource_host=db1
repl_datasource_password=secret
repl_svc_channels=9
`

type recordingDropper struct {
	databases []string
	err       error
}

func (d *recordingDropper) DropDatabase(_ context.Context, _ dbclient.Credentials, database string) error {
	d.databases = append(d.databases, database)
	return d.err
}

func (d *recordingDropper) Command(_ dbclient.Credentials, database string) string {
	return "mysql " + database
}

type fixture struct {
	fs      afero.Fs
	dropper *recordingDropper
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testConfig, []byte(testPersisted), 0o644))
	tmpl := filepath.Join(testHome, service.ConfDir, service.TemplateName)
	require.NoError(t, afero.WriteFile(fs, tmpl, []byte(testTemplate), 0o644))
	return &fixture{fs: fs, dropper: &recordingDropper{}}
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(Deps{
		Fs:      f.fs,
		Dropper: f.dropper,
		Now:     func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (f *fixture) static(t *testing.T, name string) *properties.Set {
	t.Helper()
	s, err := properties.Load(f.fs, filepath.Join(testHome, service.ConfDir, "static-"+name+".properties"))
	require.NoError(t, err)
	return s
}

func value(t *testing.T, s *properties.Set, key string) string {
	t.Helper()
	v, ok := s.Get(key)
	require.True(t, ok, "missing %s", key)
	return v
}

func TestCreateCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "-C", "-c", testConfig, "--home", testHome, "--role", "slave", "alpha")
	require.NoError(t, err)

	assert.Contains(t, out, "# Tungsten Replication Service Configuration")
	assert.Contains(t, out, "Creating new replication service: alpha")
	assert.Contains(t, out, "Service creation complete")

	s := f.static(t, "alpha")
	assert.Equal(t, "alpha", value(t, s, "service.name"))
	assert.Equal(t, "slave", value(t, s, "replicator.role"))
	assert.Equal(t, "1", value(t, s, "replicator.global.apply.channels"), "persisted channels are reset to the baseline")
	assert.Equal(t, "/opt/tungsten/logs/alpha", value(t, s, "replicator.store.thl.log_dir"))
	assert.Equal(t, "localhost", value(t, s, "replicator.global.extract.db.host"), "unset override keeps the template line")

	ok, err := afero.DirExists(f.fs, "/opt/tungsten/logs/alpha")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOverridePrecedence(t *testing.T) {
	testCases := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{name: "baseline", want: "1"},
		{name: "environment", env: "6", want: "6"},
		{name: "flag", args: []string{"--channels", "4"}, want: "4"},
		{name: "flag beats environment", env: "6", args: []string{"--channels", "4"}, want: "4"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.env != "" {
				t.Setenv("TUNGSTEN_REPL_SVC_CHANNELS", tc.env)
			}
			f := newFixture(t)
			args := append([]string{"-C", "-c", testConfig, "--home", testHome, "alpha"}, tc.args...)

			_, err := f.run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, value(t, f.static(t, "alpha"), "replicator.global.apply.channels"))
		})
	}
}

func TestUpdateCommandClearDynamic(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "-C", "-c", testConfig, "--home", testHome, "alpha")
	require.NoError(t, err)

	dynamic := filepath.Join(testHome, service.ConfDir, "dynamic-alpha.properties")
	require.NoError(t, afero.WriteFile(f.fs, dynamic, []byte("x=1\n"), 0o644))

	out, err := f.run(t, "-U", "-c", testConfig, "--home", testHome, "--clear-dynamic", "--channels", "3", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "Service update complete")
	assert.Equal(t, "3", value(t, f.static(t, "alpha"), "replicator.global.apply.channels"))

	ok, err := afero.Exists(f.fs, dynamic)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateCommandRequiresService(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "-U", "-c", testConfig, "--home", testHome, "beta")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteCommandVerbose(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "-C", "-c", testConfig, "--home", testHome, "alpha")
	require.NoError(t, err)
	f.dropper.err = errors.New("access denied")

	out, err := f.run(t, "-D", "-V", "-c", testConfig, "--home", testHome, "alpha")
	require.NoError(t, err)

	assert.Equal(t, []string{"tungsten_alpha"}, f.dropper.databases)
	assert.Contains(t, out, "Loading config file: "+testConfig)
	assert.Contains(t, out, "Resolved configuration:")
	assert.Contains(t, out, "repl_svc_channels:")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "Cannot delete Tungsten service database: tungsten_alpha")
	assert.Contains(t, out, "Service deletion complete")
	assert.Contains(t, out, "Finished at 2024-03-01T12:00:00Z")

	ok, err := afero.Exists(f.fs, "/opt/tungsten/logs/alpha")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommandErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want error
	}{
		{name: "no operation", args: []string{"-c", testConfig, "alpha"}, want: ErrNoOperation},
		{name: "missing config", args: []string{"-C", "-c", "/nope.cfg", "alpha"}, want: config.ErrConfigNotFound},
		{name: "missing service name", args: []string{"-C", "-c", testConfig, "--home", testHome}, want: service.ErrMissingServiceName},
		{name: "path as service name", args: []string{"-D", "-c", testConfig, "--home", testHome, "../alpha"}, want: service.ErrInvalidServiceName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.run(t, tc.args...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCommandRejectsBadArguments(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "-C", "-D", "-c", testConfig, "alpha")
	assert.Error(t, err)

	_, err = f.run(t, "-C", "-c", testConfig, "alpha", "beta")
	assert.Error(t, err)
}

func TestHelpShowsCurrentValues(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "-h", "-c", testConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "Usage: configure-service {-C|-D|-U} [options] service-name")
	assert.Contains(t, out, "(Defaults shown from config file: "+testConfig+")")
	assert.Regexp(t, `--channels\s+Number of channels for parallel apply \[1\]`, out)
	assert.Regexp(t, `--extract-db-host\s+Extractor DBMS host name \[db1\]`, out)
	assert.Regexp(t, `--role\s+Replicator role \[master\]`, out)
}

func TestHelpWithoutConfig(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "--help", "-c", "/missing.cfg")
	require.NoError(t, err)

	assert.Contains(t, out, "(Unable to load defaults from config file: /missing.cfg)")
	assert.Regexp(t, `--channels\s+Number of channels for parallel apply \[\]`, out)
}
