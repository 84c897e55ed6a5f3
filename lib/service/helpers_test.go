package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/tungsten-replicator/configure-service/lib/config"
	"github.com/tungsten-replicator/configure-service/lib/dbclient"
	"github.com/tungsten-replicator/configure-service/lib/properties"
)

const testHome = "/opt/tungsten"

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

// recordingReporter keeps every message for assertions.
type recordingReporter struct {
	sections []string
	infos    []string
	warnings []string
}

func (r *recordingReporter) Section(title string) { r.sections = append(r.sections, title) }
func (r *recordingReporter) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}
func (r *recordingReporter) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

type dropCall struct {
	creds    dbclient.Credentials
	database string
}

// fakeDropper records drop requests and fails with err when set.
type fakeDropper struct {
	calls []dropCall
	err   error
}

func (f *fakeDropper) DropDatabase(ctx context.Context, c dbclient.Credentials, database string) error {
	f.calls = append(f.calls, dropCall{creds: c, database: database})
	return f.err
}

func (f *fakeDropper) Command(c dbclient.Credentials, database string) string {
	return "mysql -u" + c.User + " " + database
}

// testInstall is an in-memory replicator installation.
type testInstall struct {
	fs       afero.Fs
	cfg      *config.Resolved
	manager  *Manager
	reporter *recordingReporter
	dropper  *fakeDropper
}

// baseConfig is a typical persisted tungsten.cfg.
func baseConfig() *properties.Set {
	return properties.FromPairs(
		config.GlobalHost, "host1",
		config.GlobalDSName, "alpha",
		config.ReplRole, "master",
		config.ReplAutoEnable, "true",
		config.ReplMasterHost, "master1",
		config.ReplLogDir, "/opt/tungsten/logs",
		config.ReplRelayLogDir, "/opt/tungsten/relay-logs",
		config.ReplBufferSize, "25",
		config.ReplExtractMethod, "direct",
		config.ReplTHLDoChecksum, "true",
		config.ReplTHLLogConnectionTimeout, "300",
		config.ReplTHLLogFileSize, "50000000",
	)
}

func newTestInstall(t *testing.T, overrides ...string) *testInstall {
	t.Helper()

	tmpl, err := os.ReadFile(filepath.Join("testdata", TemplateName))
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	confDir := filepath.Join(testHome, ConfDir)
	require.NoError(t, fs.MkdirAll(confDir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(confDir, TemplateName), tmpl, 0o644))

	cfg := config.Merge(baseConfig(), config.Baseline(), properties.FromPairs(overrides...))
	reporter := &recordingReporter{}
	dropper := &fakeDropper{}
	manager := NewManager(fs, testHome, cfg,
		WithReporter(reporter),
		WithDropper(dropper),
		WithClock(fixedNow),
	)
	return &testInstall{fs: fs, cfg: cfg, manager: manager, reporter: reporter, dropper: dropper}
}

func (ti *testInstall) identity(t *testing.T, name string) Identity {
	t.Helper()
	id, err := ti.manager.Identity(name)
	require.NoError(t, err)
	return id
}

func (ti *testInstall) exists(path string) bool {
	ok, _ := afero.Exists(ti.fs, path)
	return ok
}

// generatedValue returns the value of key in a generated file.
func (ti *testInstall) generatedValue(t *testing.T, path, key string) string {
	t.Helper()
	s, err := properties.Load(ti.fs, path)
	require.NoError(t, err)
	v, ok := s.Get(key)
	require.True(t, ok, "key %s missing from %s", key, path)
	return v
}
