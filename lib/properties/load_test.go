package properties

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPropertyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "# tungsten.cfg\n" +
		"repl_svc_channels=4\n" +
		"repl_log_dir=/opt/tungsten/logs\n" +
		"! alternate comment\n" +
		"repl_role = master\n" +
		"repl_empty=\n" +
		"repl_ref=${not_expanded}\n"
	require.NoError(t, afero.WriteFile(fs, "tungsten.cfg", []byte(content), 0o644))

	s, err := Load(fs, "tungsten.cfg")
	require.NoError(t, err)

	assert.Equal(t, []string{"repl_svc_channels", "repl_log_dir", "repl_role", "repl_empty", "repl_ref"}, s.Keys())
	v, _ := s.Get("repl_role")
	assert.Equal(t, "master", v)
	v, ok := s.Get("repl_empty")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	v, _ = s.Get("repl_ref")
	assert.Equal(t, "${not_expanded}", v)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "missing.cfg")
	require.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "repl_svc_channels: 4\n" +
		"repl_thl_do_checksum: false\n" +
		"repl_relay_log_dir: null\n" +
		"nested:\n  key: value\n" +
		"list: [a, b]\n"
	require.NoError(t, afero.WriteFile(fs, "tungsten.yaml", []byte(content), 0o644))

	s, err := LoadFile(fs, "tungsten.yaml")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"repl_svc_channels":    "4",
		"repl_thl_do_checksum": "false",
		"repl_relay_log_dir":   "",
		"nested.key":           "value",
		"list":                 "a,b",
	}, s.Map())
}

func TestLoadYAMLRejectsNonMapping(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.yml", []byte("- a\n- b\n"), 0o644))

	_, err := LoadFile(fs, "bad.yml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestLoadFilePicksPropertiesByDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "x.cfg", []byte("a=1\n"), 0o644))

	s, err := LoadFile(fs, "x.cfg")
	require.NoError(t, err)
	v, _ := s.Get("a")
	assert.Equal(t, "1", v)
}
