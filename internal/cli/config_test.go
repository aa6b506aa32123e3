package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/binheat/pkg/errors"
)

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	dir, err := configDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/custom-config", appName), dir)
}

func TestConfigDirDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", appName), dir)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
font_size = 10
sort = false
format = "svg"

[colors]
column_band = "#dddddd"

[serve]
addr = ":9090"
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.FontSize)
	require.NotNil(t, cfg.Sort)
	assert.False(t, *cfg.Sort)
	assert.Equal(t, "svg", cfg.Format)
	assert.Equal(t, "#dddddd", cfg.Colors.ColumnBand)
	assert.Equal(t, ":9090", cfg.Serve.Addr)
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, err := loadConfig("")
	require.NoError(t, err, "missing default config is not an error")
	assert.Nil(t, cfg.Sort)

	require.NoError(t, os.MkdirAll(filepath.Join(home, appName), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, appName, configFileName), []byte("multiline = true\n"), 0o644))

	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Multiline)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("font_size = ["), 0o644))
	_, err = loadConfig(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("fontsize = 10\n"), 0o644))
	_, err = loadConfig(unknown)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "fontsize")
}

func TestFlagsOverrideConfig(t *testing.T) {
	no := false
	cfg := Config{FontSize: 9, Sort: &no, Format: "svg", Scale: 3}

	newCmd := func(args ...string) (*cobra.Command, *renderFlags) {
		cmd := &cobra.Command{}
		f := &renderFlags{}
		f.bind(cmd)
		require.NoError(t, cmd.Flags().Parse(args))
		return cmd, f
	}

	cmd, f := newCmd()
	opts := f.options(cmd, cfg)
	assert.Equal(t, 9.0, opts.FontSize, "config beats flag default")
	assert.False(t, opts.Sort)
	assert.Equal(t, "svg", opts.Format)
	assert.Equal(t, 3.0, opts.Scale)

	cmd, f = newCmd("-f", "14", "--format", "png")
	opts = f.options(cmd, cfg)
	assert.Equal(t, 14.0, opts.FontSize, "explicit flag beats config")
	assert.Equal(t, "png", opts.Format)

	cmd, f = newCmd()
	opts = f.options(cmd, Config{})
	assert.True(t, opts.Sort, "sorting is on by default")
	assert.Equal(t, 12.0, opts.FontSize)
}
