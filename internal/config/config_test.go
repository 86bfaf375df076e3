package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"ippvm/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int(config.KeyMaxSteps, 0, "")
	flags.Bool(config.KeyVerbose, false, "")
	flags.Bool(config.KeyNoColor, false, "")
	return flags
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "max_steps = 500\nverbose = true\n")

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 500, c.MaxSteps)
	require.True(t, c.Verbose)
	require.False(t, c.NoColor)
	require.Equal(t, path, c.Path)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.toml"))
	require.ErrorContains(t, err, "cannot read")

	_, err = config.Load(writeConfig(t, dir, "max_steps = "))
	require.ErrorContains(t, err, "parse error")

	_, err = config.Load(writeConfig(t, dir, "max_step = 1\n"))
	require.ErrorContains(t, err, "unknown keys")

	_, err = config.Load(writeConfig(t, dir, "max_steps = -4\n"))
	require.ErrorContains(t, err, "must not be negative")
}

func TestFind(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	path, err := config.Find("", dir)
	require.NoError(t, err)
	require.Empty(t, path)

	local := writeConfig(t, dir, "")
	path, err = config.Find("", dir)
	require.NoError(t, err)
	require.Equal(t, local, path)

	_, err = config.Find(filepath.Join(dir, "nope.toml"), dir)
	require.Error(t, err)
}

func TestPrecedence(t *testing.T) {
	flags := newFlags()
	v := viper.New()
	require.NoError(t, config.Bind(v, flags))

	file := &config.Config{MaxSteps: 100, Verbose: true}
	file.Apply(v)
	require.Equal(t, config.Config{MaxSteps: 100, Verbose: true}, config.Resolve(v))

	t.Setenv("IPPVM_MAX_STEPS", "200")
	require.Equal(t, 200, config.Resolve(v).MaxSteps)

	require.NoError(t, flags.Parse([]string{"--max-steps=300", "--no-color"}))
	got := config.Resolve(v)
	require.Equal(t, 300, got.MaxSteps)
	require.True(t, got.NoColor)
	require.True(t, got.Verbose)
}
