package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func isolate(t *testing.T) {
	t.Helper()

	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func TestExecute(t *testing.T) {
	isolate(t)

	exit3 := writeFile(t, "exit.src", ".IPPcode23\nEXIT int@3\n")
	loop := writeFile(t, "loop.src", ".IPPcode23\nLABEL l\nJUMP l\n")
	empty := writeFile(t, "empty.in", "")
	limit := writeFile(t, "ippvm.toml", "max_steps = 10\n")
	broken := writeFile(t, "broken.toml", "max_steps = [\n")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no source and no input", nil, 10},
		{"unknown flag", []string{"--bogus"}, 10},
		{"positional argument", []string{"prog.xml"}, 10},
		{"unknown subcommand", []string{"compile"}, 10},
		{"exit code from program", []string{"--source", exit3, "--input", empty}, 3},
		{"run subcommand", []string{"run", "-s", exit3, "-i", empty}, 3},
		{"missing source file", []string{"run", "--source", filepath.Join(t.TempDir(), "x"), "--input", empty}, 11},
		{"missing config file", []string{"--config", filepath.Join(t.TempDir(), "x.toml"), "--source", exit3, "--input", empty}, 10},
		{"broken config file", []string{"--config", broken, "--source", exit3, "--input", empty}, 10},
		{"step limit from config", []string{"--config", limit, "--source", loop, "--input", empty}, 99},
		{"step limit from flag", []string{"--source", loop, "--input", empty, "--max-steps", "20"}, 99},
		{"negative step limit", []string{"--source", exit3, "--input", empty, "--max-steps", "-1"}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, execute(tt.args))
		})
	}
}

func TestExecuteStepLimitFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("IPPVM_MAX_STEPS", "15")

	loop := writeFile(t, "loop.src", ".IPPcode23\nLABEL l\nJUMP l\n")
	require.Equal(t, 99, execute([]string{"--source", loop, "--input", writeFile(t, "in", "")}))
}
