package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const exampleConfig = "../../examples/site/retina.yaml"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "public")
	stdout, _, err := execute(t, "build", "-c", exampleConfig, "--out", out, "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, stdout, "Built Retina")
	require.Contains(t, stdout, "build id")
	require.FileExists(t, filepath.Join(out, "index.html"))
	require.FileExists(t, filepath.Join(out, "404.html"))
	require.FileExists(t, filepath.Join(out, "sitemap.xml"))
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "check", "-c", exampleConfig, "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, stdout, "Checked Retina")
	require.Contains(t, stdout, "docs")
	require.Contains(t, stdout, "links")
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "config", "-c", exampleConfig)
	require.NoError(t, err)
	require.Contains(t, stdout, "title: Retina")
	require.Contains(t, stdout, "url: https://retina.sh")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "retina-site dev")
	require.Contains(t, stdout, "commit: none")
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := filepath.Join(dir, "retina.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("title: [unterminated\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing config", []string{"config", "-c", filepath.Join(dir, "nope.yaml")}, "nope.yaml"},
		{"empty config flag", []string{"check", "-c", " "}, "config file is required"},
		{"bad log format", []string{"check", "-c", exampleConfig, "--log-format", "xml"}, `unknown log format "xml"`},
		{"parse error", []string{"build", "-c", broken, "--out", filepath.Join(dir, "out")}, "retina.yaml"},
		{"extra args", []string{"build", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

// Environment overrides use process state, so this test is not parallel.
func TestEnvOverridesFlags(t *testing.T) {
	t.Setenv("RETINA_SITE_LOG_FORMAT", "yaml")

	_, _, err := execute(t, "check", "-c", exampleConfig)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown log format "yaml"`)
}
