package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/testsupport"
)

type cliTestEnv struct {
	backend    *testsupport.Backend
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SCRIBE_API_URL", "")
	t.Setenv("SCRIBE_WEB_BIND", "")
	t.Setenv("SCRIBE_LOG_LEVEL", "")
	t.Chdir(base)

	backend := testsupport.NewBackend(t)
	configPath := filepath.Join(homeDir, ".config", "scribe", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, backend.URL())

	return &cliTestEnv{
		backend:    backend,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), nil, args, configPath)
}

func runCLIContext(t *testing.T, ctx context.Context, stdin *strings.Reader, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, apiURL string) {
	t.Helper()
	content := fmt.Sprintf(`[api]
base_url = %q

[web]
bind = "127.0.0.1:0"

[display]
time_zone = "UTC"

[logging]
level = "error"
`, apiURL)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeMediaFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
