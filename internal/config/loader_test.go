package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestFindConfigFileInPaths verifies the explicit-extension search:
// inkctl.yaml is found, inkctl.yml is the fallback, and a bare "inkctl"
// file (such as the binary itself) never matches.
func TestFindConfigFileInPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if got := findConfigFileInPaths([]string{dir}); got != "" {
		t.Errorf("found %q in empty dir, want nothing", got)
	}

	// A bare "inkctl" file must not match.
	if err := os.WriteFile(filepath.Join(dir, "inkctl"), []byte("ELF"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFileInPaths([]string{dir}); got != "" {
		t.Errorf("matched extensionless file %q", got)
	}

	ymlPath := filepath.Join(dir, "inkctl.yml")
	if err := os.WriteFile(ymlPath, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFileInPaths([]string{dir}); got != ymlPath {
		t.Errorf("found %q, want %q", got, ymlPath)
	}

	// .yaml wins over .yml in the same directory.
	yamlPath := filepath.Join(dir, "inkctl.yaml")
	if err := os.WriteFile(yamlPath, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFileInPaths([]string{dir}); got != yamlPath {
		t.Errorf("found %q, want %q", got, yamlPath)
	}

	// Earlier directories win over later ones.
	other := t.TempDir()
	if got := findConfigFileInPaths([]string{other, dir}); got != yamlPath {
		t.Errorf("found %q, want %q from the later dir", got, yamlPath)
	}
}
