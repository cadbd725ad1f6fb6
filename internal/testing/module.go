package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// ModulePath is the module path of modules created by CreateTestModule.
const ModulePath = "example.com/shapes"

// CreateTestModule lays out a throwaway module in a temporary directory and
// returns its root. files maps slash-separated paths to contents. The
// directory is removed via t.Cleanup().
func CreateTestModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	gomod := "module " + ModulePath + "\n\ngo 1.22\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0644); err != nil {
		t.Fatalf("Failed to write go.mod: %v", err)
	}

	for name, src := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}
