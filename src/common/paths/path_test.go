package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpand(t *testing.T) {
	t.Setenv("ACS_TEST_DIR", "/var/lib/acs")

	if got := Expand("$ACS_TEST_DIR/acs.db"); got != "/var/lib/acs/acs.db" {
		t.Errorf("Expand() = %q", got)
	}
	if got := Expand("/abs/path"); got != "/abs/path" {
		t.Errorf("Expand() changed absolute path: %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := Expand("~/.acs/acs.db"); got != filepath.Join(home, ".acs", "acs.db") {
		t.Errorf("Expand(~) = %q", got)
	}
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "nested", "dir", "acs.db")

	if err := EnsureDir(file); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if !Exists(filepath.Dir(file)) {
		t.Error("parent directory was not created")
	}
	if IsFile(file) {
		t.Error("EnsureDir must not create the file itself")
	}
}
