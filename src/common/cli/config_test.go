package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestInitConfig_ReadsExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := filepath.Join(dir, "acs.yaml")
	content := "auth:\n  min_password_length: 12\ndatabase:\n  path: /tmp/acs-test.db\n"
	if err := os.WriteFile(cfg, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	opts := DefaultConfigOptions("acs", "ACS")
	opts.ConfigFile = cfg
	if err := InitConfig(opts); err != nil {
		t.Fatalf("InitConfig() error = %v", err)
	}

	if got := viper.GetInt("auth.min_password_length"); got != 12 {
		t.Errorf("auth.min_password_length = %d, want 12", got)
	}
	if got := viper.GetString("database.path"); got != "/tmp/acs-test.db" {
		t.Errorf("database.path = %q", got)
	}
}

func TestInitConfig_MissingFileUsesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	opts := DefaultConfigOptions("acs-does-not-exist", "ACS")
	opts.SearchPaths = []string{t.TempDir()}
	viper.SetDefault("auth.min_password_length", 6)

	if err := InitConfig(opts); err != nil {
		t.Fatalf("InitConfig() error = %v", err)
	}
	if got := viper.GetInt("auth.min_password_length"); got != 6 {
		t.Errorf("auth.min_password_length = %d, want 6", got)
	}
}

func TestInitConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ACS_AUTH_MIN_PASSWORD_LENGTH", "9")

	opts := DefaultConfigOptions("acs-does-not-exist", "ACS")
	opts.SearchPaths = []string{t.TempDir()}
	if err := InitConfig(opts); err != nil {
		t.Fatalf("InitConfig() error = %v", err)
	}
	if got := viper.GetInt("auth.min_password_length"); got != 9 {
		t.Errorf("auth.min_password_length = %d, want 9", got)
	}
}

func TestRegisterLogFlags(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "acs"}
	RegisterLogFlags(cmd)

	for _, name := range []string{"log-output", "log-level"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
	if err := cmd.PersistentFlags().Set("log-level", "debug"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if got := viper.GetString("log.level"); got != "debug" {
		t.Errorf("log.level = %q, want debug", got)
	}
}
