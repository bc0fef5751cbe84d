// Package cli wires the acs command tree to Viper: config file discovery,
// ACS_* environment overrides and the shared logging flags.
package cli

import (
	"fmt"
	"strings"

	"github.com/bitswalk/acs/src/common/logs"
	"github.com/bitswalk/acs/src/common/paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigOptions holds options for configuration initialization
type ConfigOptions struct {
	// ConfigFile is the path to the config file (if specified via flag)
	ConfigFile string

	// ConfigName is the name of the config file (without extension)
	ConfigName string

	// ConfigType is the type of config file (yaml, json, toml)
	ConfigType string

	// EnvPrefix is the prefix for environment variables (e.g. "ACS" -> ACS_DATABASE_PATH)
	EnvPrefix string

	// SearchPaths are the directories searched for ConfigName, in order
	SearchPaths []string
}

// DefaultConfigOptions returns the acs search order: system, user, working directory
func DefaultConfigOptions(configName, envPrefix string) ConfigOptions {
	return ConfigOptions{
		ConfigName: configName,
		ConfigType: "yaml",
		EnvPrefix:  envPrefix,
		SearchPaths: []string{
			"/etc/acs",
			"~/.acs",
			".",
		},
	}
}

// InitConfig loads the config file (if any) and enables environment overrides.
// A missing config file is not an error; defaults apply.
func InitConfig(opts ConfigOptions) error {
	if opts.ConfigFile != "" {
		viper.SetConfigFile(paths.Expand(opts.ConfigFile))
	} else {
		viper.SetConfigName(opts.ConfigName)
		viper.SetConfigType(opts.ConfigType)

		for _, searchPath := range opts.SearchPaths {
			viper.AddConfigPath(paths.Expand(searchPath))
		}
	}

	if opts.EnvPrefix != "" {
		viper.SetEnvPrefix(opts.EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// RegisterLogFlags registers --log-output and --log-level as persistent flags
// so every subcommand accepts them.
func RegisterLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-output", "auto", "Log output destination (auto, stdout, stderr, journald)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	_ = viper.BindPFlag("log.output", cmd.PersistentFlags().Lookup("log-output"))
	_ = viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("log.output", "auto")
	viper.SetDefault("log.level", "info")
}

// RegisterConfigFlag registers the --config flag on a Cobra command
func RegisterConfigFlag(cmd *cobra.Command, cfgFile *string, defaultPath string) {
	cmd.PersistentFlags().StringVar(cfgFile, "config", "", fmt.Sprintf("config file (default: %s)", defaultPath))
}

// InitLogger creates a logger from the log.* keys. Call after InitConfig.
func InitLogger(prefix string) *logs.Logger {
	cfg := logs.DefaultConfig()
	if output := viper.GetString("log.output"); output != "" {
		cfg.Output = logs.LogOutput(output)
	}
	if level := viper.GetString("log.level"); level != "" {
		cfg.Level = level
	}
	cfg.Prefix = prefix
	return logs.New(cfg)
}

// BindPersistentFlag binds a Cobra persistent flag to a Viper config key
func BindPersistentFlag(cmd *cobra.Command, flagName, viperKey string) error {
	return viper.BindPFlag(viperKey, cmd.PersistentFlags().Lookup(flagName))
}

// GetExpandedString gets a string from Viper and expands ~ and $VARS
func GetExpandedString(key string) string {
	return paths.Expand(viper.GetString(key))
}
