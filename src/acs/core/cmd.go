// Package core provides the acs command tree, the interactive shell and the
// HTTP server.
package core

import (
	"fmt"
	"os"

	"github.com/bitswalk/acs/src/acs/output"
	"github.com/bitswalk/acs/src/common/cli"
	"github.com/bitswalk/acs/src/common/logs"
	"github.com/bitswalk/acs/src/common/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// VersionInfo holds version information, populated from the linker variables
	VersionInfo = version.New("", "", "")

	// Global logger instance
	log = logs.NewDiscard()

	// Configuration file path
	cfgFile string

	// Printer for command results, configured by --output
	out = output.New(output.FormatTable)
)

// Linker variables - these are set via ldflags at build time
var (
	Version   = ""
	BuildDate = ""
	GitCommit = ""
)

// rootCmd starts the interactive shell when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "acs",
	Short: "Account console",
	Long: `acs manages user accounts in a local SQLite store.

It registers accounts with bcrypt-hashed passwords, verifies credentials,
tracks a per-account logged-in flag, assigns roles and applies the schema
migrations the store needs. Run without arguments for an interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

// Execute runs the root command. Only failures that leave acs without a
// usable store end the process with a non-zero status.
func Execute() {
	VersionInfo = version.New(Version, BuildDate, GitCommit)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "/etc/acs/acs.yaml")
	cli.RegisterLogFlags(rootCmd)

	rootCmd.PersistentFlags().String("db-path", "~/.acs/acs.db", "Path to the SQLite store")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table, json, yaml)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", completionOutputFormat)

	_ = cli.BindPersistentFlag(rootCmd, "db-path", "database.path")
	_ = cli.BindPersistentFlag(rootCmd, "output", "output.format")

	setDefaults()

	rootCmd.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newInfoCmd(),
		newListCmd(),
		newDeleteCmd(),
		newRoleCmd(),
		newMigrateCmd(),
		newDBStatusCmd(),
		newBackupCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
}

// setDefaults registers every configuration key with its default
func setDefaults() {
	viper.SetDefault("database.path", "~/.acs/acs.db")
	viper.SetDefault("database.busy_timeout", 5000)
	viper.SetDefault("database.auto_migrate", false)

	viper.SetDefault("auth.min_username_length", 3)
	viper.SetDefault("auth.min_password_length", 6)
	viper.SetDefault("auth.bcrypt_cost", 10)

	viper.SetDefault("output.format", "table")

	viper.SetDefault("server.bind", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.rate_limit.enabled", true)
	viper.SetDefault("server.rate_limit.auth_per_min", 10)
	viper.SetDefault("server.trusted_proxies", []string{})

	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.path", "~/.acs/backups")
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("storage.s3.bucket", "acs-backups")
	viper.SetDefault("storage.s3.path_style", true)
}

// initConfig reads in config file and ENV variables if set
func initConfig(cmd *cobra.Command) error {
	opts := cli.DefaultConfigOptions("acs", "ACS")
	opts.ConfigFile = cfgFile

	if err := cli.InitConfig(opts); err != nil {
		return err
	}

	log = cli.InitLogger("acs")

	format, err := output.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		return err
	}
	out = &output.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr(), Format: format}
	return nil
}
