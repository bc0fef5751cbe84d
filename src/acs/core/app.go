package core

import (
	"context"

	"github.com/bitswalk/acs/src/acs/api"
	"github.com/bitswalk/acs/src/acs/auth"
	"github.com/bitswalk/acs/src/acs/backup"
	"github.com/bitswalk/acs/src/acs/db"
	"github.com/bitswalk/acs/src/acs/db/migrations"
	"github.com/bitswalk/acs/src/acs/storage"
	"github.com/bitswalk/acs/src/common/cli"
	"github.com/spf13/viper"
)

// app holds the services a command runs against
type app struct {
	database *db.Database
	users    *auth.Service
	roles    *auth.RoleService
	engine   *migrations.Engine
}

// setLoggers hands the global logger to every package that logs
func setLoggers() {
	db.SetLogger(log)
	migrations.SetLogger(log)
	auth.SetLogger(log)
	backup.SetLogger(log)
	api.SetLogger(log)
}

// databaseConfig builds the store configuration from the database.* keys
func databaseConfig() db.Config {
	return db.Config{
		Path:        cli.GetExpandedString("database.path"),
		BusyTimeout: viper.GetInt("database.busy_timeout"),
	}
}

// authPolicy builds the credential rules from the auth.* keys
func authPolicy() auth.Policy {
	return auth.Policy{
		MinUsernameLength: viper.GetInt("auth.min_username_length"),
		MinPasswordLength: viper.GetInt("auth.min_password_length"),
	}
}

// storageConfig builds the backup storage configuration from the storage.* keys
func storageConfig() storage.Config {
	return storage.Config{
		Type: viper.GetString("storage.type"),
		Local: storage.LocalConfig{
			BasePath: cli.GetExpandedString("storage.local.path"),
		},
		S3: storage.S3Config{
			Endpoint:        viper.GetString("storage.s3.endpoint"),
			Region:          viper.GetString("storage.s3.region"),
			Bucket:          viper.GetString("storage.s3.bucket"),
			AccessKeyID:     viper.GetString("storage.s3.access_key"),
			SecretAccessKey: viper.GetString("storage.s3.secret_key"),
			UsePathStyle:    viper.GetBool("storage.s3.path_style"),
		},
	}
}

// openApp opens the store and builds the services on top of it. An error
// here means the store is unreachable.
func openApp(ctx context.Context) (*app, error) {
	setLoggers()

	database, err := db.Open(ctx, databaseConfig())
	if err != nil {
		return nil, err
	}

	engine, err := migrations.NewEngine(database.Conn, migrations.Default())
	if err != nil {
		database.Close()
		return nil, err
	}

	a := newApp(database, engine, auth.NewBcryptHasher(viper.GetInt("auth.bcrypt_cost")), authPolicy())

	if viper.GetBool("database.auto_migrate") {
		if _, err := engine.Migrate(ctx); err != nil {
			log.Error("Automatic migration failed", "error", err)
		}
	}

	return a, nil
}

func newApp(database *db.Database, engine *migrations.Engine, hasher auth.Hasher, policy auth.Policy) *app {
	return &app{
		database: database,
		users:    auth.NewService(database.Conn, hasher, policy),
		roles:    auth.NewRoleService(database.Conn),
		engine:   engine,
	}
}

// Close releases the store
func (a *app) Close() error {
	return a.database.Close()
}
