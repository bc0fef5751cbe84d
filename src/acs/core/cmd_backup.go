package core

import (
	"context"
	"strconv"
	"time"

	"github.com/bitswalk/acs/src/acs/backup"
	"github.com/bitswalk/acs/src/acs/storage"
	"github.com/spf13/cobra"
)

// openStorage builds the configured backup backend and checks that it is
// reachable, printing any failure
func openStorage(ctx context.Context) (storage.Backend, bool) {
	store, err := storage.New(storageConfig())
	if err == nil {
		err = store.Ping(ctx)
	}
	if err != nil {
		out.Error(err)
		return nil, false
	}
	return store, true
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot and restore the store",
	}

	restore := &cobra.Command{
		Use:   "restore <key>",
		Short: "Restore a backup over the configured store",
		Long: `Restore downloads a backup, checks its integrity and moves it to
database.path. No other acs process may have the store open.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setLoggers()
			ctx := cmdContext(cmd)
			store, ok := openStorage(ctx)
			if !ok {
				return nil
			}

			force, _ := cmd.Flags().GetBool("force")
			target := databaseConfig().Path
			if err := backup.Restore(ctx, store, args[0], target, force); err != nil {
				out.Error(err)
				return nil
			}
			out.Success("Restored %s to %s", args[0], target)
			return nil
		},
	}
	restore.Flags().Bool("force", false, "Overwrite an existing store")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Snapshot the store to backup storage",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app) {
					a.createBackup(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored backups",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				setLoggers()
				listBackups(cmdContext(cmd))
				return nil
			},
		},
		restore,
	)

	return cmd
}

func (a *app) createBackup(ctx context.Context) {
	store, ok := openStorage(ctx)
	if !ok {
		return
	}

	info, err := backup.NewManager(a.database.Conn, store).Create(ctx)
	if err != nil {
		out.Error(err)
		return
	}
	if out.Structured() {
		printResult(info, nil, nil)
		return
	}
	out.Success("Backup %s written to %s (%d bytes)", info.Key, store.Location(), info.Size)
}

func listBackups(ctx context.Context) {
	store, ok := openStorage(ctx)
	if !ok {
		return
	}

	backups, err := backup.List(ctx, store)
	if err != nil {
		out.Error(err)
		return
	}
	if len(backups) == 0 && !out.Structured() {
		out.Info("No backups in %s", store.Location())
		return
	}

	rows := make([][]string, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, []string{b.Key, strconv.FormatInt(b.Size, 10), b.LastModified.Local().Format(time.DateTime)})
	}
	printResult(backups, []string{"KEY", "SIZE", "MODIFIED"}, rows)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
