package core

import (
	"context"

	"github.com/spf13/cobra"
)

func newRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Manage role assignments",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List roles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app) {
					a.listRoles(ctx)
				})
			},
		},
		&cobra.Command{
			Use:               "show <user-id>",
			Short:             "List the roles held by an account",
			Args:              cobra.ExactArgs(1),
			ValidArgsFunction: completionUserIDs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, ok := idArgs(args, "user id")
				if !ok {
					return nil
				}
				return withApp(cmd, func(ctx context.Context, a *app) {
					a.showRoles(ctx, ids[0])
				})
			},
		},
		&cobra.Command{
			Use:               "assign <user-id> <role-id>",
			Short:             "Assign a role to an account",
			Args:              cobra.ExactArgs(2),
			ValidArgsFunction: completionUserRoleIDs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, ok := idArgs(args, "user id", "role id")
				if !ok {
					return nil
				}
				return withApp(cmd, func(ctx context.Context, a *app) {
					a.assignRole(ctx, ids[0], ids[1])
				})
			},
		},
		&cobra.Command{
			Use:               "remove <user-id> <role-id>",
			Short:             "Remove a role from an account",
			Args:              cobra.ExactArgs(2),
			ValidArgsFunction: completionUserRoleIDs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, ok := idArgs(args, "user id", "role id")
				if !ok {
					return nil
				}
				return withApp(cmd, func(ctx context.Context, a *app) {
					a.removeRole(ctx, ids[0], ids[1])
				})
			},
		},
	)

	return cmd
}
