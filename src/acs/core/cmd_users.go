package core

import (
	"context"

	"github.com/spf13/cobra"
)

// withApp opens the store for the duration of fn. Failing to open it is the
// one error returned to cobra, which exits non-zero.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app)) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	fn(ctx, a)
	return nil
}

// idArgs parses every argument as an identifier, printing the first failure
func idArgs(args []string, names ...string) ([]int64, bool) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseID(arg, names[i])
		if err != nil {
			out.Error(err)
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

// passwordFlag returns --password or prompts for it
func passwordFlag(cmd *cobra.Command, prompt string) (string, bool) {
	password, _ := cmd.Flags().GetString("password")
	if cmd.Flags().Changed("password") {
		return password, true
	}
	password, err := stdinPrompter.Password(prompt)
	if err != nil {
		out.Error(err)
		return "", false
	}
	return password, true
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, ok := passwordFlag(cmd, "Password: ")
			if !ok {
				return nil
			}
			return withApp(cmd, func(ctx context.Context, a *app) {
				a.register(ctx, args[0], password)
			})
		},
	}
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	return cmd
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Verify credentials and mark the account logged in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, ok := passwordFlag(cmd, "Password: ")
			if !ok {
				return nil
			}
			return withApp(cmd, func(ctx context.Context, a *app) {
				a.login(ctx, args[0], password)
			})
		},
	}
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "logout <user-id>",
		Short:             "Clear the logged-in flag of an account",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completionUserIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, ok := idArgs(args, "user id")
			if !ok {
				return nil
			}
			return withApp(cmd, func(ctx context.Context, a *app) {
				a.logout(ctx, ids[0])
			})
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "info <user-id>",
		Short:             "Show an account",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completionUserIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, ok := idArgs(args, "user id")
			if !ok {
				return nil
			}
			return withApp(cmd, func(ctx context.Context, a *app) {
				a.info(ctx, ids[0])
			})
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) {
				a.list(ctx)
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <user-id>",
		Aliases:           []string{"rm"},
		Short:             "Delete an account and its role assignments",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completionUserIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, ok := idArgs(args, "user id")
			if !ok {
				return nil
			}
			return withApp(cmd, func(ctx context.Context, a *app) {
				a.deleteUser(ctx, ids[0])
			})
		},
	}
}
