package core

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

// completionOutputFormat provides completion for --output flag
func completionOutputFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"table", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
}

// completeFromStore opens the store for a completion request. Completion runs
// without the persistent pre-run, so configuration is loaded here.
func completeFromStore(cmd *cobra.Command, fn func(ctx context.Context, a *app) []string) ([]string, cobra.ShellCompDirective) {
	if err := initConfig(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmdContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer a.Close()

	return fn(ctx, a), cobra.ShellCompDirectiveNoFileComp
}

// completionUserIDs completes the first argument with account IDs
func completionUserIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeFromStore(cmd, func(ctx context.Context, a *app) []string {
		users, err := a.users.List(ctx)
		if err != nil {
			return nil
		}
		suggestions := make([]string, len(users))
		for i, u := range users {
			suggestions[i] = strconv.FormatInt(u.ID, 10) + "\t" + u.UserName
		}
		return suggestions
	})
}

// completionUserRoleIDs completes a user ID, then a role ID
func completionUserRoleIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completionUserIDs(cmd, args, toComplete)
	case 1:
		return completeFromStore(cmd, func(ctx context.Context, a *app) []string {
			roles, err := a.roles.Roles().GetAll(ctx)
			if err != nil {
				return nil
			}
			suggestions := make([]string, len(roles))
			for i, r := range roles {
				suggestions[i] = strconv.FormatInt(r.ID, 10) + "\t" + r.Name
			}
			return suggestions
		})
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
