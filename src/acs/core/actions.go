package core

import (
	"context"
	"strconv"
	"time"

	"github.com/bitswalk/acs/src/acs/auth"
	"github.com/bitswalk/acs/src/common/errors"
)

// The actions below back both the subcommands and the shell. Each one prints
// its own outcome; none of them is fatal.

func (a *app) register(ctx context.Context, username, password string) {
	created, err := a.users.Register(ctx, username, password)
	if err != nil {
		out.Error(err)
		return
	}

	name := auth.NormalizeUsername(username)
	if !created {
		out.Failure("Username %q is already taken", name)
		return
	}
	out.Success("User %s registered", name)
}

func (a *app) login(ctx context.Context, username, password string) {
	user, err := a.users.Login(ctx, username, password)
	if err != nil {
		out.Error(err)
		return
	}
	if user == nil {
		out.Failure("Invalid username or password")
		return
	}
	out.Success("Logged in as %s (id %d)", user.UserName, user.ID)
}

func (a *app) logout(ctx context.Context, id int64) {
	found, err := a.users.Logout(ctx, id)
	if err != nil {
		out.Error(err)
		return
	}
	if !found {
		out.Failure("User %d not found", id)
		return
	}
	out.Success("User %d logged out", id)
}

func (a *app) info(ctx context.Context, id int64) {
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		out.Error(err)
		return
	}
	if user == nil {
		out.Failure("User %d not found", id)
		return
	}
	printResult(user, userHeaders, userRows([]auth.User{*user}))
}

func (a *app) list(ctx context.Context) {
	users, err := a.users.List(ctx)
	if err != nil {
		out.Error(err)
		return
	}
	if len(users) == 0 && !out.Structured() {
		out.Info("No users registered")
		return
	}
	printResult(users, userHeaders, userRows(users))
}

func (a *app) deleteUser(ctx context.Context, id int64) {
	deleted, err := a.users.Delete(ctx, id)
	if err != nil {
		out.Error(err)
		return
	}
	if !deleted {
		out.Failure("User %d not found", id)
		return
	}
	out.Success("User %d deleted", id)
}

func (a *app) listRoles(ctx context.Context) {
	roles, err := a.roles.Roles().GetAll(ctx)
	if err != nil {
		out.Error(err)
		return
	}
	printResult(roles, roleHeaders, roleRows(roles))
}

func (a *app) showRoles(ctx context.Context, userID int64) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		out.Error(err)
		return
	}
	if user == nil {
		out.Failure("User %d not found", userID)
		return
	}

	roles, err := a.roles.RolesForUser(ctx, userID)
	if err != nil {
		out.Error(err)
		return
	}
	if len(roles) == 0 && !out.Structured() {
		out.Info("User %s has no roles", user.UserName)
		return
	}
	printResult(roles, roleHeaders, roleRows(roles))
}

func (a *app) assignRole(ctx context.Context, userID, roleID int64) {
	assigned, err := a.roles.AssignRole(ctx, userID, roleID)
	if err != nil {
		out.Error(err)
		return
	}
	if !assigned {
		out.Failure("User %d already holds role %d", userID, roleID)
		return
	}
	out.Success("Role %d assigned to user %d", roleID, userID)
}

func (a *app) removeRole(ctx context.Context, userID, roleID int64) {
	removed, err := a.roles.RemoveRole(ctx, userID, roleID)
	if err != nil {
		out.Error(err)
		return
	}
	if !removed {
		out.Failure("User %d does not hold role %d", userID, roleID)
		return
	}
	out.Success("Role %d removed from user %d", roleID, userID)
}

func (a *app) migrate(ctx context.Context) {
	report, err := a.engine.Migrate(ctx)

	if out.Structured() && report != nil {
		printResult(report, nil, nil)
	} else if report != nil {
		for _, id := range report.Applied {
			out.Success("Applied %s", id)
		}
		if err == nil && len(report.Applied) == 0 {
			out.Info("Schema is up to date (%d migrations applied)", len(report.Skipped))
		}
	}

	if err != nil {
		out.Error(err)
	}
}

func (a *app) dbStatus(ctx context.Context) {
	status, err := a.engine.CheckStatus(ctx)
	if err != nil {
		out.Error(err)
		return
	}
	if out.Structured() {
		printResult(status, nil, nil)
		return
	}

	out.Title("Tables")
	rows := make([][]string, 0, len(status.Tables))
	for _, t := range status.Tables {
		rows = append(rows, []string{t.Name, presence(t.Exists)})
	}
	out.Table([]string{"TABLE", "STATUS"}, rows)

	out.Title("Migrations")
	rows = make([][]string, 0, len(status.Applied)+len(status.Pending))
	for _, r := range status.Applied {
		rows = append(rows, []string{r.MigrationID, "applied", r.AppliedAt.Local().Format(time.DateTime)})
	}
	for _, id := range status.Pending {
		rows = append(rows, []string{id, "pending", ""})
	}
	out.Table([]string{"MIGRATION", "STATUS", "APPLIED AT"}, rows)

	if status.Ready() {
		out.Success("Store is ready")
	} else {
		out.Failure("Store needs migration, run 'acs migrate'")
	}
}

var (
	userHeaders = []string{"ID", "USERNAME", "LOGGED IN", "CREATED"}
	roleHeaders = []string{"ID", "NAME", "DESCRIPTION"}
)

func userRows(users []auth.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.UserName,
			strconv.FormatBool(u.IsLogged),
			u.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return rows
}

func roleRows(roles []auth.Role) [][]string {
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.Name, r.Description})
	}
	return rows
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}

// printResult renders data in the configured format and reports encoder failures
func printResult(data any, headers []string, rows [][]string) {
	if err := out.Result(data, headers, rows); err != nil {
		out.Error(err)
	}
}

// parseID parses a positive integer identifier argument
func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID.WithMessagef("%s must be a positive integer, got %q", what, s)
	}
	return id, nil
}
