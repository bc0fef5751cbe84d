package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const banner = `
     _    ____ ____
    / \  / ___/ ___|
   / _ \| |   \___ \
  / ___ \ |___ ___) |
 /_/   \_\____|____/
`

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(0, 2)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

// shellCommand is one verb understood by the shell
type shellCommand struct {
	usage string
	help  string
	run   func(ctx context.Context, s *shell, args []string)
}

// shell is the interactive loop. It keeps one store open for its lifetime.
type shell struct {
	app      *app
	prompt   *prompter
	commands map[string]shellCommand
	order    []string
}

func runShell(cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return newShell(a, stdinPrompter).Run(ctx)
}

func newShell(a *app, p *prompter) *shell {
	s := &shell{app: a, prompt: p, commands: map[string]shellCommand{}}

	s.add("help", "help", "Show this help", func(ctx context.Context, s *shell, args []string) {
		s.help()
	})
	s.add("register", "register [username]", "Register an account", func(ctx context.Context, s *shell, args []string) {
		username, password, ok := s.credentials(args)
		if ok {
			s.app.register(ctx, username, password)
		}
	})
	s.add("login", "login [username]", "Verify credentials and mark the account logged in", func(ctx context.Context, s *shell, args []string) {
		username, password, ok := s.credentials(args)
		if ok {
			s.app.login(ctx, username, password)
		}
	})
	s.add("logout", "logout <user-id>", "Clear the logged-in flag", withIDs(1, func(ctx context.Context, a *app, ids []int64) {
		a.logout(ctx, ids[0])
	}, "user id"))
	s.add("info", "info <user-id>", "Show an account", withIDs(1, func(ctx context.Context, a *app, ids []int64) {
		a.info(ctx, ids[0])
	}, "user id"))
	s.add("list", "list", "List accounts", func(ctx context.Context, s *shell, args []string) {
		s.app.list(ctx)
	})
	s.add("delete", "delete <user-id>", "Delete an account", withIDs(1, func(ctx context.Context, a *app, ids []int64) {
		a.deleteUser(ctx, ids[0])
	}, "user id"))
	s.add("roles", "roles [user-id]", "List roles, or the roles of an account", func(ctx context.Context, s *shell, args []string) {
		if len(args) == 0 {
			s.app.listRoles(ctx)
			return
		}
		withIDs(1, func(ctx context.Context, a *app, ids []int64) {
			a.showRoles(ctx, ids[0])
		}, "user id")(ctx, s, args)
	})
	s.add("assign", "assign <user-id> <role-id>", "Assign a role", withIDs(2, func(ctx context.Context, a *app, ids []int64) {
		a.assignRole(ctx, ids[0], ids[1])
	}, "user id", "role id"))
	s.add("unassign", "unassign <user-id> <role-id>", "Remove a role", withIDs(2, func(ctx context.Context, a *app, ids []int64) {
		a.removeRole(ctx, ids[0], ids[1])
	}, "user id", "role id"))
	s.add("migrate", "migrate", "Apply pending schema migrations", func(ctx context.Context, s *shell, args []string) {
		s.app.migrate(ctx)
	})
	s.add("status", "status", "Report tables and migrations", func(ctx context.Context, s *shell, args []string) {
		s.app.dbStatus(ctx)
	})
	s.add("backup", "backup", "Snapshot the store to backup storage", func(ctx context.Context, s *shell, args []string) {
		s.app.createBackup(ctx)
	})
	s.add("exit", "exit", "Leave the shell", nil)

	return s
}

func (s *shell) add(name, usage, help string, run func(ctx context.Context, s *shell, args []string)) {
	s.commands[name] = shellCommand{usage: usage, help: help, run: run}
	s.order = append(s.order, name)
}

// withIDs adapts an action taking n identifiers to a shell command
func withIDs(n int, fn func(ctx context.Context, a *app, ids []int64), names ...string) func(context.Context, *shell, []string) {
	return func(ctx context.Context, s *shell, args []string) {
		if len(args) != n {
			out.Failure("Expected %d argument(s): %s", n, strings.Join(names, ", "))
			return
		}
		ids, ok := idArgs(args, names...)
		if ok {
			fn(ctx, s.app, ids)
		}
	}
}

// credentials takes the username from args or prompts for it, then prompts
// for the password
func (s *shell) credentials(args []string) (string, string, bool) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		line, err := s.prompt.Line("Username: ")
		if err != nil {
			return "", "", false
		}
		username = line
	}

	password, err := s.prompt.Password("Password: ")
	if err != nil {
		return "", "", false
	}
	return username, password, true
}

// Run reads commands until exit or end of input
func (s *shell) Run(ctx context.Context) error {
	fmt.Fprintln(out.Out, bannerStyle.Render(banner))
	fmt.Fprintln(out.Out, boxStyle.Render("Welcome to acs! Type 'help' for the list of commands."))

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.prompt.Line(promptStyle.Render("▸ "))
		if err == io.EOF {
			fmt.Fprintln(out.Out)
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name := strings.ToLower(fields[0])
		if name == "exit" || name == "quit" {
			out.Success("Thanks for using acs, bye!")
			return nil
		}

		c, ok := s.commands[name]
		if !ok {
			out.Failure("Unknown command %q, type 'help'", fields[0])
			continue
		}
		c.run(ctx, s, fields[1:])
	}
}

func (s *shell) help() {
	out.Title("Commands")
	rows := make([][]string, 0, len(s.order))
	for _, name := range s.order {
		c := s.commands[name]
		rows = append(rows, []string{c.usage, c.help})
	}
	out.Table([]string{"COMMAND", "DESCRIPTION"}, rows)
}
