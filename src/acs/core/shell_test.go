package core

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bitswalk/acs/src/acs/auth"
	"github.com/bitswalk/acs/src/acs/db"
	"github.com/bitswalk/acs/src/acs/db/migrations"
	"github.com/bitswalk/acs/src/acs/output"
	"golang.org/x/crypto/bcrypt"
)

// testApp returns services over a migrated in-memory store
func testApp(t *testing.T) *app {
	t.Helper()
	ctx := context.Background()

	database, err := db.OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	engine, err := migrations.NewEngine(database.Conn, migrations.Default())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	return newApp(database, engine, auth.NewBcryptHasher(bcrypt.MinCost), auth.DefaultPolicy())
}

func setupShell(t *testing.T, input string) (*shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	prev := out
	out = &output.Printer{Out: &stdout, Err: &stderr, Format: output.FormatTable}
	t.Cleanup(func() { out = prev })

	p := newPrompter(strings.NewReader(input), &bytes.Buffer{})
	return newShell(testApp(t), p), &stdout, &stderr
}

func TestShell_Session(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"register alice",
		"secret1",
		"register",
		"bob",
		"secret2",
		"LOGIN alice",
		"secret1",
		"list",
		"assign 1 2",
		"roles 1",
		"logout 1",
		"exit",
		"register carol",
		"secret3",
	}, "\n") + "\n"

	s, stdout, stderr := setupShell(t, input)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := stdout.String()
	for _, want := range []string{
		"Welcome to acs",
		"register [username]",
		"User alice registered",
		"User bob registered",
		"Logged in as alice",
		"Role 2 assigned to user 1",
		"Admin",
		"User 1 logged out",
		"bye",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected failures: %q", stderr.String())
	}

	// Nothing after exit is executed.
	if strings.Contains(got, "carol") {
		t.Errorf("commands after exit were run:\n%s", got)
	}
}

func TestShell_Failures(t *testing.T) {
	input := strings.Join([]string{
		"frobnicate",
		"info",
		"info abc",
		"info 42",
		"register al",
		"secret1",
		"login nobody",
		"secret1",
	}, "\n") + "\n"

	s, _, stderr := setupShell(t, input)

	// End of input ends the session cleanly.
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := stderr.String()
	for _, want := range []string{
		`Unknown command "frobnicate"`,
		"Expected 1 argument(s)",
		"positive integer",
		"User 42 not found",
		"at least 3",
		"Invalid username or password",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("failures missing %q in %q", want, got)
		}
	}
}
