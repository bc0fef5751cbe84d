package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from the user. Passwords are read without echo when
// input is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

func newPrompter(in io.Reader, w io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: w, fd: -1}
	if f, ok := in.(*os.File); ok {
		p.fd = int(f.Fd())
		p.tty = term.IsTerminal(p.fd)
	}
	return p
}

// Line prints prompt and returns the next input line without its newline.
// io.EOF is returned once input is exhausted.
func (p *prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password prints prompt and reads a secret
func (p *prompter) Password(prompt string) (string, error) {
	if !p.tty {
		return p.Line(prompt)
	}

	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// stdinPrompter is shared by the subcommands and the shell
var stdinPrompter = newPrompter(os.Stdin, os.Stderr)
