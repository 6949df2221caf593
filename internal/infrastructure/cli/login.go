package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/doeshing/pamash/internal/domain"
)

// AuthPrompter collects credentials interactively. Passwords are read
// without echo when stdin is a real terminal.
type AuthPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewAuthPrompter constructs a prompter referencing stdio.
func NewAuthPrompter(in io.Reader, out io.Writer) *AuthPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &AuthPrompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Reader exposes the buffered input so callers reading after the login
// prompts share the same buffer.
func (p *AuthPrompter) Reader() *bufio.Reader {
	return p.in
}

// Credentials is one login attempt.
type Credentials struct {
	Email    string
	Password string
	Role     domain.Role
}

// Ask collects a role, email and password.
func (p *AuthPrompter) Ask() (Credentials, error) {
	role, err := p.askRole()
	if err != nil {
		return Credentials{}, err
	}

	email, err := p.askLine("Email: ")
	if err != nil {
		return Credentials{}, err
	}

	password, err := p.askPassword()
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Email: email, Password: password, Role: role}, nil
}

func (p *AuthPrompter) askRole() (domain.Role, error) {
	answer, err := p.askLine("Role [user/admin] (user): ")
	if err != nil {
		return domain.RoleUser, err
	}
	return domain.ParseRole(answer), nil
}

func (p *AuthPrompter) askLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *AuthPrompter) askPassword() (string, error) {
	if p.fd >= 0 && term.IsTerminal(p.fd) {
		fmt.Fprint(p.out, "Password: ")
		raw, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return p.askLine("Password: ")
}
