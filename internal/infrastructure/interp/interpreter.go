// Package interp dispatches approved commands to built-in handlers or the
// mock filesystem. Built-ins are pure functions of session state; nothing
// here has side effects beyond producing output lines.
package interp

import (
	"fmt"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/infrastructure/vfs"
	"github.com/doeshing/pamash/internal/ports"
)

// Interpreter implements the Interpreter port over the mock filesystem.
type Interpreter struct {
	tree     *vfs.Tree
	hostname string
	now      func() time.Time
}

// New builds an interpreter. The hostname is cosmetic session state from
// config.
func New(tree *vfs.Tree, hostname string) *Interpreter {
	return &Interpreter{tree: tree, hostname: hostname, now: time.Now}
}

// Run implements ports.Interpreter. The verb is matched case-insensitively;
// arguments keep their original form.
func (i *Interpreter) Run(sess *domain.Session, command string) []domain.OutputLine {
	verb, args := split(command)

	switch verb {
	case "clear":
		return []domain.OutputLine{{Kind: domain.LineClear}}
	case "help":
		return []domain.OutputLine{domain.System("Try: ls, cd, cat, whoami. Risky: rm -rf, format c:")}
	case "date":
		return []domain.OutputLine{domain.System(i.now().Format(time.UnixDate))}
	case "pwd":
		return []domain.OutputLine{domain.System(strings.Join(sess.Path, "/"))}
	case "whoami":
		return []domain.OutputLine{domain.System(unixName(sess.User.Name))}
	case "hostname":
		return []domain.OutputLine{domain.System(i.hostname)}
	case "echo":
		return []domain.OutputLine{domain.System(strings.Join(args, " "))}
	case "ls", "dir":
		return i.list(sess)
	default:
		return []domain.OutputLine{domain.Error(fmt.Sprintf("Command not found: %s", verb))}
	}
}

func (i *Interpreter) list(sess *domain.Session) []domain.OutputLine {
	names, err := i.tree.List(sess.Path)
	if err != nil {
		return []domain.OutputLine{domain.Error(err.Error())}
	}
	lines := make([]domain.OutputLine, 0, len(names))
	for _, name := range names {
		lines = append(lines, domain.System(name))
	}
	return lines
}

func split(command string) (string, []string) {
	parts, err := shellwords.Parse(command)
	if err != nil || len(parts) == 0 {
		// unbalanced quotes: fall back to whitespace fields
		parts = strings.Fields(command)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToLower(parts[0]), parts[1:]
}

// unixName lower-cases the display name and collapses spaces to
// underscores for whoami.
func unixName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

var _ ports.Interpreter = (*Interpreter)(nil)
