package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/evaleds/evalup/internal/domain"
)

// TerminalPrompter implements domain.Prompter on an input/output pair.
// Invalid answers re-prompt indefinitely; the prompter never times out
// and never fails. When the input is not a terminal it resolves to the
// default after printing the prompt once, so piped runs do not hang.
type TerminalPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter creates a prompter on stdin/stdout.
func NewPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewPrompterWithStreams creates a prompter on custom streams,
// treating the input as interactive (for testing).
func NewPrompterWithStreams(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: true,
	}
}

// Ask presents a yes/no question with the default shown in the prompt
// and blocks until a valid answer arrives. An empty response resolves
// to the default; y/yes and n/no match case-insensitively.
func (p *TerminalPrompter) Ask(question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "%s %s: ", question, hint)

		if !p.interactive {
			fmt.Fprintln(p.out)
			return defaultYes
		}

		line, err := p.in.ReadString('\n')
		if err != nil {
			// Input exhausted (EOF): fall back to the default rather
			// than looping forever.
			fmt.Fprintln(p.out)
			return defaultYes
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(p.out, `Please answer "y" or "n".`)
	}
}

// Ensure TerminalPrompter implements domain.Prompter.
var _ domain.Prompter = (*TerminalPrompter)(nil)
