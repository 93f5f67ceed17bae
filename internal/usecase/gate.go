package usecase

import "github.com/evaleds/evalup/internal/domain"

// Gate turns a yes/no question plus a default into a boolean. In force
// mode every gate resolves to yes without prompting; this is the only
// way a gate may be bypassed.
type Gate struct {
	prompter domain.Prompter
	force    bool
}

// NewGate creates a gate over the injected prompter.
func NewGate(prompter domain.Prompter, force bool) *Gate {
	return &Gate{prompter: prompter, force: force}
}

// Confirm resolves the question. Blocks until the user supplies a
// valid answer unless force mode is on.
func (g *Gate) Confirm(question string, defaultYes bool) bool {
	if g.force {
		return true
	}
	return g.prompter.Ask(question, defaultYes)
}
