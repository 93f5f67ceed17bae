// Package ui provides consistent terminal styling, output helpers,
// and the interactive confirmation prompter for evalup.
// Respects the NO_COLOR environment variable.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette shared across all output helpers.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ColorError   = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
)

// Symbols prefixing each message class. Warnings are deliberately
// prefixed distinctly from fatal errors.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "•"
)
