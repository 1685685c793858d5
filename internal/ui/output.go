// Package ui renders styled terminal output.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// Printer writes styled output to stdout, dropping styles when stdout is
// not a terminal.
type Printer struct {
	TermWidth int
	IsTTY     bool
}

// NewPrinter creates a Printer, auto-detecting terminal dimensions.
func NewPrinter() *Printer {
	fd := os.Stdout.Fd()
	isTTY := isatty.IsTerminal(fd)

	width := DefaultTermWidth
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return &Printer{TermWidth: width, IsTTY: isTTY}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.IsTTY {
		return s
	}
	return style.Render(s)
}

// Header prints an emphasized line.
func (p *Printer) Header(s string) {
	fmt.Println(p.render(Bold, s))
}

// Path prints an accent-styled path line, indented.
func (p *Printer) Path(s string) {
	fmt.Println("  " + p.render(Accent, s))
}

// KeyValue prints an aligned name/description pair, truncating the
// description to the terminal width.
func (p *Printer) KeyValue(key, value string, keyWidth int) {
	if p.IsTTY {
		value = truncate(value, p.TermWidth-keyWidth-4)
	}
	padded := fmt.Sprintf("%-*s", keyWidth, key)
	fmt.Println("  " + p.render(Accent, padded) + "  " + value)
}

// truncate shortens s to at most width runes, ellipsized. Cutting by rune
// keeps multibyte characters intact.
func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
