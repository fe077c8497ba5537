package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorTeal   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220") // selection in the editor
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// StyleDim renders secondary text. StyleValue renders paths and numbers.
var (
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// printer - human-facing status lines
// =============================================================================

// printer writes status lines. Machine output such as a rendered file sent
// to stdout or a completion script never goes through it.
type printer struct {
	w io.Writer
}

func (p printer) mark(style lipgloss.Style, glyph, format string, args []any) {
	fmt.Fprintln(p.w, style.Render(glyph)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.mark(styleOK, "✓", format, args) }
func (p printer) failure(format string, args ...any) { p.mark(styleFail, "✗", format, args) }
func (p printer) info(format string, args ...any)    { p.mark(styleNote, "›", format, args) }

// detail prints an indented, dimmed line under the previous status.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file announces a written output file.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// stats prints node and connection counts plus any extra facts.
func (p printer) stats(nodes, conns int, extra ...string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(statsLine(nodes, conns, extra...)))
}

// next suggests a follow-up command.
func (p printer) next(description, cmd string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// statsLine joins counts as "3 nodes · 2 connections", using singular
// nouns for one.
func statsLine(nodes, conns int, extra ...string) string {
	parts := append([]string{plural(nodes, "node"), plural(conns, "connection")}, extra...)
	return strings.Join(parts, " · ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
