package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 69

type theme struct {
	Header  lipgloss.Style
	Divider lipgloss.Style
	Section lipgloss.Style
	Warning lipgloss.Style
}

func newTheme(r *lipgloss.Renderer) theme {
	return theme{
		Header:  r.NewStyle().Bold(true),
		Divider: r.NewStyle().Faint(true),
		Section: r.NewStyle().Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// consoleReporter prints lifecycle progress for an operator. Colors are
// only emitted when the writer is a terminal.
type consoleReporter struct {
	out   io.Writer
	theme theme
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{out: out, theme: newTheme(lipgloss.NewRenderer(out))}
}

func (c *consoleReporter) Header(title string) {
	rule := strings.Repeat("#", ruleWidth)
	fmt.Fprintln(c.out, c.theme.Header.Render(rule))
	fmt.Fprintln(c.out, c.theme.Header.Render("# "+title))
	fmt.Fprintln(c.out, c.theme.Header.Render(rule))
}

func (c *consoleReporter) Divider() {
	fmt.Fprintln(c.out, c.theme.Divider.Render(strings.Repeat("-", ruleWidth)))
}

func (c *consoleReporter) Section(title string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.theme.Section.Render(title))
	c.Divider()
}

func (c *consoleReporter) Infof(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *consoleReporter) Warnf(format string, args ...any) {
	fmt.Fprintln(c.out, c.theme.Warning.Render(fmt.Sprintf(format, args...)))
}
