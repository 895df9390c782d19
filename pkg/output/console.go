package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	isatty "github.com/mattn/go-isatty"
)

var (
	styleArrow   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)  // cyan/blue
	styleJob     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)  // bright white
	styleDesc    = lipgloss.NewStyle().Faint(true)                                  // dim
	styleWarnLbl = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true) // yellow
	styleWarnTxt = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))            // yellow
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Faint(true) // teal dim
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  // green
	styleFail    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red
	colorEnabled = true
)

// InitConsole configures color output based on noColor flag and TTY detection
func InitConsole(noColor bool) {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	colorEnabled = tty && !noColor
}

func r(st lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return st.Render(s)
}

// JobHeader returns a header line for a job being generated, with its progress position.
func JobHeader(i, total int, name, variant string) string {
	return fmt.Sprintf("%s %s %s\n",
		r(styleArrow, fmt.Sprintf("[%d/%d]", i, total)),
		r(styleJob, name),
		r(styleDesc, "("+variant+")"))
}

// Generated is the success line naming the script and the directory it was written to.
func Generated(file, dir string) string {
	return r(styleOK, "✓") + fmt.Sprintf(" SLURM script %s generated successfully in %s.", file, dir)
}

// Failed returns a single-line failure summary for a job.
func Failed(name string, err error) string {
	return r(styleFail, "✗") + fmt.Sprintf(" Job '%s' failed: %s", name, ShortError(err))
}

// Warnf returns a single-line colored warning string with a standard prefix.
func Warnf(format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	return r(styleWarnLbl, "Warning:") + " " + r(styleWarnTxt, msg)
}

// Notef returns a faint informational line.
func Notef(format string, a ...interface{}) string {
	return r(styleNote, fmt.Sprintf(format, a...))
}

// ListNames returns a bullet list of names, faint.
func ListNames(names []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString(r(styleDesc, "    - "))
		b.WriteString(r(styleDesc, n))
		b.WriteByte('\n')
	}
	return b.String()
}

// ShortError keeps the last non-empty line of a possibly multi-line error.
func ShortError(err error) string {
	if err == nil {
		return ""
	}
	lines := strings.Split(err.Error(), "\n")
	var candidate string
	for _, ln := range lines {
		if t := strings.TrimSpace(ln); t != "" {
			candidate = t
		}
	}
	return candidate
}
