package monitor

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	domain "github.com/oshokin/radiation-monitor/internal/domain/alarm"
)

var (
	colorRed   = lipgloss.Color("#FF5555")
	colorGreen = lipgloss.Color("#50FA7B")
	colorCyan  = lipgloss.Color("#8BE9FD")
	colorGray  = lipgloss.Color("#6272A4")
)

// console prints the session to a writer, styling it when the writer is a terminal.
type console struct {
	out io.Writer

	titleStyle lipgloss.Style
	okStyle    lipgloss.Style
	critStyle  lipgloss.Style
	newStyle   lipgloss.Style
	dimStyle   lipgloss.Style

	// indexWidth is the zero-padded width of reading numbers.
	indexWidth int
}

// newConsole builds a console for a session of the given length.
func newConsole(out io.Writer, iterations int) *console {
	renderer := lipgloss.NewRenderer(out)

	return &console{
		out:        out,
		titleStyle: renderer.NewStyle().Bold(true).Foreground(colorCyan),
		okStyle:    renderer.NewStyle().Foreground(colorGreen),
		critStyle:  renderer.NewStyle().Foreground(colorRed).Bold(true),
		newStyle:   renderer.NewStyle().Foreground(colorRed),
		dimStyle:   renderer.NewStyle().Foreground(colorGray),
		indexWidth: max(2, len(strconv.Itoa(iterations))),
	}
}

// header prints the banner and the safe range.
func (c *console) header(iterations int) {
	c.printf("%s\n", c.titleStyle.Render("=== Nuclear Power Plant Radioactivity Monitor ==="))
	c.printf("Safe range: %.1f - %.1f\n\n", domain.LowThreshold(), domain.HighThreshold())
	c.printf("%s\n\n", c.dimStyle.Render(fmt.Sprintf("Starting monitoring simulation (%d readings)...", iterations)))
}

// reading prints the status line of one evaluation.
func (c *console) reading(index int, alarmOn bool, result domain.Result) {
	status := c.okStyle.Render("Normal")
	if alarmOn {
		status = c.critStyle.Render("ALARM!")
	}

	marker := ""
	if result.NewlyTriggered {
		marker = " " + c.newStyle.Render("[NEW]")
	}

	c.printf("Reading %0*d: Status = %s%s\n", c.indexWidth, index, status, marker)
}

// summary prints the final state of the session.
func (c *console) summary(final domain.Snapshot, completed, planned int) {
	state := c.okStyle.Render("OFF")
	if final.AlarmOn {
		state = c.critStyle.Render("TRIGGERED")
	}

	c.printf("\nFinal alarm state: %s\n", state)
	c.printf("Total alarm triggers: %d\n\n", final.AlarmCount)

	if completed < planned {
		c.printf("Monitoring interrupted after %d of %d readings.\n", completed, planned)
		return
	}

	c.printf("Monitoring complete.\n")
}

// printf writes to the console. Write errors on a console are not actionable.
func (c *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
