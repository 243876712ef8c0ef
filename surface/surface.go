// Package surface is the drawing target the estimators render onto once per
// frame.
package surface

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Surface receives one frame of form rows. Implementations buffer rows until
// Flush.
type Surface interface {
	Heading(title string)
	// Row draws a label followed by value cells. A non-empty hint is shown
	// after the cells.
	Row(label, hint string, cells ...string)
	Separator()
	Flush() error
}

// Text draws aligned columns to an io.Writer. When framed, every line is
// wrapped in a box under a title bar, the way a floating window is drawn.
type Text struct {
	out    io.Writer
	title  string
	framed bool
	lines  []string
}

func NewText(out io.Writer) *Text {
	return &Text{out: out}
}

// NewWindow returns a Text surface that draws inside a titled frame.
func NewWindow(out io.Writer, title string) *Text {
	return &Text{out: out, title: title, framed: true}
}

func (t *Text) Heading(title string) {
	t.lines = append(t.lines, "", "# "+title)
}

func (t *Text) Row(label, hint string, cells ...string) {
	line := label + "\t" + strings.Join(cells, "\t")
	if hint != "" {
		line += "\t(" + hint + ")"
	}
	t.lines = append(t.lines, line)
}

func (t *Text) Separator() {
	t.lines = append(t.lines, "")
}

func (t *Text) Flush() error {
	defer func() { t.lines = t.lines[:0] }()

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, line := range t.lines {
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to align rows: %w", err)
	}

	text := b.String()
	if t.framed {
		text = frame(t.title, text)
	}
	if _, err := io.WriteString(t.out, text); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return nil
}

func frame(title, body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	width := len([]rune(title)) + 2
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	var b strings.Builder
	b.WriteString("+-" + title + " " + strings.Repeat("-", width-len([]rune(title))) + "+\n")
	for _, l := range lines {
		b.WriteString("| " + l + strings.Repeat(" ", width-len([]rune(l))) + " |\n")
	}
	b.WriteString("+" + strings.Repeat("-", width+2) + "+\n")
	return b.String()
}
