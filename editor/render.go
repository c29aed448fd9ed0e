package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pencroft/musepad/notes"
)

var (
	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11"))
	selectionStyle = lipgloss.NewStyle().Reverse(true)
	cursorStyle    = lipgloss.NewStyle().Reverse(true).Blink(true)
)

// Render returns the editor's content as a styled string: highlighted spans
// get the highlight style, the active selection is shown reversed, and the
// cursor is drawn when the pane has focus.
func (e *Editor) Render(spans []notes.Span, focused bool) string {
	marked := make([]bool, len(e.Text))
	for _, s := range spans {
		if !s.Mark {
			continue
		}
		for i := s.Start; i < s.End && i < len(e.Text); i++ {
			marked[i] = true
		}
	}

	selStart, selEnd := -1, -1
	if r, ok := e.Selection(); ok {
		selStart, selEnd = r.Start, r.End
	}

	var b strings.Builder
	for i := 0; i <= len(e.Text); i++ {
		atCursor := focused && i == e.Cursor

		if i == len(e.Text) {
			if atCursor {
				b.WriteString(cursorStyle.Render(" "))
			}
			break
		}

		r := e.Text[i]
		if r == '\n' {
			if atCursor {
				b.WriteString(cursorStyle.Render(" "))
			}
			b.WriteByte('\n')
			continue
		}

		s := string(r)
		switch {
		case atCursor:
			b.WriteString(cursorStyle.Render(s))
		case i >= selStart && i < selEnd:
			b.WriteString(selectionStyle.Render(s))
		case marked[i]:
			b.WriteString(highlightStyle.Render(s))
		default:
			b.WriteString(s)
		}
	}

	return b.String()
}
