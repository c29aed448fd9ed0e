package editor

import (
	"github.com/mattn/go-runewidth"

	"github.com/pencroft/musepad/notes"
)

// Editor is the text surface for the notes pane. It owns the cursor and the
// selection mark; document content is mirrored from the notes document by the
// host, which keeps the two in sync on every edit.
type Editor struct {
	Text   []rune
	Cursor int

	mark    int
	hasMark bool
}

func NewEditor() *Editor {
	return &Editor{}
}

func (e *Editor) GetText() []rune {
	return e.Text
}

// SetText replaces the editor's content, clamping the cursor and dropping any
// active selection.
func (e *Editor) SetText(text string) {
	e.Text = []rune(text)
	if e.Cursor > len(e.Text) {
		e.Cursor = len(e.Text)
	}
	e.ClearMark()
}

// AddRune adds a rune to the editor's state and updates position.
// Any active selection is dropped; an edit collapses it.
func (e *Editor) AddRune(r rune) {
	if e.Cursor == 0 {
		e.Text = append([]rune{r}, e.Text...)
	} else if e.Cursor < len(e.Text) {
		e.Text = append(e.Text[:e.Cursor], e.Text[e.Cursor-1:]...)
		e.Text[e.Cursor] = r
	} else {
		e.Text = append(e.Text[:e.Cursor], r)
	}
	e.Cursor++
	e.ClearMark()
}

// Backspace removes the rune before the cursor. Reports whether anything was
// removed.
func (e *Editor) Backspace() bool {
	if e.Cursor == 0 {
		return false
	}
	e.Text = append(e.Text[:e.Cursor-1], e.Text[e.Cursor:]...)
	e.Cursor--
	e.ClearMark()
	return true
}

// SetMark anchors a selection at the cursor. Moving the cursor afterwards
// extends the selection from this anchor.
func (e *Editor) SetMark() {
	e.mark = e.Cursor
	e.hasMark = true
}

func (e *Editor) ClearMark() {
	e.hasMark = false
}

func (e *Editor) HasMark() bool {
	return e.hasMark
}

// Selection returns the current selection as a normalized range over the
// text. ok is false when there is no mark or the selection is collapsed, so
// callers can gate the highlight control on it directly.
func (e *Editor) Selection() (r notes.Range, ok bool) {
	if !e.hasMark || e.mark == e.Cursor {
		return notes.Range{}, false
	}

	start, end := e.mark, e.Cursor
	if start > end {
		start, end = end, start
	}

	return notes.Range{Start: start, End: end}, true
}

// MoveCursor updates the cursor position. An active mark stays anchored, so
// movement grows or shrinks the selection.
func (e *Editor) MoveCursor(x, y int) {
	if len(e.Text) == 0 && e.Cursor == 0 {
		return
	}
	// Move cursor horizontally.
	newCursor := e.Cursor + x

	// Move cursor vertically.
	if y > 0 {
		newCursor = e.calcCursorDown()
	}

	if y < 0 {
		newCursor = e.calcCursorUp()
	}

	// Reset to bounds.
	if newCursor > len(e.Text) {
		newCursor = len(e.Text)
	}

	if newCursor < 0 {
		newCursor = 0
	}

	e.Cursor = newCursor
}

// For the functions calcCursorUp and calcCursorDown, newline characters are found by iterating
// backward and forward from the current cursor position. These characters are taken as the "start"
// and "end" of the current line. The "offset" from the start of the current line to the cursor
// is calculated and used to determine the final cursor position on the target line, based on whether the
// offset is greater than the length of the target line. "pos" is used as a placeholder variable for
// the cursor.

// calcCursorUp calculates the intended cursor position after moving the cursor up one line.
func (e *Editor) calcCursorUp() int {
	pos := e.Cursor
	offset := 0

	// If the initial cursor is out of the bounds of the text or already on a newline, move it.
	if pos == len(e.Text) || e.Text[pos] == '\n' {
		offset++
		pos--
	}

	if pos < 0 {
		pos = 0
	}

	start, end := pos, pos

	// Find the start of the current line.
	for start > 0 && e.Text[start] != '\n' {
		start--
	}

	// If the cursor is already on the first line, move to the beginning of the text.
	if start == 0 {
		return 0
	}

	// Find the end of the current line.
	for end < len(e.Text) && e.Text[end] != '\n' {
		end++
	}

	// Find the start of the previous line.
	prevStart := start - 1
	for prevStart >= 0 && e.Text[prevStart] != '\n' {
		prevStart--
	}

	// Calculate the distance from the start of the current line to the cursor.
	offset += pos - start
	if offset <= start-prevStart {
		return prevStart + offset
	} else {
		return start
	}
}

// calcCursorDown calculates the intended cursor position after moving the cursor down one line.
func (e *Editor) calcCursorDown() int {
	pos := e.Cursor
	offset := 0

	// If the initial cursor is out of the bounds of the text or already on a newline, move it.
	if pos == len(e.Text) || e.Text[pos] == '\n' {
		offset++
		pos--
	}

	if pos < 0 {
		pos = 0
	}

	start, end := pos, pos

	// Find the start of the current line.
	for start > 0 && e.Text[start] != '\n' {
		start--
	}

	// This handles the case where the cursor is on the first line. This is necessary because the start
	// of the first line is not a newline character, unlike the other lines in the text.
	if start == 0 && e.Text[start] != '\n' {
		offset++
	}

	// Find the end of the current line.
	for end < len(e.Text) && e.Text[end] != '\n' {
		end++
	}

	// This handles the case where the cursor is on a newline. end has to be incremented, otherwise
	// start == end.
	if e.Text[pos] == '\n' && e.Cursor != 0 {
		end++
	}

	// If the cursor is already on the last line, move to the end of the text.
	if end == len(e.Text) {
		return len(e.Text)
	}

	// Find the end of the next line.
	nextEnd := end + 1
	for nextEnd < len(e.Text) && e.Text[nextEnd] != '\n' {
		nextEnd++
	}

	// Calculate the distance from the start of the current line to the cursor.
	offset += pos - start
	if offset < nextEnd-end {
		return end + offset
	} else {
		return nextEnd
	}
}

// Position returns the 1-based column and line of the cursor, column measured
// in display cells.
func (e *Editor) Position() (int, int) {
	return e.calcCursorXY(e.Cursor)
}

// calcCursorXY calculates cursor position from the index obtained from the content.
func (e *Editor) calcCursorXY(index int) (int, int) {
	x := 1
	y := 1

	if index < 0 {
		return x, y
	}

	if index > len(e.Text) {
		index = len(e.Text)
	}

	for i := 0; i < index; i++ {
		if e.Text[i] == rune('\n') {
			x = 1
			y++
		} else {
			x = x + runewidth.RuneWidth(e.Text[i])
		}
	}
	return x, y
}
