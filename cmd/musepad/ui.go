package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/pencroft/musepad/editor"
	"github.com/pencroft/musepad/muse"
	"github.com/pencroft/musepad/notes"
	"github.com/pencroft/musepad/slots"
	"github.com/pencroft/musepad/storage"
)

type focusArea int

const (
	focusSlots focusArea = iota
	focusNotes
)

type editTarget int

const (
	editNone editTarget = iota
	editSlot
	editAPIKey
)

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	err error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	labelStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedPane   = paneStyle.Copy().BorderForeground(lipgloss.Color("5"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

var slotLabels = map[slots.Slot]string{
	slots.WordA:      "word",
	slots.WordB:      "word",
	slots.Constraint: "constraint",
}

type model struct {
	slots *slots.Engine
	doc   notes.Document
	ed    *editor.Editor
	store *storage.Store
	gen   *muse.Client

	hasKey   bool
	focus    focusArea
	selected slots.Slot

	input   textinput.Model
	editing editTarget

	// pending is the token of the most recent generation request. Results
	// carrying any other token are stale and get discarded.
	pending uuid.UUID

	result string
	status string
	copied bool

	width int
}

func initialModel(engine *slots.Engine, doc notes.Document, store *storage.Store, gen *muse.Client, apiKey string) model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	ed := editor.NewEditor()
	ed.SetText(notes.Content(doc))

	return model{
		slots:  engine,
		doc:    doc,
		ed:     ed,
		store:  store,
		gen:    gen,
		hasKey: strings.TrimSpace(apiKey) != "",
		input:  ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case muse.Result:
		if msg.Token != m.pending {
			logger.Infof("discarding stale generation result %v", msg.Token)
			return m, nil
		}
		m.pending = uuid.Nil
		m.copied = false
		m.status = ""
		if msg.Err != nil {
			logger.Errorf("generation failed: %v", msg.Err)
			m.result = muse.FallbackFor(msg.Err)
		} else {
			m.result = msg.Text
		}
		return m, nil

	case copiedMsg:
		// A clipboard failure is logged and nothing else; the copy state
		// simply never flips.
		if msg.err != nil {
			logger.Errorf("clipboard write failed: %v", msg.err)
			return m, nil
		}
		m.copied = true
		return m, nil

	case tea.KeyMsg:
		if m.editing != editNone {
			return m.updateEditing(msg)
		}

		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.focus == focusNotes {
			return m.updateNotes(msg)
		}
		return m.updateSlots(msg)
	}

	return m, nil
}

// updateEditing handles keys while the text input is active, for both slot
// edits and the API key.
func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.editing = editNone
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		switch m.editing {
		case editSlot:
			m.slots.SetManual(m.selected, value)
		case editAPIKey:
			if err := m.store.Save(storage.KeyAPIKey, value); err != nil {
				logger.Errorf("failed to save the API key: %v", err)
			}
			m.gen = muse.NewClient(value)
			m.hasKey = strings.TrimSpace(value) != ""
			m.status = "API key updated."
		}
		m.editing = editNone
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateSlots handles keys while the slot pane has focus.
func (m model) updateSlots(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit

	case "tab":
		m.focus = focusNotes
		return m, nil

	case "up", "k":
		if m.selected > slots.WordA {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < slots.Constraint {
			m.selected++
		}
		return m, nil

	case "r":
		m.slots.Shuffle(m.selected)
		return m, nil

	case "R":
		m.slots.ShuffleAll()
		return m, nil

	case "enter", "e":
		m.editing = editSlot
		m.input.EchoMode = textinput.EchoNormal
		m.input.Placeholder = "new " + slotLabels[m.selected]
		m.input.SetValue(m.slots.Value(m.selected))
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "ctrl+k":
		return m.startKeyEdit()

	case "g":
		cmd := (&m).startGeneration()
		return m, cmd

	case "y":
		if m.result == "" || m.pending != uuid.Nil {
			return m, nil
		}
		return m, copyCmd(m.result)
	}

	return m, nil
}

// updateNotes handles keys while the notes pane has focus.
func (m model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = focusSlots
		return m, nil

	case tea.KeyLeft:
		m.ed.MoveCursor(-1, 0)
		return m, nil

	case tea.KeyRight:
		m.ed.MoveCursor(1, 0)
		return m, nil

	case tea.KeyUp:
		m.ed.MoveCursor(0, -1)
		return m, nil

	case tea.KeyDown:
		m.ed.MoveCursor(0, 1)
		return m, nil

	case tea.KeyHome:
		m.ed.Cursor = 0
		return m, nil

	case tea.KeyEnd:
		m.ed.Cursor = len(m.ed.GetText())
		return m, nil

	case tea.KeyCtrlAt:
		// ctrl+space: set the selection mark, or drop it if already set.
		if m.ed.HasMark() {
			m.ed.ClearMark()
		} else {
			m.ed.SetMark()
		}
		return m, nil

	case tea.KeyCtrlH:
		(&m).toggleHighlight()
		return m, nil

	case tea.KeyBackspace:
		(&m).backspace()
		return m, nil

	case tea.KeyEnter:
		(&m).insertRune('\n')
		return m, nil

	case tea.KeySpace:
		(&m).insertRune(' ')
		return m, nil

	case tea.KeyTab:
		// A tab inserts 4 spaces.
		for i := 0; i < 4; i++ {
			(&m).insertRune(' ')
		}
		return m, nil

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			(&m).insertRune(r)
		}
		return m, nil
	}

	return m, nil
}

func (m model) startKeyEdit() (tea.Model, tea.Cmd) {
	m.editing = editAPIKey
	m.input.EchoMode = textinput.EchoPassword
	m.input.Placeholder = "API key"
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

// insertRune applies a keystroke to the notes document and mirrors it into
// the editor, then persists.
func (m *model) insertRune(r rune) {
	if err := m.doc.Insert(m.ed.Cursor, string(r)); err != nil {
		logger.Errorf("insert at %d failed: %v", m.ed.Cursor, err)
		return
	}
	m.ed.AddRune(r)
	m.persistNotes()
}

func (m *model) backspace() {
	if m.ed.Cursor == 0 {
		return
	}
	if err := m.doc.Delete(m.ed.Cursor - 1); err != nil {
		logger.Errorf("delete at %d failed: %v", m.ed.Cursor-1, err)
		return
	}
	m.ed.Backspace()
	m.persistNotes()
}

// toggleHighlight toggles the highlight over the current selection. With no
// active selection this is a no-op; the control is disabled in the help line
// too.
func (m *model) toggleHighlight() {
	r, ok := m.ed.Selection()
	if !ok {
		m.status = "Nothing selected. Set the mark with ctrl+space, then move the cursor."
		return
	}

	if err := m.doc.ToggleHighlight(r); err != nil {
		logger.Errorf("highlight toggle rejected: %v", err)
		return
	}

	// The selection collapses once the toggle lands.
	m.ed.ClearMark()
	m.status = ""
	m.persistNotes()
	logDoc(m.doc)
}

// persistNotes writes the document to the store after every mutation. The
// write is fire-and-forget: a failure is logged and the UI stays interactive.
func (m *model) persistNotes() {
	if err := m.store.Save(storage.KeyNotes, notes.Markup(m.doc)); err != nil {
		logger.Errorf("failed to persist notes: %v", err)
	}
}

// startGeneration issues a generation request for the current slot values and
// records its token so stale responses can be discarded.
func (m *model) startGeneration() tea.Cmd {
	if !m.hasKey {
		m.status = "No API key set. Press ctrl+k to add one."
		return nil
	}

	wordA, wordB, constraint := m.slots.Values()
	phrase := muse.BuildPrompt(wordA, wordB, constraint)

	token := uuid.New()
	m.pending = token
	m.status = "Summoning the muse..."

	gen := m.gen
	return func() tea.Msg {
		text, err := gen.Generate(context.Background(), phrase)
		return muse.Result{Token: token, Text: text, Err: err}
	}
}

// copyCmd writes the text to the system clipboard off the update loop.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("musepad"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("creative prompt generator"))
	b.WriteString("\n\n")

	b.WriteString(m.slotsView())
	b.WriteString("\n")
	b.WriteString(m.resultView())
	b.WriteString("\n")
	b.WriteString(m.notesView())
	b.WriteString("\n")

	if m.editing != editNone {
		prompt := "New value: "
		if m.editing == editAPIKey {
			prompt = "API key: "
		}
		b.WriteString(prompt + m.input.View() + "\n")
	}

	b.WriteString(m.statusView())

	return b.String()
}

func (m model) slotsView() string {
	var rows []string
	for _, slot := range []slots.Slot{slots.WordA, slots.WordB, slots.Constraint} {
		marker := "  "
		value := m.slots.Value(slot)
		if m.focus == focusSlots && slot == m.selected {
			marker = "> "
			value = selectedStyle.Render(value)
		}
		label := labelStyle.Render(fmt.Sprintf("%-11s", slotLabels[slot]))
		rows = append(rows, fmt.Sprintf("%s%s %s", marker, label, value))
	}

	style := paneStyle
	if m.focus == focusSlots {
		style = focusedPane
	}
	return style.Render(strings.Join(rows, "\n"))
}

func (m model) resultView() string {
	text := m.result
	if text == "" {
		text = labelStyle.Render("press g to generate a prompt")
	}
	if m.pending != uuid.Nil {
		text = labelStyle.Render("summoning the muse...")
	}
	if m.copied {
		text += " " + labelStyle.Render("(copied)")
	}
	return paneStyle.Render(text)
}

func (m model) notesView() string {
	style := paneStyle
	if m.focus == focusNotes {
		style = focusedPane
	}

	content := m.ed.Render(notes.Spans(m.doc), m.focus == focusNotes)
	if content == "" {
		content = labelStyle.Render("notes...")
	}
	return style.Render(content)
}

func (m model) statusView() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}

	if m.editing != editNone {
		return statusStyle.Render("enter apply · esc cancel")
	}

	if m.focus == focusNotes {
		x, y := m.ed.Position()
		help := "esc slots · ctrl+space mark"
		if _, ok := m.ed.Selection(); ok {
			help += " · ctrl+h highlight"
		}
		return statusStyle.Render(fmt.Sprintf("Ln %d, Col %d · %s", y, x, help))
	}

	return statusStyle.Render("tab notes · r shuffle · R all · enter edit · g generate · y copy · ctrl+k key · q quit")
}
