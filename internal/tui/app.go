package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/san-kum/graycode/internal/gray"
	"github.com/san-kum/graycode/internal/store"
)

const copiedFor = 2 * time.Second

type copiedExpiredMsg struct{ seq int }

type savedMsg struct {
	id  string
	err error
}

// Saver persists a finished conversion.
type Saver interface {
	Save(mode gray.Mode, input string, res gray.Result) (string, error)
}

type Option func(*model)

// WithSaver enables ctrl+s.
func WithSaver(s Saver) Option {
	return func(m *model) { m.saver = s }
}

// WithClipboard replaces the OSC 52 clipboard writer.
func WithClipboard(fn func(string)) Option {
	return func(m *model) { m.clip = fn }
}

func WithInput(s string) Option {
	return func(m *model) { m.input = s }
}

type model struct {
	mode   gray.Mode
	input  string
	output string
	steps  []gray.Step
	err    error

	copied  bool
	copySeq int
	status  string

	saver Saver
	clip  func(string)

	offset        int
	width, height int
}

func New(mode gray.Mode, opts ...Option) model {
	m := model{
		mode:   mode,
		clip:   func(s string) { termenv.Copy(s) },
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.input != "" {
		m.convert()
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case copiedExpiredMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.id
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		m.mode = m.mode.Inverse()
		m.reset()
	case tea.KeyEnter:
		m.convert()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
			m.reset()
		}
	case tea.KeyCtrlU:
		m.input = ""
		m.reset()
	case tea.KeyCtrlY:
		return m.copyOutput()
	case tea.KeyCtrlS:
		return m, m.save()
	case tea.KeyUp:
		if m.offset > 0 {
			m.offset--
		}
	case tea.KeyDown:
		if m.offset < len(m.steps)-1 {
			m.offset++
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
		m.reset()
	}
	return m, nil
}

// convert runs only on explicit request. Any edit to the input drops the
// previous output, so copy and save always see a matching pair.
func (m *model) convert() {
	m.offset = 0
	m.status = ""
	res, err := gray.ConvertChecked(m.mode, m.input)
	if err != nil {
		m.err = err
		m.output, m.steps = "", nil
		return
	}
	m.err = nil
	m.output, m.steps = res.Result, res.Steps
}

func (m *model) reset() {
	m.output, m.steps, m.err = "", nil, nil
	m.offset = 0
	m.copied = false
	m.status = ""
}

func (m model) copyOutput() (model, tea.Cmd) {
	if m.output == "" {
		return m, nil
	}
	m.clip(m.output)
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	return m, tea.Tick(copiedFor, func(time.Time) tea.Msg { return copiedExpiredMsg{seq: seq} })
}

func (m model) save() tea.Cmd {
	if m.saver == nil || m.output == "" {
		return nil
	}
	saver, mode, input := m.saver, m.mode, m.input
	res := gray.Result{Result: m.output, Steps: m.steps}
	return func() tea.Msg {
		id, err := saver.Save(mode, input, res)
		if err != nil {
			slog.Debug("save conversion", "err", err)
		}
		return savedMsg{id: id, err: err}
	}
}

func (m model) View() string {
	head, foot := m.viewHeader(), m.viewFooter()
	if m.output == "" {
		return Panel.Render(head + foot)
	}
	chrome := lipgloss.Height(Panel.Render(head + foot))
	return Panel.Render(head + m.viewSteps(m.height-chrome) + foot)
}

func (m model) viewHeader() string {
	var b strings.Builder

	b.WriteString(Title.Render("Gray Code Converter") + "\n")
	b.WriteString(Subtle.Render("binary ⇄ gray with step-by-step derivation") + "\n\n")

	for _, mode := range []gray.Mode{gray.ModeGrayToBinary, gray.ModeBinaryToGray} {
		tab := mode.SourceLabel() + " → " + mode.TargetLabel()
		if mode == m.mode {
			b.WriteString(ActiveTab.Render(tab))
		} else {
			b.WriteString(InactiveTab.Render(tab))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(Label.Render(fmt.Sprintf("Input %s Code", m.mode.SourceLabel())) + "\n")
	b.WriteString(Bits.Render(m.input) + Subtle.Render("█") + "\n")
	if m.err != nil {
		b.WriteString(ErrorText.Render("Please enter only binary digits (0 or 1)") + "\n")
	}

	if m.output != "" {
		b.WriteString("\n" + Label.Render(fmt.Sprintf("Output %s Code", m.mode.TargetLabel())) + "\n")
		out := Output.Render(m.output)
		if m.copied {
			out += "  " + Output.Render("✓ copied")
		}
		b.WriteString(out + "\n")
		b.WriteString(Separator(m.width/2) + "\n")
	}
	return b.String()
}

func (m model) viewFooter() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + Hints("enter", "convert", "tab", "mode", "ctrl+y", "copy", "ctrl+s", "save", "ctrl+u", "clear", "esc", "quit"))
	return b.String()
}

// viewSteps renders one line per step within budget lines, counting the
// heading and the "more" marker.
func (m model) viewSteps(budget int) string {
	var b strings.Builder
	b.WriteString(Label.Render("Conversion Steps") + "\n")

	visible := budget - 1
	if m.offset+visible < len(m.steps) {
		visible--
	}
	if visible < 1 {
		visible = 1
	}
	end := m.offset + visible
	if end > len(m.steps) {
		end = len(m.steps)
	}
	for _, s := range m.steps[m.offset:end] {
		b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
			StepNumber.Render(fmt.Sprintf("%d.", s.Index)),
			s.Description,
			Label.Render("Result:"),
			Bits.Render(s.Cumulative)))
	}
	if end < len(m.steps) {
		b.WriteString(Subtle.Render(fmt.Sprintf("… %d more (↓)", len(m.steps)-end)) + "\n")
	}
	return b.String()
}

// Run starts the interactive converter on the alternate screen.
func Run(mode gray.Mode, st *store.Store, input string) error {
	opts := []Option{WithInput(input)}
	if st != nil {
		opts = append(opts, WithSaver(st))
	}
	_, err := tea.NewProgram(New(mode, opts...), tea.WithAltScreen()).Run()
	return err
}
