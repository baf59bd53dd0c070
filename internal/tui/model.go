package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyquiz/internal/quiz"
	"studyquiz/internal/store"
)

// GradePort is the TUI-facing subset of the study service.
type GradePort interface {
	Grade(ctx context.Context, id string, answers quiz.Answers) (quiz.GradingResult, error)
}

type phase int

const (
	phaseReading phase = iota
	phaseAnswering
	phaseDone
)

// Model is the Bubble Tea model for the terminal quiz runner.
type Model struct {
	service  GradePort
	session  store.Session
	keywords []string
	input    textinput.Model
	viewport viewport.Model
	phase    phase
	item     int
	slot     int
	answers  quiz.Answers
	result   *quiz.GradingResult
	status   string
	ready    bool
}

// New creates a quiz runner for a processed session.
func New(service GradePort, sess store.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your answer and press Enter"
	ti.CharLimit = 0
	ti.Focus()
	kws := make([]string, len(sess.Keywords))
	for i, kw := range sess.Keywords {
		kws[i] = kw.Term
	}
	return Model{
		service:  service,
		session:  sess,
		keywords: kws,
		input:    ti,
		viewport: viewport.New(0, 0),
		answers:  quiz.Answers{},
		status:   "Read the summary, then press Enter to start the quiz.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and advances the quiz.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := boxStyle.GetFrameSize()
		vh := msg.Height - bh - 6
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, vh)
		m.viewport.SetContent(m.renderBody())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
		if m.phase == phaseDone && msg.String() == "q" {
			return m, tea.Quit
		}
	}
	if m.phase != phaseAnswering {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseReading:
		if len(m.session.Quiz) == 0 {
			m.phase = phaseDone
			m.status = "No quiz could be generated from this text. Press q to quit."
		} else {
			m.phase = phaseAnswering
			m.status = fmt.Sprintf("Question 1/%d", len(m.session.Quiz))
		}
	case phaseAnswering:
		m.record(strings.TrimSpace(m.input.Value()))
		m.input.SetValue("")
		if m.item >= len(m.session.Quiz) {
			m.finish()
		} else {
			m.status = fmt.Sprintf("Question %d/%d", m.item+1, len(m.session.Quiz))
		}
	case phaseDone:
		return m, tea.Quit
	}
	m.viewport.SetContent(m.renderBody())
	m.viewport.GotoTop()
	return m, nil
}

// record stores the answer for the current item, or the current List A slot
// of a matching item, and advances.
func (m *Model) record(answer string) {
	it := m.session.Quiz[m.item]
	if mt, ok := it.(*quiz.Matching); ok {
		sub := m.answers[m.item]
		if sub.Matches == nil {
			sub.Matches = map[int]string{}
		}
		sub.Matches[m.slot] = answer
		m.answers[m.item] = sub
		m.slot++
		if m.slot < len(mt.ListA) {
			return
		}
		m.slot = 0
		m.item++
		return
	}
	m.answers[m.item] = quiz.Submission{Text: answer}
	m.item++
}

func (m *Model) finish() {
	m.phase = phaseDone
	res, err := m.service.Grade(context.Background(), m.session.ID, m.answers)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.result = &res
	m.status = "Press q or Enter to quit."
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Study Quiz")
	body := boxStyle.Render(m.viewport.View())
	status := statusStyle.Render(m.status)
	if m.phase == phaseAnswering {
		return header + "\n" + body + "\n" + inputStyle.Render(m.input.View()) + "\n" + status
	}
	return header + "\n" + body + "\n" + status
}

func (m Model) renderBody() string {
	switch m.phase {
	case phaseReading:
		return highlightKeywords(m.session.Summary.Rendered, m.keywords)
	case phaseAnswering:
		return m.renderItem()
	}
	if m.result == nil {
		return "Quiz finished."
	}
	return fmt.Sprintf("Score: %d / %d", m.result.Score, m.result.MaxScore)
}

func (m Model) renderItem() string {
	it := m.session.Quiz[m.item]
	var b strings.Builder
	switch v := it.(type) {
	case *quiz.MultipleChoice:
		b.WriteString("Fill in the blank:\n\n" + v.Prompt + "\n\n")
		for i, opt := range v.Options {
			fmt.Fprintf(&b, "  %c) %s\n", 'a'+i, opt)
		}
		b.WriteString("\nType the word.")
	case *quiz.TrueFalse:
		b.WriteString("True or false?\n\n" + v.Prompt + "\n\nType true or false.")
	case *quiz.FillBlank:
		b.WriteString("Fill in the blank:\n\n" + v.Prompt)
	case *quiz.Matching:
		b.WriteString(v.Prompt + "\n\nList A:\n")
		for i, a := range v.ListA {
			marker := "  "
			if i == m.slot {
				marker = "> "
			}
			b.WriteString(marker + a + "\n")
		}
		b.WriteString("\nList B: " + strings.Join(v.ListB, ", ") + "\n\n")
		fmt.Fprintf(&b, "Which List B word matches item %d?", m.slot+1)
	}
	return b.String()
}

var (
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	wordRe         = regexp.MustCompile(`\p{L}+`)
)

// highlightKeywords renders every whole-word occurrence of a keyword,
// case-insensitively, in the highlight style.
func highlightKeywords(text string, keywords []string) string {
	if len(keywords) == 0 || strings.TrimSpace(text) == "" {
		return text
	}
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[strings.ToLower(k)] = struct{}{}
	}
	return wordRe.ReplaceAllStringFunc(text, func(w string) string {
		if _, ok := set[strings.ToLower(w)]; ok {
			return highlightStyle.Render(w)
		}
		return w
	})
}
