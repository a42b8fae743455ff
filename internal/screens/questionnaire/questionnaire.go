package questionnaire

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aiethics/selfcheck/internal/answers"
	"github.com/aiethics/selfcheck/internal/api"
	qload "github.com/aiethics/selfcheck/internal/questionnaire"
	"github.com/aiethics/selfcheck/internal/report"
	"github.com/aiethics/selfcheck/internal/router"
	"github.com/aiethics/selfcheck/internal/screen"
	reportscreen "github.com/aiethics/selfcheck/internal/screens/report"
	"github.com/aiethics/selfcheck/internal/submission"
	"github.com/aiethics/selfcheck/internal/ui/components"
	"github.com/aiethics/selfcheck/internal/ui/layout"
	"github.com/aiethics/selfcheck/internal/ui/theme"
)

type loadedMsg struct {
	Outcome qload.Outcome
}

type submittedMsg struct {
	Outcome submission.Outcome
}

// item is one question row with its answer selector.
type item struct {
	standard string
	first    bool // first question of its standard
	question api.Question
	radio    components.RadioGroup
}

// QuestionnaireScreen lists every question grouped by standard and submits
// the recorded answers.
type QuestionnaireScreen struct {
	loader    *qload.Loader
	submitter *submission.Submitter
	reports   *report.Loader
	exportDir string

	state   qload.State
	items   []item
	answers *answers.Map
	cursor  int // len(items) is the submit button
	button  components.Button
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)

// New creates a QuestionnaireScreen. On a successful submission it is
// replaced by a report screen built from reports.
func New(loader *qload.Loader, submitter *submission.Submitter, reports *report.Loader, exportDir string) *QuestionnaireScreen {
	return &QuestionnaireScreen{
		loader:    loader,
		submitter: submitter,
		reports:   reports,
		exportDir: exportDir,
		state:     qload.NewState(),
		answers:   answers.NewMap(),
		button:    components.Button{Label: "Submit", BusyLabel: "Submitting...", Active: true},
	}
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *QuestionnaireScreen) fetch() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{Outcome: s.loader.Fetch(context.Background())}
	}
}

func (s *QuestionnaireScreen) Title() string {
	return "Self-Diagnosis"
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	if s.state.Error != "" || s.state.Empty() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "←→/1-3", Description: "Answer"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

// Answers exposes the recorded answers.
func (s *QuestionnaireScreen) Answers() *answers.Map {
	return s.answers
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.state = qload.NewState().Apply(msg.Outcome)
		s.items = buildItems(s.state.Standards)
		s.cursor = 0
		return s, nil

	case submittedMsg:
		s.submitter.Finish(msg.Outcome)
		s.button.Busy = false
		if !msg.Outcome.OK() {
			return s, nil
		}
		next := reportscreen.New(s.reports, true, s.exportDir)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestionnaireScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.state.Loading || s.state.Error != "" || len(s.items) == 0 {
		return s, nil
	}

	switch msg.String() {
	case "up", "k", "shift+tab":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j", "tab":
		if s.cursor < len(s.items) {
			s.cursor++
		}
		return s, nil
	case "ctrl+s", "s":
		return s, s.submit()
	}

	if s.cursor == len(s.items) {
		var cmd tea.Cmd
		s.button.OnPress = s.submit
		s.button, cmd = s.button.Update(msg)
		return s, cmd
	}

	it := &s.items[s.cursor]
	var changed bool
	it.radio, changed = it.radio.Update(msg)
	if changed {
		s.answers.Record(it.question.QuestionID, answers.Options[it.radio.Chosen])
		if msg.String() != "space" && msg.String() != " " && s.cursor < len(s.items) {
			s.cursor++
		}
	}
	return s, nil
}

func (s *QuestionnaireScreen) submit() tea.Cmd {
	payload, err := s.submitter.Begin(s.answers)
	if err != nil {
		// ErrInFlight: the pending request will settle the state.
		return nil
	}
	s.button.Busy = true
	sub := s.submitter
	return func() tea.Msg {
		return submittedMsg{Outcome: sub.Send(context.Background(), payload)}
	}
}

func buildItems(standards []api.Standard) []item {
	var items []item
	for _, st := range standards {
		for i, q := range st.Questions {
			items = append(items, item{
				standard: st.StandardName,
				first:    i == 0,
				question: q,
				radio:    components.NewRadioGroup(optionLabels()),
			})
		}
	}
	return items
}

func optionLabels() []string {
	labels := make([]string, len(answers.Options))
	for i, a := range answers.Options {
		labels[i] = a.Label()
	}
	return labels
}

func (s *QuestionnaireScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.state.Loading:
		return center.Foreground(theme.TextDim).Render("\n\nLoading questions...")
	case s.state.Error != "":
		return center.Render("\n\n" + theme.ErrorText.Render(s.state.Error) +
			"\n\n" + theme.Hint.Render("Go back and open the questionnaire again to retry."))
	case s.state.Empty():
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo questions available.")
	}

	cw := min(width-4, 100)
	var header strings.Builder
	bar := components.NewProgressBar(
		fmt.Sprintf("Answered %d/%d", s.answers.Len(), len(s.items)),
		float64(s.answers.Len())/float64(len(s.items)), true, cw)
	header.WriteString(bar.View())
	if msg := s.submitter.Error(); msg != "" {
		header.WriteString("\n" + theme.ErrorText.Render(msg))
	}
	top := header.String()

	blocks := make([]string, 0, len(s.items)+1)
	for i, it := range s.items {
		blocks = append(blocks, s.renderItem(it, i == s.cursor, cw))
	}
	blocks = append(blocks, "\n"+s.renderButton())

	body := visibleBlocks(blocks, s.cursor, height-lipgloss.Height(top)-1)
	return lipgloss.NewStyle().PaddingLeft(2).Render(top + "\n" + body)
}

func (s *QuestionnaireScreen) renderButton() string {
	b := s.button
	b.Active = s.cursor == len(s.items)
	return b.View()
}

func (s *QuestionnaireScreen) renderItem(it item, focused bool, width int) string {
	var b strings.Builder
	if it.first {
		b.WriteString("\n" + theme.Title.Render(it.standard) + "\n")
	}
	card := theme.Card
	if focused {
		card = theme.ActiveCard
	}
	q := lipgloss.NewStyle().Width(width - 6).Render(
		fmt.Sprintf("%d. %s", it.question.QuestionID, it.question.Question))
	b.WriteString(card.Width(width).Render(q + "\n" + it.radio.View(focused)))
	return b.String()
}

// visibleBlocks joins the blocks that fit in height, scrolled so that the
// cursor block is shown.
func visibleBlocks(blocks []string, cursor, height int) string {
	if height <= 0 {
		return ""
	}
	start, used := 0, 0
	for i := 0; i <= cursor && i < len(blocks); i++ {
		used += lipgloss.Height(blocks[i])
	}
	for used > height && start < cursor {
		used -= lipgloss.Height(blocks[start])
		start++
	}

	var out []string
	total := 0
	for i := start; i < len(blocks); i++ {
		h := lipgloss.Height(blocks[i])
		if total+h > height && i > cursor {
			break
		}
		out = append(out, blocks[i])
		total += h
	}
	return strings.Join(out, "\n")
}
