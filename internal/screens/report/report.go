package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aiethics/selfcheck/internal/api"
	"github.com/aiethics/selfcheck/internal/report"
	"github.com/aiethics/selfcheck/internal/screen"
	"github.com/aiethics/selfcheck/internal/ui/components"
	"github.com/aiethics/selfcheck/internal/ui/layout"
	"github.com/aiethics/selfcheck/internal/ui/theme"
)

type loadedMsg struct {
	State report.State
}

type exportedMsg struct {
	Path string
	Err  error
}

// ReportScreen shows the score report of the last submission.
type ReportScreen struct {
	loader    *report.Loader
	refresh   bool
	exportDir string

	state     report.State
	loaded    bool
	scroll    int
	notice    string
	noticeErr bool
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen. With refresh set the cached report is
// bypassed on open. Exports are written to exportDir, or the working
// directory when empty.
func New(loader *report.Loader, refresh bool, exportDir string) *ReportScreen {
	return &ReportScreen{loader: loader, refresh: refresh, exportDir: exportDir}
}

func (s *ReportScreen) Init() tea.Cmd {
	return s.load(s.refresh)
}

func (s *ReportScreen) load(refresh bool) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{State: s.loader.Load(context.Background(), refresh)}
	}
}

func (s *ReportScreen) Title() string {
	return "Result Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Refresh"},
		{Key: "x", Description: "Export xlsx"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.state = msg.State
		s.loaded = true
		s.scroll = 0
		return s, nil

	case exportedMsg:
		if msg.Err != nil {
			s.notice = "Export failed: " + msg.Err.Error()
			s.noticeErr = true
		} else {
			s.notice = "Saved " + msg.Path
			s.noticeErr = false
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "r":
			s.loaded = false
			s.notice = ""
			return s, s.load(true)
		case "x":
			if s.state.Result == nil {
				return s, nil
			}
			return s, s.export(s.state.Result)
		}
	}
	return s, nil
}

func (s *ReportScreen) export(r *report.Result) tea.Cmd {
	dir := s.exportDir
	return func() tea.Msg {
		path := filepath.Join(dir, "selfcheck-report-"+time.Now().Format("20060102-150405")+".xlsx")
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{Err: err}
		}
		if err := report.ExportXLSX(f, r); err != nil {
			f.Close()
			return exportedMsg{Err: err}
		}
		if err := f.Close(); err != nil {
			return exportedMsg{Err: err}
		}
		return exportedMsg{Path: path}
	}
}

func (s *ReportScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\nLoading report...")
	}
	if s.state.Error != "" {
		return center.Render("\n\n" + theme.ErrorText.Render(s.state.Error) +
			"\n\n" + theme.Hint.Render("Press r to try again."))
	}

	lines := strings.Split(s.render(min(width-4, 90)), "\n")
	if s.notice != "" {
		style := theme.Checked
		if s.noticeErr {
			style = theme.ErrorText
		}
		lines = append([]string{style.Render(s.notice), ""}, lines...)
	}

	maxScroll := max(len(lines)-height, 0)
	s.scroll = min(s.scroll, maxScroll)
	end := min(s.scroll+height, len(lines))
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines[s.scroll:end], "\n"))
}

func (s *ReportScreen) render(width int) string {
	r := s.state.Result
	var b strings.Builder

	if s.state.FromCache {
		b.WriteString(theme.Hint.Render("Showing saved report. Press r to refresh.") + "\n\n")
	}

	b.WriteString(theme.Section.Render("Overall") + "\n")
	if split, err := r.Split(); err == nil {
		bar := components.NewProgressBar("Passed", split.Fraction(), true, width)
		bar.LabelWidth = 18
		b.WriteString(bar.View() + "\n")
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
			"%d passed, %d to review (%s)", split.Correct, split.NeedsReview, r.TotalScore.ScoreRatioString)) + "\n")
	} else {
		b.WriteString(theme.Subtitle.Render("Score: "+r.TotalScore.ScoreRatioString) + "\n")
	}

	b.WriteString("\n" + theme.Section.Render("By standard") + "\n")
	for _, n := range r.NormalizedScores() {
		bar := components.NewProgressBar(n.StandardName, n.Percent/100, true, width)
		bar.LabelWidth = 18
		b.WriteString(bar.View() + "\n")
	}
	if sum, err := r.Summary(); err == nil && len(r.StandardScores) > 0 {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
			"mean %.0f%%  median %.0f%%  lowest %.0f%%  highest %.0f%%",
			sum.Mean, sum.Median, sum.Min, sum.Max)) + "\n")
	}

	b.WriteString("\n" + theme.Section.Render("Needs review") + "\n")
	if len(r.NoOrNotApplicable) == 0 {
		b.WriteString(theme.Hint.Render("Nothing to review.") + "\n")
	}
	counts := r.AnswerCounts()
	for i, f := range r.NoOrNotApplicable {
		b.WriteString(theme.Body.Bold(true).Render(f.StandardName) + " " +
			theme.Subtitle.Render(fmt.Sprintf("(NO %d, N/A %d)", counts[i].No, counts[i].NotApplicable)) + "\n")
		for _, p := range f.QnaPairs {
			b.WriteString("  " + answerBadge(p.Answer) + " " +
				lipgloss.NewStyle().Width(max(width-12, 20)).Render(p.Question) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func answerBadge(a api.WireAnswer) string {
	if a == api.WireNo {
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Width(5).Render("NO")
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(5).Render("N/A")
}
