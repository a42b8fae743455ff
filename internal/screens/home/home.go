package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	qload "github.com/aiethics/selfcheck/internal/questionnaire"
	"github.com/aiethics/selfcheck/internal/report"
	"github.com/aiethics/selfcheck/internal/router"
	"github.com/aiethics/selfcheck/internal/screen"
	"github.com/aiethics/selfcheck/internal/screens/questionnaire"
	reportscreen "github.com/aiethics/selfcheck/internal/screens/report"
	"github.com/aiethics/selfcheck/internal/screens/signin"
	"github.com/aiethics/selfcheck/internal/storage"
	"github.com/aiethics/selfcheck/internal/submission"
	"github.com/aiethics/selfcheck/internal/ui/components"
	"github.com/aiethics/selfcheck/internal/ui/layout"
	"github.com/aiethics/selfcheck/internal/ui/theme"
)

// Deps are the services the screens reachable from home need.
type Deps struct {
	Questions *qload.Loader
	Sink      submission.Sink
	Reports   *report.Loader
	Tokens    storage.Storage
	ExportDir string
	Logger    *zap.Logger
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{
			Label:       "Self-diagnosis",
			Description: "Answer the ethics checklist and submit it",
			Action: push(func() screen.Screen {
				sub := submission.New(deps.Sink, deps.Tokens, deps.Logger)
				return questionnaire.New(deps.Questions, sub, deps.Reports, deps.ExportDir)
			}),
		},
		{
			Label:       "View report",
			Description: "Show the result of your last submission",
			Action: push(func() screen.Screen {
				return reportscreen.New(deps.Reports, false, deps.ExportDir)
			}),
		},
		{
			Label:       "Sign in",
			Description: "Set the access token sent with submissions",
			Action: push(func() screen.Screen {
				return signin.New(deps.Tokens)
			}),
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("AI Ethics Self-Diagnosis") + "\n\n")
	b.WriteString(theme.Subtitle.Render("Check an AI system against ten ethical standards.") + "\n\n")
	b.WriteString(h.menu.View())

	box := theme.Card.Padding(1, 3).Render(lipgloss.NewStyle().Width(50).Render(b.String()))
	return layout.Centered(box, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
