package signin

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aiethics/selfcheck/internal/router"
	"github.com/aiethics/selfcheck/internal/screen"
	"github.com/aiethics/selfcheck/internal/storage"
	"github.com/aiethics/selfcheck/internal/ui/components"
	"github.com/aiethics/selfcheck/internal/ui/layout"
	"github.com/aiethics/selfcheck/internal/ui/theme"
)

type savedMsg struct {
	Cleared bool
	Err     error
}

// SignInScreen stores the bearer token used for submissions.
type SignInScreen struct {
	tokens storage.Storage
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*SignInScreen)(nil)
var _ screen.KeyHintProvider = (*SignInScreen)(nil)

// New creates a SignInScreen writing to tokens.
func New(tokens storage.Storage) *SignInScreen {
	return &SignInScreen{
		tokens: tokens,
		input:  components.NewTextInput("paste your access token", true, 4096),
	}
}

func (s *SignInScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SignInScreen) Title() string {
	return "Sign In"
}

func (s *SignInScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *SignInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not save the token: " + msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, s.save(strings.TrimSpace(s.input.Value()))
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// save stores token, or signs out when token is empty.
func (s *SignInScreen) save(token string) tea.Cmd {
	tokens := s.tokens
	return func() tea.Msg {
		ctx := context.Background()
		if token == "" {
			return savedMsg{Cleared: true, Err: tokens.Remove(ctx, storage.KeyAccessToken)}
		}
		return savedMsg{Err: tokens.Set(ctx, storage.KeyAccessToken, token)}
	}
}

func (s *SignInScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Section.Render("Access token") + "\n\n")
	b.WriteString(theme.Card.Width(min(width-4, 70)).Render(s.input.View()) + "\n\n")
	b.WriteString(theme.Hint.Render("Submit with an empty token to sign out."))
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}
	return layout.Centered(lipgloss.NewStyle().Render(b.String()), width, height)
}
