// Package questionnaire loads the diagnosis standards and their questions.
package questionnaire

import (
	"context"

	"go.uber.org/zap"

	"github.com/aiethics/selfcheck/internal/api"
)

// FetchFailedMessage is shown in place of the questionnaire when loading fails.
const FetchFailedMessage = "Failed to load the questions. Please try again."

// Source fetches the question list. *api.Client implements it.
type Source interface {
	ListQuestions(ctx context.Context) (*api.QuestionsResponse, error)
}

// Outcome is the result of one load: exactly one of Loaded or Failed is set.
type Outcome struct {
	Loaded *Loaded
	Failed *Failed
}

// Loaded carries the standards returned by a successful fetch.
type Loaded struct {
	Standards []api.Standard
	Message   string
}

// Failed carries the user-facing message of a failed fetch.
type Failed struct {
	Message string
}

// State is what the questionnaire view renders from.
type State struct {
	Loading   bool
	Standards []api.Standard
	Message   string
	// Error is the user-facing failure message; empty means no error.
	Error string
}

// NewState returns the state before the fetch settles.
func NewState() State {
	return State{Loading: true, Standards: []api.Standard{}}
}

// Apply settles s with o.
func (s State) Apply(o Outcome) State {
	s.Loading = false
	switch {
	case o.Loaded != nil:
		s.Standards = o.Loaded.Standards
		if s.Standards == nil {
			s.Standards = []api.Standard{}
		}
		s.Message = o.Loaded.Message
		s.Error = ""
	case o.Failed != nil:
		s.Standards = []api.Standard{}
		s.Error = o.Failed.Message
	}
	return s
}

// Empty reports a settled, successful load with nothing to show.
func (s State) Empty() bool {
	return !s.Loading && s.Error == "" && len(s.Standards) == 0
}

// QuestionCount returns the number of questions across all standards.
func (s State) QuestionCount() int {
	n := 0
	for _, st := range s.Standards {
		n += len(st.Questions)
	}
	return n
}

// Loader performs the one fetch a questionnaire view makes when it opens.
type Loader struct {
	source Source
	logger *zap.Logger
}

// NewLoader creates a Loader. A nil logger discards diagnostics.
func NewLoader(source Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, logger: logger}
}

// Fetch issues a single request and classifies its result. Errors are
// logged here and never returned.
func (l *Loader) Fetch(ctx context.Context) Outcome {
	resp, err := l.source.ListQuestions(ctx)
	if err != nil {
		l.logger.Error("failed to fetch questions",
			zap.String("endpoint", api.QuestionsPath),
			zap.Error(err))
		return Outcome{Failed: &Failed{Message: FetchFailedMessage}}
	}

	l.logger.Info("questions loaded",
		zap.Int("standards", len(resp.Data)),
		zap.String("message", resp.Message))
	return Outcome{Loaded: &Loaded{Standards: resp.Data, Message: resp.Message}}
}

// Load fetches and returns the settled state.
func (l *Loader) Load(ctx context.Context) State {
	return NewState().Apply(l.Fetch(ctx))
}
