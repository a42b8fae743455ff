// Package submission sends the recorded answers to the diagnosis service.
//
// A Submitter moves through Idle → Submitting → {Succeeded, Failed}. Begin
// and Finish run on the caller's event loop and mutate state; Send only
// performs I/O and may run elsewhere.
package submission

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aiethics/selfcheck/internal/answers"
	"github.com/aiethics/selfcheck/internal/api"
	"github.com/aiethics/selfcheck/internal/storage"
)

// SubmitFailedMessage is shown when a submission does not go through.
const SubmitFailedMessage = "Failed to submit your answers. Please try again."

// ErrInFlight is returned by Begin while a previous submission is pending.
var ErrInFlight = errors.New("submission already in progress")

// Status is the submission workflow state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Sink accepts submissions. *api.Client implements it.
type Sink interface {
	SubmitAnswers(ctx context.Context, token string, req api.SubmitRequest) error
}

// Outcome is the result of one Send: exactly one of Succeeded or Failed is set.
type Outcome struct {
	Succeeded *Succeeded
	Failed    *Failed
}

// Succeeded marks an accepted submission.
type Succeeded struct{}

// Failed carries the user-facing message of a rejected or undelivered
// submission, and the underlying error for logs.
type Failed struct {
	Message string
	Err     error
}

// OK reports whether the write succeeded.
func (o Outcome) OK() bool { return o.Succeeded != nil }

// Submitter runs the submission workflow for one questionnaire.
type Submitter struct {
	sink   Sink
	tokens storage.Storage
	logger *zap.Logger

	status Status
	err    string
}

// New creates an idle Submitter. The bearer token is read from tokens under
// storage.KeyAccessToken on every Send.
func New(sink Sink, tokens storage.Storage, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{sink: sink, tokens: tokens, logger: logger}
}

// Status returns the current state.
func (s *Submitter) Status() Status { return s.status }

// Busy reports whether a submission is outstanding.
func (s *Submitter) Busy() bool { return s.status == StatusSubmitting }

// Error returns the user-facing error of the last failed submission, or "".
func (s *Submitter) Error() string { return s.err }

// Begin enters Submitting and snapshots the payload from m. It clears any
// earlier error. m itself is not modified.
func (s *Submitter) Begin(m *answers.Map) ([]api.AnswerEntry, error) {
	if s.status == StatusSubmitting {
		return nil, ErrInFlight
	}
	s.status = StatusSubmitting
	s.err = ""
	return m.Payload(), nil
}

// Send issues exactly one write request carrying payload. It does not touch
// the Submitter's state.
func (s *Submitter) Send(ctx context.Context, payload []api.AnswerEntry) Outcome {
	token, _, err := s.tokens.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		// An unreadable token store is treated like a missing token; the
		// server decides whether to accept the request.
		s.logger.Warn("failed to read access token", zap.Error(err))
		token = ""
	}

	if payload == nil {
		payload = []api.AnswerEntry{}
	}
	err = s.sink.SubmitAnswers(ctx, token, api.SubmitRequest{Answers: payload})
	if err != nil {
		s.logger.Error("failed to submit answers",
			zap.String("endpoint", api.SubmitPath),
			zap.Int("answers", len(payload)),
			zap.Error(err))
		return Outcome{Failed: &Failed{Message: SubmitFailedMessage, Err: err}}
	}

	s.logger.Info("answers submitted", zap.Int("answers", len(payload)))
	return Outcome{Succeeded: &Succeeded{}}
}

// Finish leaves Submitting according to o.
func (s *Submitter) Finish(o Outcome) {
	if o.OK() {
		s.status = StatusSucceeded
		s.err = ""
		return
	}
	s.status = StatusFailed
	s.err = SubmitFailedMessage
	if o.Failed != nil && o.Failed.Message != "" {
		s.err = o.Failed.Message
	}
}

// Submit runs Begin, Send and Finish in sequence.
func (s *Submitter) Submit(ctx context.Context, m *answers.Map) (Outcome, error) {
	payload, err := s.Begin(m)
	if err != nil {
		return Outcome{}, err
	}
	o := s.Send(ctx, payload)
	s.Finish(o)
	return o, nil
}
