package questionnaire

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/aiethics/selfcheck/internal/answers"
	"github.com/aiethics/selfcheck/internal/api"
	qload "github.com/aiethics/selfcheck/internal/questionnaire"
	"github.com/aiethics/selfcheck/internal/report"
	"github.com/aiethics/selfcheck/internal/router"
	reportscreen "github.com/aiethics/selfcheck/internal/screens/report"
	"github.com/aiethics/selfcheck/internal/storage"
	"github.com/aiethics/selfcheck/internal/submission"
)

type stubSource struct {
	resp *api.QuestionsResponse
	err  error
}

func (s *stubSource) ListQuestions(context.Context) (*api.QuestionsResponse, error) {
	return s.resp, s.err
}

type stubSink struct {
	err  error
	reqs []api.SubmitRequest
}

func (s *stubSink) SubmitAnswers(_ context.Context, _ string, req api.SubmitRequest) error {
	s.reqs = append(s.reqs, req)
	return s.err
}

type stubResults struct{}

func (stubResults) NonmemberResult(context.Context) (*api.ResultData, json.RawMessage, error) {
	return &api.ResultData{}, json.RawMessage(`{}`), nil
}

func twoStandards() *api.QuestionsResponse {
	return &api.QuestionsResponse{Data: []api.Standard{
		{StandardName: "Privacy", Questions: []api.Question{
			{QuestionID: 3, Question: "Is personal data minimized?"},
			{QuestionID: 7, Question: "Can users delete their data?"},
		}},
		{StandardName: "Safety", Questions: []api.Question{
			{QuestionID: 9, Question: "Is there a fallback?"},
		}},
	}}
}

func newTestScreen(t *testing.T, src *stubSource, sink *stubSink) *QuestionnaireScreen {
	t.Helper()
	store := storage.NewMemory()
	s := New(
		qload.NewLoader(src, nil),
		submission.New(sink, store, nil),
		report.NewLoader(stubResults{}, store, nil),
		t.TempDir(),
	)
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected Init to return a fetch command")
	}
	s.Update(cmd())
	return s
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrlS() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
}

func TestLoadBuildsItemsInOrder(t *testing.T) {
	s := newTestScreen(t, &stubSource{resp: twoStandards()}, &stubSink{})

	if len(s.items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(s.items))
	}
	if !s.items[0].first || s.items[1].first || !s.items[2].first {
		t.Error("expected standard headers on the first question of each standard")
	}

	view := s.View(120, 40)
	for _, want := range []string{"Privacy", "Safety", "Is personal data minimized?", "Answered 0/3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAnswerRecordsAndAdvances(t *testing.T) {
	s := newTestScreen(t, &stubSource{resp: twoStandards()}, &stubSink{})

	s.Update(keyPress('1'))
	if a, ok := s.Answers().Get(3); !ok || a != answers.Yes {
		t.Errorf("expected question 3 answered yes, got %q (%v)", a, ok)
	}
	if s.cursor != 1 {
		t.Errorf("expected cursor to advance to 1, got %d", s.cursor)
	}

	s.Update(keyPress('3'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(keyPress('2'))
	if a, _ := s.Answers().Get(7); a != answers.No {
		t.Errorf("expected question 7 overwritten with no, got %q", a)
	}
	if s.Answers().Len() != 2 {
		t.Errorf("expected 2 answers, got %d", s.Answers().Len())
	}
}

func TestSubmitSuccessReplacesWithReport(t *testing.T) {
	sink := &stubSink{}
	s := newTestScreen(t, &stubSource{resp: twoStandards()}, sink)
	s.Update(keyPress('1'))
	s.Update(keyPress('3'))

	_, cmd := s.Update(ctrlS())
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if !s.submitter.Busy() {
		t.Error("expected submitter to be busy before the request settles")
	}

	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected navigation command after success")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*reportscreen.ReportScreen); !ok {
		t.Errorf("expected report screen, got %T", msg.Screen)
	}

	if len(sink.reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(sink.reqs))
	}
	want := []api.AnswerEntry{
		{QuestionID: 3, Answer: api.WireYes},
		{QuestionID: 7, Answer: api.WireNotApplicable},
	}
	got := sink.reqs[0].Answers
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("payload = %v, want %v", got, want)
	}
}

func TestSubmitFailureStaysWithAnswers(t *testing.T) {
	sink := &stubSink{err: errors.New("503")}
	s := newTestScreen(t, &stubSource{resp: twoStandards()}, sink)
	s.Update(keyPress('2'))

	_, cmd := s.Update(ctrlS())
	_, next := s.Update(cmd())
	if next != nil {
		t.Error("failure must not navigate away")
	}
	if s.Answers().Len() != 1 {
		t.Errorf("answers should be kept, got %d", s.Answers().Len())
	}
	if !strings.Contains(s.View(120, 40), submission.SubmitFailedMessage) {
		t.Error("expected the failure message in the view")
	}

	sink.err = nil
	_, cmd = s.Update(ctrlS())
	if cmd == nil {
		t.Fatal("expected retry to issue a new submission")
	}
	s.Update(cmd())
	if len(sink.reqs) != 2 {
		t.Errorf("expected 2 requests after retry, got %d", len(sink.reqs))
	}
}

func TestSubmitIgnoredWhileInFlight(t *testing.T) {
	sink := &stubSink{}
	s := newTestScreen(t, &stubSource{resp: twoStandards()}, sink)

	_, first := s.Update(ctrlS())
	_, second := s.Update(ctrlS())
	if first == nil {
		t.Fatal("expected first submit command")
	}
	if second != nil {
		t.Error("second submit while in flight should be ignored")
	}
}

func TestSubmitButton(t *testing.T) {
	sink := &stubSink{}
	s := newTestScreen(t, &stubSource{resp: twoStandards()}, sink)
	for range 3 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.cursor != 3 {
		t.Fatalf("expected cursor on submit button, got %d", s.cursor)
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on the button should submit")
	}
	cmd()
	if len(sink.reqs) != 1 || len(sink.reqs[0].Answers) != 0 {
		t.Errorf("expected one empty submission, got %v", sink.reqs)
	}
}

func TestLoadFailureMakesNoFurtherRequests(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	s := newTestScreen(t, src, &stubSink{})

	if !strings.Contains(s.View(120, 40), qload.FetchFailedMessage) {
		t.Error("expected fetch failure message")
	}
	if len(s.items) != 0 {
		t.Error("failed load should have no questions")
	}
	for _, k := range []tea.KeyPressMsg{keyPress('r'), keyPress('1'), ctrlS()} {
		if _, cmd := s.Update(k); cmd != nil {
			t.Errorf("key %q should do nothing after a failed load", k.String())
		}
	}
}

func TestEmptyQuestionnaire(t *testing.T) {
	s := newTestScreen(t, &stubSource{resp: &api.QuestionsResponse{Data: []api.Standard{}}}, &stubSink{})
	if !strings.Contains(s.View(120, 40), "No questions available.") {
		t.Error("expected empty state")
	}
	if _, cmd := s.Update(ctrlS()); cmd != nil {
		t.Error("submit should be unavailable without questions")
	}
}

func TestVisibleBlocksKeepsCursorInView(t *testing.T) {
	blocks := []string{"a\na", "b\nb", "c\nc", "d\nd"}
	got := visibleBlocks(blocks, 3, 4)
	if !strings.Contains(got, "d") || strings.Contains(got, "a") {
		t.Errorf("unexpected window %q", got)
	}
	if got := visibleBlocks(blocks, 0, 4); !strings.HasPrefix(got, "a") {
		t.Errorf("expected window from top, got %q", got)
	}
}
