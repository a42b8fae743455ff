package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiethics/selfcheck/internal/api"
)

func TestDefaultBank(t *testing.T) {
	bank := DefaultBank()
	require.Len(t, bank, 10)
	assert.Equal(t, "Human rights", bank[0].StandardName)
	assert.Len(t, bank[0].Questions, 2)

	seen := make(map[int]bool)
	next := 1
	for _, s := range bank {
		for _, q := range s.Questions {
			assert.Equal(t, next, q.QuestionID)
			assert.False(t, seen[q.QuestionID])
			seen[q.QuestionID] = true
			next++
		}
	}
	assert.Len(t, seen, 47)
}

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(New(DefaultBank(), nil).Handler(""))
	t.Cleanup(srv.Close)
	return srv, api.New(srv.URL)
}

func TestRoundTripThroughClient(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t)

	qs, err := client.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, qs.Data, 10)

	err = client.SubmitAnswers(ctx, "tok", api.SubmitRequest{Answers: []api.AnswerEntry{
		{QuestionID: 1, Answer: api.WireYes},
		{QuestionID: 2, Answer: api.WireNo},
		{QuestionID: 3, Answer: api.WireNotApplicable},
		{QuestionID: 4, Answer: api.WireYes},
	}})
	require.NoError(t, err)

	data, raw, err := client.NonmemberResult(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, "2/47", data.TotalScore.ScoreRatioString)
	assert.InDelta(t, 2.0/47.0, data.TotalScore.ScoreRatio, 1e-9)

	require.Len(t, data.StandardScores, 10)
	assert.Equal(t, api.StandardScore{StandardName: "Human rights", Score: 1, MaxScore: 2}, data.StandardScores[0])
	assert.Equal(t, api.StandardScore{StandardName: "Privacy", Score: 1, MaxScore: 5}, data.StandardScores[1])

	require.Len(t, data.NoOrNotApplicable, 2)
	assert.Equal(t, "Human rights", data.NoOrNotApplicable[0].StandardName)
	assert.Equal(t, api.WireNo, data.NoOrNotApplicable[0].QnaPairs[0].Answer)
	assert.Equal(t, api.WireNotApplicable, data.NoOrNotApplicable[1].QnaPairs[0].Answer)
}

func TestSubmitRequiresBearer(t *testing.T) {
	_, client := newTestServer(t)
	err := client.SubmitAnswers(context.Background(), "", api.SubmitRequest{})

	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
}

func TestSubmitValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "empty answers", body: `{"answers":[]}`, code: http.StatusOK},
		{name: "missing answers", body: `{}`, code: http.StatusBadRequest},
		{name: "bad enum", body: `{"answers":[{"questionId":1,"answer":"MAYBE"}]}`, code: http.StatusBadRequest},
		{name: "zero id", body: `{"answers":[{"questionId":0,"answer":"YES"}]}`, code: http.StatusBadRequest},
		{name: "unknown id", body: `{"answers":[{"questionId":999,"answer":"YES"}]}`, code: http.StatusBadRequest},
		{name: "not json", body: `answers`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, srv.URL+api.SubmitPath, strings.NewReader(tt.body))
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer tok")
			req.Header.Set("Content-Type", "application/json")

			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestSubmitValidationDetails(t *testing.T) {
	srv, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodPost, srv.URL+api.SubmitPath,
		strings.NewReader(`{"answers":[{"questionId":1,"answer":"MAYBE"}]}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer tok")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Message string       `json:"message"`
		Details []FieldError `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "oneof", body.Details[0].Rule)
	assert.Contains(t, body.Details[0].Field, "Answer")
}

func TestResultBeforeSubmit(t *testing.T) {
	_, client := newTestServer(t)
	_, _, err := client.NonmemberResult(context.Background())

	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestCustomResultPath(t *testing.T) {
	srv := httptest.NewServer(New(DefaultBank(), nil).Handler("/custom/result"))
	defer srv.Close()
	client := api.New(srv.URL, api.WithResultPath("/custom/result"))

	require.NoError(t, client.SubmitAnswers(context.Background(), "tok", api.SubmitRequest{}))
	data, _, err := client.NonmemberResult(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0/47", data.TotalScore.ScoreRatioString)
	assert.Empty(t, data.NoOrNotApplicable)
}

func TestScoreIgnoresUnanswered(t *testing.T) {
	bank := []api.Standard{{StandardName: "S", Questions: []api.Question{
		{QuestionID: 1, Question: "a"}, {QuestionID: 2, Question: "b"},
	}}}
	got := Score(bank, map[int]api.WireAnswer{1: api.WireYes})
	assert.Equal(t, "1/2", got.TotalScore.ScoreRatioString)
	assert.Empty(t, got.NoOrNotApplicable)
}

func TestScoreEmptyBank(t *testing.T) {
	got := Score(nil, nil)
	assert.Equal(t, "0/0", got.TotalScore.ScoreRatioString)
	assert.Zero(t, got.TotalScore.ScoreRatio)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(DefaultBank(), nil).ListenAndServe(ctx, "127.0.0.1:0", "")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
