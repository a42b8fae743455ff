package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiethics/selfcheck/internal/api"
)

func sampleResult() *Result {
	return &Result{ResultData: api.ResultData{
		TotalScore: api.TotalScore{ScoreRatio: 0.6, ScoreRatioString: "3/5"},
		StandardScores: []api.StandardScore{
			{StandardName: "Privacy", Score: 4, MaxScore: 5},
			{StandardName: "Safety", Score: 1},
			{StandardName: "Transparency", Score: 5, MaxScore: 10},
		},
		NoOrNotApplicable: []api.FlaggedStandard{
			{StandardName: "Safety", QnaPairs: []api.QnaPair{
				{Question: "Is there a fallback?", Answer: api.WireNo},
				{Question: "Is misuse monitored?", Answer: api.WireNotApplicable},
				{Question: "Are failures logged?", Answer: api.WireNo},
			}},
		},
	}}
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in      string
		correct int
		total   int
		wantErr bool
	}{
		{in: "3/5", correct: 3, total: 5},
		{in: " 0 / 0 ", correct: 0, total: 0},
		{in: "10/10", correct: 10, total: 10},
		{in: "35", wantErr: true},
		{in: "a/5", wantErr: true},
		{in: "3/b", wantErr: true},
		{in: "6/5", wantErr: true},
		{in: "-1/5", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, total, err := ParseRatio(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.correct, c)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestSplit(t *testing.T) {
	s, err := sampleResult().Split()
	require.NoError(t, err)
	assert.Equal(t, Split{Correct: 3, NeedsReview: 2}, s)
	assert.InDelta(t, 0.6, s.Fraction(), 1e-9)

	assert.Zero(t, Split{}.Fraction())
}

func TestNormalizedScoresDefaultMax(t *testing.T) {
	want := []Normalized{
		{StandardName: "Privacy", Percent: 80},
		{StandardName: "Safety", Percent: 20},
		{StandardName: "Transparency", Percent: 50},
	}
	got := sampleResult().NormalizedScores()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("NormalizedScores mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswerCounts(t *testing.T) {
	got := sampleResult().AnswerCounts()
	assert.Equal(t, []AnswerCount{{StandardName: "Safety", No: 2, NotApplicable: 1}}, got)
}

func TestSummary(t *testing.T) {
	sum, err := sampleResult().Summary()
	require.NoError(t, err)
	assert.InDelta(t, 50, sum.Mean, 1e-9)
	assert.InDelta(t, 50, sum.Median, 1e-9)
	assert.InDelta(t, 20, sum.Min, 1e-9)
	assert.InDelta(t, 80, sum.Max, 1e-9)
}

func TestSummaryEmpty(t *testing.T) {
	sum, err := (&Result{}).Summary()
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}
