// Package report derives the figures shown on the result view from the
// server-computed score report.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/aiethics/selfcheck/internal/api"
)

// DefaultMaxScore is assumed for standards whose maxScore is absent.
const DefaultMaxScore = 5

// Result wraps the report returned by the server.
type Result struct {
	api.ResultData
}

// ParseRatio splits a "correct/total" string such as "3/5".
func ParseRatio(s string) (correct, total int, err error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0, fmt.Errorf("ratio %q: missing '/'", s)
	}
	correct, err = strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, fmt.Errorf("ratio %q: %w", s, err)
	}
	total, err = strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, fmt.Errorf("ratio %q: %w", s, err)
	}
	if correct < 0 || total < 0 || correct > total {
		return 0, 0, fmt.Errorf("ratio %q: out of range", s)
	}
	return correct, total, nil
}

// Split is the overall doughnut: questions passed and questions to review.
type Split struct {
	Correct     int
	NeedsReview int
}

// Fraction returns the passed share in [0,1].
func (s Split) Fraction() float64 {
	total := s.Correct + s.NeedsReview
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total)
}

// Split parses the overall score string.
func (r *Result) Split() (Split, error) {
	c, t, err := ParseRatio(r.TotalScore.ScoreRatioString)
	if err != nil {
		return Split{}, err
	}
	return Split{Correct: c, NeedsReview: t - c}, nil
}

// Normalized is one standard's score as a percentage of its maximum.
type Normalized struct {
	StandardName string
	Percent      float64
}

// NormalizedScores converts each standard score to score/max×100.
func (r *Result) NormalizedScores() []Normalized {
	out := make([]Normalized, 0, len(r.StandardScores))
	for _, s := range r.StandardScores {
		maxScore := s.MaxScore
		if maxScore <= 0 {
			maxScore = DefaultMaxScore
		}
		out = append(out, Normalized{
			StandardName: s.StandardName,
			Percent:      s.Score / maxScore * 100,
		})
	}
	return out
}

// AnswerCount tallies the flagged answers of one standard.
type AnswerCount struct {
	StandardName  string
	No            int
	NotApplicable int
}

// AnswerCounts counts NO and NOT_APPLICABLE answers per flagged standard.
func (r *Result) AnswerCounts() []AnswerCount {
	out := make([]AnswerCount, 0, len(r.NoOrNotApplicable))
	for _, f := range r.NoOrNotApplicable {
		c := AnswerCount{StandardName: f.StandardName}
		for _, p := range f.QnaPairs {
			switch p.Answer {
			case api.WireNo:
				c.No++
			case api.WireNotApplicable:
				c.NotApplicable++
			}
		}
		out = append(out, c)
	}
	return out
}

// Summary describes the spread of the normalized standard scores.
type Summary struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Summary computes descriptive statistics over NormalizedScores. A report
// without standards yields the zero Summary.
func (r *Result) Summary() (Summary, error) {
	norm := r.NormalizedScores()
	if len(norm) == 0 {
		return Summary{}, nil
	}
	data := make(stats.Float64Data, 0, len(norm))
	for _, n := range norm {
		data = append(data, n.Percent)
	}

	var sum Summary
	var err error
	if sum.Mean, err = data.Mean(); err != nil {
		return Summary{}, err
	}
	if sum.Median, err = data.Median(); err != nil {
		return Summary{}, err
	}
	if sum.Min, err = data.Min(); err != nil {
		return Summary{}, err
	}
	if sum.Max, err = data.Max(); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
