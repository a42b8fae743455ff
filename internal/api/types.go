package api

// Question is a single self-diagnosis prompt.
type Question struct {
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
}

// Standard is a named ethical category grouping related questions.
type Standard struct {
	StandardName string     `json:"standardName"`
	Questions    []Question `json:"questions"`
}

// QuestionsResponse is the envelope returned by the questions endpoint.
type QuestionsResponse struct {
	Message string     `json:"message"`
	Data    []Standard `json:"data"`
}

// WireAnswer is the normalized answer value the server accepts.
type WireAnswer string

const (
	WireYes           WireAnswer = "YES"
	WireNo            WireAnswer = "NO"
	WireNotApplicable WireAnswer = "NOT_APPLICABLE"
)

// AnswerEntry is one element of a submission payload.
type AnswerEntry struct {
	QuestionID int        `json:"questionId"`
	Answer     WireAnswer `json:"answer"`
}

// SubmitRequest is the body of the submit endpoint.
type SubmitRequest struct {
	Answers []AnswerEntry `json:"answers"`
}

// TotalScore is the overall score block of a result.
type TotalScore struct {
	ScoreRatio       float64 `json:"scoreRatio"`
	ScoreRatioString string  `json:"scoreRatioString"`
}

// StandardScore is the score achieved within one standard.
type StandardScore struct {
	StandardName string  `json:"standardName"`
	Score        float64 `json:"score"`
	MaxScore     float64 `json:"maxScore,omitempty"`
}

// QnaPair is a question together with the answer that was given.
type QnaPair struct {
	Question string     `json:"question"`
	Answer   WireAnswer `json:"answer"`
}

// FlaggedStandard lists the questions of a standard answered NO or
// NOT_APPLICABLE.
type FlaggedStandard struct {
	StandardName string    `json:"standardName"`
	QnaPairs     []QnaPair `json:"qnaPairDtoList"`
}

// ResultData is the aggregated score report computed by the server.
type ResultData struct {
	TotalScore        TotalScore        `json:"totalScoreDto"`
	StandardScores    []StandardScore   `json:"standardScoreList"`
	NoOrNotApplicable []FlaggedStandard `json:"noOrNotApplicableList"`
}
