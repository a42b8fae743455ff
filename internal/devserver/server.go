// Package devserver is a local stand-in for the diagnosis service, used for
// development and integration tests.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aiethics/selfcheck/internal/api"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse represents a success response.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// FieldError describes one failed binding rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type answerBody struct {
	QuestionID int    `json:"questionId" binding:"required,gt=0"`
	Answer     string `json:"answer" binding:"required,oneof=YES NO NOT_APPLICABLE"`
}

type submitBody struct {
	Answers []answerBody `json:"answers" binding:"required,dive"`
}

// Server holds the question bank and the most recent submission.
type Server struct {
	bank     []api.Standard
	standard map[int]string
	logger   *zap.Logger

	mu   sync.RWMutex
	last map[int]api.WireAnswer
}

// New creates a Server over bank. A nil logger discards request logs.
func New(bank []api.Standard, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	standard := make(map[int]string)
	for _, s := range bank {
		for _, q := range s.Questions {
			standard[q.QuestionID] = s.StandardName
		}
	}
	return &Server{bank: bank, standard: standard, logger: logger}
}

// Handler returns the gin engine serving the three diagnosis endpoints.
// resultPath defaults to api.DefaultResultPath.
func (s *Server) Handler(resultPath string) http.Handler {
	if resultPath == "" {
		resultPath = api.DefaultResultPath
	}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET(api.QuestionsPath, s.listQuestions)
	r.POST(api.SubmitPath, s.requireBearer, s.submit)
	r.GET(resultPath, s.result)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr, resultPath string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(resultPath),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("dev server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
			zap.Duration("duration", time.Since(start)))
	}
}

func (s *Server) requireBearer(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}
	c.Next()
}

func (s *Server) listQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Questions retrieved successfully",
		Data:    s.bank,
	})
}

func (s *Server) submit(c *gin.Context) {
	var req submitBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: bindingDetails(err),
		})
		return
	}

	answers := make(map[int]api.WireAnswer, len(req.Answers))
	for _, a := range req.Answers {
		if _, ok := s.standard[a.QuestionID]; !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Unknown question",
				Details: a.QuestionID,
			})
			return
		}
		answers[a.QuestionID] = api.WireAnswer(a.Answer)
	}

	s.mu.Lock()
	s.last = answers
	s.mu.Unlock()

	c.JSON(http.StatusOK, SuccessResponse{Message: "Answers submitted successfully"})
}

func (s *Server) result(c *gin.Context) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "No submission found"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Result retrieved successfully",
		Data:    Score(s.bank, last),
	})
}

// Score grades answers against bank. Each YES is worth one point; NO and
// NOT_APPLICABLE answers are listed for review. Unanswered questions score
// nothing and are not listed.
func Score(bank []api.Standard, answers map[int]api.WireAnswer) api.ResultData {
	out := api.ResultData{
		StandardScores:    make([]api.StandardScore, 0, len(bank)),
		NoOrNotApplicable: []api.FlaggedStandard{},
	}
	var correct, total int
	for _, s := range bank {
		var points int
		var pairs []api.QnaPair
		for _, q := range s.Questions {
			switch a := answers[q.QuestionID]; a {
			case api.WireYes:
				points++
			case api.WireNo, api.WireNotApplicable:
				pairs = append(pairs, api.QnaPair{Question: q.Question, Answer: a})
			}
		}
		correct += points
		total += len(s.Questions)
		out.StandardScores = append(out.StandardScores, api.StandardScore{
			StandardName: s.StandardName,
			Score:        float64(points),
			MaxScore:     float64(len(s.Questions)),
		})
		if len(pairs) > 0 {
			out.NoOrNotApplicable = append(out.NoOrNotApplicable, api.FlaggedStandard{
				StandardName: s.StandardName,
				QnaPairs:     pairs,
			})
		}
	}
	out.TotalScore.ScoreRatioString = fmt.Sprintf("%d/%d", correct, total)
	if total > 0 {
		out.TotalScore.ScoreRatio = float64(correct) / float64(total)
	}
	return out
}

func bindingDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fe.Namespace(), Rule: fe.Tag()})
	}
	return details
}
