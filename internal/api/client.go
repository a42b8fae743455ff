package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Endpoint paths of the diagnosis service.
const (
	QuestionsPath       = "/api/diagnosis/list/questions"
	SubmitPath          = "/api/diagnosis/developer/submit"
	DefaultResultPath   = "/api/diagnosis/nonmember/result"
	maxErrorBodySnippet = 512
)

// Client talks to the diagnosis service over HTTP.
type Client struct {
	baseURL    string
	resultPath string
	client     *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// DefaultTimeout bounds each request made by the client New builds.
const DefaultTimeout = 15 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is used
// as given; WithTimeout does not modify it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout of the HTTP client New builds
// when no client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithResultPath overrides the path of the result endpoint.
func WithResultPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.resultPath = p
		}
	}
}

// New creates a Client rooted at baseURL (scheme and host, no trailing path).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		resultPath: DefaultResultPath,
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// ListQuestions fetches every standard with its questions.
func (c *Client) ListQuestions(ctx context.Context) (*QuestionsResponse, error) {
	raw, err := c.do(ctx, http.MethodGet, QuestionsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(QuestionsSchema, raw); err != nil {
		return nil, err
	}

	var resp QuestionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &DecodeError{Content: raw, Err: err}
	}
	return &resp, nil
}

// SubmitAnswers posts a submission authorized with the given bearer token.
// Only success or failure is reported; the response body is not consumed.
func (c *Client) SubmitAnswers(ctx context.Context, token string, req SubmitRequest) error {
	if req.Answers == nil {
		req.Answers = []AnswerEntry{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("X-Request-ID", uuid.NewString())
	_, err = c.do(ctx, http.MethodPost, SubmitPath, body, header)
	return err
}

// NonmemberResult fetches the aggregated result report.
func (c *Client) NonmemberResult(ctx context.Context) (*ResultData, json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, c.resultPath, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	if err := Validate(ResultSchema, raw); err != nil {
		return nil, nil, err
	}

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, &DecodeError{Content: raw, Err: err}
	}
	var data ResultData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, nil, &DecodeError{Content: raw, Err: err}
	}
	return &data, resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, header http.Header) (json.RawMessage, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(data)
		if len(snippet) > maxErrorBodySnippet {
			snippet = snippet[:maxErrorBodySnippet]
		}
		return nil, &StatusError{Method: method, URL: url, Code: resp.StatusCode, Body: snippet}
	}
	return data, nil
}
