package report

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/aiethics/selfcheck/internal/api"
	"github.com/aiethics/selfcheck/internal/storage"
)

// ReportFailedMessage is shown when no report can be produced.
const ReportFailedMessage = "Failed to load the result report. Please try again."

// Source fetches the report. *api.Client implements it.
type Source interface {
	NonmemberResult(ctx context.Context) (*api.ResultData, json.RawMessage, error)
}

// State is what the report view renders from.
type State struct {
	Result    *Result
	FromCache bool
	// Error is the user-facing failure message; empty means no error.
	Error string
}

// Loader reads the report from the persisted cache or, on a miss, from the
// service, writing what it fetched back to the cache verbatim.
type Loader struct {
	source Source
	cache  storage.Storage
	logger *zap.Logger
}

// NewLoader creates a Loader. A nil logger discards diagnostics.
func NewLoader(source Source, cache storage.Storage, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, cache: cache, logger: logger}
}

// Load returns the cached report unless refresh is set or the cache has
// nothing usable. Failures are logged and reported through State.Error.
func (l *Loader) Load(ctx context.Context, refresh bool) State {
	if !refresh {
		if r, ok := l.cached(ctx); ok {
			return State{Result: r, FromCache: true}
		}
	}

	data, raw, err := l.source.NonmemberResult(ctx)
	if err != nil {
		l.logger.Error("failed to fetch result report", zap.Error(err))
		return State{Error: ReportFailedMessage}
	}

	if err := l.cache.Set(ctx, storage.KeyResultData, string(raw)); err != nil {
		l.logger.Warn("failed to cache result report", zap.Error(err))
	}
	return State{Result: &Result{ResultData: *data}}
}

// Invalidate drops the cached report.
func (l *Loader) Invalidate(ctx context.Context) error {
	return l.cache.Remove(ctx, storage.KeyResultData)
}

func (l *Loader) cached(ctx context.Context) (*Result, bool) {
	raw, ok, err := l.cache.Get(ctx, storage.KeyResultData)
	if err != nil {
		l.logger.Warn("failed to read cached result report", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var data api.ResultData
	if err := api.Validate(api.ResultDataSchema, []byte(raw)); err != nil {
		l.logger.Warn("ignoring corrupt cached result report", zap.Error(err))
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		l.logger.Warn("ignoring corrupt cached result report", zap.Error(err))
		return nil, false
	}
	l.logger.Debug("result report served from cache")
	return &Result{ResultData: data}, true
}
