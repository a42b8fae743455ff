package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "selfcheck.log")

	logger, err := New(path, false)
	require.NoError(t, err)
	logger.Info("questions loaded", zap.Int("standards", 3))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"questions loaded"`)
	assert.Contains(t, string(data), `"standards":3`)
	assert.False(t, strings.Contains(string(data), "hidden at info level"))
}

func TestNewVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.log")

	logger, err := New(path, true)
	require.NoError(t, err)
	logger.Debug("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/state", "selfcheck", "selfcheck.log"), p)
}
