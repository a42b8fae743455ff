package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aiethics/selfcheck/internal/answers"
	"github.com/aiethics/selfcheck/internal/devserver"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type harness struct {
	baseURL string
	dbPath  string
	logPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	srv := httptest.NewServer(devserver.New(devserver.DefaultBank(), nil).Handler(""))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &harness{
		baseURL: srv.URL,
		dbPath:  filepath.Join(dir, "selfcheck.db"),
		logPath: filepath.Join(dir, "selfcheck.log"),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	full := append([]string{
		"--base-url", h.baseURL,
		"--storage", "sqlite:" + h.dbPath,
		"--log-file", h.logPath,
	}, args...)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(full)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestQuestionsCommand(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "Human rights")
	assert.Contains(t, out, "47 questions in 10 standards")
}

func TestSubmitAndReport(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "token", "set", "dev-token")
	require.NoError(t, err)

	out, err := h.run(t, "submit", "--answer", "1=yes", "--answer", "2=na", "--answer", "3=no")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted 3 answers.")

	xlsx := filepath.Join(t.TempDir(), "report.xlsx")
	out, err = h.run(t, "report", "--refresh", "--xlsx", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Overall: 1/47")
	assert.Contains(t, out, "[NOT_APPLICABLE]")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Scores", "Review"}, f.GetSheetList())

	out, err = h.run(t, "report", "--refresh=false", "--xlsx", "")
	require.NoError(t, err)
	assert.Contains(t, out, "saved report")

	_, err = h.run(t, "cache", "clear")
	require.NoError(t, err)
}

func TestSubmitDropsSavedReport(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "token", "set", "dev-token")
	require.NoError(t, err)

	_, err = h.run(t, "submit", "--answer", "1=yes")
	require.NoError(t, err)
	out, err := h.run(t, "report", "--refresh=false", "--xlsx", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall: 1/47")

	_, err = h.run(t, "submit", "--answer", "1=no")
	require.NoError(t, err)
	out, err = h.run(t, "report", "--refresh=false", "--xlsx", "")
	require.NoError(t, err)
	assert.NotContains(t, out, "saved report")
	assert.Contains(t, out, "Overall: 0/47")
}

func TestSubmitWithoutTokenFails(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "token", "clear")
	require.NoError(t, err)

	_, err = h.run(t, "submit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to submit")
}

func TestTokenShowMasks(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "token", "set", "abcdefgh")
	require.NoError(t, err)

	out, err := h.run(t, "token", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "****efgh")
	assert.NotContains(t, out, "abcd")
}

func TestInvalidBaseURL(t *testing.T) {
	h := newHarness(t)
	h.baseURL = "ftp://example.com"
	_, err := h.run(t, "questions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestParseAnswerFlags(t *testing.T) {
	m, err := parseAnswerFlags([]string{"3=yes", "7=N/A", "3=no"})
	require.NoError(t, err)
	a, ok := m.Get(3)
	require.True(t, ok)
	assert.Equal(t, answers.No, a)
	assert.Equal(t, 2, m.Len())

	for _, bad := range []string{"3", "x=yes", "3=maybe"} {
		_, err := parseAnswerFlags([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "***", maskToken("abc"))
	assert.Equal(t, "**cdef", maskToken("abcdef"))
}
