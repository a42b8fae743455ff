package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{scoresSheet, reviewSheet}, f.GetSheetList())

	rows, err := f.GetRows(scoresSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Standard", "Score", "Max Score", "Percent"}, rows[0])
	assert.Equal(t, "Privacy", rows[1][0])
	assert.Equal(t, "Safety", rows[2][0])
	assert.Equal(t, "5", rows[2][2], "missing maxScore defaults")
	assert.Equal(t, "Total", rows[5][0])
	assert.Equal(t, "3/5", rows[5][1])

	review, err := f.GetRows(reviewSheet)
	require.NoError(t, err)
	require.Len(t, review, 4)
	assert.Equal(t, []string{"Safety", "Is misuse monitored?", "NOT_APPLICABLE"}, review[2])
}

func TestExportXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, &Result{}))
	assert.NotZero(t, buf.Len())
}
