package compare

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestReportPath(t *testing.T) {
	got := ReportPath(filepath.FromSlash("/data/p01/human.docx"), filepath.FromSlash("/elsewhere/whisper.txt"))
	assert.Equal(t, filepath.FromSlash("/data/p01/comparison_human_whisper.xlsx"), got)
}

func TestWriteVisualReport(t *testing.T) {
	r := CompareWords([]string{"the", "cat", "sat"}, []string{"the", "dog", "sat", "down"})
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteVisualReport(path, "human.txt", "whisper.txt", r))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)

	alignment := file.Sheets[0]
	assert.Equal(t, "Alignment", alignment.Name)
	require.Len(t, alignment.Rows, 5)
	assert.Equal(t, "human.txt", alignment.Rows[0].Cells[1].Value)
	assert.Equal(t, "whisper.txt", alignment.Rows[0].Cells[2].Value)

	var rows [][]string
	for _, row := range alignment.Rows[1:] {
		rows = append(rows, []string{row.Cells[0].Value, row.Cells[1].Value, row.Cells[2].Value, row.Cells[3].Value})
	}
	assert.Equal(t, [][]string{
		{"1", "the", "the", "match"},
		{"2", "cat", "dog", "substitute"},
		{"3", "sat", "sat", "match"},
		{"4", "", "down", "insert"},
	}, rows)

	summary := file.Sheets[1]
	assert.Equal(t, "Summary", summary.Name)
	assert.Equal(t, "Word error rate", summary.Rows[8].Cells[0].Value)
	assert.Equal(t, "66.67%", summary.Rows[8].Cells[1].Value)
}

func TestVisualReportColours(t *testing.T) {
	r := CompareWords([]string{"a", "b", "c", "d"}, []string{"a", "x", "c", "e", "f"})
	file, err := buildWorkbook("ref", "hyp", r)
	require.NoError(t, err)

	want := map[string]string{
		"match":      matchColor,
		"substitute": changedColor,
		"delete":     missingColor,
		"insert":     missingColor,
	}
	rows := file.Sheets[0].Rows
	assert.True(t, rows[0].Cells[1].GetStyle().Font.Bold)
	seen := map[string]bool{}
	for _, row := range rows[1:] {
		status := row.Cells[3].Value
		seen[status] = true
		assert.Equal(t, want[status], row.Cells[1].GetStyle().Fill.FgColor, status)
		assert.Equal(t, want[status], row.Cells[2].GetStyle().Fill.FgColor, status)
	}
	assert.True(t, seen["match"])
	assert.True(t, seen["substitute"])
}
