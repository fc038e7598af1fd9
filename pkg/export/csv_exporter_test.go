package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderKeepsHeaderOrder(t *testing.T) {
	exporter := NewCSVExporter()
	out, err := exporter.Render(Dataset{
		Headers: []string{"Date", "Guard", "Status"},
		Rows: []map[string]string{
			{"Date": "2026-02-06", "Guard": "Rahim", "Status": "completed"},
			{"Date": "2026-02-07", "Guard": "করিম", "Status": "late"},
		},
	})
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "\uFEFF"), "output should start with a UTF-8 BOM")
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(text, "\uFEFF")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Guard,Status", lines[0])
	assert.Contains(t, lines[2], "করিম")
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRenderEmptyDataset(t *testing.T) {
	out, err := NewPDFExporter().Render(Dataset{Headers: []string{"Date", "Guard"}}, "Patrol Report")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
