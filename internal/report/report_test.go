package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ripred/github-traffic/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func displayRows() []domain.RepoTraffic {
	return []domain.RepoTraffic{
		{Name: "top-repo", ViewsTotal: 42, ViewsUnique: 17, ClonesTotal: 6, ClonesUnique: 4, Stars: 9, Forks: 3, DateRange: "2026-08-17 to 2026-08-30"},
		{Name: "quiet-repo", Stars: 1, ViewsFailed: true, ClonesFailed: true},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, displayRows(), domain.SortCombined, domain.TrafficWindowDays)
	out := buf.String()

	assert.Contains(t, out, "REPOSITORY TRAFFIC SUMMARY")
	assert.Contains(t, out, "combined_metrics")
	// Date range surfaces once in the header line, not in the row body.
	assert.Contains(t, out, "Data period: ")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("2026-08-17 to 2026-08-30")))

	// Rows carry a 1-based position in final sort order.
	assert.Contains(t, out, "1  top-repo")
	assert.Contains(t, out, "2  quiet-repo")

	// Traffic data exists, so no degraded-ranking note.
	assert.NotContains(t, out, "No view or clone data available")
	// Timeframe was not clamped, so no request note either.
	assert.NotContains(t, out, "Requested:")

	// Statistics footer.
	assert.Contains(t, out, "2 repositories")
	assert.Contains(t, out, "views: 42 total")
}

func TestRenderTable_DegradedRankingNote(t *testing.T) {
	rows := []domain.RepoTraffic{
		{Name: "starred-only", Stars: 7, Forks: 2, ViewsFailed: true, ClonesFailed: true},
	}

	var buf bytes.Buffer
	RenderTable(&buf, rows, domain.SortStars, domain.TrafficWindowDays)

	assert.Contains(t, buf.String(), "No view or clone data available. Sorting may be based on stars and forks only.")
	assert.Contains(t, buf.String(), "'repo' scope")
}

func TestRenderTable_ClampedTimeframeNote(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, displayRows(), domain.SortCombined, 30)

	assert.Contains(t, buf.String(), "Requested: 30 days (limited to 14 days by GitHub API)")
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, nil, domain.SortCombined, domain.TrafficWindowDays)

	out := buf.String()
	assert.Contains(t, out, "REPOSITORY TRAFFIC SUMMARY")
	assert.Contains(t, out, "0 repositories")
}

func TestWriteCSV(t *testing.T) {
	rows := displayRows()
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(rows)+1)

	// Header: every field except the derived metric, date_range included.
	assert.Equal(t, []string{
		"repository", "views_total", "views_unique",
		"clones_total", "clones_unique", "stars", "forks", "date_range",
	}, records[0])
	assert.NotContains(t, records[0], "combined_metrics")

	// Same row set and order as displayed.
	assert.Equal(t, []string{"top-repo", "42", "17", "6", "4", "9", "3", "2026-08-17 to 2026-08-30"}, records[1])
	assert.Equal(t, []string{"quiet-repo", "0", "0", "0", "0", "1", "0", ""}, records[2])
}

func TestCSVFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "github_traffic_20260831.csv", CSVFilename(now))
}
