package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ripred/github-traffic/internal/domain"
)

// csvHeader lists every RepoTraffic field that is serialized, in column
// order. The combined metric is internal-only and deliberately absent.
var csvHeader = []string{
	"repository",
	"views_total",
	"views_unique",
	"clones_total",
	"clones_unique",
	"stars",
	"forks",
	"date_range",
}

// CSVFilename returns the dated snapshot filename, e.g.
// github_traffic_20260831.csv.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("github_traffic_%s.csv", now.Format("20060102"))
}

// WriteCSV writes the rows to path exactly as ranked and filtered for
// display: same row set, same order.
func WriteCSV(path string, rows []domain.RepoTraffic) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close CSV file %q: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			strconv.Itoa(r.ViewsTotal),
			strconv.Itoa(r.ViewsUnique),
			strconv.Itoa(r.ClonesTotal),
			strconv.Itoa(r.ClonesUnique),
			strconv.Itoa(r.Stars),
			strconv.Itoa(r.Forks),
			r.DateRange,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record for %s: %w", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file %q: %w", path, err)
	}
	return nil
}
