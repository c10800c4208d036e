// Package report renders ranked traffic results to the terminal and to CSV.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ripred/github-traffic/internal/domain"
	"github.com/ripred/github-traffic/internal/usecase"
)

// One style per column, matching the palette of the original report:
// bright white, green, blue, cyan, yellow, magenta, red, and gray.
var (
	posStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	repoStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	viewsTotalStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	viewsUniqueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	clonesTotalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	clonesUniqueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	starsStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	forksStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	sortKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	periodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

// column describes one table column: header title, header style, cell value,
// and alignment (repository names are left-aligned, counts right-aligned).
type column struct {
	title string
	style lipgloss.Style
	value func(pos int, r domain.RepoTraffic) string
	left  bool
}

var columns = []column{
	{"#", posStyle, func(pos int, _ domain.RepoTraffic) string { return strconv.Itoa(pos) }, false},
	{"repository", repoStyle, func(_ int, r domain.RepoTraffic) string { return r.Name }, true},
	{"views_total", viewsTotalStyle, func(_ int, r domain.RepoTraffic) string { return strconv.Itoa(r.ViewsTotal) }, false},
	{"views_unique", viewsUniqueStyle, func(_ int, r domain.RepoTraffic) string { return strconv.Itoa(r.ViewsUnique) }, false},
	{"clones_total", clonesTotalStyle, func(_ int, r domain.RepoTraffic) string { return strconv.Itoa(r.ClonesTotal) }, false},
	{"clones_unique", clonesUniqueStyle, func(_ int, r domain.RepoTraffic) string { return strconv.Itoa(r.ClonesUnique) }, false},
	{"stars", starsStyle, func(_ int, r domain.RepoTraffic) string { return strconv.Itoa(r.Stars) }, false},
	{"forks", forksStyle, func(_ int, r domain.RepoTraffic) string { return strconv.Itoa(r.Forks) }, false},
}

// RenderTable writes the summary header, the ranked table with a 1-based
// position column, and a statistics footer. The date range appears once in
// the header line (first non-empty value found), never in the row body;
// the combined metric is internal and never displayed. requestedDays is the
// timeframe the user asked for, used to note when it exceeded the API window.
func RenderTable(w io.Writer, rows []domain.RepoTraffic, sortBy domain.SortKey, requestedDays int) {
	period := ""
	for _, r := range rows {
		if r.DateRange != "" {
			period = " | Data period: " + periodStyle.Render(r.DateRange)
			break
		}
	}
	requested := ""
	if requestedDays > domain.TrafficWindowDays {
		requested = fmt.Sprintf(" | Requested: %d days (limited to %d days by GitHub API)",
			requestedDays, domain.TrafficWindowDays)
	}
	fmt.Fprintf(w, "===== REPOSITORY TRAFFIC SUMMARY (Sorted by: %s)%s%s =====\n",
		sortKeyStyle.Render(string(sortBy)), period, requested)

	sum := usecase.Summarize(rows)
	if sum.ViewsTotal == 0 && sum.ClonesTotal == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "NOTE: No view or clone data available. Sorting may be based on stars and forks only.")
		fmt.Fprintln(w, "To get traffic data, you need a GitHub token with 'repo' scope permissions.")
	}
	fmt.Fprintln(w)

	// Column widths come from the plain cell text; styling is applied after
	// padding because ANSI escapes would throw the width math off.
	widths := make([]int, len(columns))
	cells := make([][]string, len(rows))
	for c, col := range columns {
		widths[c] = len(col.title)
	}
	for i, r := range rows {
		cells[i] = make([]string, len(columns))
		for c, col := range columns {
			v := col.value(i+1, r)
			cells[i][c] = v
			if len(v) > widths[c] {
				widths[c] = len(v)
			}
		}
	}

	header := make([]string, len(columns))
	for c, col := range columns {
		header[c] = col.style.Render(pad(col.title, widths[c], col.left))
	}
	fmt.Fprintln(w, strings.Join(header, "  "))

	for i := range rows {
		line := make([]string, len(columns))
		for c, col := range columns {
			line[c] = pad(cells[i][c], widths[c], col.left)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " "))
	}

	fmt.Fprintf(w, "\n%d repositories | views: %d total (mean %.1f, median %.1f) | clones: %d total (mean %.1f, median %.1f)\n",
		sum.Repos,
		sum.ViewsTotal, sum.ViewsMean, sum.ViewsMedian,
		sum.ClonesTotal, sum.ClonesMean, sum.ClonesMedian)
}

func pad(s string, width int, left bool) string {
	if left {
		return s + strings.Repeat(" ", width-len(s))
	}
	return strings.Repeat(" ", width-len(s)) + s
}
