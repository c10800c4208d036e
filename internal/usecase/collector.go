// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ripred/github-traffic/internal/domain"
	"github.com/ripred/github-traffic/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// maxInFlight bounds the number of traffic fetches running at once.
const maxInFlight = 10

// Collector fans traffic fetches out across the repository listing and
// gathers one record per repository.
type Collector struct {
	fetcher  gateway.Fetcher
	logger   *log.Logger
	progress io.Writer

	// mu guards progress output so lines from concurrent fetches do not
	// interleave. It protects nothing else.
	mu sync.Mutex
}

// NewCollector creates a new Collector instance. Progress lines are written
// to progress as each fetch completes.
func NewCollector(fetcher gateway.Fetcher, logger *log.Logger, progress io.Writer) *Collector {
	return &Collector{
		fetcher:  fetcher,
		logger:   logger,
		progress: progress,
	}
}

// Collect fetches traffic for every listed repository, with at most
// maxInFlight requests running concurrently. Given N repositories it always
// produces exactly N records, in listing order: fetch failures degrade to
// zeroed counts with failure markers instead of dropping the repository.
// There is no timeout; Collect waits for every fetch to finish.
func (c *Collector) Collect(ctx context.Context, username string, repos []gateway.Repository) []domain.RepoTraffic {
	c.logger.Printf("Usecase: starting traffic collection for %d repositories...", len(repos))

	records := make([]domain.RepoTraffic, len(repos))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxInFlight)

	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			sample := c.fetcher.FetchTraffic(egCtx, username, repo.Name)
			records[i] = domain.RepoTraffic{
				Name:         repo.Name,
				ViewsTotal:   sample.ViewsTotal,
				ViewsUnique:  sample.ViewsUnique,
				ClonesTotal:  sample.ClonesTotal,
				ClonesUnique: sample.ClonesUnique,
				Stars:        repo.Stars,
				Forks:        repo.Forks,
				DateRange:    sample.DateRange,
				ViewsFailed:  sample.ViewsFailed,
				ClonesFailed: sample.ClonesFailed,
			}
			c.reportProgress(i+1, len(repos), records[i])
			return nil
		})
	}

	// Tasks never return errors; failures are captured in the records.
	_ = eg.Wait()

	c.logger.Println("Usecase: traffic collection complete.")
	return records
}

// reportProgress prints one completion line, identified by the repository's
// position in the input listing, not by completion order.
func (c *Collector) reportProgress(pos, total int, r domain.RepoTraffic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.progress, "[%d/%d] %s | Views: %d/%d %s | Clones: %d/%d %s | Stars: %d | Forks: %d\n",
		pos, total, r.Name,
		r.ViewsTotal, r.ViewsUnique, statusMark(!r.ViewsFailed),
		r.ClonesTotal, r.ClonesUnique, statusMark(!r.ClonesFailed),
		r.Stars, r.Forks)
}

func statusMark(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}
