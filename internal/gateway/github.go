// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// Repository is one entry from the user's repository listing.
type Repository struct {
	Name  string
	Stars int
	Forks int
}

// TrafficSample holds the views and clones counts fetched for one repository
// over the 14-day traffic window. A failed fetch leaves the corresponding
// counts at zero and sets the matching failure flag; a sample is never lost
// to an error.
type TrafficSample struct {
	ViewsTotal   int
	ViewsUnique  int
	ClonesTotal  int
	ClonesUnique int
	DateRange    string
	ViewsFailed  bool
	ClonesFailed bool
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// CheckAuth verifies the token against the rate-limit endpoint. Any
	// failure means the token is unusable; callers treat it as fatal.
	CheckAuth(ctx context.Context) error
	// ListRepositories returns the user's repositories with their star and
	// fork counts. Only the first page (up to 1000 entries) is fetched;
	// repositories beyond it are not examined.
	ListRepositories(ctx context.Context, username string) ([]Repository, error)
	// FetchTraffic fetches the views and clones counts for one repository.
	// Failures degrade to zeroed counts instead of returning an error.
	FetchTraffic(ctx context.Context, username, repo string) TrafficSample
	// ProbeTrafficAccess reports whether the token can read traffic data,
	// by issuing a single views request. Only a 403 answer means no.
	ProbeTrafficAccess(ctx context.Context, username, repo string) bool
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

func (g *GitHubGateway) CheckAuth(ctx context.Context) error {
	g.logger.Println("Checking token validity against the rate limit endpoint...")
	if _, _, err := g.client.RateLimit.Get(ctx); err != nil {
		return fmt.Errorf("authentication check failed: %w", err)
	}
	return nil
}

func (g *GitHubGateway) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	g.logger.Printf("Listing repositories for user %s...", username)
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 1000},
	}
	repos, _, err := g.client.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", username, err)
	}
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, Repository{
			Name:  r.GetName(),
			Stars: r.GetStargazersCount(),
			Forks: r.GetForksCount(),
		})
	}
	g.logger.Printf("Found %d repositories.", len(out))
	return out, nil
}

const dateLayout = "2006-01-02"

// FetchTraffic issues the views and clones requests for one repository.
// The two calls are independent: a failure on one does not prevent the other,
// and any failure (HTTP status, network, decode) is captured in the sample's
// failure flags rather than propagated.
func (g *GitHubGateway) FetchTraffic(ctx context.Context, username, repo string) TrafficSample {
	var sample TrafficSample
	opts := &github.TrafficBreakdownOptions{Per: "day"}

	views, _, err := g.client.Repositories.ListTrafficViews(ctx, username, repo, opts)
	if err != nil {
		g.logger.Printf("Views fetch failed for %s/%s: %v", username, repo, err)
		sample.ViewsFailed = true
	} else {
		sample.ViewsTotal = views.GetCount()
		sample.ViewsUnique = views.GetUniques()
		if len(views.Views) > 0 {
			first := views.Views[0].GetTimestamp().Format(dateLayout)
			last := views.Views[len(views.Views)-1].GetTimestamp().Format(dateLayout)
			sample.DateRange = first + " to " + last
		}
	}

	clones, _, err := g.client.Repositories.ListTrafficClones(ctx, username, repo, opts)
	if err != nil {
		g.logger.Printf("Clones fetch failed for %s/%s: %v", username, repo, err)
		sample.ClonesFailed = true
	} else {
		sample.ClonesTotal = clones.GetCount()
		sample.ClonesUnique = clones.GetUniques()
	}

	return sample
}

// ProbeTrafficAccess checks for the 'repo' scope by requesting traffic views
// for a single repository. Only an explicit 403 indicates missing permission;
// other failures are inconclusive and treated as access granted, since the
// per-repository fetches degrade gracefully anyway.
func (g *GitHubGateway) ProbeTrafficAccess(ctx context.Context, username, repo string) bool {
	_, resp, err := g.client.Repositories.ListTrafficViews(ctx, username, repo, nil)
	if err != nil && resp != nil && resp.StatusCode == http.StatusForbidden {
		g.logger.Printf("Traffic permission probe against %s/%s returned 403.", username, repo)
		return false
	}
	return true
}
