package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v61/github"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/orghub/orghub-api/internal/observability"
)

// ErrUnavailable indicates the GitHub API could not be reached or answered
// with a transient failure. Callers treat the affected entry as pending
// rather than invalid.
var ErrUnavailable = errors.New("github api unavailable")

// ErrPullNotFound indicates the referenced pull request does not exist.
var ErrPullNotFound = errors.New("pull request not found")

// PullRequestState is the subset of pull-request data grading depends on.
type PullRequestState struct {
	Merged    bool
	Closed    bool
	Author    string
	Reviewers []string
}

// HasReviewer reports whether login appears among the pull request's
// reviewers. Comparison is case-insensitive, matching GitHub login semantics.
func (s PullRequestState) HasReviewer(login string) bool {
	for _, reviewer := range s.Reviewers {
		if strings.EqualFold(reviewer, login) {
			return true
		}
	}
	return false
}

// PullService answers pull-request state queries.
type PullService interface {
	GetPullRequestState(ctx context.Context, ref PullRequestRef) (PullRequestState, error)
}

type client struct {
	api    *gh.Client
	logger zerolog.Logger
}

// NewClient builds a PullService backed by the GitHub REST API. An empty
// token yields an unauthenticated client subject to lower rate limits.
func NewClient(token string, logger zerolog.Logger) PullService {
	var api *gh.Client
	if token == "" {
		api = gh.NewClient(nil)
	} else {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		api = gh.NewClient(oauth2.NewClient(context.Background(), source))
	}

	return &client{
		api:    api,
		logger: logger.With().Str("component", "github_client").Logger(),
	}
}

func (c *client) GetPullRequestState(ctx context.Context, ref PullRequestRef) (PullRequestState, error) {
	timer := prometheus.NewTimer(observability.GithubLookupDuration())
	defer timer.ObserveDuration()

	pull, resp, err := c.api.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return PullRequestState{}, fmt.Errorf("pull request %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, ErrPullNotFound)
		}
		c.logger.Warn().Err(err).Str("owner", ref.Owner).Str("repo", ref.Repo).Int("number", ref.Number).Msg("pull request lookup failed")
		return PullRequestState{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	state := PullRequestState{
		Merged: pull.GetMerged(),
		Closed: pull.GetState() == "closed",
		Author: pull.GetUser().GetLogin(),
	}

	reviews, _, err := c.api.PullRequests.ListReviews(ctx, ref.Owner, ref.Repo, ref.Number, &gh.ListOptions{PerPage: 100})
	if err != nil {
		return PullRequestState{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	seen := make(map[string]struct{}, len(reviews))
	for _, review := range reviews {
		login := review.GetUser().GetLogin()
		if login == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(login)]; ok {
			continue
		}
		seen[strings.ToLower(login)] = struct{}{}
		state.Reviewers = append(state.Reviewers, login)
	}

	return state, nil
}
