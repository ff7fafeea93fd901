package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/orghub/orghub-api/internal/github"
	"github.com/orghub/orghub-api/internal/models"
)

// Category names the submission list a pull-request entry belongs to. The
// category decides which identity check applies during validation.
type Category int

const (
	// CategoryOpened entries must be merged pull requests authored by the
	// submitting member.
	CategoryOpened Category = iota
	// CategoryReviewed entries must carry a review by the submitting member.
	CategoryReviewed
	// CategoryOther entries only need to be merged; no identity check runs.
	CategoryOther
)

// ValidateSubmission re-validates every pull-request entry of a submission
// against live GitHub state and returns a copy with per-entry statuses
// assigned. The overall status is left untouched; aggregation is a separate
// step. External unavailability downgrades the affected entry to pending so a
// later regrade can resolve it.
func ValidateSubmission(ctx context.Context, pulls github.PullService, member models.Member, submission models.Submission) models.Submission {
	validated := submission
	validated.OpenedPRs = validateEntries(ctx, pulls, member, submission.OpenedPRs, CategoryOpened)
	validated.ReviewedPRs = validateEntries(ctx, pulls, member, submission.ReviewedPRs, CategoryReviewed)
	validated.OtherPRs = validateEntries(ctx, pulls, member, submission.OtherPRs, CategoryOther)
	return validated
}

func validateEntries(ctx context.Context, pulls github.PullService, member models.Member, entries []models.PullRequestEntry, category Category) []models.PullRequestEntry {
	if len(entries) == 0 {
		return entries
	}

	// A lone blank entry is the form's placeholder for "nothing submitted in
	// this category" and is legal for some roles.
	if len(entries) == 1 && strings.TrimSpace(entries[0].URL) == "" {
		return []models.PullRequestEntry{{URL: entries[0].URL, Status: models.StatusPending}}
	}

	validated := make([]models.PullRequestEntry, len(entries))

	// Entries are independent reads; fan the lookups out and collect every
	// result before returning.
	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry models.PullRequestEntry) {
			defer wg.Done()
			validated[i] = validateEntry(ctx, pulls, member, entry, category)
		}(i, entry)
	}
	wg.Wait()

	return validated
}

func validateEntry(ctx context.Context, pulls github.PullService, member models.Member, entry models.PullRequestEntry, category Category) models.PullRequestEntry {
	ref, err := github.ParsePullRequestURL(entry.URL)
	if err != nil {
		return invalidEntry(entry, "malformed PR link")
	}

	state, err := pulls.GetPullRequestState(ctx, ref)
	switch {
	case errors.Is(err, github.ErrPullNotFound):
		return invalidEntry(entry, fmt.Sprintf("pull request %s/%s#%d does not exist", ref.Owner, ref.Repo, ref.Number))
	case err != nil:
		return pendingEntry(entry)
	}

	switch category {
	case CategoryOpened:
		if !strings.EqualFold(state.Author, member.GithubUsername) {
			return invalidEntry(entry, fmt.Sprintf("pull request was not opened by %s", member.GithubUsername))
		}
		if state.Merged {
			return validEntry(entry)
		}
		if state.Closed {
			return invalidEntry(entry, "pull request was closed without being merged")
		}
		return pendingEntry(entry)

	case CategoryReviewed:
		// Reviews can still arrive while the PR is open, so the entry stays
		// pending until the PR resolves.
		if !state.Closed && !state.Merged {
			return pendingEntry(entry)
		}
		if state.HasReviewer(member.GithubUsername) {
			return validEntry(entry)
		}
		return invalidEntry(entry, fmt.Sprintf("no review by %s found on this pull request", member.GithubUsername))

	default:
		if state.Merged {
			return validEntry(entry)
		}
		if state.Closed {
			return invalidEntry(entry, "pull request was closed without being merged")
		}
		return pendingEntry(entry)
	}
}

func validEntry(entry models.PullRequestEntry) models.PullRequestEntry {
	return models.PullRequestEntry{URL: entry.URL, Status: models.StatusValid}
}

func pendingEntry(entry models.PullRequestEntry) models.PullRequestEntry {
	return models.PullRequestEntry{URL: entry.URL, Status: models.StatusPending}
}

func invalidEntry(entry models.PullRequestEntry, reason string) models.PullRequestEntry {
	return models.PullRequestEntry{URL: entry.URL, Status: models.StatusInvalid, Reason: reason}
}
