package grading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orghub/orghub-api/internal/github"
	"github.com/orghub/orghub-api/internal/models"
)

// stubPullService serves canned pull-request states keyed by PR number.
type stubPullService struct {
	states map[int]github.PullRequestState
	errs   map[int]error
}

func (s *stubPullService) GetPullRequestState(_ context.Context, ref github.PullRequestRef) (github.PullRequestState, error) {
	if err, ok := s.errs[ref.Number]; ok {
		return github.PullRequestState{}, err
	}
	state, ok := s.states[ref.Number]
	if !ok {
		return github.PullRequestState{}, github.ErrPullNotFound
	}
	return state, nil
}

func prURL(number int) string {
	switch number {
	case 1:
		return "https://github.com/acme/repo/pull/1"
	case 2:
		return "https://github.com/acme/repo/pull/2"
	case 3:
		return "https://github.com/acme/repo/pull/3"
	default:
		return "https://github.com/acme/repo/pull/9"
	}
}

func TestValidateSubmissionOpenedEntries(t *testing.T) {
	member := models.Member{Email: "m@org.dev", Role: models.RoleDeveloper, GithubUsername: "octo-m"}
	pulls := &stubPullService{states: map[int]github.PullRequestState{
		1: {Merged: true, Closed: true, Author: "octo-m"},
		2: {Merged: false, Closed: false, Author: "octo-m"},
		3: {Merged: true, Closed: true, Author: "someone-else"},
	}}

	submission := models.Submission{OpenedPRs: []models.PullRequestEntry{
		{URL: prURL(1)},
		{URL: prURL(2)},
		{URL: prURL(3)},
		{URL: "garbage"},
	}}

	validated := ValidateSubmission(context.Background(), pulls, member, submission)

	require.Equal(t, models.StatusValid, validated.OpenedPRs[0].Status)
	require.Empty(t, validated.OpenedPRs[0].Reason)

	require.Equal(t, models.StatusPending, validated.OpenedPRs[1].Status, "open PR awaits merge")

	require.Equal(t, models.StatusInvalid, validated.OpenedPRs[2].Status)
	require.Contains(t, validated.OpenedPRs[2].Reason, "octo-m")

	require.Equal(t, models.StatusInvalid, validated.OpenedPRs[3].Status)
	require.Equal(t, "malformed PR link", validated.OpenedPRs[3].Reason)
}

func TestValidateSubmissionReviewedEntries(t *testing.T) {
	member := models.Member{Email: "m@org.dev", Role: models.RoleDeveloper, GithubUsername: "octo-m"}
	pulls := &stubPullService{states: map[int]github.PullRequestState{
		1: {Merged: true, Closed: true, Author: "other", Reviewers: []string{"Octo-M"}},
		2: {Merged: true, Closed: true, Author: "other", Reviewers: []string{"reviewer-b"}},
		3: {Merged: false, Closed: false, Author: "other", Reviewers: []string{"octo-m"}},
	}}

	submission := models.Submission{ReviewedPRs: []models.PullRequestEntry{
		{URL: prURL(1)},
		{URL: prURL(2)},
		{URL: prURL(3)},
	}}

	validated := ValidateSubmission(context.Background(), pulls, member, submission)

	require.Equal(t, models.StatusValid, validated.ReviewedPRs[0].Status, "reviewer match is case-insensitive")
	require.Equal(t, models.StatusInvalid, validated.ReviewedPRs[1].Status)
	require.Equal(t, models.StatusPending, validated.ReviewedPRs[2].Status, "open PR stays pending even with a review recorded")
}

func TestValidateSubmissionExternalUnavailable(t *testing.T) {
	member := models.Member{Email: "m@org.dev", Role: models.RoleDeveloper, GithubUsername: "octo-m"}
	pulls := &stubPullService{errs: map[int]error{1: github.ErrUnavailable}}

	submission := models.Submission{OpenedPRs: []models.PullRequestEntry{{URL: prURL(1)}}}
	validated := ValidateSubmission(context.Background(), pulls, member, submission)

	require.Equal(t, models.StatusPending, validated.OpenedPRs[0].Status, "unavailability must not penalize the submitter")
	require.Empty(t, validated.OpenedPRs[0].Reason)
}

func TestValidateSubmissionPlaceholderEntry(t *testing.T) {
	member := models.Member{Email: "m@org.dev", Role: models.RoleTPM, GithubUsername: "octo-m"}
	pulls := &stubPullService{}

	submission := models.Submission{
		OpenedPRs:   []models.PullRequestEntry{{URL: ""}},
		ReviewedPRs: []models.PullRequestEntry{{URL: "  "}},
	}
	validated := ValidateSubmission(context.Background(), pulls, member, submission)

	require.Equal(t, models.StatusPending, validated.OpenedPRs[0].Status)
	require.Empty(t, validated.OpenedPRs[0].Reason)
	require.Equal(t, models.StatusPending, validated.ReviewedPRs[0].Status)
}

func TestValidateSubmissionMissingPull(t *testing.T) {
	member := models.Member{Email: "m@org.dev", Role: models.RoleDeveloper, GithubUsername: "octo-m"}
	pulls := &stubPullService{states: map[int]github.PullRequestState{}}

	submission := models.Submission{OpenedPRs: []models.PullRequestEntry{{URL: prURL(1)}}}
	validated := ValidateSubmission(context.Background(), pulls, member, submission)

	require.Equal(t, models.StatusInvalid, validated.OpenedPRs[0].Status)
	require.Contains(t, validated.OpenedPRs[0].Reason, "does not exist")
}
