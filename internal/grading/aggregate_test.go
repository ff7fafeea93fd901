package grading

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orghub/orghub-api/internal/models"
)

func entry(status models.SubmissionStatus) models.PullRequestEntry {
	return models.PullRequestEntry{URL: "https://github.com/acme/repo/pull/1", Status: status}
}

func TestRequirementFor(t *testing.T) {
	tpm := models.Member{Email: "t@org.dev", Role: models.RoleTPM}
	advisor := models.Member{Email: "a@org.dev", Role: models.RoleDevAdvisor}
	dev := models.Member{Email: "d@org.dev", Role: models.RoleDeveloper}

	require.Equal(t, RequirementTPM, RequirementFor(tpm, models.Submission{}))
	require.Equal(t, RequirementStandard, RequirementFor(dev, models.Submission{}))

	withOther := models.Submission{
		OtherPRs: []models.PullRequestEntry{entry(models.StatusPending)},
		Text:     "covered a release branch instead",
	}
	require.Equal(t, RequirementOtherOnly, RequirementFor(advisor, withOther))

	// Without the explanation the advisor falls back to the standard rule.
	withOther.Text = ""
	require.Equal(t, RequirementStandard, RequirementFor(advisor, withOther))

	// An ordinary contributor never takes the exception path.
	withOther.Text = "explanation"
	require.Equal(t, RequirementStandard, RequirementFor(dev, withOther))
}

func TestAggregateStandard(t *testing.T) {
	tests := []struct {
		name     string
		opened   []models.PullRequestEntry
		reviewed []models.PullRequestEntry
		want     models.SubmissionStatus
	}{
		{
			name:     "one valid in each category",
			opened:   []models.PullRequestEntry{entry(models.StatusValid)},
			reviewed: []models.PullRequestEntry{entry(models.StatusValid)},
			want:     models.StatusValid,
		},
		{
			name:     "invalid entries do not poison a satisfied category",
			opened:   []models.PullRequestEntry{entry(models.StatusInvalid), entry(models.StatusValid)},
			reviewed: []models.PullRequestEntry{entry(models.StatusValid)},
			want:     models.StatusValid,
		},
		{
			name:     "pending reviewed entry keeps the whole submission pending",
			opened:   []models.PullRequestEntry{entry(models.StatusValid)},
			reviewed: []models.PullRequestEntry{entry(models.StatusPending)},
			want:     models.StatusPending,
		},
		{
			name:     "all entries invalid in one category",
			opened:   []models.PullRequestEntry{entry(models.StatusInvalid)},
			reviewed: []models.PullRequestEntry{entry(models.StatusValid)},
			want:     models.StatusInvalid,
		},
		{
			name:     "empty required category",
			opened:   nil,
			reviewed: []models.PullRequestEntry{entry(models.StatusValid)},
			want:     models.StatusInvalid,
		},
		{
			name:     "invalid and pending mix stays pending",
			opened:   []models.PullRequestEntry{entry(models.StatusInvalid), entry(models.StatusPending)},
			reviewed: []models.PullRequestEntry{entry(models.StatusValid)},
			want:     models.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submission := models.Submission{OpenedPRs: tt.opened, ReviewedPRs: tt.reviewed}
			require.Equal(t, tt.want, Aggregate(RequirementStandard, submission))
		})
	}
}

func TestAggregateTPM(t *testing.T) {
	withText := models.Submission{
		Text:        "shipped the sprint report",
		OpenedPRs:   []models.PullRequestEntry{entry(models.StatusInvalid)},
		ReviewedPRs: []models.PullRequestEntry{entry(models.StatusPending)},
	}
	require.Equal(t, models.StatusValid, Aggregate(RequirementTPM, withText), "PR entries are supplementary for TPMs")

	require.Equal(t, models.StatusInvalid, Aggregate(RequirementTPM, models.Submission{Text: "  "}))
}

func TestAggregateOtherOnly(t *testing.T) {
	submission := models.Submission{
		OpenedPRs: []models.PullRequestEntry{entry(models.StatusInvalid)},
		OtherPRs:  []models.PullRequestEntry{entry(models.StatusValid)},
		Text:      "worked on infra repo",
	}
	require.Equal(t, models.StatusValid, Aggregate(RequirementOtherOnly, submission), "opened/reviewed emptiness is ignored on the exception path")

	submission.OtherPRs = []models.PullRequestEntry{entry(models.StatusPending)}
	require.Equal(t, models.StatusPending, Aggregate(RequirementOtherOnly, submission))

	submission.OtherPRs = []models.PullRequestEntry{entry(models.StatusInvalid)}
	require.Equal(t, models.StatusInvalid, Aggregate(RequirementOtherOnly, submission))
}
