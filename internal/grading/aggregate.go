package grading

import (
	"strings"

	"github.com/orghub/orghub-api/internal/models"
)

// RequirementKind selects which aggregation rule applies to a submission.
// The variant is decided once, up front, from the submitter's role and the
// shape of the submission.
type RequirementKind int

const (
	// RequirementStandard needs at least one valid opened PR and one valid
	// reviewed PR.
	RequirementStandard RequirementKind = iota
	// RequirementTPM needs the free-text field; PR entries are supplementary.
	RequirementTPM
	// RequirementOtherOnly is the advisor exception path: only the other-PR
	// entries govern validity.
	RequirementOtherOnly
)

// RequirementFor decides the aggregation rule for a member's submission.
// Advisors take the exception path only when they actually used it: at least
// one other-PR entry plus a non-empty explanation.
func RequirementFor(member models.Member, submission models.Submission) RequirementKind {
	switch {
	case member.Role == models.RoleTPM:
		return RequirementTPM
	case member.IsAdvisor() && len(submission.OtherPRs) > 0 && strings.TrimSpace(submission.Text) != "":
		return RequirementOtherOnly
	default:
		return RequirementStandard
	}
}

// Aggregate reduces a submission's per-entry statuses to one overall status
// under the given requirement.
func Aggregate(kind RequirementKind, submission models.Submission) models.SubmissionStatus {
	switch kind {
	case RequirementTPM:
		if strings.TrimSpace(submission.Text) == "" {
			return models.StatusInvalid
		}
		return models.StatusValid

	case RequirementOtherOnly:
		return categoryStatus(submission.OtherPRs)

	default:
		opened := categoryStatus(submission.OpenedPRs)
		reviewed := categoryStatus(submission.ReviewedPRs)
		if opened == models.StatusInvalid || reviewed == models.StatusInvalid {
			return models.StatusInvalid
		}
		if opened == models.StatusValid && reviewed == models.StatusValid {
			return models.StatusValid
		}
		return models.StatusPending
	}
}

// categoryStatus reduces one entry list: a single valid entry satisfies the
// category, invalid entries alone do not poison a category that still has a
// pending one, and a completely empty or completely invalid required
// category is invalid.
func categoryStatus(entries []models.PullRequestEntry) models.SubmissionStatus {
	hasPending := false
	for _, entry := range entries {
		switch entry.Status {
		case models.StatusValid:
			return models.StatusValid
		case models.StatusPending:
			hasPending = true
		}
	}
	if hasPending {
		return models.StatusPending
	}
	return models.StatusInvalid
}
