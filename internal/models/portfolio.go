package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SubmissionStatus is the overall or per-entry grading outcome.
type SubmissionStatus string

const (
	StatusValid   SubmissionStatus = "valid"
	StatusInvalid SubmissionStatus = "invalid"
	StatusPending SubmissionStatus = "pending"
)

// PullRequestEntry is a single submitted pull-request link plus its
// validation outcome. Reason is set when the entry is invalid.
type PullRequestEntry struct {
	URL    string           `json:"url"`
	Status SubmissionStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
}

// Submission is one member's set of PR links for a portfolio. Submissions are
// stored inside the portfolio document and rewritten wholesale on every
// mutation, matching the underlying store's whole-document semantics.
type Submission struct {
	MemberEmail       string             `json:"member_email"`
	OpenedPRs         []PullRequestEntry `json:"opened_prs"`
	ReviewedPRs       []PullRequestEntry `json:"reviewed_prs"`
	OtherPRs          []PullRequestEntry `json:"other_prs,omitempty"`
	Text              string             `json:"text,omitempty"`
	DocumentationText string             `json:"documentation_text,omitempty"`
	Status            SubmissionStatus   `json:"status"`
	ManualOverride    bool               `json:"manual_override,omitempty"`
	IsLate            bool               `json:"is_late"`
	SubmittedAt       time.Time          `json:"submitted_at"`
}

// Portfolio is a graded assignment period. The submissions list lives in a
// single JSON document column; there is no per-submission row.
type Portfolio struct {
	UUID              string         `gorm:"primaryKey;size:36" json:"uuid"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	EarliestValidDate time.Time      `gorm:"not null" json:"earliest_valid_date"`
	Deadline          time.Time      `gorm:"not null" json:"deadline"`
	LateDeadline      *time.Time     `json:"late_deadline"`
	Submissions       datatypes.JSON `gorm:"type:json" json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// EffectiveDeadline returns the late deadline when one exists, otherwise the
// regular deadline.
func (p Portfolio) EffectiveDeadline() time.Time {
	if p.LateDeadline != nil {
		return *p.LateDeadline
	}
	return p.Deadline
}

// SubmissionList decodes the stored submissions document. A missing document
// decodes to an empty list.
func (p Portfolio) SubmissionList() ([]Submission, error) {
	if len(p.Submissions) == 0 {
		return []Submission{}, nil
	}
	var submissions []Submission
	if err := json.Unmarshal(p.Submissions, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// SetSubmissionList replaces the whole submissions document.
func (p *Portfolio) SetSubmissionList(submissions []Submission) error {
	if submissions == nil {
		submissions = []Submission{}
	}
	encoded, err := json.Marshal(submissions)
	if err != nil {
		return err
	}
	p.Submissions = datatypes.JSON(encoded)
	return nil
}
