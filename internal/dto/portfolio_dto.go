package dto

import (
	"encoding/json"
	"time"

	"github.com/orghub/orghub-api/internal/models"
)

// PortfolioCreateRequest describes the payload for creating a portfolio.
// Instants are normalized to start/end of day server-side; clients send any
// instant on the intended day.
type PortfolioCreateRequest struct {
	Name              string     `json:"name" validate:"required,min=1,max=255"`
	EarliestValidDate time.Time  `json:"earliest_valid_date" validate:"required"`
	Deadline          time.Time  `json:"deadline" validate:"required"`
	LateDeadline      *time.Time `json:"late_deadline"`
}

// SubmissionDraft is the raw member-submitted payload, before validation.
type SubmissionDraft struct {
	OpenedPRs         []string `json:"opened_prs"`
	ReviewedPRs       []string `json:"reviewed_prs"`
	OtherPRs          []string `json:"other_prs"`
	Text              string   `json:"text"`
	DocumentationText string   `json:"documentation_text"`
}

// ManualStatusRequest sets an admin override on one submission.
type ManualStatusRequest struct {
	SubmissionIndex int    `json:"submission_index" validate:"gte=0"`
	Status          string `json:"status" validate:"required,oneof=valid invalid pending"`
}

// PullRequestEntryResponse serializes one PR entry with its outcome.
type PullRequestEntryResponse struct {
	URL    string `json:"url"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	MemberEmail       string                     `json:"member_email"`
	OpenedPRs         []PullRequestEntryResponse `json:"opened_prs"`
	ReviewedPRs       []PullRequestEntryResponse `json:"reviewed_prs"`
	OtherPRs          []PullRequestEntryResponse `json:"other_prs,omitempty"`
	Text              string                     `json:"text,omitempty"`
	DocumentationText string                     `json:"documentation_text,omitempty"`
	Status            string                     `json:"status"`
	ManualOverride    bool                       `json:"manual_override,omitempty"`
	IsLate            bool                       `json:"is_late"`
	SubmittedAt       time.Time                  `json:"submitted_at"`
}

// PortfolioInfoResponse is the metadata view of a portfolio, without
// submissions.
type PortfolioInfoResponse struct {
	UUID              string     `json:"uuid"`
	Name              string     `json:"name"`
	EarliestValidDate time.Time  `json:"earliest_valid_date"`
	Deadline          time.Time  `json:"deadline"`
	LateDeadline      *time.Time `json:"late_deadline"`
}

// PortfolioResponse is the full lead/admin view of a portfolio.
type PortfolioResponse struct {
	PortfolioInfoResponse
	Submissions []SubmissionResponse `json:"submissions"`
}

// NewPortfolioInfoResponse converts a portfolio model into its metadata DTO.
func NewPortfolioInfoResponse(model models.Portfolio) PortfolioInfoResponse {
	return PortfolioInfoResponse{
		UUID:              model.UUID,
		Name:              model.Name,
		EarliestValidDate: model.EarliestValidDate,
		Deadline:          model.Deadline,
		LateDeadline:      model.LateDeadline,
	}
}

// NewPortfolioInfoResponseSlice converts portfolio models into metadata DTOs.
func NewPortfolioInfoResponseSlice(portfolios []models.Portfolio) []PortfolioInfoResponse {
	responses := make([]PortfolioInfoResponse, 0, len(portfolios))
	for _, portfolio := range portfolios {
		responses = append(responses, NewPortfolioInfoResponse(portfolio))
	}
	return responses
}

// NewPortfolioResponse converts a portfolio model plus its decoded
// submissions into the full DTO.
func NewPortfolioResponse(model models.Portfolio, submissions []models.Submission) PortfolioResponse {
	return PortfolioResponse{
		PortfolioInfoResponse: NewPortfolioInfoResponse(model),
		Submissions:           NewSubmissionResponseSlice(submissions),
	}
}

// NewSubmissionResponse converts a submission into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		MemberEmail:       model.MemberEmail,
		OpenedPRs:         newEntryResponses(model.OpenedPRs),
		ReviewedPRs:       newEntryResponses(model.ReviewedPRs),
		OtherPRs:          newEntryResponses(model.OtherPRs),
		Text:              model.Text,
		DocumentationText: model.DocumentationText,
		Status:            string(model.Status),
		ManualOverride:    model.ManualOverride,
		IsLate:            model.IsLate,
		SubmittedAt:       model.SubmittedAt,
	}
}

// NewSubmissionResponseSlice converts submissions into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}

// SubmissionLogResponse is one audit record of a submission attempt.
type SubmissionLogResponse struct {
	ID          uint            `json:"id"`
	MemberEmail string          `json:"member_email"`
	Body        json.RawMessage `json:"body"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewSubmissionLogResponseSlice converts audit records into DTOs.
func NewSubmissionLogResponseSlice(logs []models.SubmissionLog) []SubmissionLogResponse {
	responses := make([]SubmissionLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, SubmissionLogResponse{
			ID:          log.ID,
			MemberEmail: log.MemberEmail,
			Body:        json.RawMessage(log.Body),
			CreatedAt:   log.CreatedAt,
		})
	}
	return responses
}

func newEntryResponses(entries []models.PullRequestEntry) []PullRequestEntryResponse {
	if entries == nil {
		return nil
	}
	responses := make([]PullRequestEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, PullRequestEntryResponse{
			URL:    entry.URL,
			Status: string(entry.Status),
			Reason: entry.Reason,
		})
	}
	return responses
}
