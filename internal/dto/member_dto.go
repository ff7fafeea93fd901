package dto

import (
	"time"

	"github.com/orghub/orghub-api/internal/models"
)

// MemberUpsertRequest creates or updates an org member.
type MemberUpsertRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required,max=255"`
	LastName       string `json:"last_name" validate:"required,max=255"`
	Role           string `json:"role" validate:"required,oneof=lead admin tpm pm developer designer business dev-advisor pm-advisor"`
	GithubUsername string `json:"github_username" validate:"omitempty,max=255"`
}

// MemberResponse is returned to API clients when viewing members.
type MemberResponse struct {
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           string    `json:"role"`
	GithubUsername string    `json:"github_username"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewMemberResponse converts a member model into a DTO.
func NewMemberResponse(model models.Member) MemberResponse {
	return MemberResponse{
		Email:          model.Email,
		FirstName:      model.FirstName,
		LastName:       model.LastName,
		Role:           string(model.Role),
		GithubUsername: model.GithubUsername,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewMemberResponseSlice converts member models into DTOs.
func NewMemberResponseSlice(members []models.Member) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, NewMemberResponse(member))
	}
	return responses
}
