package dto

import (
	"time"

	"github.com/orghub/orghub-api/internal/models"
)

// ShoutoutCreateRequest describes the payload for giving a shoutout.
type ShoutoutCreateRequest struct {
	ReceiverEmail string `json:"receiver_email" validate:"required,email"`
	Message       string `json:"message" validate:"required,min=1"`
}

// ShoutoutFilter describes query string filters for listing shoutouts.
type ShoutoutFilter struct {
	GiverEmail    *string `query:"giver_email" validate:"omitempty,email"`
	ReceiverEmail *string `query:"receiver_email" validate:"omitempty,email"`
}

// ShoutoutResponse is returned to API clients when viewing shoutouts.
type ShoutoutResponse struct {
	UUID          string    `json:"uuid"`
	GiverEmail    string    `json:"giver_email"`
	ReceiverEmail string    `json:"receiver_email"`
	Message       string    `json:"message"`
	Hidden        bool      `json:"hidden"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewShoutoutResponse converts a shoutout model into a DTO.
func NewShoutoutResponse(model models.Shoutout) ShoutoutResponse {
	return ShoutoutResponse{
		UUID:          model.UUID,
		GiverEmail:    model.GiverEmail,
		ReceiverEmail: model.ReceiverEmail,
		Message:       model.Message,
		Hidden:        model.Hidden,
		CreatedAt:     model.CreatedAt,
	}
}

// NewShoutoutResponseSlice converts shoutout models into DTOs.
func NewShoutoutResponseSlice(shoutouts []models.Shoutout) []ShoutoutResponse {
	responses := make([]ShoutoutResponse, 0, len(shoutouts))
	for _, shoutout := range shoutouts {
		responses = append(responses, NewShoutoutResponse(shoutout))
	}
	return responses
}
