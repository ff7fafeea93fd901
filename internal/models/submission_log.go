package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionLog is an append-only audit record written for every submission
// attempt before grading runs, whether or not the attempt is accepted.
type SubmissionLog struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PortfolioUUID string         `gorm:"size:36;not null;index" json:"portfolio_uuid"`
	MemberEmail   string         `gorm:"size:255;not null;index" json:"member_email"`
	Body          datatypes.JSON `gorm:"type:json" json:"body"`
	CreatedAt     time.Time      `json:"created_at"`
}
