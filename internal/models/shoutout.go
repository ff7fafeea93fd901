package models

import "time"

// Shoutout is a public note of appreciation from one member to another.
type Shoutout struct {
	UUID          string    `gorm:"primaryKey;size:36" json:"uuid"`
	GiverEmail    string    `gorm:"size:255;not null;index" json:"giver_email"`
	ReceiverEmail string    `gorm:"size:255;not null;index" json:"receiver_email"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Hidden        bool      `gorm:"not null;default:false" json:"hidden"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
