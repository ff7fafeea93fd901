package models

import "time"

// Role identifies a member's position within the organization.
type Role string

const (
	RoleLead       Role = "lead"
	RoleAdmin      Role = "admin"
	RoleTPM        Role = "tpm"
	RolePM         Role = "pm"
	RoleDeveloper  Role = "developer"
	RoleDesigner   Role = "designer"
	RoleBusiness   Role = "business"
	RoleDevAdvisor Role = "dev-advisor"
	RolePMAdvisor  Role = "pm-advisor"
)

// Member represents one person in the organization. Email is the stable key
// other documents reference.
type Member struct {
	Email          string    `gorm:"primaryKey;size:255" json:"email"`
	FirstName      string    `gorm:"size:255" json:"first_name"`
	LastName       string    `gorm:"size:255" json:"last_name"`
	Role           Role      `gorm:"size:32;not null" json:"role"`
	GithubUsername string    `gorm:"size:255" json:"github_username"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsLeadOrAdmin reports whether the member may manage portfolios and other
// org-wide resources.
func (m Member) IsLeadOrAdmin() bool {
	return m.Role == RoleLead || m.Role == RoleAdmin
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// IsAdvisor reports whether the member holds one of the advisor roles, which
// are exempt from the usual opened/reviewed PR requirements when they submit
// through the other-PR path.
func (m Member) IsAdvisor() bool {
	return m.Role == RoleDevAdvisor || m.Role == RolePMAdvisor
}
