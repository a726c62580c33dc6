package entities

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleReviewer    Role = "reviewer"
	RoleContributor Role = "contributor"
)

func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleReviewer, RoleContributor:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type User struct {
	UserID      string
	Email       string
	DisplayName string
	Role        Role
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
