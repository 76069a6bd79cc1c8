package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of user roles. Earlier deployments compared
// free-form role strings with inconsistent casing, so parsing stays
// case-insensitive while storage is canonical.
type Role string

const (
	RoleManager    Role = "Manager"
	RoleTeamMember Role = "Team Member"
)

func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "team member", "team_member":
		return RoleTeamMember, nil
	case "manager":
		return RoleManager, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"not null" json:"full_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null;default:Team Member" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
