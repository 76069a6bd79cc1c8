package services

import "github.com/tuifinancial/finserv/internal/models"

type Action string

const (
	ActionUploadFinancials Action = "financials.upload"
	ActionDeleteFinancials Action = "financials.delete"
)

// Authorize is the single role policy. Every role comparison in the service
// goes through here.
func Authorize(role models.Role, action Action) bool {
	switch action {
	case ActionUploadFinancials, ActionDeleteFinancials:
		return role == models.RoleManager
	default:
		return false
	}
}
