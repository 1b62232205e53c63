// Package capability is the single source of truth for role-based gating in
// the client UI. The server enforces the same rules again; this package only
// decides what to offer.
package capability

import "github.com/example/reserva/internal/client/models"

type Action string

const (
	ActionCreateReservation  Action = "create_reservation"
	ActionReviewReservations Action = "review_reservations"
	ActionFilterReservations Action = "filter_reservations"
	ActionManageSpaces       Action = "manage_spaces"
	ActionManageDepartments  Action = "manage_departments"
	ActionManageUsers        Action = "manage_users"
)

// Can reports whether a role may be offered the given action.
func Can(role string, action Action) bool {
	switch action {
	case ActionCreateReservation:
		return role == models.RoleStudent || role == models.RoleProfessor || role == models.RoleManager
	case ActionReviewReservations,
		ActionFilterReservations,
		ActionManageSpaces,
		ActionManageDepartments,
		ActionManageUsers:
		return role == models.RoleManager
	default:
		return false
	}
}
