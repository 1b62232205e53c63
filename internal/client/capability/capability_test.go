package capability

import (
	"testing"

	"github.com/example/reserva/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action Action
		want   bool
	}{
		{"student can create", models.RoleStudent, ActionCreateReservation, true},
		{"professor can create", models.RoleProfessor, ActionCreateReservation, true},
		{"manager can create", models.RoleManager, ActionCreateReservation, true},
		{"student cannot review", models.RoleStudent, ActionReviewReservations, false},
		{"professor cannot filter", models.RoleProfessor, ActionFilterReservations, false},
		{"manager can review", models.RoleManager, ActionReviewReservations, true},
		{"manager can filter", models.RoleManager, ActionFilterReservations, true},
		{"manager can manage spaces", models.RoleManager, ActionManageSpaces, true},
		{"student cannot manage users", models.RoleStudent, ActionManageUsers, false},
		{"manager can manage departments", models.RoleManager, ActionManageDepartments, true},
		{"unknown role gets nothing", "visitante", ActionCreateReservation, false},
		{"unknown action denied", models.RoleManager, Action("fly"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.action))
		})
	}
}
