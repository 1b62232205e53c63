package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancellableBy(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	tests := []struct {
		name string
		res  Reservation
		user string
		want bool
	}{
		{"own pending future", Reservation{RequesterID: "u1", Status: StatusPending, Start: future}, "u1", true},
		{"own confirmed future", Reservation{RequesterID: "u1", Status: StatusConfirmed, Start: future}, "u1", true},
		{"someone else's", Reservation{RequesterID: "u2", Status: StatusPending, Start: future}, "u1", false},
		{"already rejected", Reservation{RequesterID: "u1", Status: StatusRejected, Start: future}, "u1", false},
		{"already cancelled", Reservation{RequesterID: "u1", Status: StatusCancelled, Start: future}, "u1", false},
		{"already started", Reservation{RequesterID: "u1", Status: StatusConfirmed, Start: past}, "u1", false},
		{"starting exactly now", Reservation{RequesterID: "u1", Status: StatusPending, Start: now}, "u1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.CancellableBy(tt.user, now))
		})
	}
}

func TestIdentityIsManager(t *testing.T) {
	assert.True(t, Identity{Role: RoleManager}.IsManager())
	assert.False(t, Identity{Role: RoleProfessor}.IsManager())
	assert.False(t, Identity{Role: RoleStudent}.IsManager())
	assert.False(t, Identity{}.IsManager())
}
