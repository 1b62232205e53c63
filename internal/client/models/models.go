// Package models holds the client-side view of API entities. Field names on
// the wire follow the API contract; every list held here is a transient
// snapshot that is re-fetched after each mutation.
package models

import "time"

// User roles as sent by the API.
const (
	RoleStudent   = "aluno"
	RoleProfessor = "professor"
	RoleManager   = "gestor"
)

// Reservation statuses as sent by the API.
const (
	StatusPending   = "pendente"
	StatusConfirmed = "confirmada"
	StatusRejected  = "recusada"
	StatusCancelled = "cancelada"
)

// Space kinds as sent by the API.
const (
	KindClassroom  = "sala"
	KindLab        = "laboratorio"
	KindAuditorium = "auditorio"
)

// Identity is the resolved owner of the current session credential.
type Identity struct {
	ID           string `json:"usuario_id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Role         string `json:"tipo"`
	DepartmentID string `json:"departamento_id,omitempty"`
}

func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}

// Space is a bookable physical resource.
type Space struct {
	ID        string `json:"espaco_id"`
	Name      string `json:"nome"`
	Kind      string `json:"tipo"`
	Capacity  *int   `json:"capacidade"`
	ManagerID string `json:"gestor_responsavel_id"`
}

// Reservation is a time-bounded request to use a Space.
type Reservation struct {
	ID            string    `json:"reserva_id"`
	SpaceID       string    `json:"espaco_id"`
	SpaceName     string    `json:"espaco_nome"`
	RequesterID   string    `json:"solicitante_id"`
	RequesterName string    `json:"solicitante_nome"`
	Purpose       string    `json:"finalidade"`
	Participants  *int      `json:"num_participantes"`
	Start         time.Time `json:"data_hora_inicio"`
	End           time.Time `json:"data_hora_fim"`
	Status        string    `json:"status"`
}

// CancellableBy reports whether userID may still cancel the reservation:
// the requester, before the start time, while pending or confirmed.
func (r Reservation) CancellableBy(userID string, now time.Time) bool {
	if r.RequesterID != userID {
		return false
	}
	if r.Status != StatusPending && r.Status != StatusConfirmed {
		return false
	}
	return r.Start.After(now)
}

// Department groups users; spaces and reservations do not reference it.
type Department struct {
	ID   string `json:"departamento_id"`
	Name string `json:"nome"`
}

// User as returned by reads. Password is write-only: never present in
// responses, only sent on create/update.
type User struct {
	ID           string `json:"usuario_id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Role         string `json:"tipo"`
	DepartmentID string `json:"departamento_id,omitempty"`
	Password     string `json:"senha,omitempty"`
}

// ReservationDraft is the form state for a new reservation. Participants is
// nil when the typed value did not parse as an integer; the server decides
// whether that is acceptable.
type ReservationDraft struct {
	SpaceID      string    `json:"espaco_id"`
	Purpose      string    `json:"finalidade"`
	Participants *int      `json:"num_participantes"`
	Start        time.Time `json:"data_hora_inicio"`
	End          time.Time `json:"data_hora_fim"`
}
