// Package models holds the server-side entities as stored in Postgres.
package models

import "time"

// Roles accepted for usuarios.tipo.
const (
	RoleStudent   = "aluno"
	RoleProfessor = "professor"
	RoleManager   = "gestor"
)

// Reservation statuses.
const (
	StatusPending   = "pendente"
	StatusConfirmed = "confirmada"
	StatusRejected  = "recusada"
	StatusCancelled = "cancelada"
)

// Space kinds.
const (
	KindClassroom  = "sala"
	KindLab        = "laboratorio"
	KindAuditorium = "auditorio"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleProfessor || role == RoleManager
}

func ValidKind(kind string) bool {
	return kind == KindClassroom || kind == KindLab || kind == KindAuditorium
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	DepartmentID *string
}

type Department struct {
	ID   string
	Name string
}

type Space struct {
	ID        string
	Name      string
	Kind      string
	Capacity  *int
	ManagerID string
}

// Reservation rows carry the joined space and requester names because every
// listing the client renders needs them.
type Reservation struct {
	ID            string
	SpaceID       string
	SpaceName     string
	RequesterID   string
	RequesterName string
	Purpose       string
	Participants  *int
	Start         time.Time
	End           time.Time
	Status        string
}
