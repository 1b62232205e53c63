package http

import (
	"time"

	"github.com/example/reserva/internal/server/models"
)

// Wire DTOs. Field names follow the public API contract.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userDTO struct {
	ID           string  `json:"usuario_id"`
	Name         string  `json:"nome"`
	Email        string  `json:"email"`
	Role         string  `json:"tipo"`
	DepartmentID *string `json:"departamento_id,omitempty"`
}

// userRequest additionally carries the plain-text password, which is accepted
// on writes and never echoed back.
type userRequest struct {
	Name         string  `json:"nome"`
	Email        string  `json:"email"`
	Password     string  `json:"senha"`
	Role         string  `json:"tipo"`
	DepartmentID *string `json:"departamento_id"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}

func toUserDTOs(users []*models.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

type spaceDTO struct {
	ID        string `json:"espaco_id"`
	Name      string `json:"nome"`
	Kind      string `json:"tipo"`
	Capacity  *int   `json:"capacidade,omitempty"`
	ManagerID string `json:"gestor_responsavel_id,omitempty"`
}

type spaceRequest struct {
	Name      string `json:"nome"`
	Kind      string `json:"tipo"`
	Capacity  *int   `json:"capacidade"`
	ManagerID string `json:"gestor_responsavel_id"`
}

func toSpaceDTO(s *models.Space) spaceDTO {
	return spaceDTO{
		ID:        s.ID,
		Name:      s.Name,
		Kind:      s.Kind,
		Capacity:  s.Capacity,
		ManagerID: s.ManagerID,
	}
}

func toSpaceDTOs(spaces []*models.Space) []spaceDTO {
	out := make([]spaceDTO, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, toSpaceDTO(s))
	}
	return out
}

type reservationDTO struct {
	ID            string    `json:"reserva_id"`
	SpaceID       string    `json:"espaco_id"`
	SpaceName     string    `json:"espaco_nome"`
	RequesterID   string    `json:"solicitante_id"`
	RequesterName string    `json:"solicitante_nome"`
	Purpose       string    `json:"finalidade,omitempty"`
	Participants  *int      `json:"num_participantes,omitempty"`
	Start         time.Time `json:"data_hora_inicio"`
	End           time.Time `json:"data_hora_fim"`
	Status        string    `json:"status"`
}

type reservationRequest struct {
	SpaceID      string    `json:"espaco_id"`
	Purpose      string    `json:"finalidade"`
	Participants *int      `json:"num_participantes"`
	Start        time.Time `json:"data_hora_inicio"`
	End          time.Time `json:"data_hora_fim"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func toReservationDTO(r *models.Reservation) reservationDTO {
	return reservationDTO{
		ID:            r.ID,
		SpaceID:       r.SpaceID,
		SpaceName:     r.SpaceName,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Purpose:       r.Purpose,
		Participants:  r.Participants,
		Start:         r.Start,
		End:           r.End,
		Status:        r.Status,
	}
}

func toReservationDTOs(reservations []*models.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationDTO(r))
	}
	return out
}

type departmentDTO struct {
	ID   string `json:"departamento_id"`
	Name string `json:"nome"`
}

type departmentRequest struct {
	Name string `json:"nome"`
}

func toDepartmentDTO(d *models.Department) departmentDTO {
	return departmentDTO{ID: d.ID, Name: d.Name}
}

func toDepartmentDTOs(deps []*models.Department) []departmentDTO {
	out := make([]departmentDTO, 0, len(deps))
	for _, d := range deps {
		out = append(out, toDepartmentDTO(d))
	}
	return out
}
