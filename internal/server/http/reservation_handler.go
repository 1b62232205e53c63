package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/repositories/reservations"
	"github.com/example/reserva/internal/server/services"
)

type ReservationHandler struct {
	reservations *services.ReservationService
	responder    responder
	logger       logging.Logger
}

func NewReservationHandler(svc *services.ReservationService, logger logging.Logger) *ReservationHandler {
	return &ReservationHandler{reservations: svc, responder: newResponder(logger), logger: logger}
}

// List returns reservations filtered by solicitante_id, espaco_id and status
// (comma-separated). Non-managers only ever receive their own reservations.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := reservations.ListFilter{
		RequesterID: q.Get("solicitante_id"),
		SpaceID:     q.Get("espaco_id"),
	}
	if raw := q.Get("status"); raw != "" {
		statuses, err := services.ParseStatuses(strings.Split(raw, ","))
		if err != nil {
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		filter.Statuses = statuses
	}

	result, err := h.reservations.List(r.Context(), actorFromContext(r), filter)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toReservationDTOs(result))
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	actor := actorFromContext(r)
	created, err := h.reservations.Create(r.Context(), actor, &models.Reservation{
		SpaceID:      req.SpaceID,
		Purpose:      req.Purpose,
		Participants: req.Participants,
		Start:        req.Start,
		End:          req.End,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.logger.Info(r.Context(), "reservation created",
		"reservation_id", created.ID, "space_id", created.SpaceID, "requester_id", actor.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toReservationDTO(created))
}

// UpdateStatus reviews a pending reservation (manager only).
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	updated, err := h.reservations.UpdateStatus(r.Context(), actorFromContext(r), id, req.Status)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.logger.Info(r.Context(), "reservation reviewed", "reservation_id", id, "status", req.Status)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toReservationDTO(updated))
}

// Cancel marks the caller's own reservation as cancelled.
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.reservations.Cancel(r.Context(), actorFromContext(r), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.logger.Info(r.Context(), "reservation cancelled", "reservation_id", id)
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
