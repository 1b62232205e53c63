package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/services"
)

type SpaceHandler struct {
	spaces    *services.SpaceService
	responder responder
	logger    logging.Logger
}

func NewSpaceHandler(spaces *services.SpaceService, logger logging.Logger) *SpaceHandler {
	return &SpaceHandler{spaces: spaces, responder: newResponder(logger), logger: logger}
}

func (h *SpaceHandler) List(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.spaces.List(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSpaceDTOs(spaces))
}

// Available answers the availability query. inicio and fim are required
// RFC 3339 timestamps, tipo is an optional kind filter.
func (h *SpaceHandler) Available(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.Parse(time.RFC3339, q.Get("inicio"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "parâmetro inicio inválido")
		return
	}
	end, err := time.Parse(time.RFC3339, q.Get("fim"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "parâmetro fim inválido")
		return
	}

	spaces, err := h.spaces.Available(r.Context(), start, end, q.Get("tipo"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSpaceDTOs(spaces))
}

func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req spaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	space, err := h.spaces.Create(r.Context(), &models.Space{
		Name:      req.Name,
		Kind:      req.Kind,
		Capacity:  req.Capacity,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.logger.Info(r.Context(), "space created", "space_id", space.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toSpaceDTO(space))
}

func (h *SpaceHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req spaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	space, err := h.spaces.Update(r.Context(), &models.Space{
		ID:        id,
		Name:      req.Name,
		Kind:      req.Kind,
		Capacity:  req.Capacity,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSpaceDTO(space))
}

func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.spaces.Delete(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
