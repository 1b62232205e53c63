package http

import (
	"encoding/json"
	"net/http"

	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/services"
)

type DepartmentHandler struct {
	departments *services.DepartmentService
	responder   responder
	logger      logging.Logger
}

func NewDepartmentHandler(svc *services.DepartmentService, logger logging.Logger) *DepartmentHandler {
	return &DepartmentHandler{departments: svc, responder: newResponder(logger), logger: logger}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	deps, err := h.departments.List(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDepartmentDTOs(deps))
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	dep, err := h.departments.Create(r.Context(), &models.Department{Name: req.Name})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toDepartmentDTO(dep))
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	dep, err := h.departments.Update(r.Context(), &models.Department{ID: id, Name: req.Name})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDepartmentDTO(dep))
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.departments.Delete(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
