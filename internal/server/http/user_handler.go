package http

import (
	"encoding/json"
	"net/http"

	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/services"
)

type UserHandler struct {
	users     *services.UserService
	responder responder
	logger    logging.Logger
}

func NewUserHandler(users *services.UserService, logger logging.Logger) *UserHandler {
	return &UserHandler{users: users, responder: newResponder(logger), logger: logger}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTOs(users))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	user, err := h.users.Create(r.Context(), &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
	}, req.Password)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.logger.Info(r.Context(), "user created", "user_id", user.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toUserDTO(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	user, err := h.users.Update(r.Context(), &models.User{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
	}, req.Password)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.users.Delete(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
