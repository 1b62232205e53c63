package http

import (
	"encoding/json"
	"net/http"

	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server/services"
)

type AuthHandler struct {
	users     *services.UserService
	responder responder
	logger    logging.Logger
}

func NewAuthHandler(users *services.UserService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, responder: newResponder(logger), logger: logger}
}

// Login exchanges an email/password pair for a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "login refused", "email", req.Email)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, loginResponse{Token: token})
}

// Me returns the profile behind the presented token. A token whose user no
// longer exists yields 404, which clients treat as a forced logout.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	user, err := h.users.Me(r.Context(), claims.UserID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}

// actorFromContext converts verified claims into a service-level Actor.
func actorFromContext(r *http.Request) services.Actor {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return services.Actor{}
	}
	return services.Actor{ID: claims.UserID, Role: claims.Role}
}
