package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/logging"
)

// errorResponse is the uniform error envelope of the API.
type errorResponse struct {
	Message string `json:"erro"`
}

type responder struct {
	logger logging.Logger
}

func newResponder(logger logging.Logger) responder {
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.logger.Error(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps service-layer sentinel errors onto HTTP statuses.
// Anything unrecognized becomes an opaque 500.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		r.writeError(ctx, w, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, common.ErrInvalidCredentials):
		r.writeError(ctx, w, http.StatusUnauthorized, "email ou senha inválidos")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		r.writeError(ctx, w, http.StatusUnauthorized, "token inválido ou expirado")
	case errors.Is(err, common.ErrorForbidden):
		r.writeError(ctx, w, http.StatusForbidden, "permissão negada")
	case errors.Is(err, common.ErrorNotFound):
		r.writeError(ctx, w, http.StatusNotFound, "registro não encontrado")
	case errors.Is(err, common.ErrorConflict):
		r.writeError(ctx, w, http.StatusConflict, "espaço já reservado neste horário")
	case errors.Is(err, common.ErrorInvalidTransition):
		r.writeError(ctx, w, http.StatusConflict, "transição de status inválida")
	default:
		r.logger.Error(ctx, "unhandled service error", "error", err)
		r.writeError(ctx, w, http.StatusInternalServerError, "erro interno do servidor")
	}
}
