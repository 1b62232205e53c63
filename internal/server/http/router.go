// Package http exposes the reservation API over plain net/http. Routing is a
// hand-rolled ServeMux with per-route middleware so that public, authenticated
// and manager-only endpoints can share a path prefix.
package http

import (
	"net/http"
	"strings"

	"github.com/example/reserva/internal/logging"
)

type RouterConfig struct {
	Auth         *AuthHandler
	Spaces       *SpaceHandler
	Reservations *ReservationHandler
	Departments  *DepartmentHandler
	Users        *UserHandler
	SecretKey    []byte
	Logger       logging.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	requireToken := RequireToken(cfg.SecretKey, cfg.Logger)
	requireManager := RequireManager(cfg.Logger)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return requireToken(h).ServeHTTP
	}
	manager := func(h http.HandlerFunc) http.HandlerFunc {
		return requireToken(requireManager(h)).ServeHTTP
	}

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		cfg.Auth.Login(w, r)
	})

	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		authed(cfg.Auth.Me)(w, r)
	})

	mux.HandleFunc("/api/espacos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.Spaces.List(w, r)
		case http.MethodPost:
			manager(cfg.Spaces.Create)(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc("/api/espacos/disponiveis", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		cfg.Spaces.Available(w, r)
	})

	mux.HandleFunc("/api/espacos/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/espacos/")
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			manager(func(w http.ResponseWriter, r *http.Request) { cfg.Spaces.Update(w, r, id) })(w, r)
		case http.MethodDelete:
			manager(func(w http.ResponseWriter, r *http.Request) { cfg.Spaces.Delete(w, r, id) })(w, r)
		default:
			methodNotAllowed(w, http.MethodPut, http.MethodDelete)
		}
	})

	mux.HandleFunc("/api/reservas", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authed(cfg.Reservations.List)(w, r)
		case http.MethodPost:
			authed(cfg.Reservations.Create)(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc("/api/reservas/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/reservas/")
		if rest == "" {
			http.NotFound(w, r)
			return
		}
		if id, ok := strings.CutSuffix(rest, "/status"); ok {
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			authed(func(w http.ResponseWriter, r *http.Request) { cfg.Reservations.UpdateStatus(w, r, id) })(w, r)
			return
		}
		if strings.Contains(rest, "/") {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodDelete {
			methodNotAllowed(w, http.MethodDelete)
			return
		}
		authed(func(w http.ResponseWriter, r *http.Request) { cfg.Reservations.Cancel(w, r, rest) })(w, r)
	})

	mux.HandleFunc("/api/departamentos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authed(cfg.Departments.List)(w, r)
		case http.MethodPost:
			manager(cfg.Departments.Create)(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc("/api/departamentos/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/departamentos/")
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			manager(func(w http.ResponseWriter, r *http.Request) { cfg.Departments.Update(w, r, id) })(w, r)
		case http.MethodDelete:
			manager(func(w http.ResponseWriter, r *http.Request) { cfg.Departments.Delete(w, r, id) })(w, r)
		default:
			methodNotAllowed(w, http.MethodPut, http.MethodDelete)
		}
	})

	mux.HandleFunc("/api/usuarios", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			manager(cfg.Users.List)(w, r)
		case http.MethodPost:
			manager(cfg.Users.Create)(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc("/api/usuarios/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/usuarios/")
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			manager(func(w http.ResponseWriter, r *http.Request) { cfg.Users.Update(w, r, id) })(w, r)
		case http.MethodDelete:
			manager(func(w http.ResponseWriter, r *http.Request) { cfg.Users.Delete(w, r, id) })(w, r)
		default:
			methodNotAllowed(w, http.MethodPut, http.MethodDelete)
		}
	})

	return RequestLogger(cfg.Logger)(mux)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
