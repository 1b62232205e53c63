package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/reserva/internal/client/models"
)

// ReservationFilter narrows /api/reservas queries. Zero values are omitted.
// Statuses with more than one entry are sent as a comma-separated list.
type ReservationFilter struct {
	RequesterID string
	SpaceID     string
	Statuses    []string
}

func (f ReservationFilter) query() url.Values {
	q := url.Values{}
	if f.RequesterID != "" {
		q.Set("solicitante_id", f.RequesterID)
	}
	if f.SpaceID != "" {
		q.Set("espaco_id", f.SpaceID)
	}
	if len(f.Statuses) > 0 {
		q.Set("status", strings.Join(f.Statuses, ","))
	}
	return q
}

func (c *Client) Login(ctx context.Context, email, password string) (*Result, error) {
	payload := map[string]string{"email": email, "senha": password}
	return c.Do(ctx, http.MethodPost, "/api/login", nil, payload)
}

func (c *Client) Me(ctx context.Context) (*Result, error) {
	return c.Do(ctx, http.MethodGet, "/api/me", nil, nil)
}

func (c *Client) ListSpaces(ctx context.Context) (*Result, error) {
	return c.Do(ctx, http.MethodGet, "/api/espacos", nil, nil)
}

func (c *Client) AvailableSpaces(ctx context.Context, start, end time.Time, kind string) (*Result, error) {
	q := url.Values{}
	q.Set("inicio", start.Format(time.RFC3339))
	q.Set("fim", end.Format(time.RFC3339))
	if kind != "" {
		q.Set("tipo", kind)
	}
	return c.Do(ctx, http.MethodGet, "/api/espacos/disponiveis", q, nil)
}

func (c *Client) CreateSpace(ctx context.Context, space models.Space) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/api/espacos", nil, space)
}

func (c *Client) UpdateSpace(ctx context.Context, space models.Space) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/api/espacos/"+space.ID, nil, space)
}

func (c *Client) DeleteSpace(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, "/api/espacos/"+id, nil, nil)
}

func (c *Client) ListReservations(ctx context.Context, f ReservationFilter) (*Result, error) {
	return c.Do(ctx, http.MethodGet, "/api/reservas", f.query(), nil)
}

func (c *Client) CreateReservation(ctx context.Context, draft models.ReservationDraft) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/api/reservas", nil, draft)
}

func (c *Client) UpdateReservationStatus(ctx context.Context, id, status string) (*Result, error) {
	payload := map[string]string{"status": status}
	return c.Do(ctx, http.MethodPut, "/api/reservas/"+id+"/status", nil, payload)
}

func (c *Client) CancelReservation(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, "/api/reservas/"+id, nil, nil)
}

func (c *Client) ListDepartments(ctx context.Context) (*Result, error) {
	return c.Do(ctx, http.MethodGet, "/api/departamentos", nil, nil)
}

func (c *Client) CreateDepartment(ctx context.Context, dep models.Department) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/api/departamentos", nil, dep)
}

func (c *Client) UpdateDepartment(ctx context.Context, dep models.Department) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/api/departamentos/"+dep.ID, nil, dep)
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, "/api/departamentos/"+id, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) (*Result, error) {
	return c.Do(ctx, http.MethodGet, "/api/usuarios", nil, nil)
}

func (c *Client) CreateUser(ctx context.Context, user models.User) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/api/usuarios", nil, user)
}

// UpdateUser sends the user as-is; a blank Password is omitted from the
// payload so the stored password stays untouched.
func (c *Client) UpdateUser(ctx context.Context, user models.User) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/api/usuarios/"+user.ID, nil, user)
}

func (c *Client) DeleteUser(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, "/api/usuarios/"+id, nil, nil)
}
