// Package workflow orchestrates the reservation screens: loading spaces,
// building a draft reservation, surfacing occupied slots for the chosen
// space, submitting, and reacting to approval/rejection/cancellation. It
// renders no UI itself; the view reads its state after each operation.
package workflow

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/reserva/internal/client/gateway"
	"github.com/example/reserva/internal/client/models"
	"github.com/example/reserva/internal/logging"
)

// Gateway is the subset of the API client the controller needs.
type Gateway interface {
	ListSpaces(ctx context.Context) (*gateway.Result, error)
	ListUsers(ctx context.Context) (*gateway.Result, error)
	ListReservations(ctx context.Context, f gateway.ReservationFilter) (*gateway.Result, error)
	CreateReservation(ctx context.Context, draft models.ReservationDraft) (*gateway.Result, error)
	UpdateReservationStatus(ctx context.Context, id, status string) (*gateway.Result, error)
	CancelReservation(ctx context.Context, id string) (*gateway.Result, error)
}

// SessionInfo exposes the resolved identity of the current session.
// *session.Store satisfies this.
type SessionInfo interface {
	Identity() (models.Identity, bool)
}

// State of the space list.
type State int

const (
	StateIdle State = iota
	StateLoadingSpaces
	StateReady
)

// Filters narrows the reservation list. For non-manager identities the
// requester filter is always overridden with the caller's own id.
type Filters struct {
	RequesterID string
	SpaceID     string
	Status      string
}

const defaultErrorTTL = 5 * time.Second

// Fallback messages shown when the server supplies none.
const (
	msgLoadSpacesFailed       = "Falha ao carregar espaços."
	msgLoadSupportDataFailed  = "Falha ao carregar dados de apoio."
	msgLoadReservationsFailed = "Falha ao carregar reservas."
	msgCreateFailed           = "Falha ao criar reserva."
	msgUpdateStatusFailed     = "Falha ao atualizar status da reserva."
	msgCancelFailed           = "Falha ao cancelar reserva."
	msgDraftIncomplete        = "Escolha um espaço e informe início e fim."
)

type Controller struct {
	gw     Gateway
	sess   SessionInfo
	logger logging.Logger

	errorTTL time.Duration
	now      func() time.Time

	mu           sync.Mutex
	state        State
	spaces       []models.Space
	users        []models.User
	reservations []models.Reservation
	filters      Filters
	listSeq      uint64

	formOpen   bool
	submitting bool
	draft      models.ReservationDraft
	occupied   []models.Reservation

	errMsg   string
	errTimer *time.Timer
}

func NewController(gw Gateway, sess SessionInfo, logger logging.Logger) *Controller {
	return &Controller{
		gw:       gw,
		sess:     sess,
		logger:   logger.With("module", "workflow"),
		errorTTL: defaultErrorTTL,
		now:      time.Now,
	}
}

// SetErrorTTL overrides how long a transient error stays visible.
func (c *Controller) SetErrorTTL(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorTTL = d
}

// LoadSpaces fetches all spaces; available without authentication. On
// failure the prior list stays intact and a transient error is recorded.
func (c *Controller) LoadSpaces(ctx context.Context) {
	c.mu.Lock()
	prev := c.state
	c.state = StateLoadingSpaces
	c.mu.Unlock()

	res, err := c.gw.ListSpaces(ctx)
	if err != nil || !res.OK {
		c.setError(errorMessage(res, err, msgLoadSpacesFailed))
		c.mu.Lock()
		c.state = prev
		c.mu.Unlock()
		return
	}

	var spaces []models.Space
	if err := res.Decode(&spaces); err != nil {
		c.setError(msgLoadSpacesFailed)
		c.mu.Lock()
		c.state = prev
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.spaces = spaces
	c.state = StateReady
	c.mu.Unlock()
}

// LoadSupportData fetches the reference lists backing the manager filters
// (all users, all spaces). Failures are recorded but never block the
// reservation listing itself.
func (c *Controller) LoadSupportData(ctx context.Context) {
	res, err := c.gw.ListUsers(ctx)
	if err != nil || !res.OK {
		c.setError(msgLoadSupportDataFailed)
	} else {
		var users []models.User
		if err := res.Decode(&users); err == nil {
			c.mu.Lock()
			c.users = users
			c.mu.Unlock()
		} else {
			c.setError(msgLoadSupportDataFailed)
		}
	}

	c.LoadSpaces(ctx)
}

// OpenForm resets the draft and opens the reservation form.
func (c *Controller) OpenForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = models.ReservationDraft{}
	c.occupied = nil
	c.formOpen = true
}

func (c *Controller) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = false
}

// SelectSpaceForBooking records the chosen space in the draft and fetches
// the pending/confirmed reservations of that space so the view can show
// occupied windows. The listing is advisory only: submission is never
// blocked locally on overlap, the server stays the sole conflict authority.
func (c *Controller) SelectSpaceForBooking(ctx context.Context, space models.Space) {
	c.mu.Lock()
	c.draft.SpaceID = space.ID
	c.mu.Unlock()

	res, err := c.gw.ListReservations(ctx, gateway.ReservationFilter{
		SpaceID:  space.ID,
		Statuses: []string{models.StatusPending, models.StatusConfirmed},
	})

	var occupied []models.Reservation
	if err == nil && res.OK {
		if derr := res.Decode(&occupied); derr != nil {
			occupied = nil
		}
	}

	c.mu.Lock()
	c.occupied = occupied
	c.mu.Unlock()
}

// SetPurpose records the draft purpose as typed; the server validates it.
func (c *Controller) SetPurpose(purpose string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Purpose = purpose
}

// SetParticipantCount coerces the typed value to an integer. Anything that
// does not parse is treated as absent; the server decides whether that is
// acceptable.
func (c *Controller) SetParticipantCount(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.draft.Participants = nil
		return
	}
	c.draft.Participants = &n
}

// SetWindow records the requested start and end. No range check happens
// client-side.
func (c *Controller) SetWindow(start, end time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Start = start
	c.draft.End = end
}

// SubmitReservation posts the draft. On success the form closes and the
// reservation list refreshes; on failure the form stays open and the
// server's message (or a generic fallback) is shown for a bounded duration.
func (c *Controller) SubmitReservation(ctx context.Context) {
	c.mu.Lock()
	draft := c.draft
	if draft.SpaceID == "" || draft.Start.IsZero() || draft.End.IsZero() {
		c.mu.Unlock()
		c.setError(msgDraftIncomplete)
		return
	}
	c.submitting = true
	c.mu.Unlock()

	res, err := c.gw.CreateReservation(ctx, draft)

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil || !res.OK {
		c.setError(errorMessage(res, err, msgCreateFailed))
		return
	}

	c.mu.Lock()
	c.formOpen = false
	c.mu.Unlock()
	c.ListReservations(ctx)
}

// UpdateStatus approves or rejects a pending reservation. The view gates
// this on the manager role; authorization is enforced again server-side.
// The list refreshes only after a confirmed success.
func (c *Controller) UpdateStatus(ctx context.Context, reservationID, status string) {
	res, err := c.gw.UpdateReservationStatus(ctx, reservationID, status)
	if err != nil || !res.OK {
		c.setError(errorMessage(res, err, msgUpdateStatusFailed))
		return
	}
	c.ListReservations(ctx)
}

// CancelReservation cancels one of the caller's own reservations.
func (c *Controller) CancelReservation(ctx context.Context, reservationID string) {
	res, err := c.gw.CancelReservation(ctx, reservationID)
	if err != nil || !res.OK {
		c.setError(errorMessage(res, err, msgCancelFailed))
		return
	}
	c.ListReservations(ctx)
}

// SetFilters stores the filters and re-runs the listing.
func (c *Controller) SetFilters(ctx context.Context, f Filters) {
	c.mu.Lock()
	c.filters = f
	c.mu.Unlock()
	c.ListReservations(ctx)
}

// ListReservations fetches the reservation list for the current filters.
// Non-manager identities always see only their own reservations, whatever
// requester filter was supplied. Each call carries a sequence number;
// responses that are no longer the latest issued query are discarded so a
// slow response cannot overwrite newer data.
func (c *Controller) ListReservations(ctx context.Context) {
	c.mu.Lock()
	f := gateway.ReservationFilter{
		RequesterID: c.filters.RequesterID,
		SpaceID:     c.filters.SpaceID,
	}
	if c.filters.Status != "" {
		f.Statuses = strings.Split(c.filters.Status, ",")
	}
	if identity, ok := c.sess.Identity(); ok && !identity.IsManager() {
		f.RequesterID = identity.ID
	}
	c.listSeq++
	seq := c.listSeq
	c.mu.Unlock()

	res, err := c.gw.ListReservations(ctx, f)

	c.mu.Lock()
	stale := seq != c.listSeq
	c.mu.Unlock()
	if stale {
		c.logger.Debug(ctx, "discarding stale reservation list", "seq", seq)
		return
	}

	if err != nil || !res.OK {
		c.setError(errorMessage(res, err, msgLoadReservationsFailed))
		return
	}

	var reservations []models.Reservation
	if err := res.Decode(&reservations); err != nil {
		c.setError(msgLoadReservationsFailed)
		return
	}

	c.mu.Lock()
	c.reservations = reservations
	c.mu.Unlock()
}

// setError records a transient user-visible message that auto-dismisses
// after the configured duration.
func (c *Controller) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errMsg = msg
	if c.errTimer != nil {
		c.errTimer.Stop()
	}
	c.errTimer = time.AfterFunc(c.errorTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.errMsg == msg {
			c.errMsg = ""
		}
	})
}

// ClearError dismisses the current message immediately.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
	if c.errTimer != nil {
		c.errTimer.Stop()
		c.errTimer = nil
	}
}

func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Spaces() []models.Space {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spaces
}

func (c *Controller) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users
}

func (c *Controller) Reservations() []models.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservations
}

func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

func (c *Controller) Draft() models.ReservationDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) OccupiedSlots() []models.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.occupied
}

func (c *Controller) FormOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formOpen
}

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Now is the controller's clock; the view uses it for cancel gating.
func (c *Controller) Now() time.Time {
	return c.now()
}

func errorMessage(res *gateway.Result, err error, fallback string) string {
	if err != nil || res == nil {
		return fallback
	}
	return res.ErrorMessage(fallback)
}
