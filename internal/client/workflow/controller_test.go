package workflow

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/example/reserva/internal/client/gateway"
	"github.com/example/reserva/internal/client/models"
	"github.com/example/reserva/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	spacesRes *gateway.Result
	spacesErr error

	usersRes *gateway.Result
	usersErr error

	createRes *gateway.Result
	createErr error

	updateRes *gateway.Result
	updateErr error

	cancelRes *gateway.Result
	cancelErr error

	listFn    func(f gateway.ReservationFilter) (*gateway.Result, error)
	listCalls []gateway.ReservationFilter
}

func (f *fakeGateway) ListSpaces(ctx context.Context) (*gateway.Result, error) {
	return f.spacesRes, f.spacesErr
}

func (f *fakeGateway) ListUsers(ctx context.Context) (*gateway.Result, error) {
	return f.usersRes, f.usersErr
}

func (f *fakeGateway) ListReservations(ctx context.Context, filter gateway.ReservationFilter) (*gateway.Result, error) {
	f.listCalls = append(f.listCalls, filter)
	if f.listFn != nil {
		return f.listFn(filter)
	}
	return okJSON([]models.Reservation{}), nil
}

func (f *fakeGateway) CreateReservation(ctx context.Context, draft models.ReservationDraft) (*gateway.Result, error) {
	return f.createRes, f.createErr
}

func (f *fakeGateway) UpdateReservationStatus(ctx context.Context, id, status string) (*gateway.Result, error) {
	return f.updateRes, f.updateErr
}

func (f *fakeGateway) CancelReservation(ctx context.Context, id string) (*gateway.Result, error) {
	return f.cancelRes, f.cancelErr
}

type fakeSession struct {
	identity models.Identity
	ok       bool
}

func (f *fakeSession) Identity() (models.Identity, bool) {
	return f.identity, f.ok
}

func okJSON(v any) *gateway.Result {
	body, _ := json.Marshal(v)
	return &gateway.Result{OK: true, Status: 200, Body: body}
}

func errResult(status int, msg string) *gateway.Result {
	body, _ := json.Marshal(map[string]string{"erro": msg})
	return &gateway.Result{OK: false, Status: status, Body: body}
}

func newTestController(gw *fakeGateway, sess *fakeSession) *Controller {
	return NewController(gw, sess, logging.NewTextLogger(io.Discard))
}

func manager() *fakeSession {
	return &fakeSession{identity: models.Identity{ID: "m1", Role: models.RoleManager}, ok: true}
}

func student() *fakeSession {
	return &fakeSession{identity: models.Identity{ID: "s1", Role: models.RoleStudent}, ok: true}
}

func TestLoadSpaces_Success(t *testing.T) {
	gw := &fakeGateway{spacesRes: okJSON([]models.Space{{ID: "e1", Name: "Sala 101", Kind: models.KindClassroom}})}
	c := newTestController(gw, student())

	c.LoadSpaces(context.Background())

	assert.Equal(t, StateReady, c.State())
	require.Len(t, c.Spaces(), 1)
	assert.Equal(t, "Sala 101", c.Spaces()[0].Name)
	assert.Empty(t, c.Error())
}

func TestLoadSpaces_FailureKeepsPriorList(t *testing.T) {
	gw := &fakeGateway{spacesRes: okJSON([]models.Space{{ID: "e1"}})}
	c := newTestController(gw, student())
	c.LoadSpaces(context.Background())
	require.Len(t, c.Spaces(), 1)

	gw.spacesRes = errResult(500, "erro interno do servidor")
	c.LoadSpaces(context.Background())

	assert.Len(t, c.Spaces(), 1, "prior list must survive a failed refresh")
	assert.Equal(t, "erro interno do servidor", c.Error())
	assert.Equal(t, StateReady, c.State())
}

func TestSetParticipantCount_Coercion(t *testing.T) {
	c := newTestController(&fakeGateway{}, student())

	c.SetParticipantCount("12")
	require.NotNil(t, c.Draft().Participants)
	assert.Equal(t, 12, *c.Draft().Participants)

	c.SetParticipantCount("doze")
	assert.Nil(t, c.Draft().Participants, "unparseable input means absent")

	c.SetParticipantCount(" 7 ")
	require.NotNil(t, c.Draft().Participants)
	assert.Equal(t, 7, *c.Draft().Participants)

	c.SetParticipantCount("")
	assert.Nil(t, c.Draft().Participants)
}

func TestSubmitReservation_IncompleteDraft(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw, student())
	c.OpenForm()

	c.SubmitReservation(context.Background())

	assert.Equal(t, msgDraftIncomplete, c.Error())
	assert.True(t, c.FormOpen())
	assert.Empty(t, gw.listCalls, "no refresh on local validation failure")
}

func TestSubmitReservation_FailureKeepsFormOpen(t *testing.T) {
	gw := &fakeGateway{createRes: errResult(409, "espaço já reservado neste horário")}
	c := newTestController(gw, student())
	c.OpenForm()
	c.SelectSpaceForBooking(context.Background(), models.Space{ID: "e1"})
	c.SetWindow(time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	c.SubmitReservation(context.Background())

	assert.True(t, c.FormOpen(), "form stays open so the user can adjust")
	assert.Equal(t, "espaço já reservado neste horário", c.Error())
	assert.False(t, c.Submitting())
}

func TestSubmitReservation_SuccessClosesFormAndRefreshes(t *testing.T) {
	gw := &fakeGateway{createRes: okJSON(models.Reservation{ID: "r1"})}
	c := newTestController(gw, student())
	c.OpenForm()
	c.SelectSpaceForBooking(context.Background(), models.Space{ID: "e1"})
	c.SetWindow(time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	calls := len(gw.listCalls)

	c.SubmitReservation(context.Background())

	assert.False(t, c.FormOpen())
	assert.Empty(t, c.Error())
	assert.Greater(t, len(gw.listCalls), calls, "list refreshes after success")
}

func TestListReservations_NonManagerSeesOnlyOwn(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw, student())

	c.SetFilters(context.Background(), Filters{RequesterID: "someone-else", Status: "pendente"})

	require.Len(t, gw.listCalls, 1)
	assert.Equal(t, "s1", gw.listCalls[0].RequesterID, "requester filter is overridden with own id")
	assert.Equal(t, []string{"pendente"}, gw.listCalls[0].Statuses)
}

func TestListReservations_ManagerKeepsFilter(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw, manager())

	c.SetFilters(context.Background(), Filters{RequesterID: "u9", SpaceID: "e2", Status: "pendente,confirmada"})

	require.Len(t, gw.listCalls, 1)
	assert.Equal(t, "u9", gw.listCalls[0].RequesterID)
	assert.Equal(t, "e2", gw.listCalls[0].SpaceID)
	assert.Equal(t, []string{"pendente", "confirmada"}, gw.listCalls[0].Statuses)
}

func TestListReservations_StaleResponseDiscarded(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw, manager())

	old := []models.Reservation{{ID: "old"}}
	fresh := []models.Reservation{{ID: "fresh"}}

	first := true
	gw.listFn = func(f gateway.ReservationFilter) (*gateway.Result, error) {
		if first {
			first = false
			// a newer query is issued while this one is still in flight
			inner := gw.listFn
			gw.listFn = func(gateway.ReservationFilter) (*gateway.Result, error) {
				return okJSON(fresh), nil
			}
			c.ListReservations(context.Background())
			gw.listFn = inner
			return okJSON(old), nil
		}
		return okJSON(fresh), nil
	}

	c.ListReservations(context.Background())

	require.Len(t, c.Reservations(), 1)
	assert.Equal(t, "fresh", c.Reservations()[0].ID, "slow first response must not overwrite newer data")
}

func TestUpdateStatus_RefreshOnlyOnSuccess(t *testing.T) {
	gw := &fakeGateway{updateRes: errResult(409, "transição de status inválida")}
	c := newTestController(gw, manager())

	c.UpdateStatus(context.Background(), "r1", models.StatusConfirmed)
	assert.Empty(t, gw.listCalls)
	assert.Equal(t, "transição de status inválida", c.Error())

	gw.updateRes = okJSON(models.Reservation{ID: "r1", Status: models.StatusConfirmed})
	c.UpdateStatus(context.Background(), "r1", models.StatusConfirmed)
	assert.Len(t, gw.listCalls, 1)
}

func TestCancelReservation_TransportFailure(t *testing.T) {
	gw := &fakeGateway{cancelErr: gateway.ErrUnavailable}
	c := newTestController(gw, student())

	c.CancelReservation(context.Background(), "r1")

	assert.Equal(t, msgCancelFailed, c.Error())
	assert.Empty(t, gw.listCalls)
}

func TestSelectSpaceForBooking_OccupiedSlots(t *testing.T) {
	busy := []models.Reservation{{ID: "r1", Status: models.StatusConfirmed}}
	gw := &fakeGateway{listFn: func(f gateway.ReservationFilter) (*gateway.Result, error) {
		return okJSON(busy), nil
	}}
	c := newTestController(gw, student())
	c.OpenForm()

	c.SelectSpaceForBooking(context.Background(), models.Space{ID: "e1"})

	assert.Equal(t, "e1", c.Draft().SpaceID)
	require.Len(t, c.OccupiedSlots(), 1)
	require.Len(t, gw.listCalls, 1)
	assert.Equal(t, "e1", gw.listCalls[0].SpaceID)
	assert.ElementsMatch(t, []string{models.StatusPending, models.StatusConfirmed}, gw.listCalls[0].Statuses)
}

func TestErrorAutoDismiss(t *testing.T) {
	gw := &fakeGateway{spacesErr: gateway.ErrUnavailable}
	c := newTestController(gw, student())
	c.SetErrorTTL(20 * time.Millisecond)

	c.LoadSpaces(context.Background())
	require.Equal(t, msgLoadSpacesFailed, c.Error())

	assert.Eventually(t, func() bool { return c.Error() == "" }, time.Second, 5*time.Millisecond)
}

func TestClearError(t *testing.T) {
	gw := &fakeGateway{spacesErr: gateway.ErrUnavailable}
	c := newTestController(gw, student())

	c.LoadSpaces(context.Background())
	require.NotEmpty(t, c.Error())

	c.ClearError()
	assert.Empty(t, c.Error())
}
