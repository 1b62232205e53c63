package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/dbx"
	"github.com/example/reserva/internal/server/config"
	"github.com/example/reserva/internal/server/models"
	departmentsrepo "github.com/example/reserva/internal/server/repositories/departments"
	reservationsrepo "github.com/example/reserva/internal/server/repositories/reservations"
	spacesrepo "github.com/example/reserva/internal/server/repositories/spaces"
	usersrepo "github.com/example/reserva/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes shared by the service tests ---

type fakeRM struct {
	users        usersrepo.Repository
	spaces       spacesrepo.Repository
	reservations reservationsrepo.Repository
	departments  departmentsrepo.Repository
}

func (f *fakeRM) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRM) Users(dbx.DBTX) usersrepo.Repository          { return f.users }
func (f *fakeRM) Spaces(dbx.DBTX) spacesrepo.Repository        { return f.spaces }
func (f *fakeRM) Reservations(dbx.DBTX) reservationsrepo.Repository {
	return f.reservations
}
func (f *fakeRM) Departments(dbx.DBTX) departmentsrepo.Repository { return f.departments }

type fakeSpacesRepo struct {
	getOut *models.Space
	getErr error
}

func (f *fakeSpacesRepo) Create(ctx context.Context, s *models.Space) (*models.Space, error) {
	return s, nil
}
func (f *fakeSpacesRepo) GetByID(ctx context.Context, id string) (*models.Space, error) {
	return f.getOut, f.getErr
}
func (f *fakeSpacesRepo) List(ctx context.Context, kind string) ([]*models.Space, error) {
	return nil, nil
}
func (f *fakeSpacesRepo) Update(ctx context.Context, s *models.Space) (*models.Space, error) {
	return s, nil
}
func (f *fakeSpacesRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeResRepo struct {
	listOut   []*models.Reservation
	listErr   error
	listCalls []reservationsrepo.ListFilter

	getOut *models.Reservation
	getErr error

	created   *models.Reservation
	createErr error

	statusUpdates []string
	updateErr     error
}

func (f *fakeResRepo) Create(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = r
	return r, nil
}

func (f *fakeResRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	return f.getOut, f.getErr
}

func (f *fakeResRepo) List(ctx context.Context, filter reservationsrepo.ListFilter) ([]*models.Reservation, error) {
	f.listCalls = append(f.listCalls, filter)
	return f.listOut, f.listErr
}

func (f *fakeResRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeResRepo) Delete(ctx context.Context, id string) error { return nil }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newReservationService(t *testing.T, db *sql.DB, rm *fakeRM) *ReservationService {
	t.Helper()
	svc := NewReservationService(db, rm, &config.Config{})
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func window(startHour, endHour int) (time.Time, time.Time) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(startHour) * time.Hour), day.Add(time.Duration(endHour) * time.Hour)
}

// --- Create ---

func TestReservationCreate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	resRepo := &fakeResRepo{}
	rm := &fakeRM{reservations: resRepo, spaces: &fakeSpacesRepo{getOut: &models.Space{ID: "e1"}}}
	svc := newReservationService(t, db, rm)

	mock.ExpectBegin()
	mock.ExpectCommit()

	start, end := window(10, 12)
	created, err := svc.Create(context.Background(), Actor{ID: "u1", Role: models.RoleStudent}, &models.Reservation{
		SpaceID: "e1",
		Purpose: "Aula de revisão",
		Start:   start,
		End:     end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "u1", created.RequesterID, "requester is always the actor")
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, resRepo.listCalls, 1)
	assert.Equal(t, "e1", resRepo.listCalls[0].SpaceID)
	assert.ElementsMatch(t, []string{models.StatusPending, models.StatusConfirmed}, resRepo.listCalls[0].Statuses)
}

func TestReservationCreate_Conflict(t *testing.T) {
	db, mock := newSQLMockDB(t)
	start, end := window(10, 12)
	resRepo := &fakeResRepo{listOut: []*models.Reservation{{ID: "other", Start: start, End: end}}}
	rm := &fakeRM{reservations: resRepo, spaces: &fakeSpacesRepo{getOut: &models.Space{ID: "e1"}}}
	svc := newReservationService(t, db, rm)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), Actor{ID: "u1"}, &models.Reservation{
		SpaceID: "e1", Purpose: "Reunião", Start: start, End: end,
	})
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.Nil(t, resRepo.created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationCreate_UnknownSpace(t *testing.T) {
	db, mock := newSQLMockDB(t)
	rm := &fakeRM{reservations: &fakeResRepo{}, spaces: &fakeSpacesRepo{getErr: common.ErrorNotFound}}
	svc := newReservationService(t, db, rm)

	mock.ExpectBegin()
	mock.ExpectRollback()

	start, end := window(10, 12)
	_, err := svc.Create(context.Background(), Actor{ID: "u1"}, &models.Reservation{
		SpaceID: "missing", Purpose: "Reunião", Start: start, End: end,
	})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestReservationCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	svc := newReservationService(t, db, &fakeRM{reservations: &fakeResRepo{}, spaces: &fakeSpacesRepo{}})

	start, end := window(10, 12)
	past := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	negative := -3

	tests := []struct {
		name string
		res  *models.Reservation
	}{
		{"missing space", &models.Reservation{Purpose: "Aula", Start: start, End: end}},
		{"missing purpose", &models.Reservation{SpaceID: "e1", Start: start, End: end}},
		{"missing window", &models.Reservation{SpaceID: "e1", Purpose: "Aula"}},
		{"end before start", &models.Reservation{SpaceID: "e1", Purpose: "Aula", Start: end, End: start}},
		{"zero-length window", &models.Reservation{SpaceID: "e1", Purpose: "Aula", Start: start, End: start}},
		{"start in the past", &models.Reservation{SpaceID: "e1", Purpose: "Aula", Start: past, End: end}},
		{"non-positive participants", &models.Reservation{SpaceID: "e1", Purpose: "Aula", Start: start, End: end, Participants: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), Actor{ID: "u1"}, tt.res)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

// --- UpdateStatus ---

func TestReservationUpdateStatus_ManagerOnly(t *testing.T) {
	db, _ := newSQLMockDB(t)
	svc := newReservationService(t, db, &fakeRM{reservations: &fakeResRepo{}})

	_, err := svc.UpdateStatus(context.Background(), Actor{ID: "u1", Role: models.RoleProfessor}, "r1", models.StatusConfirmed)
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestReservationUpdateStatus_InvalidTarget(t *testing.T) {
	db, _ := newSQLMockDB(t)
	svc := newReservationService(t, db, &fakeRM{reservations: &fakeResRepo{}})

	for _, target := range []string{models.StatusPending, models.StatusCancelled, "qualquer"} {
		_, err := svc.UpdateStatus(context.Background(), Actor{ID: "g1", Role: models.RoleManager}, "r1", target)
		assert.ErrorIs(t, err, common.ErrorInvalidTransition, "target %q", target)
	}
}

func TestReservationUpdateStatus_OnlyPendingReviewable(t *testing.T) {
	db, mock := newSQLMockDB(t)
	resRepo := &fakeResRepo{getOut: &models.Reservation{ID: "r1", Status: models.StatusConfirmed}}
	svc := newReservationService(t, db, &fakeRM{reservations: resRepo})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.UpdateStatus(context.Background(), Actor{ID: "g1", Role: models.RoleManager}, "r1", models.StatusRejected)
	assert.ErrorIs(t, err, common.ErrorInvalidTransition)
	assert.Empty(t, resRepo.statusUpdates)
}

func TestReservationUpdateStatus_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	resRepo := &fakeResRepo{getOut: &models.Reservation{ID: "r1", Status: models.StatusPending}}
	svc := newReservationService(t, db, &fakeRM{reservations: resRepo})

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.UpdateStatus(context.Background(), Actor{ID: "g1", Role: models.RoleManager}, "r1", models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []string{models.StatusConfirmed}, resRepo.statusUpdates)
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- Cancel ---

func cancelFixture(status string, start time.Time) *fakeResRepo {
	return &fakeResRepo{getOut: &models.Reservation{
		ID: "r1", RequesterID: "u1", Status: status, Start: start,
	}}
}

func TestReservationCancel_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	start, _ := window(10, 12)
	resRepo := cancelFixture(models.StatusConfirmed, start)
	svc := newReservationService(t, db, &fakeRM{reservations: resRepo})

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, svc.Cancel(context.Background(), Actor{ID: "u1"}, "r1"))
	assert.Equal(t, []string{models.StatusCancelled}, resRepo.statusUpdates)
}

func TestReservationCancel_NotRequester(t *testing.T) {
	db, mock := newSQLMockDB(t)
	start, _ := window(10, 12)
	svc := newReservationService(t, db, &fakeRM{reservations: cancelFixture(models.StatusPending, start)})

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Cancel(context.Background(), Actor{ID: "outro"}, "r1")
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestReservationCancel_AlreadyDecided(t *testing.T) {
	start, _ := window(10, 12)
	for _, status := range []string{models.StatusRejected, models.StatusCancelled} {
		db, mock := newSQLMockDB(t)
		svc := newReservationService(t, db, &fakeRM{reservations: cancelFixture(status, start)})

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := svc.Cancel(context.Background(), Actor{ID: "u1"}, "r1")
		assert.ErrorIs(t, err, common.ErrorInvalidTransition, "status %q", status)
	}
}

func TestReservationCancel_AlreadyStarted(t *testing.T) {
	db, mock := newSQLMockDB(t)
	started := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC) // before the fixed clock
	svc := newReservationService(t, db, &fakeRM{reservations: cancelFixture(models.StatusConfirmed, started)})

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Cancel(context.Background(), Actor{ID: "u1"}, "r1")
	assert.ErrorIs(t, err, common.ErrorInvalidTransition)
}

// --- List ---

func TestReservationList_NonManagerForcedToOwn(t *testing.T) {
	db, _ := newSQLMockDB(t)
	resRepo := &fakeResRepo{}
	svc := newReservationService(t, db, &fakeRM{reservations: resRepo})

	_, err := svc.List(context.Background(), Actor{ID: "u1", Role: models.RoleStudent},
		reservationsrepo.ListFilter{RequesterID: "someone-else"})
	require.NoError(t, err)
	require.Len(t, resRepo.listCalls, 1)
	assert.Equal(t, "u1", resRepo.listCalls[0].RequesterID)
}

func TestReservationList_ManagerFilterUntouched(t *testing.T) {
	db, _ := newSQLMockDB(t)
	resRepo := &fakeResRepo{}
	svc := newReservationService(t, db, &fakeRM{reservations: resRepo})

	_, err := svc.List(context.Background(), Actor{ID: "g1", Role: models.RoleManager},
		reservationsrepo.ListFilter{RequesterID: "u9", Statuses: []string{models.StatusPending}})
	require.NoError(t, err)
	require.Len(t, resRepo.listCalls, 1)
	assert.Equal(t, "u9", resRepo.listCalls[0].RequesterID)
}

func TestParseStatuses(t *testing.T) {
	got, err := ParseStatuses([]string{"pendente", "confirmada"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pendente", "confirmada"}, got)

	_, err = ParseStatuses([]string{"pendente", "aprovadíssima"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}
