package services

import (
	"context"
	"testing"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/server/config"
	"github.com/example/reserva/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingSpacesRepo struct {
	fakeSpacesRepo
	listOut   []*models.Space
	listKinds []string
}

func (f *listingSpacesRepo) List(ctx context.Context, kind string) ([]*models.Space, error) {
	f.listKinds = append(f.listKinds, kind)
	return f.listOut, nil
}

func TestSpaceAvailable_ExcludesOccupied(t *testing.T) {
	db, _ := newSQLMockDB(t)
	start, end := window(10, 12)

	spacesRepo := &listingSpacesRepo{listOut: []*models.Space{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}}
	resRepo := &fakeResRepo{listOut: []*models.Reservation{
		{ID: "r1", SpaceID: "e2", Status: models.StatusConfirmed},
	}}
	svc := NewSpaceService(db, &fakeRM{spaces: spacesRepo, reservations: resRepo}, &config.Config{})

	free, err := svc.Available(context.Background(), start, end, "")
	require.NoError(t, err)

	ids := make([]string, 0, len(free))
	for _, s := range free {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{"e1", "e3"}, ids)

	require.Len(t, resRepo.listCalls, 1)
	require.NotNil(t, resRepo.listCalls[0].OverlapStart)
	assert.True(t, resRepo.listCalls[0].OverlapStart.Equal(start))
	assert.ElementsMatch(t, []string{models.StatusPending, models.StatusConfirmed}, resRepo.listCalls[0].Statuses)
}

func TestSpaceAvailable_KindFilterPassedThrough(t *testing.T) {
	db, _ := newSQLMockDB(t)
	start, end := window(8, 9)

	spacesRepo := &listingSpacesRepo{}
	svc := NewSpaceService(db, &fakeRM{spaces: spacesRepo, reservations: &fakeResRepo{}}, &config.Config{})

	_, err := svc.Available(context.Background(), start, end, models.KindLab)
	require.NoError(t, err)
	assert.Equal(t, []string{models.KindLab}, spacesRepo.listKinds)
}

func TestSpaceAvailable_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	svc := NewSpaceService(db, &fakeRM{spaces: &listingSpacesRepo{}, reservations: &fakeResRepo{}}, &config.Config{})
	start, end := window(10, 12)

	_, err := svc.Available(context.Background(), end, start, "")
	assert.ErrorIs(t, err, common.ErrorValidation, "inverted window")

	_, err = svc.Available(context.Background(), start, start, "")
	assert.ErrorIs(t, err, common.ErrorValidation, "empty window")

	_, err = svc.Available(context.Background(), start, end, "garagem")
	assert.ErrorIs(t, err, common.ErrorValidation, "unknown kind")
}

func TestSpaceCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	svc := NewSpaceService(db, &fakeRM{spaces: &listingSpacesRepo{}}, &config.Config{})
	zero := 0

	tests := []struct {
		name  string
		space *models.Space
	}{
		{"missing name", &models.Space{Kind: models.KindClassroom}},
		{"bad kind", &models.Space{Name: "Sala 1", Kind: "piscina"}},
		{"non-positive capacity", &models.Space{Name: "Sala 1", Kind: models.KindClassroom, Capacity: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.space)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestSpaceCreate_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	svc := NewSpaceService(db, &fakeRM{spaces: &listingSpacesRepo{}}, &config.Config{})
	capacity := 40

	created, err := svc.Create(context.Background(), &models.Space{
		Name: "Auditório Central", Kind: models.KindAuditorium, Capacity: &capacity,
	})
	require.NoError(t, err)
	assert.Equal(t, "Auditório Central", created.Name)
}
