package trip

import (
	"context"
	"testing"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/store"
	"github.com/Hariom1711/travelbuddy/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func newOwner(t *testing.T, mem *store.Memory, email string) uint {
	t.Helper()
	u := &model.User{Email: email}
	require.NoError(t, mem.CreateUser(context.Background(), u))
	return u.ID
}

func TestInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     Input
		fields map[string]string
	}{
		{
			name: "valid date only",
			in:   Input{Title: "Kyoto", StartDate: "2030-04-01", EndDate: "2030-04-01"},
		},
		{
			name: "valid rfc3339",
			in:   Input{Title: "Kyoto", StartDate: "2030-04-01T09:00:00Z", EndDate: "2030-04-02T09:00:00+09:00"},
		},
		{
			name:   "end before start",
			in:     Input{Title: "Kyoto", StartDate: "2030-04-05", EndDate: "2030-04-01"},
			fields: map[string]string{"endDate": "End date must be on or after start date"},
		},
		{
			name: "missing everything",
			in:   Input{Title: "   "},
			fields: map[string]string{
				"title":     "Title is required",
				"startDate": "Start date is required",
				"endDate":   "End date is required",
			},
		},
		{
			name:   "unparseable date",
			in:     Input{Title: "Kyoto", StartDate: "April first", EndDate: "2030-04-01"},
			fields: map[string]string{"startDate": "Start date must be a valid date"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := tt.in.Validate()
			if tt.fields == nil {
				assert.NoError(t, errs.OrNil())
				return
			}
			assert.Equal(t, tt.fields, errs.ByField())
		})
	}
}

func TestCreateListGet(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	ctx := context.Background()
	owner := newOwner(t, mem, "ana@example.com")

	second, err := svc.Create(ctx, owner, Input{Title: "Bali", Destination: strp(" Ubud "), Description: strp(""), StartDate: "2031-01-10", EndDate: "2031-01-20"})
	require.NoError(t, err)
	assert.Equal(t, "Ubud", *second.Destination)
	assert.Nil(t, second.Description)
	assert.Equal(t, time.Date(2031, 1, 10, 0, 0, 0, 0, time.UTC), second.StartDate)

	first, err := svc.Create(ctx, owner, Input{Title: "Japan", StartDate: "2030-03-01", EndDate: "2030-03-15"})
	require.NoError(t, err)

	trips, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, first.ID, trips[0].ID)
	assert.Equal(t, second.ID, trips[1].ID)

	got, err := svc.Get(ctx, owner, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bali", got.Title)
}

func TestGet_OtherUsersTripIsNotFound(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	ctx := context.Background()
	ana := newOwner(t, mem, "ana@example.com")
	bo := newOwner(t, mem, "bo@example.com")

	trip, err := svc.Create(ctx, ana, Input{Title: "Rome", StartDate: "2030-05-01", EndDate: "2030-05-03"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bo, trip.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, ana, trip.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_InvalidInputIsNotStored(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	ctx := context.Background()
	owner := newOwner(t, mem, "ana@example.com")

	_, err := svc.Create(ctx, owner, Input{Title: "Backwards", StartDate: "2030-05-03", EndDate: "2030-05-01"})
	var verrs *validate.Errors
	require.ErrorAs(t, err, &verrs)

	trips, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestMissingOwnerIsReported(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	ctx := context.Background()

	_, err := svc.List(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Create(ctx, 999, Input{Title: "Ghost", StartDate: "2030-05-01", EndDate: "2030-05-03"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Get(ctx, 999, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
