package profile

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/store"
	"github.com/Hariom1711/travelbuddy/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func seedUser(t *testing.T, mem *store.Memory, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email}
	require.NoError(t, mem.CreateUser(context.Background(), u))
	return u
}

func validInput() Input {
	return Input{
		Username:     "ana",
		Name:         "Ana Lima",
		Bio:          strp("Coffee and mountains"),
		Location:     strp("Lisbon"),
		TravelStyles: []string{"adventure", "food"},
		Budget:       strp("mid-range"),
	}
}

func TestInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(*Input)
		field string
		msg   string
	}{
		{"short username", func(in *Input) { in.Username = "ab" }, "username", "Username must be at least 3 characters"},
		{"long username", func(in *Input) { in.Username = strings.Repeat("a", 21) }, "username", "Username must be at most 20 characters"},
		{"short name", func(in *Input) { in.Name = "A" }, "name", "Name must be at least 2 characters"},
		{"long bio", func(in *Input) { in.Bio = strp(strings.Repeat("b", 301)) }, "bio", "Bio must be less than 300 characters"},
		{"no styles", func(in *Input) { in.TravelStyles = nil }, "travelStyles", "Select at least one travel style"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := validInput()
			tt.edit(&in)

			errs := in.Validate()
			require.Len(t, errs.Fields, 1)
			assert.Equal(t, validate.FieldError{Field: tt.field, Message: tt.msg}, errs.Fields[0])
		})
	}

	assert.NoError(t, validInput().Validate().OrNil())

	in := validInput()
	in.Bio, in.Location, in.Budget = nil, nil, nil
	assert.NoError(t, in.Validate().OrNil())
}

func TestUpdateProfile_ReadBackMatches(t *testing.T) {
	mem := store.NewMemory()
	u := seedUser(t, mem, "ana@example.com")
	svc := NewService(mem)
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, u.ID, validInput())
	require.NoError(t, err)
	require.NotNil(t, updated.Preferences)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", *got.Username)
	assert.Equal(t, "Ana Lima", *got.Name)
	assert.Equal(t, "Coffee and mountains", *got.Bio)
	assert.Equal(t, "Lisbon", *got.Location)
	require.NotNil(t, got.Preferences)
	assert.Equal(t, []string{"adventure", "food"}, []string(got.Preferences.TravelStyles))
	assert.Equal(t, "mid-range", *got.Preferences.Budget)
	assert.True(t, got.ProfileComplete())
}

func TestUpdateProfile_KeepsOwnUsername(t *testing.T) {
	mem := store.NewMemory()
	u := seedUser(t, mem, "ana@example.com")
	svc := NewService(mem)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, u.ID, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Name = "Ana L."
	in.TravelStyles = []string{"solo"}
	updated, err := svc.UpdateProfile(ctx, u.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Ana L.", *updated.Name)
	assert.Equal(t, []string{"solo"}, []string(updated.Preferences.TravelStyles))
}

func TestUpdateProfile_UsernameConflictLeavesBothUnchanged(t *testing.T) {
	mem := store.NewMemory()
	ana := seedUser(t, mem, "ana@example.com")
	bo := seedUser(t, mem, "bo@example.com")
	svc := NewService(mem)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, ana.ID, validInput())
	require.NoError(t, err)

	boInput := validInput()
	boInput.Username = "bo"
	boInput.Name = "Bo"
	_, err = svc.UpdateProfile(ctx, bo.ID, boInput)
	require.NoError(t, err)

	boInput.Username = "ana"
	_, err = svc.UpdateProfile(ctx, bo.ID, boInput)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	gotAna, err := svc.Get(ctx, ana.ID)
	require.NoError(t, err)
	gotBo, err := svc.Get(ctx, bo.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", *gotAna.Username)
	assert.Equal(t, "bo", *gotBo.Username)
}

// racyRepo hides the current owner from the pre-check so the write hits the unique index
type racyRepo struct {
	*store.Memory
}

func (r racyRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, store.ErrNotFound
}

func TestUpdateProfile_UniqueViolationMapsToConflict(t *testing.T) {
	mem := store.NewMemory()
	ana := seedUser(t, mem, "ana@example.com")
	bo := seedUser(t, mem, "bo@example.com")
	ctx := context.Background()

	_, err := NewService(mem).UpdateProfile(ctx, ana.ID, validInput())
	require.NoError(t, err)

	_, err = NewService(racyRepo{mem}).UpdateProfile(ctx, bo.ID, validInput())
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateProfile_Errors(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, 999, validInput())
	assert.ErrorIs(t, err, ErrUserNotFound)

	in := validInput()
	in.Username = " x"
	_, err = svc.UpdateProfile(ctx, 999, in)
	var verrs *validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("username"))

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type failingRepo struct {
	racyRepo
}

func (failingRepo) UpdateProfile(ctx context.Context, userID uint, update store.ProfileUpdate) (*model.User, error) {
	return nil, fmt.Errorf("connection reset")
}

func TestUpdateProfile_StoreFailureIsWrapped(t *testing.T) {
	_, err := NewService(failingRepo{racyRepo{store.NewMemory()}}).UpdateProfile(context.Background(), 1, validInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsernameTaken)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "update profile")
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := Input{Username: " ana ", Name: " Ana ", Bio: strp("   "), Location: strp(" Porto "), Budget: strp("")}.Normalize()
	assert.Equal(t, " ana ", in.Username)
	assert.Equal(t, " Ana ", in.Name)
	assert.Equal(t, "", *in.Bio)
	assert.Equal(t, "", *in.Budget)
	assert.Equal(t, "Porto", *in.Location)
	assert.Nil(t, Input{}.Normalize().Bio)
}

func TestUpdateProfile_KeepsUsernameAsSubmitted(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	ctx := context.Background()
	user := seedUser(t, mem, "ana@example.com")

	in := validInput()
	in.Username = " ab "
	updated, err := svc.UpdateProfile(ctx, user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, " ab ", *updated.Username)

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, " ab ", *got.Username)
}
