// Package profile validates and applies profile setup edits.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/metrics"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/store"
	"github.com/Hariom1711/travelbuddy/internal/validate"
	"go.uber.org/zap"
)

var (
	ErrUsernameTaken = errors.New("username is already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// Input is the profile setup payload
type Input struct {
	Username     string   `json:"username" form:"username" validate:"min=3,max=20"`
	Name         string   `json:"name" form:"name" validate:"min=2"`
	Bio          *string  `json:"bio,omitempty" form:"bio" validate:"omitempty,max=300"`
	Location     *string  `json:"location,omitempty" form:"location"`
	TravelStyles []string `json:"travelStyles" form:"travelStyles" validate:"min=1"`
	Budget       *string  `json:"budget,omitempty" form:"budget"`
}

var inputMessages = validate.Messages{
	"username.min":     "Username must be at least 3 characters",
	"username.max":     "Username must be at most 20 characters",
	"name.min":         "Name must be at least 2 characters",
	"bio.max":          "Bio must be less than 300 characters",
	"travelStyles.min": "Select at least one travel style",
}

// Validate returns the field errors of the input in declaration order
func (in Input) Validate() *validate.Errors {
	return validate.Struct(in, inputMessages)
}

// Normalize trims the optional text fields. They keep their presence so an
// empty submission clears the stored value. Username and name are validated
// and stored exactly as submitted.
func (in Input) Normalize() Input {
	in.Bio = trimmed(in.Bio)
	in.Location = trimmed(in.Location)
	in.Budget = trimmed(in.Budget)
	return in
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// Repository is the persistence the service needs
type Repository interface {
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, update store.ProfileUpdate) (*model.User, error)
}

// Service applies profile edits
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user with preferences loaded
func (s *Service) Get(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile validates in and writes the user fields and preferences together.
// A validation failure is returned as *validate.Errors.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, in Input) (*model.User, error) {
	log := logger.FromContext(ctx)
	in = in.Normalize()

	if errs := in.Validate(); errs.OrNil() != nil {
		metrics.RecordProfileUpdate("invalid")
		return nil, errs
	}

	owner, err := s.repo.FindUserByUsername(ctx, in.Username)
	switch {
	case err == nil && owner.ID != userID:
		metrics.RecordProfileUpdate("conflict")
		return nil, ErrUsernameTaken
	case err != nil && !errors.Is(err, store.ErrNotFound):
		metrics.RecordProfileUpdate("error")
		return nil, fmt.Errorf("check username: %w", err)
	}

	user, err := s.repo.UpdateProfile(ctx, userID, store.ProfileUpdate{
		Username:     in.Username,
		Name:         in.Name,
		Bio:          in.Bio,
		Location:     in.Location,
		TravelStyles: in.TravelStyles,
		Budget:       in.Budget,
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		// lost the race against another user claiming the same username
		metrics.RecordProfileUpdate("conflict")
		return nil, ErrUsernameTaken
	case errors.Is(err, store.ErrNotFound):
		metrics.RecordProfileUpdate("not_found")
		return nil, ErrUserNotFound
	case err != nil:
		metrics.RecordProfileUpdate("error")
		return nil, fmt.Errorf("update profile: %w", err)
	}

	metrics.RecordProfileUpdate("success")
	log.Info("Profile updated", zap.Uint("user_id", userID))
	return user, nil
}
