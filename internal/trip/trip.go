// Package trip lists, creates and looks up a user's trips.
package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/store"
	"github.com/Hariom1711/travelbuddy/internal/validate"
	"go.uber.org/zap"
)

var (
	// ErrNotFound covers both missing trips and trips owned by someone else
	ErrNotFound = errors.New("trip not found")
	// ErrUserNotFound means the session refers to a user that no longer exists
	ErrUserNotFound = errors.New("user not found")
)

const dateOnly = "2006-01-02"

// Input is a trip creation payload; dates are RFC 3339 or YYYY-MM-DD
type Input struct {
	Title       string  `json:"title" form:"title" validate:"required,max=100"`
	Destination *string `json:"destination,omitempty" form:"destination" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty" form:"description"`
	StartDate   string  `json:"startDate" form:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" form:"endDate" validate:"required"`
}

var inputMessages = validate.Messages{
	"title.required":     "Title is required",
	"title.max":          "Title must be at most 100 characters",
	"startDate.required": "Start date is required",
	"endDate.required":   "End date is required",
}

// Validate checks the fields, the date formats and that the trip does not end before it starts
func (in Input) Validate() *validate.Errors {
	in.Title = strings.TrimSpace(in.Title)
	errs := validate.Struct(in, inputMessages)

	start, startErr := parseDate(in.StartDate)
	if startErr != nil && !errs.Has("startDate") {
		errs.Add("startDate", "Start date must be a valid date")
	}
	end, endErr := parseDate(in.EndDate)
	if endErr != nil && !errs.Has("endDate") {
		errs.Add("endDate", "End date must be a valid date")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs.Add("endDate", "End date must be on or after start date")
	}
	return errs
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateOnly, s)
}

// Repository is the persistence the service needs
type Repository interface {
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	ListTrips(ctx context.Context, userID uint) ([]model.Trip, error)
	FindTrip(ctx context.Context, userID, tripID uint) (*model.Trip, error)
	CreateTrip(ctx context.Context, trip *model.Trip) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every trip of userID ordered by start date
func (s *Service) List(ctx context.Context, userID uint) ([]model.Trip, error) {
	if err := s.ensureOwner(ctx, userID); err != nil {
		return nil, err
	}

	trips, err := s.repo.ListTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// Get returns one trip of userID
func (s *Service) Get(ctx context.Context, userID, tripID uint) (*model.Trip, error) {
	if err := s.ensureOwner(ctx, userID); err != nil {
		return nil, err
	}

	t, err := s.repo.FindTrip(ctx, userID, tripID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return t, nil
}

// Create validates in and stores a trip for userID.
// A validation failure is returned as *validate.Errors.
func (s *Service) Create(ctx context.Context, userID uint, in Input) (*model.Trip, error) {
	if err := s.ensureOwner(ctx, userID); err != nil {
		return nil, err
	}
	if errs := in.Validate(); errs.OrNil() != nil {
		return nil, errs
	}

	start, _ := parseDate(in.StartDate)
	end, _ := parseDate(in.EndDate)

	t := &model.Trip{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Destination: nonEmpty(in.Destination),
		Description: nonEmpty(in.Description),
		StartDate:   start,
		EndDate:     end,
	}
	if err := s.repo.CreateTrip(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create trip: %w", err)
	}

	logger.FromContext(ctx).Info("Trip created",
		zap.Uint("user_id", userID),
		zap.Uint("trip_id", t.ID))
	return t, nil
}

func (s *Service) ensureOwner(ctx context.Context, userID uint) error {
	_, err := s.repo.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
