// Package dashboard assembles the signed-in user's dashboard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/catalog"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/store"
)

// ErrSetupRequired means the user must finish profile setup first
var ErrSetupRequired = errors.New("profile setup required")

// UpcomingLimit caps the trips listed on the dashboard
const UpcomingLimit = 5

// Stats are the dashboard counters
type Stats struct {
	TotalTrips    int64    `json:"totalTrips"`
	UpcomingTrips int64    `json:"upcomingTrips"`
	TravelStyles  []string `json:"travelStyles"`
}

// View is everything the dashboard renders
type View struct {
	User          *model.User           `json:"user"`
	UpcomingTrips []model.Trip          `json:"upcomingTrips"`
	Stats         Stats                 `json:"stats"`
	Destinations  []catalog.Destination `json:"destinations"`
}

// Repository is the persistence the dashboard reads
type Repository interface {
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	ListUpcomingTrips(ctx context.Context, userID uint, now time.Time, limit int) ([]model.Trip, error)
	CountTrips(ctx context.Context, userID uint) (int64, error)
	CountUpcomingTrips(ctx context.Context, userID uint, now time.Time) (int64, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService uses time.Now when now is nil
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// Load returns the dashboard for userID, or ErrSetupRequired when the user
// is gone or has no username or preferences yet
func (s *Service) Load(ctx context.Context, userID uint) (*View, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSetupRequired
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.ProfileComplete() {
		return nil, ErrSetupRequired
	}

	now := s.now()

	upcoming, err := s.repo.ListUpcomingTrips(ctx, userID, now, UpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming trips: %w", err)
	}
	total, err := s.repo.CountTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count trips: %w", err)
	}
	upcomingCount, err := s.repo.CountUpcomingTrips(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("count upcoming trips: %w", err)
	}

	styles := []string(user.Preferences.TravelStyles)
	if len(styles) > 2 {
		styles = styles[:2]
	}

	return &View{
		User:          user,
		UpcomingTrips: upcoming,
		Stats: Stats{
			TotalTrips:    total,
			UpcomingTrips: upcomingCount,
			TravelStyles:  append([]string{}, styles...),
		},
		Destinations: catalog.PopularDestinations(),
	}, nil
}
