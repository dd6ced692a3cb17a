// Package store persists users, preferences, trips and federated accounts.
// Store is backed by gorm/Postgres, Memory by process memory; both satisfy Repository.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation
const uniqueViolation = "23505"

// ProfileUpdate carries the profile fields written together with preferences.
// Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	Username     string
	Name         string
	Bio          *string
	Location     *string
	TravelStyles []string
	Budget       *string
}

// Repository is the full set of persistence operations the server needs
type Repository interface {
	Ping(ctx context.Context) error

	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error)

	FindUserByAccount(ctx context.Context, provider, providerAccountID string) (*model.User, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	CreateUserWithAccount(ctx context.Context, user *model.User, account *model.Account) error

	ListTrips(ctx context.Context, userID uint) ([]model.Trip, error)
	ListUpcomingTrips(ctx context.Context, userID uint, now time.Time, limit int) ([]model.Trip, error)
	CountTrips(ctx context.Context, userID uint) (int64, error)
	CountUpcomingTrips(ctx context.Context, userID uint, now time.Time) (int64, error)
	FindTrip(ctx context.Context, userID, tripID uint) (*model.Trip, error)
	CreateTrip(ctx context.Context, trip *model.Trip) error
}

var (
	_ Repository = (*Store)(nil)
	_ Repository = (*Memory)(nil)
)

// translateError maps driver and gorm errors onto the store sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, pgErr.ConstraintName)
	}

	return err
}
