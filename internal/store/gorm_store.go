package store

import (
	"context"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/metrics"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed Repository
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// FindUserByID loads the user with preferences
func (s *Store) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	defer metrics.TrackDBOperation("find_user")()

	var user model.User
	if err := s.db.WithContext(ctx).Preload("Preferences").First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	defer metrics.TrackDBOperation("find_user")()

	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	defer metrics.TrackDBOperation("find_user")()

	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	defer metrics.TrackDBOperation("create_user")()

	return translateError(s.db.WithContext(ctx).Create(user).Error)
}

// UpdateProfile writes the profile columns and upserts preferences in one transaction
func (s *Store) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error) {
	done := metrics.TrackDBOperation("update_profile")

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"username": update.Username,
			"name":     update.Name,
		}
		if update.Bio != nil {
			fields["bio"] = *update.Bio
		}
		if update.Location != nil {
			fields["location"] = *update.Location
		}

		res := tx.Model(&model.User{}).Where("id = ?", userID).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		prefs := model.Preferences{
			UserID:       userID,
			TravelStyles: datatypes.JSONSlice[string](append([]string(nil), update.TravelStyles...)),
			Budget:       update.Budget,
		}
		overwrite := []string{"travel_styles", "updated_at"}
		if update.Budget != nil {
			overwrite = append(overwrite, "budget")
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(overwrite),
		}).Create(&prefs).Error
	})
	done()
	if err != nil {
		return nil, translateError(err)
	}

	return s.FindUserByID(ctx, userID)
}

// FindUserByAccount resolves a federated identity to its linked user
func (s *Store) FindUserByAccount(ctx context.Context, provider, providerAccountID string) (*model.User, error) {
	defer metrics.TrackDBOperation("find_account")()

	var account model.Account
	err := s.db.WithContext(ctx).
		Where("provider = ? AND provider_account_id = ?", provider, providerAccountID).
		First(&account).Error
	if err != nil {
		return nil, translateError(err)
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, account.UserID).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *Store) CreateAccount(ctx context.Context, account *model.Account) error {
	defer metrics.TrackDBOperation("create_account")()

	return translateError(s.db.WithContext(ctx).Create(account).Error)
}

// CreateUserWithAccount inserts a federated user and its account link atomically
func (s *Store) CreateUserWithAccount(ctx context.Context, user *model.User, account *model.Account) error {
	defer metrics.TrackDBOperation("create_user")()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		account.UserID = user.ID
		return tx.Create(account).Error
	})
	return translateError(err)
}

// ListTrips returns every trip of the user ordered by start date
func (s *Store) ListTrips(ctx context.Context, userID uint) ([]model.Trip, error) {
	defer metrics.TrackDBOperation("list_trips")()

	var trips []model.Trip
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date ASC").
		Find(&trips).Error
	return trips, translateError(err)
}

// ListUpcomingTrips returns trips ending at or after now, soonest start first
func (s *Store) ListUpcomingTrips(ctx context.Context, userID uint, now time.Time, limit int) ([]model.Trip, error) {
	defer metrics.TrackDBOperation("list_trips")()

	var trips []model.Trip
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND end_date >= ?", userID, now).
		Order("start_date ASC").
		Limit(limit).
		Find(&trips).Error
	return trips, translateError(err)
}

func (s *Store) CountTrips(ctx context.Context, userID uint) (int64, error) {
	defer metrics.TrackDBOperation("count_trips")()

	var n int64
	err := s.db.WithContext(ctx).Model(&model.Trip{}).Where("user_id = ?", userID).Count(&n).Error
	return n, translateError(err)
}

func (s *Store) CountUpcomingTrips(ctx context.Context, userID uint, now time.Time) (int64, error) {
	defer metrics.TrackDBOperation("count_trips")()

	var n int64
	err := s.db.WithContext(ctx).Model(&model.Trip{}).
		Where("user_id = ? AND end_date >= ?", userID, now).
		Count(&n).Error
	return n, translateError(err)
}

// FindTrip only returns trips owned by userID
func (s *Store) FindTrip(ctx context.Context, userID, tripID uint) (*model.Trip, error) {
	defer metrics.TrackDBOperation("find_trip")()

	var trip model.Trip
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", tripID, userID).First(&trip).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &trip, nil
}

func (s *Store) CreateTrip(ctx context.Context, trip *model.Trip) error {
	defer metrics.TrackDBOperation("create_trip")()

	return translateError(s.db.WithContext(ctx).Create(trip).Error)
}
