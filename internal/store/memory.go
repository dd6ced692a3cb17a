package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/model"
	"gorm.io/datatypes"
)

// Memory is a Repository kept in process memory. It enforces the same unique
// constraints as the SQL schema and hands out copies, never internal pointers.
type Memory struct {
	mu sync.RWMutex

	nextUserID    uint
	nextPrefsID   uint
	nextTripID    uint
	nextAccountID uint

	users    map[uint]*model.User
	prefs    map[uint]*model.Preferences // keyed by user id
	trips    map[uint]*model.Trip
	accounts map[string]*model.Account // keyed by provider + "|" + provider account id
}

// NewMemory returns an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[uint]*model.User),
		prefs:    make(map[uint]*model.Preferences),
		trips:    make(map[uint]*model.Trip),
		accounts: make(map[string]*model.Account),
	}
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *Memory) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.copyUser(u, true), nil
}

func (m *Memory) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return m.copyUser(u, false), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if u := m.userByUsername(username); u != nil {
		return m.copyUser(u, false), nil
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insertUser(user)
}

func (m *Memory) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if other := m.userByUsername(update.Username); other != nil && other.ID != userID {
		return nil, fmt.Errorf("%w: idx_users_username", ErrAlreadyExists)
	}

	now := time.Now()
	username, name := update.Username, update.Name
	u.Username = &username
	u.Name = &name
	if update.Bio != nil {
		u.Bio = cloneString(update.Bio)
	}
	if update.Location != nil {
		u.Location = cloneString(update.Location)
	}
	u.UpdatedAt = now

	styles := datatypes.JSONSlice[string](append([]string(nil), update.TravelStyles...))
	if p, ok := m.prefs[userID]; ok {
		p.TravelStyles = styles
		if update.Budget != nil {
			p.Budget = cloneString(update.Budget)
		}
		p.UpdatedAt = now
	} else {
		m.nextPrefsID++
		p := &model.Preferences{
			ID:           m.nextPrefsID,
			UserID:       userID,
			TravelStyles: styles,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if update.Budget != nil {
			p.Budget = cloneString(update.Budget)
		}
		m.prefs[userID] = p
	}

	return m.copyUser(u, true), nil
}

func (m *Memory) FindUserByAccount(ctx context.Context, provider, providerAccountID string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[accountKey(provider, providerAccountID)]
	if !ok {
		return nil, ErrNotFound
	}
	u, ok := m.users[a.UserID]
	if !ok {
		return nil, ErrNotFound
	}
	return m.copyUser(u, false), nil
}

func (m *Memory) CreateAccount(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[account.UserID]; !ok {
		return fmt.Errorf("account owner %d: %w", account.UserID, ErrNotFound)
	}
	return m.insertAccount(account)
}

func (m *Memory) CreateUserWithAccount(ctx context.Context, user *model.User, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[accountKey(account.Provider, account.ProviderAccountID)]; ok {
		return fmt.Errorf("%w: idx_accounts_provider_account", ErrAlreadyExists)
	}
	if err := m.insertUser(user); err != nil {
		return err
	}
	account.UserID = user.ID
	return m.insertAccount(account)
}

func (m *Memory) ListTrips(ctx context.Context, userID uint) ([]model.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filterTrips(func(t *model.Trip) bool { return t.UserID == userID }), nil
}

func (m *Memory) ListUpcomingTrips(ctx context.Context, userID uint, now time.Time, limit int) ([]model.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	trips := m.filterTrips(func(t *model.Trip) bool { return t.UserID == userID && t.Upcoming(now) })
	if limit > 0 && len(trips) > limit {
		trips = trips[:limit]
	}
	return trips, nil
}

func (m *Memory) CountTrips(ctx context.Context, userID uint) (int64, error) {
	trips, _ := m.ListTrips(ctx, userID)
	return int64(len(trips)), nil
}

func (m *Memory) CountUpcomingTrips(ctx context.Context, userID uint, now time.Time) (int64, error) {
	trips, _ := m.ListUpcomingTrips(ctx, userID, now, 0)
	return int64(len(trips)), nil
}

func (m *Memory) FindTrip(ctx context.Context, userID, tripID uint) (*model.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trips[tripID]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	return cloneTrip(t), nil
}

func (m *Memory) CreateTrip(ctx context.Context, trip *model.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[trip.UserID]; !ok {
		return fmt.Errorf("trip owner %d: %w", trip.UserID, ErrNotFound)
	}

	m.nextTripID++
	now := time.Now()
	trip.ID = m.nextTripID
	trip.CreatedAt, trip.UpdatedAt = now, now

	m.trips[trip.ID] = cloneTrip(trip)
	return nil
}

// insertUser assigns the id and timestamps; callers hold the write lock
func (m *Memory) insertUser(user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: idx_users_email", ErrAlreadyExists)
		}
	}
	if user.Username != nil && m.userByUsername(*user.Username) != nil {
		return fmt.Errorf("%w: idx_users_username", ErrAlreadyExists)
	}

	m.nextUserID++
	now := time.Now()
	user.ID = m.nextUserID
	user.CreatedAt, user.UpdatedAt = now, now

	cp := cloneUser(user)
	cp.Preferences = nil
	m.users[user.ID] = cp
	return nil
}

func (m *Memory) insertAccount(account *model.Account) error {
	key := accountKey(account.Provider, account.ProviderAccountID)
	if _, ok := m.accounts[key]; ok {
		return fmt.Errorf("%w: idx_accounts_provider_account", ErrAlreadyExists)
	}

	m.nextAccountID++
	account.ID = m.nextAccountID
	account.CreatedAt = time.Now()

	cp := *account
	m.accounts[key] = &cp
	return nil
}

func (m *Memory) userByUsername(username string) *model.User {
	for _, u := range m.users {
		if u.Username != nil && *u.Username == username {
			return u
		}
	}
	return nil
}

// filterTrips returns copies ordered by start date, then id
func (m *Memory) filterTrips(keep func(*model.Trip) bool) []model.Trip {
	trips := []model.Trip{}
	for _, t := range m.trips {
		if keep(t) {
			trips = append(trips, *cloneTrip(t))
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		if trips[i].StartDate.Equal(trips[j].StartDate) {
			return trips[i].ID < trips[j].ID
		}
		return trips[i].StartDate.Before(trips[j].StartDate)
	})
	return trips
}

func (m *Memory) copyUser(u *model.User, withPreferences bool) *model.User {
	cp := cloneUser(u)
	cp.Preferences = nil
	if withPreferences {
		if p, ok := m.prefs[u.ID]; ok {
			pc := *p
			pc.TravelStyles = append(datatypes.JSONSlice[string](nil), p.TravelStyles...)
			pc.Budget = cloneString(p.Budget)
			cp.Preferences = &pc
		}
	}
	return cp
}

// cloneUser copies u including every pointer field
func cloneUser(u *model.User) *model.User {
	cp := *u
	cp.Password = cloneString(u.Password)
	cp.Username = cloneString(u.Username)
	cp.Name = cloneString(u.Name)
	cp.Bio = cloneString(u.Bio)
	cp.Location = cloneString(u.Location)
	cp.Image = cloneString(u.Image)
	if u.EmailVerified != nil {
		v := *u.EmailVerified
		cp.EmailVerified = &v
	}
	return &cp
}

func cloneTrip(t *model.Trip) *model.Trip {
	cp := *t
	cp.Destination = cloneString(t.Destination)
	cp.Description = cloneString(t.Description)
	return &cp
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func accountKey(provider, providerAccountID string) string {
	return provider + "|" + providerAccountID
}
