package service

import (
	"context"
	"sort"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/notify"
	"github.com/blaisecz/sleep-cycles/pkg/pagination"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) MarkOnboarded(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.OnboardingCompleted = true
	return nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	profiles map[uuid.UUID]domain.SleepProfile
	saves    int
	err      error
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[uuid.UUID]domain.SleepProfile),
	}
}

func (m *MockProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.SleepProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *domain.SleepProfile) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.profiles[profile.UserID] = *profile
	return nil
}

// MockAlertRepository is a mock implementation of AlertRepository
type MockAlertRepository struct {
	alerts map[uuid.UUID]*domain.Alert
	err    error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		alerts: make(map[uuid.UUID]*domain.Alert),
	}
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	if m.err != nil {
		return m.err
	}
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	m.alerts[alert.ID] = alert
	return nil
}

func (m *MockAlertRepository) List(ctx context.Context, userID uuid.UUID, filter domain.AlertFilter) ([]domain.Alert, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Alert
	for _, a := range m.alerts {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FireAt.Equal(result[j].FireAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].FireAt.Before(result[j].FireAt)
	})

	if cursor, err := pagination.DecodeCursor(filter.Cursor); err == nil && cursor != nil {
		var after []domain.Alert
		for _, a := range result {
			if a.FireAt.After(cursor.FireAt) || (a.FireAt.Equal(cursor.FireAt) && a.ID.String() > cursor.ID.String()) {
				after = append(after, a)
			}
		}
		result = after
	}

	limit := pagination.NormalizeLimit(filter.Limit) + 1
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockAlertRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	a, ok := m.alerts[id]
	if !ok || a.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.alerts, id)
	return nil
}

func (m *MockAlertRepository) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for id, a := range m.alerts {
		if a.UserID == userID {
			delete(m.alerts, id)
			n++
		}
	}
	return n, nil
}

// MockPublisher records published events
type MockPublisher struct {
	events []notify.AlertEvent
	err    error
}

func (m *MockPublisher) Publish(ctx context.Context, event notify.AlertEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}
