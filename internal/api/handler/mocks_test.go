package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	createFunc     func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	onboardingFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.User{ID: uuid.New(), Timezone: req.Timezone}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserService) CompleteOnboarding(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.onboardingFunc != nil {
		return m.onboardingFunc(ctx, id)
	}
	return &domain.User{ID: id, Timezone: "UTC", OnboardingCompleted: true}, nil
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	getFunc  func(ctx context.Context, userID uuid.UUID) (*domain.ProfileResponse, error)
	saveFunc func(ctx context.Context, userID uuid.UUID, req *domain.SaveProfileRequest) (*domain.ProfileResponse, error)
}

func (m *MockProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileResponse, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	p := domain.DefaultSleepProfile(userID)
	return &domain.ProfileResponse{UserID: userID, Age: p.Age, WeightKg: p.WeightKg, HeightCm: p.HeightCm, Gender: p.Gender, IsDefault: true}, nil
}

func (m *MockProfileService) Save(ctx context.Context, userID uuid.UUID, req *domain.SaveProfileRequest) (*domain.ProfileResponse, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, userID, req)
	}
	return &domain.ProfileResponse{UserID: userID, Age: req.Age, WeightKg: req.WeightKg, HeightCm: req.HeightCm, Gender: req.Gender}, nil
}

func (m *MockProfileService) Load(ctx context.Context, userID uuid.UUID) (domain.SleepProfile, bool, error) {
	return domain.DefaultSleepProfile(userID), true, nil
}

// MockRecommendationService is a mock implementation of RecommendationService
type MockRecommendationService struct {
	sleepNowFunc func(ctx context.Context, userID uuid.UUID, req *domain.SleepNowRequest) (*domain.RecommendationResponse, error)
	wakeAtFunc   func(ctx context.Context, userID uuid.UUID, req *domain.WakeAtRequest) (*domain.RecommendationResponse, error)
	computeFunc  func(ctx context.Context, req *domain.ComputeRequest) (*domain.RecommendationResponse, error)
}

func (m *MockRecommendationService) SleepNow(ctx context.Context, userID uuid.UUID, req *domain.SleepNowRequest) (*domain.RecommendationResponse, error) {
	if m.sleepNowFunc != nil {
		return m.sleepNowFunc(ctx, userID, req)
	}
	return &domain.RecommendationResponse{Mode: domain.ModeSleepNow}, nil
}

func (m *MockRecommendationService) WakeAt(ctx context.Context, userID uuid.UUID, req *domain.WakeAtRequest) (*domain.RecommendationResponse, error) {
	if m.wakeAtFunc != nil {
		return m.wakeAtFunc(ctx, userID, req)
	}
	return &domain.RecommendationResponse{Mode: domain.ModeWakeAt, Anchor: req.WakeAt}, nil
}

func (m *MockRecommendationService) Compute(ctx context.Context, req *domain.ComputeRequest) (*domain.RecommendationResponse, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, req)
	}
	return &domain.RecommendationResponse{Mode: req.Mode, Anchor: req.Anchor}, nil
}

// MockAlertService is a mock implementation of AlertService
type MockAlertService struct {
	scheduleFunc  func(ctx context.Context, userID uuid.UUID, req *domain.ScheduleAlertRequest) (*domain.Alert, error)
	listFunc      func(ctx context.Context, userID uuid.UUID, filter domain.AlertFilter) (*domain.AlertListResponse, error)
	cancelFunc    func(ctx context.Context, userID, alertID uuid.UUID) error
	cancelAllFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockAlertService) Schedule(ctx context.Context, userID uuid.UUID, req *domain.ScheduleAlertRequest) (*domain.Alert, error) {
	if m.scheduleFunc != nil {
		return m.scheduleFunc(ctx, userID, req)
	}
	return &domain.Alert{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "Time to wake up!",
		FireAt:      req.WindowStart.Add(req.WindowEnd.Sub(req.WindowStart) / 2),
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
		CreatedAt:   time.Now(),
	}, nil
}

func (m *MockAlertService) List(ctx context.Context, userID uuid.UUID, filter domain.AlertFilter) (*domain.AlertListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.AlertListResponse{
		Data:       []domain.AlertResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockAlertService) Cancel(ctx context.Context, userID, alertID uuid.UUID) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, userID, alertID)
	}
	return nil
}

func (m *MockAlertService) CancelAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.cancelAllFunc != nil {
		return m.cancelAllFunc(ctx, userID)
	}
	return 0, nil
}

// withURLParams attaches chi route parameters to a request
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
