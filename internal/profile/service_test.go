package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/coworkhub/internal/model"
	"github.com/hitoshi/coworkhub/internal/repository"
)

type mockProfileRepo struct {
	findByUserIDFn func(ctx context.Context, userID string) (*model.Profile, error)
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) UpsertWithAvailability(_ context.Context, _ *model.Profile, _ []*model.AvailabilitySlot) error {
	return nil
}

type mockAvailabilityRepo struct {
	listByUserIDFn func(ctx context.Context, userID string) ([]*model.AvailabilitySlot, error)
}

func (m *mockAvailabilityRepo) ListByUserID(ctx context.Context, userID string) ([]*model.AvailabilitySlot, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

var _ repository.ProfileRepository = (*mockProfileRepo)(nil)
var _ repository.AvailabilityRepository = (*mockAvailabilityRepo)(nil)

func TestGetDashboard_ReturnsProfileAndSlots(t *testing.T) {
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{
				UserID:    userID,
				Zipcode:   "10001",
				Bio:       "Love coffee",
				Amenities: []model.AmenityID{model.AmenityWiFi5G},
			}, nil
		},
	}
	availabilityRepo := &mockAvailabilityRepo{
		listByUserIDFn: func(ctx context.Context, userID string) ([]*model.AvailabilitySlot, error) {
			return []*model.AvailabilitySlot{
				{ID: "slot-1", UserID: userID, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
			}, nil
		},
	}

	svc := NewService(profileRepo, availabilityRepo)

	dash, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetDashboard() error = %v", err)
	}

	if dash.Profile.Zipcode != "10001" {
		t.Errorf("Zipcode = %q, want %q", dash.Profile.Zipcode, "10001")
	}
	if len(dash.Slots) != 1 {
		t.Fatalf("Slots = %v, want 1 entry", dash.Slots)
	}
	if dash.Slots[0].DayOfWeek != 1 {
		t.Errorf("DayOfWeek = %d, want 1", dash.Slots[0].DayOfWeek)
	}
}

func TestGetDashboard_IncompleteProfile_ReturnsProfileIncomplete(t *testing.T) {
	cases := []struct {
		name    string
		profile *model.Profile
	}{
		{"no profile", nil},
		{"empty zipcode", &model.Profile{UserID: "user-1", Zipcode: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profileRepo := &mockProfileRepo{
				findByUserIDFn: func(ctx context.Context, userID string) (*model.Profile, error) {
					return tc.profile, nil
				},
			}
			svc := NewService(profileRepo, &mockAvailabilityRepo{})

			_, err := svc.GetDashboard(context.Background(), "user-1")
			if err == nil {
				t.Fatal("未完了プロフィールでエラーを返すべき")
			}

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Code != model.ErrCodeProfileIncomplete {
				t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeProfileIncomplete)
			}
		})
	}
}

func TestGetDashboard_FetchFailure_ReturnsFetchFailed(t *testing.T) {
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(profileRepo, &mockAvailabilityRepo{})

	_, err := svc.GetDashboard(context.Background(), "user-1")
	if err == nil {
		t.Fatal("取得失敗でエラーを返すべき")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeProfileFetchFailed {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeProfileFetchFailed)
	}
}
