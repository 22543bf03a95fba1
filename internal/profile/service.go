// Package profile はダッシュボード向けのプロフィール読み取りを提供する。
package profile

import (
	"context"
	"log/slog"

	"github.com/hitoshi/coworkhub/internal/model"
	"github.com/hitoshi/coworkhub/internal/repository"
)

// Dashboard はダッシュボード表示に必要なプロフィール情報一式。
type Dashboard struct {
	Profile *model.Profile
	Slots   []*model.AvailabilitySlot
}

// Service はプロフィール読み取りのサービス層。
type Service struct {
	profileRepo      repository.ProfileRepository
	availabilityRepo repository.AvailabilityRepository
}

// NewService はServiceを生成する。
func NewService(profileRepo repository.ProfileRepository, availabilityRepo repository.AvailabilityRepository) *Service {
	return &Service{
		profileRepo:      profileRepo,
		availabilityRepo: availabilityRepo,
	}
}

// GetDashboard はユーザーのプロフィールと空き時間枠を返す。
// プロフィールが未完了の場合はPROFILE_INCOMPLETEを返す
// （ゲートを通過せずに直接呼ばれた場合の防衛）。
func (s *Service) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	p, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		slog.Error("failed to fetch profile for dashboard",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewProfileFetchFailedError()
	}
	if !p.IsComplete() {
		return nil, model.NewProfileIncompleteError()
	}

	slots, err := s.availabilityRepo.ListByUserID(ctx, userID)
	if err != nil {
		slog.Error("failed to fetch availability slots",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewProfileFetchFailedError()
	}

	return &Dashboard{Profile: p, Slots: slots}, nil
}
