package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/coworkhub/internal/middleware"
	"github.com/hitoshi/coworkhub/internal/model"
	"github.com/hitoshi/coworkhub/internal/profile"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// GetDashboard は完了済みプロフィールと空き時間枠を取得する。
	GetDashboard(ctx context.Context, userID string) (*profile.Dashboard, error)
}

// ProfileHandler はダッシュボード表示のHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// slotResponse は空き時間枠のAPIレスポンス。
type slotResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// dashboardResponse はダッシュボードのAPIレスポンス。
type dashboardResponse struct {
	Profile profileResponse `json:"profile"`
	Slots   []slotResponse  `json:"slots"`
}

// Me は現在のユーザーのダッシュボードを返す。
// GET /api/profile/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDashboardResponse(dashboard))
}

// toDashboardResponse はprofile.DashboardからAPIレスポンスに変換する。
func toDashboardResponse(d *profile.Dashboard) dashboardResponse {
	slots := make([]slotResponse, len(d.Slots))
	for i, s := range d.Slots {
		slots[i] = slotResponse{
			ID:        s.ID,
			DayOfWeek: s.DayOfWeek,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
	}
	return dashboardResponse{
		Profile: toProfileResponse(d.Profile),
		Slots:   slots,
	}
}
