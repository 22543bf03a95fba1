package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/coworkhub/internal/metrics"
	"github.com/hitoshi/coworkhub/internal/middleware"
	"github.com/hitoshi/coworkhub/internal/model"
	"github.com/hitoshi/coworkhub/internal/onboarding"
)

// OnboardingServiceInterface はオンボーディングハンドラーが必要とするサービスインターフェース。
type OnboardingServiceInterface interface {
	// StartOrResume は入口ガードを適用し、ドラフトと遷移先を返す。
	StartOrResume(ctx context.Context, userID string) (*onboarding.Draft, onboarding.Route, error)
	// Advance はウィザードを次のステップへ進める。
	Advance(ctx context.Context, userID, zipcode, bio string) (*onboarding.Draft, error)
	// Back はウィザードを前のステップへ戻す。
	Back(ctx context.Context, userID string) (*onboarding.Draft, error)
	// ToggleAmenity はアメニティの選択状態を反転する。
	ToggleAmenity(ctx context.Context, userID string, id model.AmenityID) (*onboarding.Draft, error)
	// AddSlot はデフォルト値の空き時間枠を追加する。
	AddSlot(ctx context.Context, userID string) (*onboarding.Draft, error)
	// RemoveSlot は指定インデックスの空き時間枠を削除する。
	RemoveSlot(ctx context.Context, userID string, index int) (*onboarding.Draft, error)
	// EditSlot は指定インデックスの空き時間枠のフィールドを更新する。
	EditSlot(ctx context.Context, userID string, index int, field, value string) (*onboarding.Draft, error)
	// Submit はドラフトを検証しプロフィールとして永続化する。
	Submit(ctx context.Context, userID string) (*model.Profile, error)
}

// OnboardingHandler はプロフィール作成ウィザードのHTTPハンドラー。
type OnboardingHandler struct {
	service OnboardingServiceInterface
	metrics metrics.MetricsCollector // nilの場合は記録しない
}

// NewOnboardingHandler はOnboardingHandlerを生成する。
func NewOnboardingHandler(service OnboardingServiceInterface, collector metrics.MetricsCollector) *OnboardingHandler {
	return &OnboardingHandler{
		service: service,
		metrics: collector,
	}
}

// advanceRequest はステップ前進リクエストのボディ。
// Step1ではzipcodeとbioをドラフトに書き込んでから前進する。
type advanceRequest struct {
	Zipcode string `json:"zipcode"`
	Bio     string `json:"bio"`
}

// toggleAmenityRequest はアメニティ選択反転リクエストのボディ。
type toggleAmenityRequest struct {
	AmenityID string `json:"amenity_id"`
}

// editSlotRequest は空き時間枠更新リクエストのボディ。
type editSlotRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// wizardStateResponse は入口ガード適用後のウィザード状態レスポンス。
// 完了済みユーザーにはdraftがnullでroute=dashboardが返る。
type wizardStateResponse struct {
	Route string            `json:"route"`
	Draft *onboarding.Draft `json:"draft"`
}

// profileResponse はプロフィールのAPIレスポンス。
type profileResponse struct {
	UserID    string            `json:"user_id"`
	Zipcode   string            `json:"zipcode"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Bio       string            `json:"bio"`
	Amenities []model.AmenityID `json:"amenities"`
	LinkedIn  linkedInResponse  `json:"linkedin"`
}

// linkedInResponse は送信時点のLinkedInスナップショットのAPIレスポンス。
type linkedInResponse struct {
	Name     string `json:"name"`
	Photo    string `json:"photo"`
	Headline string `json:"headline"`
	Company  string `json:"company"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// Get はウィザードの開始または再開を処理する。
// GET /api/onboarding
func (h *OnboardingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	draft, route, err := h.service.StartOrResume(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wizardStateResponse{
		Route: string(route),
		Draft: draft,
	})
}

// Advance はステップ前進を処理する。
// POST /api/onboarding/advance
func (h *OnboardingHandler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	draft, err := h.service.Advance(r.Context(), userID, req.Zipcode, req.Bio)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeDraftResponse(w, draft)
}

// Back はステップ後退を処理する。
// POST /api/onboarding/back
func (h *OnboardingHandler) Back(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	draft, err := h.service.Back(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeDraftResponse(w, draft)
}

// ToggleAmenity はアメニティ選択の反転を処理する。
// POST /api/onboarding/amenities/toggle
func (h *OnboardingHandler) ToggleAmenity(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req toggleAmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	draft, err := h.service.ToggleAmenity(r.Context(), userID, model.AmenityID(req.AmenityID))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeDraftResponse(w, draft)
}

// AddSlot はデフォルト値の空き時間枠追加を処理する。
// POST /api/onboarding/slots
func (h *OnboardingHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	draft, err := h.service.AddSlot(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeDraftResponse(w, draft)
}

// RemoveSlot は空き時間枠の削除を処理する。
// DELETE /api/onboarding/slots/:index
func (h *OnboardingHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	index, err := slotIndexFromURL(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	draft, err := h.service.RemoveSlot(r.Context(), userID, index)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeDraftResponse(w, draft)
}

// EditSlot は空き時間枠のフィールド更新を処理する。
// PATCH /api/onboarding/slots/:index
func (h *OnboardingHandler) EditSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	index, err := slotIndexFromURL(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	var req editSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	draft, err := h.service.EditSlot(r.Context(), userID, index, req.Field, req.Value)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeDraftResponse(w, draft)
}

// Submit はドラフトの検証・永続化を処理する。
// POST /api/onboarding/submit
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	start := time.Now()
	profile, err := h.service.Submit(r.Context(), userID)
	if err != nil {
		if h.metrics != nil {
			var apiErr *model.APIError
			if errors.As(err, &apiErr) {
				h.metrics.RecordSubmitFailure(apiErr.Code)
			} else {
				h.metrics.RecordSubmitFailure("INTERNAL_ERROR")
			}
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSubmitSuccess()
		h.metrics.RecordSubmitLatency(time.Since(start))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProfileResponse(profile))
}

// --- ヘルパー関数 ---

// slotIndexFromURL はURLパラメータから枠インデックスを取り出す。
func slotIndexFromURL(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

// writeDraftResponse はドラフトをJSONで書き込む。
func writeDraftResponse(w http.ResponseWriter, draft *onboarding.Draft) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draft)
}

// toProfileResponse はmodel.ProfileからAPIレスポンスに変換する。
func toProfileResponse(profile *model.Profile) profileResponse {
	return profileResponse{
		UserID:    profile.UserID,
		Zipcode:   profile.Zipcode,
		Latitude:  profile.Latitude,
		Longitude: profile.Longitude,
		Bio:       profile.Bio,
		Amenities: profile.Amenities,
		LinkedIn: linkedInResponse{
			Name:     profile.LinkedIn.Name,
			Photo:    profile.LinkedIn.Photo,
			Headline: profile.LinkedIn.Headline,
			Company:  profile.LinkedIn.Company,
		},
	}
}

// newInvalidRequestError はリクエストボディやパラメータの解析失敗エラーを生成する。
func newInvalidRequestError() *model.APIError {
	return &model.APIError{
		Code:     model.ErrCodeInvalidRequest,
		Message:  "リクエストの解析に失敗しました。",
		Category: "validation",
		Action:   "正しい形式でリクエストしてください。",
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeValidationFailed, model.ErrCodeInvalidAmenity,
		model.ErrCodeInvalidSlot, model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeSlotIndexRange:
		return http.StatusNotFound
	case model.ErrCodeProfileIncomplete:
		return http.StatusNotFound
	case model.ErrCodeSubmitInFlight:
		return http.StatusConflict
	case model.ErrCodeProfileFetchFailed:
		return http.StatusServiceUnavailable
	case model.ErrCodeWriteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
