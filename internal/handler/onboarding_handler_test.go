package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/coworkhub/internal/middleware"
	"github.com/hitoshi/coworkhub/internal/model"
	"github.com/hitoshi/coworkhub/internal/onboarding"
)

// --- モック定義 ---

type mockOnboardingService struct {
	startOrResumeFn func(ctx context.Context, userID string) (*onboarding.Draft, onboarding.Route, error)
	advanceFn       func(ctx context.Context, userID, zipcode, bio string) (*onboarding.Draft, error)
	backFn          func(ctx context.Context, userID string) (*onboarding.Draft, error)
	toggleAmenityFn func(ctx context.Context, userID string, id model.AmenityID) (*onboarding.Draft, error)
	addSlotFn       func(ctx context.Context, userID string) (*onboarding.Draft, error)
	removeSlotFn    func(ctx context.Context, userID string, index int) (*onboarding.Draft, error)
	editSlotFn      func(ctx context.Context, userID string, index int, field, value string) (*onboarding.Draft, error)
	submitFn        func(ctx context.Context, userID string) (*model.Profile, error)
}

func (m *mockOnboardingService) StartOrResume(ctx context.Context, userID string) (*onboarding.Draft, onboarding.Route, error) {
	if m.startOrResumeFn != nil {
		return m.startOrResumeFn(ctx, userID)
	}
	return onboarding.NewDraft(), onboarding.RouteOnboarding, nil
}

func (m *mockOnboardingService) Advance(ctx context.Context, userID, zipcode, bio string) (*onboarding.Draft, error) {
	if m.advanceFn != nil {
		return m.advanceFn(ctx, userID, zipcode, bio)
	}
	return onboarding.NewDraft(), nil
}

func (m *mockOnboardingService) Back(ctx context.Context, userID string) (*onboarding.Draft, error) {
	if m.backFn != nil {
		return m.backFn(ctx, userID)
	}
	return onboarding.NewDraft(), nil
}

func (m *mockOnboardingService) ToggleAmenity(ctx context.Context, userID string, id model.AmenityID) (*onboarding.Draft, error) {
	if m.toggleAmenityFn != nil {
		return m.toggleAmenityFn(ctx, userID, id)
	}
	return onboarding.NewDraft(), nil
}

func (m *mockOnboardingService) AddSlot(ctx context.Context, userID string) (*onboarding.Draft, error) {
	if m.addSlotFn != nil {
		return m.addSlotFn(ctx, userID)
	}
	return onboarding.NewDraft(), nil
}

func (m *mockOnboardingService) RemoveSlot(ctx context.Context, userID string, index int) (*onboarding.Draft, error) {
	if m.removeSlotFn != nil {
		return m.removeSlotFn(ctx, userID, index)
	}
	return onboarding.NewDraft(), nil
}

func (m *mockOnboardingService) EditSlot(ctx context.Context, userID string, index int, field, value string) (*onboarding.Draft, error) {
	if m.editSlotFn != nil {
		return m.editSlotFn(ctx, userID, index, field, value)
	}
	return onboarding.NewDraft(), nil
}

func (m *mockOnboardingService) Submit(ctx context.Context, userID string) (*model.Profile, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, userID)
	}
	return &model.Profile{}, nil
}

// mockMetricsCollector はMetricsCollectorのモック実装。
type mockMetricsCollector struct {
	mu             sync.Mutex
	submitSuccess  int
	submitFailures []string
	gateDecisions  []string
}

func (m *mockMetricsCollector) RecordSubmitSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitSuccess++
}

func (m *mockMetricsCollector) RecordSubmitFailure(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitFailures = append(m.submitFailures, reason)
}

func (m *mockMetricsCollector) RecordGeocodeFailure() {}

func (m *mockMetricsCollector) RecordGateDecision(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gateDecisions = append(m.gateDecisions, route)
}

func (m *mockMetricsCollector) RecordHTTPStatus(statusCode int) {}

func (m *mockMetricsCollector) RecordSubmitLatency(duration time.Duration) {}

// --- テストヘルパー ---

// withUserID はテスト用にリクエストコンテキストにユーザーIDを注入するヘルパー。
func withUserID(r *http.Request, userID string) *http.Request {
	ctx := middleware.ContextWithUserID(r.Context(), userID)
	return r.WithContext(ctx)
}

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// parseAPIErrorResponse はレスポンスボディからAPIErrorレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

// --- GET /api/onboarding テスト ---

func TestOnboardingHandler_Get_NewUser_ReturnsStep1Draft(t *testing.T) {
	svc := &mockOnboardingService{
		startOrResumeFn: func(ctx context.Context, userID string) (*onboarding.Draft, onboarding.Route, error) {
			if userID != "user-123" {
				t.Errorf("userID = %q, want %q", userID, "user-123")
			}
			return onboarding.NewDraft(), onboarding.RouteOnboarding, nil
		},
	}
	h := NewOnboardingHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Get(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body wizardStateResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Route != "onboarding" {
		t.Errorf("route = %q, want %q", body.Route, "onboarding")
	}
	if body.Draft == nil {
		t.Fatal("expected draft in response")
	}
	if body.Draft.Step != onboarding.StepBasicInfo {
		t.Errorf("draft step = %d, want %d", body.Draft.Step, onboarding.StepBasicInfo)
	}
}

func TestOnboardingHandler_Get_CompletedUser_ReturnsDashboardRoute(t *testing.T) {
	svc := &mockOnboardingService{
		startOrResumeFn: func(ctx context.Context, userID string) (*onboarding.Draft, onboarding.Route, error) {
			return nil, onboarding.RouteDashboard, nil
		},
	}
	h := NewOnboardingHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding", nil)
	req = withUserID(req, "user-done")
	w := httptest.NewRecorder()

	h.Get(w, req)

	var body wizardStateResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Route != "dashboard" {
		t.Errorf("route = %q, want %q", body.Route, "dashboard")
	}
	if body.Draft != nil {
		t.Error("completed user should not receive a draft")
	}
}

func TestOnboardingHandler_Get_FetchFailure_Returns503(t *testing.T) {
	svc := &mockOnboardingService{
		startOrResumeFn: func(ctx context.Context, userID string) (*onboarding.Draft, onboarding.Route, error) {
			return nil, "", model.NewProfileFetchFailedError()
		},
	}
	h := NewOnboardingHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Get(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "PROFILE_FETCH_FAILED" {
		t.Errorf("error code = %q, want %q", errResp["code"], "PROFILE_FETCH_FAILED")
	}
}

func TestOnboardingHandler_Get_NoAuth_Returns401(t *testing.T) {
	h := NewOnboardingHandler(&mockOnboardingService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding", nil)
	w := httptest.NewRecorder()

	h.Get(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// --- POST /api/onboarding/advance テスト ---

func TestOnboardingHandler_Advance_Success(t *testing.T) {
	svc := &mockOnboardingService{
		advanceFn: func(ctx context.Context, userID, zipcode, bio string) (*onboarding.Draft, error) {
			if zipcode != "10001" {
				t.Errorf("zipcode = %q, want %q", zipcode, "10001")
			}
			if bio != "Love coffee" {
				t.Errorf("bio = %q, want %q", bio, "Love coffee")
			}
			d := onboarding.NewDraft()
			d.Step = onboarding.StepAmenities
			d.Zipcode = zipcode
			d.Bio = bio
			return d, nil
		},
	}
	h := NewOnboardingHandler(svc, nil)

	body := `{"zipcode": "10001", "bio": "Love coffee"}`
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/advance", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Advance(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var draft onboarding.Draft
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if draft.Step != onboarding.StepAmenities {
		t.Errorf("step = %d, want %d", draft.Step, onboarding.StepAmenities)
	}
}

func TestOnboardingHandler_Advance_EmptyZipcode_Returns400(t *testing.T) {
	svc := &mockOnboardingService{
		advanceFn: func(ctx context.Context, userID, zipcode, bio string) (*onboarding.Draft, error) {
			return nil, model.NewValidationFailedError("郵便番号は必須です")
		},
	}
	h := NewOnboardingHandler(svc, nil)

	body := `{"zipcode": "", "bio": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/advance", bytes.NewBufferString(body))
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Advance(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "VALIDATION_FAILED" {
		t.Errorf("error code = %q, want %q", errResp["code"], "VALIDATION_FAILED")
	}
}

func TestOnboardingHandler_Advance_InvalidJSON_Returns400(t *testing.T) {
	h := NewOnboardingHandler(&mockOnboardingService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/advance", bytes.NewBufferString("{invalid"))
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Advance(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "INVALID_REQUEST" {
		t.Errorf("error code = %q, want %q", errResp["code"], "INVALID_REQUEST")
	}
}

// --- POST /api/onboarding/amenities/toggle テスト ---

func TestOnboardingHandler_ToggleAmenity_Success(t *testing.T) {
	svc := &mockOnboardingService{
		toggleAmenityFn: func(ctx context.Context, userID string, id model.AmenityID) (*onboarding.Draft, error) {
			if id != model.AmenityWiFi5G {
				t.Errorf("amenity = %q, want %q", id, model.AmenityWiFi5G)
			}
			d := onboarding.NewDraft()
			d.Step = onboarding.StepAmenities
			d.Amenities = []model.AmenityID{model.AmenityWiFi5G}
			return d, nil
		},
	}
	h := NewOnboardingHandler(svc, nil)

	body := `{"amenity_id": "wifi_5g"}`
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/amenities/toggle", bytes.NewBufferString(body))
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.ToggleAmenity(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var draft onboarding.Draft
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(draft.Amenities) != 1 || draft.Amenities[0] != model.AmenityWiFi5G {
		t.Errorf("amenities = %v, want [wifi_5g]", draft.Amenities)
	}
}

func TestOnboardingHandler_ToggleAmenity_UnknownID_Returns400(t *testing.T) {
	svc := &mockOnboardingService{
		toggleAmenityFn: func(ctx context.Context, userID string, id model.AmenityID) (*onboarding.Draft, error) {
			return nil, model.NewInvalidAmenityError(string(id))
		},
	}
	h := NewOnboardingHandler(svc, nil)

	body := `{"amenity_id": "jacuzzi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/amenities/toggle", bytes.NewBufferString(body))
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.ToggleAmenity(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "INVALID_AMENITY" {
		t.Errorf("error code = %q, want %q", errResp["code"], "INVALID_AMENITY")
	}
}

// --- 空き時間枠テスト ---

func TestOnboardingHandler_AddSlot_ReturnsDraftWithDefaultSlot(t *testing.T) {
	svc := &mockOnboardingService{
		addSlotFn: func(ctx context.Context, userID string) (*onboarding.Draft, error) {
			d := onboarding.NewDraft()
			d.Step = onboarding.StepAvailability
			d.Slots = []onboarding.DraftSlot{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}}
			return d, nil
		},
	}
	h := NewOnboardingHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/slots", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.AddSlot(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var draft onboarding.Draft
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(draft.Slots) != 1 {
		t.Fatalf("len(slots) = %d, want 1", len(draft.Slots))
	}
	slot := draft.Slots[0]
	if slot.DayOfWeek != 1 || slot.StartTime != "09:00" || slot.EndTime != "17:00" {
		t.Errorf("slot = %+v, want {1 09:00 17:00}", slot)
	}
}

func TestOnboardingHandler_RemoveSlot_Success(t *testing.T) {
	var gotIndex int
	svc := &mockOnboardingService{
		removeSlotFn: func(ctx context.Context, userID string, index int) (*onboarding.Draft, error) {
			gotIndex = index
			return onboarding.NewDraft(), nil
		},
	}
	h := NewOnboardingHandler(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/onboarding/slots/2", nil)
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "index", "2")
	w := httptest.NewRecorder()

	h.RemoveSlot(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotIndex != 2 {
		t.Errorf("index = %d, want 2", gotIndex)
	}
}

func TestOnboardingHandler_RemoveSlot_NonNumericIndex_Returns400(t *testing.T) {
	h := NewOnboardingHandler(&mockOnboardingService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/onboarding/slots/abc", nil)
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "index", "abc")
	w := httptest.NewRecorder()

	h.RemoveSlot(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestOnboardingHandler_RemoveSlot_OutOfRange_Returns404(t *testing.T) {
	svc := &mockOnboardingService{
		removeSlotFn: func(ctx context.Context, userID string, index int) (*onboarding.Draft, error) {
			return nil, model.NewSlotIndexRangeError(index)
		},
	}
	h := NewOnboardingHandler(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/onboarding/slots/99", nil)
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "index", "99")
	w := httptest.NewRecorder()

	h.RemoveSlot(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "SLOT_INDEX_OUT_OF_RANGE" {
		t.Errorf("error code = %q, want %q", errResp["code"], "SLOT_INDEX_OUT_OF_RANGE")
	}
}

func TestOnboardingHandler_EditSlot_Success(t *testing.T) {
	svc := &mockOnboardingService{
		editSlotFn: func(ctx context.Context, userID string, index int, field, value string) (*onboarding.Draft, error) {
			if index != 0 || field != "start_time" || value != "10:30" {
				t.Errorf("edit = (%d, %q, %q), want (0, start_time, 10:30)", index, field, value)
			}
			d := onboarding.NewDraft()
			d.Step = onboarding.StepAvailability
			d.Slots = []onboarding.DraftSlot{{DayOfWeek: 1, StartTime: "10:30", EndTime: "17:00"}}
			return d, nil
		},
	}
	h := NewOnboardingHandler(svc, nil)

	body := `{"field": "start_time", "value": "10:30"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/onboarding/slots/0", bytes.NewBufferString(body))
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "index", "0")
	w := httptest.NewRecorder()

	h.EditSlot(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestOnboardingHandler_EditSlot_InvalidTime_Returns400(t *testing.T) {
	svc := &mockOnboardingService{
		editSlotFn: func(ctx context.Context, userID string, index int, field, value string) (*onboarding.Draft, error) {
			return nil, model.NewInvalidSlotError("時刻はHH:MM形式で指定してください")
		},
	}
	h := NewOnboardingHandler(svc, nil)

	body := `{"field": "start_time", "value": "25:99"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/onboarding/slots/0", bytes.NewBufferString(body))
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "index", "0")
	w := httptest.NewRecorder()

	h.EditSlot(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "INVALID_SLOT" {
		t.Errorf("error code = %q, want %q", errResp["code"], "INVALID_SLOT")
	}
}

// --- POST /api/onboarding/submit テスト ---

func TestOnboardingHandler_Submit_Success_Returns201AndRecordsMetrics(t *testing.T) {
	svc := &mockOnboardingService{
		submitFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{
				UserID:    userID,
				Zipcode:   "10001",
				Latitude:  40.7484,
				Longitude: -73.9967,
				Bio:       "Love coffee",
				Amenities: []model.AmenityID{model.AmenityWiFi5G},
				LinkedIn: model.LinkedInSnapshot{
					Name:     "Alex Chen",
					Headline: "Engineer",
				},
			}, nil
		},
	}
	collector := &mockMetricsCollector{}
	h := NewOnboardingHandler(svc, collector)

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/submit", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var body profileResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.UserID != "user-123" {
		t.Errorf("user_id = %q, want %q", body.UserID, "user-123")
	}
	if body.Zipcode != "10001" {
		t.Errorf("zipcode = %q, want %q", body.Zipcode, "10001")
	}
	if body.LinkedIn.Name != "Alex Chen" {
		t.Errorf("linkedin name = %q, want %q", body.LinkedIn.Name, "Alex Chen")
	}

	if collector.submitSuccess != 1 {
		t.Errorf("submit success count = %d, want 1", collector.submitSuccess)
	}
	if len(collector.submitFailures) != 0 {
		t.Errorf("submit failures = %v, want none", collector.submitFailures)
	}
}

func TestOnboardingHandler_Submit_InFlight_Returns409(t *testing.T) {
	svc := &mockOnboardingService{
		submitFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return nil, model.NewSubmitInFlightError()
		},
	}
	collector := &mockMetricsCollector{}
	h := NewOnboardingHandler(svc, collector)

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/submit", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "SUBMIT_IN_FLIGHT" {
		t.Errorf("error code = %q, want %q", errResp["code"], "SUBMIT_IN_FLIGHT")
	}

	if len(collector.submitFailures) != 1 || collector.submitFailures[0] != "SUBMIT_IN_FLIGHT" {
		t.Errorf("submit failures = %v, want [SUBMIT_IN_FLIGHT]", collector.submitFailures)
	}
}

func TestOnboardingHandler_Submit_WriteFailed_Returns500(t *testing.T) {
	svc := &mockOnboardingService{
		submitFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return nil, model.NewWriteFailedError()
		},
	}
	h := NewOnboardingHandler(svc, &mockMetricsCollector{})

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/submit", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	errResp := parseAPIErrorResponse(t, w)
	if errResp["code"] != "WRITE_FAILED" {
		t.Errorf("error code = %q, want %q", errResp["code"], "WRITE_FAILED")
	}
}

func TestOnboardingHandler_Submit_NilMetrics_DoesNotPanic(t *testing.T) {
	h := NewOnboardingHandler(&mockOnboardingService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/submit", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}
