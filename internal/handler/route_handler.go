package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/coworkhub/internal/metrics"
	"github.com/hitoshi/coworkhub/internal/onboarding"
)

// GateInterface はルーティングハンドラーが必要とするゲート判定インターフェース。
type GateInterface interface {
	// Check はセッションIDからクライアントの遷移先を判定する。
	Check(ctx context.Context, sessionID string) (onboarding.Route, error)
}

// RouteHandler は完了ゲート判定のHTTPハンドラー。
// 未認証でも401を返さず、遷移先としてloginを返す。
type RouteHandler struct {
	gate    GateInterface
	metrics metrics.MetricsCollector // nilの場合は記録しない
}

// NewRouteHandler はRouteHandlerを生成する。
func NewRouteHandler(gate GateInterface, collector metrics.MetricsCollector) *RouteHandler {
	return &RouteHandler{
		gate:    gate,
		metrics: collector,
	}
}

// routeResponse はゲート判定のAPIレスポンス。
type routeResponse struct {
	Route string `json:"route"`
}

// Check はクライアントルーター向けのゲート判定を処理する。
// GET /api/route
func (h *RouteHandler) Check(w http.ResponseWriter, r *http.Request) {
	// セッションCookieがなければ空のセッションIDで判定する（login扱い）
	var sessionID string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	route, err := h.gate.Check(r.Context(), sessionID)
	if err != nil {
		// バックエンド障害はオンボーディングへ誘導せず、そのままエラーを返す
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordGateDecision(string(route))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(routeResponse{Route: string(route)})
}
