package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/coworkhub/internal/metrics"
	"github.com/hitoshi/coworkhub/internal/middleware"
)

// SetupAuthRoutes は認証関連のルーティングを設定したchi.Routerを返す。
func SetupAuthRoutes(service AuthServiceInterface, config AuthHandlerConfig) http.Handler {
	r := chi.NewRouter()
	h := NewAuthHandler(service, config)

	r.Route("/auth", func(r chi.Router) {
		// OIDCフロー
		r.Get("/linkedin/login", h.Login)
		r.Get("/linkedin/callback", h.Callback)

		// セッション管理
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	return r
}

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	Ping() error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	CSRFConfig        middleware.CSRFConfig
	RateLimiter       *middleware.RateLimiter

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 完了ゲート
	Gate GateInterface

	// オンボーディング
	OnboardingService OnboardingServiceInterface

	// ダッシュボード
	ProfileService ProfileServiceInterface

	// ユーザー
	UserService UserServiceInterface

	// メトリクス（いずれもnil可）
	Metrics         metrics.MetricsCollector
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → SessionMiddleware → CSRFMiddleware → RateLimitMiddleware(GeneralMiddleware)
//
// 認証ルート（/auth/*）とゲート判定（/api/route）はミドルウェアチェーンの外に配置する。
// ゲート判定は未認証でも401を返さず遷移先を返す必要があるため。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	routeHandler := NewRouteHandler(deps.Gate, deps.Metrics)
	onboardingHandler := NewOnboardingHandler(deps.OnboardingService, deps.Metrics)
	profileHandler := NewProfileHandler(deps.ProfileService)
	userHandler := NewUserHandler(deps.UserService)

	// --- 認証不要のルート ---

	// 認証ルート（OIDCフロー）
	r.Route("/auth", func(r chi.Router) {
		r.Get("/linkedin/login", authHandler.Login)
		r.Get("/linkedin/callback", authHandler.Callback)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// ゲート判定（セッションCookieを直接読む）
	r.Get("/api/route", routeHandler.Check)

	// CSRFトークン取得
	r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	// ヘルスチェック
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if deps.HealthChecker != nil {
			if err := deps.HealthChecker.Ping(); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// メトリクス
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → CSRF → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// オンボーディングウィザード
		r.Route("/api/onboarding", func(r chi.Router) {
			r.Get("/", onboardingHandler.Get)

			// 変更操作にはウィザード専用レート制限を追加
			r.Group(func(r chi.Router) {
				r.Use(deps.RateLimiter.WizardMutationMiddleware())

				r.Post("/advance", onboardingHandler.Advance)
				r.Post("/back", onboardingHandler.Back)
				r.Post("/amenities/toggle", onboardingHandler.ToggleAmenity)
				r.Post("/slots", onboardingHandler.AddSlot)
				r.Delete("/slots/{index}", onboardingHandler.RemoveSlot)
				r.Patch("/slots/{index}", onboardingHandler.EditSlot)
				r.Post("/submit", onboardingHandler.Submit)
			})
		})

		// ダッシュボード
		r.Get("/api/profile/me", profileHandler.Me)

		// ユーザー管理
		r.Delete("/api/account", userHandler.Withdraw)
	})

	return r
}
