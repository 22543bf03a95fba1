package onboarding

import (
	"context"
	"log/slog"

	"github.com/hitoshi/coworkhub/internal/model"
	"github.com/hitoshi/coworkhub/internal/repository"
)

// Route は保護画面の遷移先を表すシンボル。URL構造は持たない。
type Route string

const (
	RouteLogin      Route = "login"
	RouteOnboarding Route = "onboarding"
	RouteDashboard  Route = "dashboard"
)

// Decide はゲートの純粋な判定関数。副作用を持たず決定的である。
// 未認証ならログインへ、プロフィール未完了ならオンボーディングへ、
// 完了済みならダッシュボードへ誘導する。
// プロフィール取得失敗は「未作成」と区別して呼び出し側で扱うこと。
func Decide(user *model.User, profile *model.Profile) Route {
	if user == nil {
		return RouteLogin
	}
	if !profile.IsComplete() {
		return RouteOnboarding
	}
	return RouteDashboard
}

// SessionResolver はセッションIDから現在のユーザーを解決する。
// 未認証（セッション切れ・無効セッション）は(nil, nil)で表現し、
// バックエンド障害のエラーと区別すること。
type SessionResolver interface {
	GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error)
}

// Gate は保護画面の入口ごとに適用する完了ゲート。
// 判定は毎回リポジトリを参照して行い、ナビゲーションをまたいで
// キャッシュしない（プロフィール状態は訪問の合間に変化しうる）。
type Gate struct {
	sessions    SessionResolver
	profileRepo repository.ProfileRepository
}

// NewGate はGateを生成する。
func NewGate(sessions SessionResolver, profileRepo repository.ProfileRepository) *Gate {
	return &Gate{
		sessions:    sessions,
		profileRepo: profileRepo,
	}
}

// Check はセッションIDから遷移先を判定する。
// 未認証はエラーではなくRouteLoginとして返す。
// セッション解決またはプロフィール取得のバックエンド障害は
// 未認証と同一視せず、PROFILE_FETCH_FAILEDエラーとして返す
// （障害中のユーザーを誤ってログインへ誘導しない）。
func (g *Gate) Check(ctx context.Context, sessionID string) (Route, error) {
	if sessionID == "" {
		return RouteLogin, nil
	}

	user, err := g.sessions.GetCurrentUser(ctx, sessionID)
	if err != nil {
		slog.Error("failed to resolve session for gate",
			slog.String("error", err.Error()),
		)
		return "", model.NewProfileFetchFailedError()
	}
	if user == nil {
		// セッション切れ・無効セッションは未認証として扱う
		return RouteLogin, nil
	}

	profile, err := g.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		slog.Error("failed to fetch profile for gate",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return "", model.NewProfileFetchFailedError()
	}

	return Decide(user, profile), nil
}
