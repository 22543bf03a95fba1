// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/coworkhub/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 紐付くデータは外部キーのCASCADEで削除される。
	DeleteByID(ctx context.Context, id string) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)

	// FindByUserID はユーザーIDでidentityを検索する。見つからない場合はnilを返す。
	// オンボーディング送信時のスナップショット生成でクレームを再解決するために使う。
	FindByUserID(ctx context.Context, userID string) (*model.Identity, error)

	// UpdateClaims はidentityのクレームを最新のIdPレスポンスで置き換える。
	UpdateClaims(ctx context.Context, id string, claims map[string]string) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// ProfileRepository はコワーキングプロフィールの永続化インターフェース。
type ProfileRepository interface {
	// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
	// 取得失敗（バックエンド障害）は「未作成」と区別してエラーで返す。
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)

	// UpsertWithAvailability はプロフィールのUPSERTと空き時間枠の全置換を
	// 同一トランザクションで実行する。
	// プロフィール書き込みが失敗した場合、空き時間枠には一切触れない。
	// 枠は追記ではなく置換されるため、再送信は冪等になる。
	UpsertWithAvailability(ctx context.Context, profile *model.Profile, slots []*model.AvailabilitySlot) error
}

// AvailabilityRepository は空き時間枠の読み取りインターフェース。
// 書き込みはプロフィールUPSERTと同一トランザクションでのみ行われる
// （ProfileRepository.UpsertWithAvailabilityを参照）。
type AvailabilityRepository interface {
	// ListByUserID は指定ユーザーの空き時間枠を曜日・開始時刻順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.AvailabilitySlot, error)
}
