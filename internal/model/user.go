// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity は外部IdP（LinkedIn）との紐付け情報を表す。
// ClaimsにはIdPのユーザー情報クレームをキー・値でそのまま保持し、
// オンボーディング送信時のプロフィールスナップショット生成に使用する。
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	Claims         map[string]string
	CreatedAt      time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
