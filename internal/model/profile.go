package model

import "time"

// LinkedInSnapshot は送信時点のIdPクレームから切り出した
// 非正規化コピー。以後IdP側と同期されることはない。
type LinkedInSnapshot struct {
	Name     string `json:"name"`
	Photo    string `json:"photo"`
	Headline string `json:"headline"`
	Company  string `json:"company"`
}

// Profile はユーザーのコワーキングプロフィールを表す。
// ユーザーごとに1件、user_idをキーとするUPSERTで作成・置換される。
// Zipcodeが空でないことが「完了」の唯一の条件であり、
// 全ての保護画面のゲート判定に使われる。
type Profile struct {
	UserID    string
	Zipcode   string
	Latitude  float64
	Longitude float64
	Bio       string
	Amenities []AmenityID
	LinkedIn  LinkedInSnapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete はプロフィールが完了しているかを返す。
// 完了条件はZipcodeが空でないことのみ。他のフィールドはベストエフォート。
func (p *Profile) IsComplete() bool {
	return p != nil && p.Zipcode != ""
}

// AvailabilitySlot は週次の空き時間枠を表す。
// 1プロフィールに0件以上紐付く。時刻はタイムゾーンなしの"HH:MM"形式で、
// 日跨ぎは扱わない。同一プロフィール内の枠の重複は許容される。
type AvailabilitySlot struct {
	ID        string
	UserID    string
	DayOfWeek int // 0 = 日曜
	StartTime string
	EndTime   string
	CreatedAt time.Time
}
