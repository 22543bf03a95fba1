// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, onboarding, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeProfileFetchFailed = "PROFILE_FETCH_FAILED"
	ErrCodeProfileIncomplete  = "PROFILE_INCOMPLETE"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidAmenity     = "INVALID_AMENITY"
	ErrCodeInvalidSlot        = "INVALID_SLOT"
	ErrCodeSlotIndexRange     = "SLOT_INDEX_OUT_OF_RANGE"
	ErrCodeSubmitInFlight     = "SUBMIT_IN_FLIGHT"
	ErrCodeWriteFailed        = "WRITE_FAILED"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewProfileFetchFailedError はプロフィール取得のバックエンド障害エラーを生成する。
// 「プロフィール未作成」とは明確に区別され、オンボーディングへは誘導しない。
func NewProfileFetchFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileFetchFailed,
		Message:  "プロフィールの取得に失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewProfileIncompleteError はプロフィール未完了エラーを生成する。
func NewProfileIncompleteError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileIncomplete,
		Message:  "プロフィールが未完了です。",
		Category: "onboarding",
		Action:   "オンボーディングを完了してください。",
	}
}

// NewValidationFailedError はバリデーションエラーを生成する。
func NewValidationFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力内容に誤りがあります: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認してください。",
	}
}

// NewInvalidAmenityError はカタログ外のアメニティ指定エラーを生成する。
func NewInvalidAmenityError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidAmenity,
		Message:  fmt.Sprintf("無効なアメニティです: %s", id),
		Category: "validation",
		Action:   "カタログに含まれるアメニティを指定してください。",
	}
}

// NewInvalidSlotError は空き時間枠のバリデーションエラーを生成する。
func NewInvalidSlotError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSlot,
		Message:  fmt.Sprintf("無効な空き時間枠です: %s", reason),
		Category: "validation",
		Action:   "曜日は0〜6、時刻はHH:MM形式で、開始が終了より前になるよう指定してください。",
	}
}

// NewSlotIndexRangeError は枠インデックス範囲外エラーを生成する。
func NewSlotIndexRangeError(index int) *APIError {
	return &APIError{
		Code:     ErrCodeSlotIndexRange,
		Message:  fmt.Sprintf("指定された空き時間枠が存在しません: %d", index),
		Category: "validation",
		Action:   "画面を再読み込みしてから再度お試しください。",
	}
}

// NewSubmitInFlightError は送信の二重実行エラーを生成する。
func NewSubmitInFlightError() *APIError {
	return &APIError{
		Code:     ErrCodeSubmitInFlight,
		Message:  "プロフィールの送信処理が既に実行中です。",
		Category: "onboarding",
		Action:   "処理の完了をお待ちください。",
	}
}

// NewWriteFailedError はプロフィール保存失敗エラーを生成する。
// 入力中のドラフトは保持されるため、そのまま再送信できる。
func NewWriteFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeWriteFailed,
		Message:  "プロフィールの保存に失敗しました。",
		Category: "system",
		Action:   "入力内容は保持されています。しばらく待ってから再度送信してください。",
	}
}
