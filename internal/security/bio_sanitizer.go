// Package security はアプリケーションのセキュリティ機能を提供する。
//
// BioSanitizerService はプロフィールの自己紹介文をサニタイズし、
// XSS攻撃などのセキュリティリスクからユーザーを保護する。
// 自己紹介文はプレーンテキストとして扱うため、bluemondayのStrictPolicyで
// 全てのHTMLタグと属性を除去する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// BioSanitizerService は自己紹介文サニタイズ機能のインターフェースを定義する。
// プロフィール保存前に使用される。
type BioSanitizerService interface {
	// Sanitize は自己紹介文から全てのHTMLマークアップを除去し、
	// 前後の空白をトリムしたプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// bioSanitizer はBioSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type bioSanitizer struct {
	policy *bluemonday.Policy
}

// NewBioSanitizer はBioSanitizerServiceの新しいインスタンスを生成する。
// 自己紹介文は表示時にマークアップとして解釈されることがないため、
// 許可タグゼロのStrictPolicyを使用する。
func NewBioSanitizer() *bioSanitizer {
	return &bioSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は自己紹介文から全てのHTMLマークアップを除去する。
func (s *bioSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
