// Package geocode は郵便番号から座標への解決機能を提供する。
package geocode

import "context"

// Coordinates は緯度経度のペアを表す。
// 解決不能な場合はゼロ値 {0, 0} を番兵値として用いる。
type Coordinates struct {
	Lat float64
	Lng float64
}

// IsZero は座標が未解決の番兵値かどうかを返す。
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Resolver は郵便番号を座標へ解決するインターフェース。
// 解決失敗は呼び出し側で致命的エラーとして扱わないこと。
type Resolver interface {
	Resolve(ctx context.Context, zipcode string) (Coordinates, error)
}

// NullResolver は常にゼロ座標を返すリゾルバ。
// 外部ジオコーディングを無効化した構成で使用する。
type NullResolver struct{}

// NewNullResolver は新しいNullResolverを作成する。
func NewNullResolver() *NullResolver {
	return &NullResolver{}
}

// Resolve は常に番兵値 {0, 0} を返す。
func (r *NullResolver) Resolve(_ context.Context, _ string) (Coordinates, error) {
	return Coordinates{}, nil
}

var _ Resolver = (*NullResolver)(nil)
