package handler

import (
	"github.com/hitoshi/coworkhub/internal/auth"
	"github.com/hitoshi/coworkhub/internal/onboarding"
	"github.com/hitoshi/coworkhub/internal/profile"
	"github.com/hitoshi/coworkhub/internal/user"
)

// ハンドラーのインターフェースはサービス層の公開メソッドの部分集合として
// 定義しているため、アダプタを挟まず直接注入できる。
// 各サービスがインターフェースを満たすことをコンパイル時に検証する。

var _ AuthServiceInterface = (*auth.Service)(nil)
var _ OnboardingServiceInterface = (*onboarding.Service)(nil)
var _ GateInterface = (*onboarding.Gate)(nil)
var _ ProfileServiceInterface = (*profile.Service)(nil)
var _ UserServiceInterface = (*user.Service)(nil)
