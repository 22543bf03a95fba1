package onboarding

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/coworkhub/internal/geocode"
	"github.com/hitoshi/coworkhub/internal/model"
	"github.com/hitoshi/coworkhub/internal/repository"
	"github.com/hitoshi/coworkhub/internal/security"
)

// Service はオンボーディングウィザードのビジネスロジックを提供する。
// ドラフトの遷移はDraftStoreのロック下で直列化され、送信は
// プロフィールUPSERTと空き時間枠の置換を単一トランザクションで行う。
type Service struct {
	drafts      *DraftStore
	identRepo   repository.IdentityRepository
	profileRepo repository.ProfileRepository
	resolver    geocode.Resolver
	sanitizer   security.BioSanitizerService
}

// NewService はServiceを生成する。
func NewService(
	drafts *DraftStore,
	identRepo repository.IdentityRepository,
	profileRepo repository.ProfileRepository,
	resolver geocode.Resolver,
	sanitizer security.BioSanitizerService,
) *Service {
	return &Service{
		drafts:      drafts,
		identRepo:   identRepo,
		profileRepo: profileRepo,
		resolver:    resolver,
		sanitizer:   sanitizer,
	}
}

// StartOrResume はウィザードの入口ガードを適用し、ドラフトを返す。
// 既にプロフィールが完了している場合はドラフトを作らず
// ダッシュボードへの遷移先だけを返す（再オンボーディング防止）。
// プロフィール取得のバックエンド障害はオンボーディングへ誘導しない。
func (s *Service) StartOrResume(ctx context.Context, userID string) (*Draft, Route, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		slog.Error("failed to fetch profile on wizard entry",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, "", model.NewProfileFetchFailedError()
	}

	if profile.IsComplete() {
		return nil, RouteDashboard, nil
	}

	return s.drafts.GetOrCreate(userID), RouteOnboarding, nil
}

// mutateDraft はドラフトへの変更操作を直列化して適用する。
// 送信処理の実行中はドラフトを凍結し、検証済みの内容が書き換わらないよう
// すべての変更をSUBMIT_IN_FLIGHTで拒否する。
func (s *Service) mutateDraft(userID string, fn func(d *Draft) error) (*Draft, error) {
	var result *Draft
	err := s.drafts.Mutate(userID, func(d *Draft) error {
		if d.submitting {
			return model.NewSubmitInFlightError()
		}
		if err := fn(d); err != nil {
			return err
		}
		result = d
		return nil
	})
	return result, err
}

// Advance は基本情報をドラフトへ書き込み、次のステップへ進める。
// Step1では郵便番号が空（空白のみを含む）のまま進めず、ドラフトは変化しない。
// Step2以降のAdvanceでは入力値は無視される。
func (s *Service) Advance(ctx context.Context, userID, zipcode, bio string) (*Draft, error) {
	return s.mutateDraft(userID, func(d *Draft) error {
		if d.Step == StepBasicInfo {
			// ガード失敗時にドラフトを汚さないよう、先に検証する
			if strings.TrimSpace(zipcode) == "" {
				return model.NewValidationFailedError("郵便番号を入力してください")
			}
			d.SetBasicInfo(zipcode, bio)
		}
		return d.Advance()
	})
}

// Back は前のステップへ戻る。入力値は保持される。
func (s *Service) Back(ctx context.Context, userID string) (*Draft, error) {
	return s.mutateDraft(userID, func(d *Draft) error {
		return d.Back()
	})
}

// ToggleAmenity はアメニティの選択状態を反転する。
func (s *Service) ToggleAmenity(ctx context.Context, userID string, id model.AmenityID) (*Draft, error) {
	return s.mutateDraft(userID, func(d *Draft) error {
		return d.ToggleAmenity(id)
	})
}

// AddSlot はデフォルトの空き時間枠を追加する。
func (s *Service) AddSlot(ctx context.Context, userID string) (*Draft, error) {
	return s.mutateDraft(userID, func(d *Draft) error {
		d.AddSlot()
		return nil
	})
}

// RemoveSlot は指定インデックスの枠を削除する。
func (s *Service) RemoveSlot(ctx context.Context, userID string, index int) (*Draft, error) {
	return s.mutateDraft(userID, func(d *Draft) error {
		return d.RemoveSlot(index)
	})
}

// EditSlot は指定インデックスの枠の1フィールドを更新する。
func (s *Service) EditSlot(ctx context.Context, userID string, index int, field, value string) (*Draft, error) {
	return s.mutateDraft(userID, func(d *Draft) error {
		return d.EditSlot(index, field, value)
	})
}

// Submit はドラフトを検証し、プロフィールと空き時間枠を永続化する。
// Step3以外からの送信は受け付けない。
// 成功時はドラフトを破棄して作成されたプロフィールを返す。
// 失敗時はドラフトを保持したままエラーを返す（再送信可能）。
// 実行中に再度呼ばれた場合はSUBMIT_IN_FLIGHTで拒否する。
func (s *Service) Submit(ctx context.Context, userID string) (*model.Profile, error) {
	// 1. 送信中フラグの獲得と事前検証（ロック下で直列化）
	var snapshot Draft
	err := s.drafts.Mutate(userID, func(d *Draft) error {
		if d.submitting {
			return model.NewSubmitInFlightError()
		}
		if err := d.ValidateForSubmit(); err != nil {
			return err
		}
		d.submitting = true
		// 以降の永続化はロック外で行うため、ライブなドラフトと
		// 背後の配列を共有しない完全なコピーを取る
		snapshot = *d
		snapshot.Amenities = append([]model.AmenityID(nil), d.Amenities...)
		snapshot.Slots = append([]DraftSlot(nil), d.Slots...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	profile, err := s.submit(ctx, userID, &snapshot)

	// 2. 成否にかかわらず送信中フラグを解除。成功時はドラフトごと破棄。
	if err != nil {
		_ = s.drafts.Mutate(userID, func(d *Draft) error {
			d.submitting = false
			return nil
		})
		return nil, err
	}

	s.drafts.Discard(userID)
	return profile, nil
}

// submit は送信処理の本体。フラグ管理はSubmitに任せる。
func (s *Service) submit(ctx context.Context, userID string, draft *Draft) (*model.Profile, error) {
	// 1. identityを再解決する（ウィザード中のセッション失効に備える）
	identity, err := s.identRepo.FindByUserID(ctx, userID)
	if err != nil {
		slog.Error("failed to resolve identity for submit",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewWriteFailedError()
	}
	if identity == nil {
		return nil, model.NewUnauthorizedError()
	}

	// 2. IdPクレームからスナップショットを生成する
	linkedin := buildSnapshot(identity.Claims)

	// 3. 郵便番号から座標を解決する。失敗は致命的でなく、
	//    座標はゼロ番兵値のまま送信を続行する。
	coords, err := s.resolver.Resolve(ctx, draft.Zipcode)
	if err != nil {
		slog.Warn("geocode resolution failed, using zero sentinel",
			slog.String("user_id", userID),
			slog.String("zipcode", draft.Zipcode),
			slog.String("error", err.Error()),
		)
		coords = geocode.Coordinates{}
	}

	// 4. 永続化するプロフィールと枠を組み立てる
	now := time.Now()
	profile := &model.Profile{
		UserID:    userID,
		Zipcode:   draft.Zipcode,
		Latitude:  coords.Lat,
		Longitude: coords.Lng,
		Bio:       s.sanitizer.Sanitize(draft.Bio),
		Amenities: draft.Amenities,
		LinkedIn:  linkedin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	slots := make([]*model.AvailabilitySlot, 0, len(draft.Slots))
	for _, ds := range draft.Slots {
		slots = append(slots, &model.AvailabilitySlot{
			ID:        uuid.New().String(),
			UserID:    userID,
			DayOfWeek: ds.DayOfWeek,
			StartTime: ds.StartTime,
			EndTime:   ds.EndTime,
			CreatedAt: now,
		})
	}

	// 5. UPSERTと枠の全置換を単一トランザクションで実行する。
	//    プロフィール書き込みが失敗した場合、枠には一切触れない。
	if err := s.profileRepo.UpsertWithAvailability(ctx, profile, slots); err != nil {
		slog.Error("failed to persist profile",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewWriteFailedError()
	}

	slog.Info("onboarding completed",
		slog.String("user_id", userID),
		slog.Int("amenities", len(profile.Amenities)),
		slog.Int("slots", len(slots)),
	)

	return profile, nil
}

// buildSnapshot はIdPクレームからLinkedInスナップショットを切り出す。
// 表示名はfull_nameを優先しnameへフォールバック、写真はavatar_urlを
// 優先しpictureへフォールバックする（最初の非空値が勝つ）。
func buildSnapshot(claims map[string]string) model.LinkedInSnapshot {
	return model.LinkedInSnapshot{
		Name:     firstNonEmpty(claims["full_name"], claims["name"]),
		Photo:    firstNonEmpty(claims["avatar_url"], claims["picture"]),
		Headline: claims["headline"],
		Company:  claims["company"],
	}
}

// firstNonEmpty は最初の空でない値を返す。
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
