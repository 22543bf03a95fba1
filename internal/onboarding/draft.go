// Package onboarding はプロフィール作成ウィザードの状態機械と
// 完了ゲートを提供する。
package onboarding

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hitoshi/coworkhub/internal/model"
)

// ウィザードのステップ番号。
const (
	StepBasicInfo    = 1 // 郵便番号・自己紹介
	StepAmenities    = 2 // アメニティ選択
	StepAvailability = 3 // 空き時間枠
)

// DraftSlot はドラフト内の空き時間枠。永続化前なのでIDを持たない。
type DraftSlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Draft はウィザードのセッションローカルな入力状態を表す。
// 部分的に永続化されることはなく、送信成功時に破棄される。
// 並行アクセスの制御は保持側のStoreが行う。
type Draft struct {
	Step      int               `json:"step"`
	Zipcode   string            `json:"zipcode"`
	Bio       string            `json:"bio"`
	Amenities []model.AmenityID `json:"amenities"`
	Slots     []DraftSlot       `json:"slots"`

	// submitting は送信処理の実行中フラグ。二重送信の拒否に使う。
	submitting bool
}

// NewDraft はStep1の空ドラフトを生成する。
func NewDraft() *Draft {
	return &Draft{
		Step:      StepBasicInfo,
		Amenities: []model.AmenityID{},
		Slots:     []DraftSlot{},
	}
}

// timePattern は"HH:MM"形式の時刻表現。
var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Advance は次のステップへ進む。
// Step1からの前進は郵便番号が空でないことをガードとする。
// ガードに失敗した場合、ステップは変化せずエラーを返す。
func (d *Draft) Advance() error {
	switch d.Step {
	case StepBasicInfo:
		if strings.TrimSpace(d.Zipcode) == "" {
			return model.NewValidationFailedError("郵便番号を入力してください")
		}
		d.Step = StepAmenities
	case StepAmenities:
		// アメニティは任意選択なのでガードなし
		d.Step = StepAvailability
	default:
		return model.NewValidationFailedError(fmt.Sprintf("ステップ%dから先へは進めません", d.Step))
	}
	return nil
}

// Back は前のステップへ戻る。Step1からは戻れない。
func (d *Draft) Back() error {
	switch d.Step {
	case StepAmenities:
		d.Step = StepBasicInfo
	case StepAvailability:
		d.Step = StepAmenities
	default:
		return model.NewValidationFailedError(fmt.Sprintf("ステップ%dから前へは戻れません", d.Step))
	}
	return nil
}

// SetBasicInfo は郵便番号と自己紹介をドラフトへ書き込む。
// 郵便番号は前後の空白を除去して保持する（空白のみの入力は空として扱う）。
func (d *Draft) SetBasicInfo(zipcode, bio string) {
	d.Zipcode = strings.TrimSpace(zipcode)
	d.Bio = bio
}

// ToggleAmenity はアメニティの選択状態を反転する。
// 選択順は保持され、重複は発生しない（2回のトグルで正味変化なし）。
// カタログ外のIDはエラーを返す。
func (d *Draft) ToggleAmenity(id model.AmenityID) error {
	if !model.ValidAmenityID(id) {
		return model.NewInvalidAmenityError(string(id))
	}

	for i, existing := range d.Amenities {
		if existing == id {
			d.Amenities = append(d.Amenities[:i], d.Amenities[i+1:]...)
			return nil
		}
	}
	d.Amenities = append(d.Amenities, id)
	return nil
}

// AddSlot はデフォルトの空き時間枠（月曜 09:00-17:00）を末尾に追加する。
func (d *Draft) AddSlot() {
	d.Slots = append(d.Slots, DraftSlot{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
	})
}

// RemoveSlot は指定インデックスの枠を削除する。
func (d *Draft) RemoveSlot(index int) error {
	if index < 0 || index >= len(d.Slots) {
		return model.NewSlotIndexRangeError(index)
	}
	d.Slots = append(d.Slots[:index], d.Slots[index+1:]...)
	return nil
}

// EditSlot は指定インデックスの枠の1フィールドを更新する。
// fieldは"day_of_week"、"start_time"、"end_time"のいずれか。
// 開始 < 終了の検証は送信時にまとめて行う（編集途中の一時的な
// 逆転を許容するため）。
func (d *Draft) EditSlot(index int, field, value string) error {
	if index < 0 || index >= len(d.Slots) {
		return model.NewSlotIndexRangeError(index)
	}

	slot := &d.Slots[index]
	switch field {
	case "day_of_week":
		day, err := parseDayOfWeek(value)
		if err != nil {
			return err
		}
		slot.DayOfWeek = day
	case "start_time":
		if !timePattern.MatchString(value) {
			return model.NewInvalidSlotError(fmt.Sprintf("時刻形式が不正です: %s", value))
		}
		slot.StartTime = value
	case "end_time":
		if !timePattern.MatchString(value) {
			return model.NewInvalidSlotError(fmt.Sprintf("時刻形式が不正です: %s", value))
		}
		slot.EndTime = value
	default:
		return model.NewInvalidSlotError(fmt.Sprintf("不明なフィールドです: %s", field))
	}
	return nil
}

// ValidateForSubmit は送信前の最終検証を行う。
// 送信はStep3からのみ受け付ける。郵便番号が空でないこと、
// 全枠が開始 < 終了を満たすことを確認する。枠同士の重複は許容される。
func (d *Draft) ValidateForSubmit() error {
	if d.Step != StepAvailability {
		return model.NewValidationFailedError(fmt.Sprintf("ステップ%dからは送信できません", d.Step))
	}
	if strings.TrimSpace(d.Zipcode) == "" {
		return model.NewValidationFailedError("郵便番号を入力してください")
	}
	for i, slot := range d.Slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return model.NewInvalidSlotError(fmt.Sprintf("枠%d: 曜日が範囲外です", i))
		}
		if !timePattern.MatchString(slot.StartTime) || !timePattern.MatchString(slot.EndTime) {
			return model.NewInvalidSlotError(fmt.Sprintf("枠%d: 時刻形式が不正です", i))
		}
		// "HH:MM"は辞書順比較で時刻順比較になる
		if slot.StartTime >= slot.EndTime {
			return model.NewInvalidSlotError(fmt.Sprintf("枠%d: 開始時刻は終了時刻より前にしてください", i))
		}
	}
	return nil
}

// parseDayOfWeek は曜日文字列を0〜6の整数へ変換する。
func parseDayOfWeek(value string) (int, error) {
	if len(value) != 1 || value[0] < '0' || value[0] > '6' {
		return 0, model.NewInvalidSlotError(fmt.Sprintf("曜日が範囲外です: %s", value))
	}
	return int(value[0] - '0'), nil
}
