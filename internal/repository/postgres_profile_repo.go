package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/coworkhub/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
// DBエラーは「未作成」と区別するためそのままエラーで返す。
func (r *PostgresProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	var amenities pq.StringArray
	var linkedinJSON []byte

	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, zipcode, latitude, longitude, bio, amenities, linkedin_profile, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&profile.UserID, &profile.Zipcode,
		&profile.Latitude, &profile.Longitude,
		&profile.Bio, &amenities, &linkedinJSON,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	profile.Amenities = make([]model.AmenityID, len(amenities))
	for i, a := range amenities {
		profile.Amenities[i] = model.AmenityID(a)
	}

	if len(linkedinJSON) > 0 {
		if err := json.Unmarshal(linkedinJSON, &profile.LinkedIn); err != nil {
			return nil, fmt.Errorf("failed to unmarshal linkedin snapshot: %w", err)
		}
	}

	return profile, nil
}

// UpsertWithAvailability はプロフィールのUPSERTと空き時間枠の全置換を
// 同一トランザクションで実行する。
// 実行順: プロフィールUPSERT → 既存枠DELETE → 新枠INSERT。
// プロフィール書き込みが失敗した場合は枠に一切触れずにロールバックする。
// 枠は置換されるため、同一ドラフトの再送信は冪等になる。
func (r *PostgresProfileRepo) UpsertWithAvailability(ctx context.Context, profile *model.Profile, slots []*model.AvailabilitySlot) error {
	amenities := make(pq.StringArray, len(profile.Amenities))
	for i, a := range profile.Amenities {
		amenities[i] = string(a)
	}

	linkedinJSON, err := json.Marshal(profile.LinkedIn)
	if err != nil {
		return fmt.Errorf("failed to marshal linkedin snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// プロフィールをUPSERT（last-writer-wins、マージなし）
	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (user_id, zipcode, latitude, longitude, bio, amenities, linkedin_profile, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		     zipcode = EXCLUDED.zipcode,
		     latitude = EXCLUDED.latitude,
		     longitude = EXCLUDED.longitude,
		     bio = EXCLUDED.bio,
		     amenities = EXCLUDED.amenities,
		     linkedin_profile = EXCLUDED.linkedin_profile,
		     updated_at = EXCLUDED.updated_at`,
		profile.UserID, profile.Zipcode,
		profile.Latitude, profile.Longitude,
		profile.Bio, amenities, linkedinJSON,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	// 既存の空き時間枠を全削除してから挿入する（追記ではなく置換）
	_, err = tx.ExecContext(ctx,
		`DELETE FROM availability_slots WHERE user_id = $1`,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear availability slots: %w", err)
	}

	for _, slot := range slots {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO availability_slots (id, user_id, day_of_week, start_time, end_time, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			slot.ID, slot.UserID, slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert availability slot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
