package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/coworkhub/internal/model"
)

// PostgresAvailabilityRepo はPostgreSQLを使用した空き時間枠リポジトリ。
// 読み取り専用。書き込みはProfileRepository.UpsertWithAvailabilityの
// トランザクション内でのみ行われる。
type PostgresAvailabilityRepo struct {
	db *sql.DB
}

// NewPostgresAvailabilityRepo はPostgresAvailabilityRepoを生成する。
func NewPostgresAvailabilityRepo(db *sql.DB) *PostgresAvailabilityRepo {
	return &PostgresAvailabilityRepo{db: db}
}

// ListByUserID は指定ユーザーの空き時間枠を曜日・開始時刻順で返す。
func (r *PostgresAvailabilityRepo) ListByUserID(ctx context.Context, userID string) ([]*model.AvailabilitySlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, day_of_week, start_time, end_time, created_at
		 FROM availability_slots
		 WHERE user_id = $1
		 ORDER BY day_of_week, start_time`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.AvailabilitySlot
	for rows.Next() {
		slot := &model.AvailabilitySlot{}
		if err := rows.Scan(
			&slot.ID, &slot.UserID, &slot.DayOfWeek,
			&slot.StartTime, &slot.EndTime, &slot.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan availability slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate availability slots: %w", err)
	}

	return slots, nil
}

// compile-time interface check
var _ AvailabilityRepository = (*PostgresAvailabilityRepo)(nil)
