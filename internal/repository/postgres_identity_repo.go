package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hitoshi/coworkhub/internal/model"
)

// PostgresIdentityRepo はPostgreSQLを使用したidentityリポジトリ。
type PostgresIdentityRepo struct {
	db *sql.DB
}

// NewPostgresIdentityRepo はPostgresIdentityRepoを生成する。
func NewPostgresIdentityRepo(db *sql.DB) *PostgresIdentityRepo {
	return &PostgresIdentityRepo{db: db}
}

// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
// 見つからない場合はnilを返す。
func (r *PostgresIdentityRepo) FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error) {
	return r.findOne(ctx,
		`SELECT id, user_id, provider, provider_user_id, claims, created_at
		 FROM identities
		 WHERE provider = $1 AND provider_user_id = $2`,
		provider, providerUserID,
	)
}

// FindByUserID はユーザーIDでidentityを検索する。見つからない場合はnilを返す。
func (r *PostgresIdentityRepo) FindByUserID(ctx context.Context, userID string) (*model.Identity, error) {
	return r.findOne(ctx,
		`SELECT id, user_id, provider, provider_user_id, claims, created_at
		 FROM identities
		 WHERE user_id = $1`,
		userID,
	)
}

// UpdateClaims はidentityのクレームを最新のIdPレスポンスで置き換える。
func (r *PostgresIdentityRepo) UpdateClaims(ctx context.Context, id string, claims map[string]string) error {
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("failed to marshal claims: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE identities SET claims = $2 WHERE id = $1`,
		id, claimsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to update identity claims: %w", err)
	}
	return nil
}

// findOne は1件のidentityを取得しクレームJSONを復元する。
func (r *PostgresIdentityRepo) findOne(ctx context.Context, query string, args ...interface{}) (*model.Identity, error) {
	identity := &model.Identity{}
	var claimsJSON []byte

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&identity.ID, &identity.UserID, &identity.Provider,
		&identity.ProviderUserID, &claimsJSON, &identity.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}

	if len(claimsJSON) > 0 {
		if err := json.Unmarshal(claimsJSON, &identity.Claims); err != nil {
			return nil, fmt.Errorf("failed to unmarshal identity claims: %w", err)
		}
	}

	return identity, nil
}

// compile-time interface check
var _ IdentityRepository = (*PostgresIdentityRepo)(nil)
