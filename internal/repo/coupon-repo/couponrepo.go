package couponrepo

import (
	"context"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Claim selects up to qty unconsumed codes of the given type, oldest first,
// skipping rows locked by concurrent claims, and deletes them in place.
// It must run inside a transaction: the selected rows stay locked until
// commit, so two concurrent claims never overlap.
//
// If fewer than qty lockable codes exist, nothing is consumed and the
// observed available count is returned with ok=false. Rows held by an
// in-flight competitor are not counted as available.
func (r *Repository) Claim(ctx context.Context, couponType string, qty int64) (codes []string, available int64, err error) {
	query := `
        SELECT id, code
        FROM coupons
        WHERE type = $1
        ORDER BY id ASC
        LIMIT $2
        FOR UPDATE SKIP LOCKED
    `
	rows, err := r.db.Query(ctx, query, couponType, qty)
	if err != nil {
		zap.L().Error("can't lock coupon rows", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			zap.L().Error("can't scan coupon row", zap.Error(err))
			return nil, 0, err
		}
		ids = append(ids, id)
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	available = int64(len(ids))
	if available < qty {
		return nil, available, nil
	}

	deleteQuery := `
        DELETE FROM coupons
        WHERE id = ANY($1)
    `
	if _, err := r.db.Exec(ctx, deleteQuery, ids); err != nil {
		zap.L().Error("can't consume claimed coupons", zap.Error(err))
		return nil, 0, err
	}
	return codes, available, nil
}

func (r *Repository) CountByType(ctx context.Context, couponType string) (int64, error) {
	query := `
        SELECT COUNT(*)
        FROM coupons
        WHERE type = $1
    `
	var count int64
	err := r.db.QueryRow(ctx, query, couponType).Scan(&count)
	if err != nil {
		zap.L().Error("can't count coupons", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) BulkInsert(ctx context.Context, couponType string, codes []string) (int64, error) {
	query := `
        INSERT INTO coupons (type, code)
        SELECT $1, unnest($2::text[])
        ON CONFLICT (code) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, couponType, codes)
	if err != nil {
		zap.L().Error("can't insert coupons", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Remove deletes up to qty codes of the type, skipping locked rows, and
// reports how many were actually removed. Partial removal is fine here.
func (r *Repository) Remove(ctx context.Context, couponType string, qty int64) (int64, error) {
	query := `
        DELETE FROM coupons
        WHERE id IN (
            SELECT id
            FROM coupons
            WHERE type = $1
            ORDER BY id ASC
            LIMIT $2
            FOR UPDATE SKIP LOCKED
        )
    `
	tag, err := r.db.Exec(ctx, query, couponType, qty)
	if err != nil {
		zap.L().Error("can't remove coupons", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
