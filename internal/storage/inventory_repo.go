package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InventoryRepo struct {
	db DBTX
}

func NewInventoryRepo(db DBTX) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// OwnedCosmetic is an inventory row joined with its catalog item.
type OwnedCosmetic struct {
	Inventory InventoryItem
	Item      CosmeticItem
}

// Insert records an unlock for (user, cosmetic). A duplicate pair is a
// no-op ("already owned"), not an error; the bool reports whether a row
// was actually inserted.
func (r *InventoryRepo) Insert(ctx context.Context, userID, cosmeticID string, acquiredAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items (id, user_id, cosmetic_id, acquired_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, cosmetic_id) DO NOTHING
	`, uuid.NewString(), userID, cosmeticID, acquiredAt)
	if err != nil {
		return false, fmt.Errorf("inventory insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inventory rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *InventoryRepo) Owns(ctx context.Context, userID, cosmeticID string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM inventory_items WHERE user_id = ? AND cosmetic_id = ? LIMIT 1
	`, userID, cosmeticID)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("inventory owns: %w", err)
	}
	return true, nil
}

func (r *InventoryRepo) ListByUser(ctx context.Context, userID string) ([]OwnedCosmetic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.user_id, i.cosmetic_id, i.acquired_at,
			c.id, c.slug, c.name, c.description, c.type, c.rarity, c.sprite_key
		FROM inventory_items i
		JOIN cosmetic_items c ON c.id = i.cosmetic_id
		WHERE i.user_id = ?
		ORDER BY i.acquired_at ASC, c.slug ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer rows.Close()

	var out []OwnedCosmetic
	for rows.Next() {
		var (
			o    OwnedCosmetic
			desc sql.NullString
		)
		if err := rows.Scan(
			&o.Inventory.ID, &o.Inventory.UserID, &o.Inventory.CosmeticID, &o.Inventory.AcquiredAt,
			&o.Item.ID, &o.Item.Slug, &o.Item.Name, &desc, &o.Item.Type, &o.Item.Rarity, &o.Item.SpriteKey,
		); err != nil {
			return nil, fmt.Errorf("inventory scan: %w", err)
		}
		o.Item.Description = nullString(desc)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	return out, nil
}
