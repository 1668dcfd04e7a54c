package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type CosmeticRepo struct {
	db DBTX
}

func NewCosmeticRepo(db DBTX) *CosmeticRepo {
	return &CosmeticRepo{db: db}
}

// InsertIfAbsent seeds a catalog item keyed by slug. Safe to call any
// number of times from any process.
func (r *CosmeticRepo) InsertIfAbsent(ctx context.Context, item CosmeticItem) error {
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cosmetic_items (id, slug, name, description, type, rarity, sprite_key)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO NOTHING
	`, id, item.Slug, item.Name, item.Description, item.Type, item.Rarity, item.SpriteKey)
	if err != nil {
		return fmt.Errorf("cosmetic seed insert: %w", err)
	}
	return nil
}

func (r *CosmeticRepo) Get(ctx context.Context, id string) (*CosmeticItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, slug, name, description, type, rarity, sprite_key
		FROM cosmetic_items
		WHERE id = ?
	`, id)
	return scanCosmetic(row)
}

// ListUnowned returns catalog items the user has not unlocked yet, the
// eligible pool for a drop roll.
func (r *CosmeticRepo) ListUnowned(ctx context.Context, userID string) ([]CosmeticItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.slug, c.name, c.description, c.type, c.rarity, c.sprite_key
		FROM cosmetic_items c
		WHERE NOT EXISTS (
			SELECT 1 FROM inventory_items i
			WHERE i.user_id = ? AND i.cosmetic_id = c.id
		)
		ORDER BY c.slug ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("cosmetic unowned list: %w", err)
	}
	defer rows.Close()

	var out []CosmeticItem
	for rows.Next() {
		c, err := scanCosmetic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cosmetic unowned rows: %w", err)
	}
	return out, nil
}

func scanCosmetic(row scanner) (*CosmeticItem, error) {
	var (
		c    CosmeticItem
		desc sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Slug, &c.Name, &desc, &c.Type, &c.Rarity, &c.SpriteKey); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("cosmetic scan: %w", err)
	}
	c.Description = nullString(desc)
	return &c, nil
}
