package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HeroRepo struct {
	db DBTX
}

func NewHeroRepo(db DBTX) *HeroRepo {
	return &HeroRepo{db: db}
}

func (r *HeroRepo) Get(ctx context.Context, userID string) (*Hero, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, level, xp, gold, streak_count, longest_streak,
			last_completed_at, equipped_hat_id, equipped_outfit_id, equipped_accessory_id,
			created_at
		FROM heroes
		WHERE user_id = ?
	`, userID)

	var (
		h         Hero
		last      sql.NullTime
		hat       sql.NullString
		outfit    sql.NullString
		accessory sql.NullString
	)
	if err := row.Scan(
		&h.UserID, &h.Name, &h.Level, &h.XP, &h.Gold, &h.StreakCount, &h.LongestStreak,
		&last, &hat, &outfit, &accessory, &h.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("hero get: %w", err)
	}
	if last.Valid {
		v := last.Time
		h.LastCompletedAt = &v
	}
	h.EquippedHatID = nullString(hat)
	h.EquippedOutfitID = nullString(outfit)
	h.EquippedAccessoryID = nullString(accessory)
	return &h, nil
}

// Insert creates a hero row with level-1 defaults. Conflicting inserts
// are ignored so concurrent ensure calls stay idempotent.
func (r *HeroRepo) Insert(ctx context.Context, userID, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO heroes (user_id, name) VALUES (?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID, name)
	if err != nil {
		return fmt.Errorf("hero insert: %w", err)
	}
	return nil
}

func (r *HeroRepo) Update(ctx context.Context, h *Hero) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE heroes
		SET name = ?, level = ?, xp = ?, gold = ?, streak_count = ?, longest_streak = ?,
			last_completed_at = ?, equipped_hat_id = ?, equipped_outfit_id = ?, equipped_accessory_id = ?
		WHERE user_id = ?
	`, h.Name, h.Level, h.XP, h.Gold, h.StreakCount, h.LongestStreak,
		h.LastCompletedAt, h.EquippedHatID, h.EquippedOutfitID, h.EquippedAccessoryID,
		h.UserID)
	if err != nil {
		return fmt.Errorf("hero update: %w", err)
	}
	return nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
