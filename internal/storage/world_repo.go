package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type WorldRepo struct {
	db DBTX
}

func NewWorldRepo(db DBTX) *WorldRepo {
	return &WorldRepo{db: db}
}

func (r *WorldRepo) Get(ctx context.Context, userID string) (*WorldState, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, total_sessions, successful_sessions,
			study_room_level, build_room_level, training_room_level, plaza_level,
			last_upgrade_at
		FROM world_states
		WHERE user_id = ?
	`, userID)

	var (
		w           WorldState
		lastUpgrade sql.NullTime
	)
	if err := row.Scan(
		&w.UserID, &w.TotalSessions, &w.SuccessfulSessions,
		&w.StudyRoomLevel, &w.BuildRoomLevel, &w.TrainingRoomLevel, &w.PlazaLevel,
		&lastUpgrade,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("world get: %w", err)
	}
	if lastUpgrade.Valid {
		v := lastUpgrade.Time
		w.LastUpgradeAt = &v
	}
	return &w, nil
}

func (r *WorldRepo) Insert(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO world_states (user_id) VALUES (?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("world insert: %w", err)
	}
	return nil
}

func (r *WorldRepo) Update(ctx context.Context, w *WorldState) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE world_states
		SET total_sessions = ?, successful_sessions = ?,
			study_room_level = ?, build_room_level = ?, training_room_level = ?, plaza_level = ?,
			last_upgrade_at = ?
		WHERE user_id = ?
	`, w.TotalSessions, w.SuccessfulSessions,
		w.StudyRoomLevel, w.BuildRoomLevel, w.TrainingRoomLevel, w.PlazaLevel,
		w.LastUpgradeAt, w.UserID)
	if err != nil {
		return fmt.Errorf("world update: %w", err)
	}
	return nil
}
