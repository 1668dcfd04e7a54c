package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS heroes (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			gold INTEGER NOT NULL DEFAULT 0,
			streak_count INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_completed_at DATETIME,
			equipped_hat_id TEXT,
			equipped_outfit_id TEXT,
			equipped_accessory_id TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS world_states (
			user_id TEXT PRIMARY KEY,
			total_sessions INTEGER NOT NULL DEFAULT 0,
			successful_sessions INTEGER NOT NULL DEFAULT 0,
			study_room_level INTEGER NOT NULL DEFAULT 1,
			build_room_level INTEGER NOT NULL DEFAULT 1,
			training_room_level INTEGER NOT NULL DEFAULT 1,
			plaza_level INTEGER NOT NULL DEFAULT 1,
			last_upgrade_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS task_templates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT,
			room TEXT NOT NULL DEFAULT 'study',
			default_duration INTEGER NOT NULL DEFAULT 25,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS cosmetic_items (
			id TEXT PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			rarity TEXT NOT NULL,
			sprite_key TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			cosmetic_id TEXT NOT NULL,
			acquired_at DATETIME NOT NULL,
			UNIQUE(user_id, cosmetic_id),
			FOREIGN KEY(cosmetic_id) REFERENCES cosmetic_items(id)
		);`,
		`CREATE TABLE IF NOT EXISTS focus_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			task_id INTEGER,
			duration_minutes INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'running',
			started_at DATETIME NOT NULL,
			completed_at DATETIME,
			cancelled_at DATETIME,
			reward_xp INTEGER,
			reward_gold INTEGER,
			streak_after INTEGER,
			reward_cosmetic_id TEXT,
			FOREIGN KEY(task_id) REFERENCES task_templates(id),
			FOREIGN KEY(reward_cosmetic_id) REFERENCES cosmetic_items(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_task_templates_user_id ON task_templates(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_items_user_id ON inventory_items(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_focus_sessions_user_id_started_at ON focus_sessions(user_id, started_at);`,
		// One running session per user. Start re-checks inside its
		// transaction; this index backs the invariant against races.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_focus_sessions_one_running
			ON focus_sessions(user_id) WHERE status = 'running';`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
