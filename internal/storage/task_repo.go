package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	UserID          string
	Name            string
	Category        *string
	Room            string
	DefaultDuration int
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO task_templates (user_id, name, category, room, default_duration)
		VALUES (?, ?, ?, ?, ?)
	`, in.UserID, in.Name, in.Category, in.Room, in.DefaultDuration)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

// InsertIfAbsent inserts a template unless the user already has one with
// the same name. Used by the default-template seeding.
func (r *TaskRepo) InsertIfAbsent(ctx context.Context, in TaskInsert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_templates (user_id, name, category, room, default_duration)
		SELECT ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM task_templates WHERE user_id = ? AND name = ?
		)
	`, in.UserID, in.Name, in.Category, in.Room, in.DefaultDuration, in.UserID, in.Name)
	if err != nil {
		return fmt.Errorf("task seed insert: %w", err)
	}
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*TaskTemplate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, category, room, default_duration, created_at
		FROM task_templates
		WHERE id = ?
	`, id)
	return scanTask(row)
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID string) ([]TaskTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, category, room, default_duration, created_at
		FROM task_templates
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []TaskTemplate
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) Update(ctx context.Context, t *TaskTemplate) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE task_templates
		SET name = ?, category = ?, room = ?, default_duration = ?
		WHERE id = ?
	`, t.Name, t.Category, t.Room, t.DefaultDuration, t.ID)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

func scanTask(row scanner) (*TaskTemplate, error) {
	var (
		t        TaskTemplate
		category sql.NullString
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &category, &t.Room, &t.DefaultDuration, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.Category = nullString(category)
	return &t, nil
}

type scanner interface {
	Scan(dest ...any) error
}
