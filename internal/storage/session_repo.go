package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SessionRepo struct {
	db DBTX
}

func NewSessionRepo(db DBTX) *SessionRepo {
	return &SessionRepo{db: db}
}

type SessionInsert struct {
	UserID          string
	TaskID          *int64
	DurationMinutes int
	StartedAt       time.Time
}

func (r *SessionRepo) Insert(ctx context.Context, in SessionInsert) (*FocusSession, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (id, user_id, task_id, duration_minutes, status, started_at)
		VALUES (?, ?, ?, ?, 'running', ?)
	`, id, in.UserID, in.TaskID, in.DurationMinutes, in.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("session insert: %w", err)
	}
	return &FocusSession{
		ID:              id,
		UserID:          in.UserID,
		TaskID:          in.TaskID,
		DurationMinutes: in.DurationMinutes,
		Status:          "running",
		StartedAt:       in.StartedAt,
	}, nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*FocusSession, error) {
	row := r.db.QueryRowContext(ctx, sessionSelect+` WHERE id = ?`, id)
	return scanSession(row)
}

// ActiveForUser returns the user's running session, if any.
func (r *SessionRepo) ActiveForUser(ctx context.Context, userID string) (*FocusSession, error) {
	row := r.db.QueryRowContext(ctx, sessionSelect+`
		WHERE user_id = ? AND status = 'running'
		ORDER BY started_at DESC
		LIMIT 1
	`, userID)
	return scanSession(row)
}

// RewardSnapshot is the reward outcome stamped onto a completed session.
type RewardSnapshot struct {
	XP          int
	Gold        int
	StreakAfter int
	CosmeticID  *string
}

func (r *SessionRepo) MarkCompleted(ctx context.Context, id string, completedAt time.Time, snap RewardSnapshot) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE focus_sessions
		SET status = 'completed', completed_at = ?,
			reward_xp = ?, reward_gold = ?, streak_after = ?, reward_cosmetic_id = ?
		WHERE id = ?
	`, completedAt, snap.XP, snap.Gold, snap.StreakAfter, snap.CosmeticID, id)
	if err != nil {
		return fmt.Errorf("session mark completed: %w", err)
	}
	return nil
}

func (r *SessionRepo) MarkCancelled(ctx context.Context, id string, cancelledAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE focus_sessions
		SET status = 'cancelled', cancelled_at = ?
		WHERE id = ?
	`, cancelledAt, id)
	if err != nil {
		return fmt.Errorf("session mark cancelled: %w", err)
	}
	return nil
}

// History returns the most recent sessions joined with task and
// dropped-cosmetic metadata, newest first.
func (r *SessionRepo) History(ctx context.Context, userID string, limit int) ([]SessionHistoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.user_id, s.task_id, s.duration_minutes, s.status,
			s.started_at, s.completed_at, s.cancelled_at,
			s.reward_xp, s.reward_gold, s.streak_after, s.reward_cosmetic_id,
			t.name, t.room, c.name
		FROM focus_sessions s
		LEFT JOIN task_templates t ON t.id = s.task_id
		LEFT JOIN cosmetic_items c ON c.id = s.reward_cosmetic_id
		WHERE s.user_id = ?
		ORDER BY s.started_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("session history: %w", err)
	}
	defer rows.Close()

	var out []SessionHistoryItem
	for rows.Next() {
		var (
			item         SessionHistoryItem
			taskID       sql.NullInt64
			completedAt  sql.NullTime
			cancelledAt  sql.NullTime
			rewardXP     sql.NullInt64
			rewardGold   sql.NullInt64
			streakAfter  sql.NullInt64
			cosmeticID   sql.NullString
			taskName     sql.NullString
			taskRoom     sql.NullString
			cosmeticName sql.NullString
		)
		s := &item.Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &taskID, &s.DurationMinutes, &s.Status,
			&s.StartedAt, &completedAt, &cancelledAt,
			&rewardXP, &rewardGold, &streakAfter, &cosmeticID,
			&taskName, &taskRoom, &cosmeticName,
		); err != nil {
			return nil, fmt.Errorf("session history scan: %w", err)
		}
		applySessionNulls(s, taskID, completedAt, cancelledAt, rewardXP, rewardGold, streakAfter, cosmeticID)
		item.TaskName = nullString(taskName)
		item.Room = nullString(taskRoom)
		item.CosmeticName = nullString(cosmeticName)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session history rows: %w", err)
	}
	return out, nil
}

const sessionSelect = `
	SELECT id, user_id, task_id, duration_minutes, status,
		started_at, completed_at, cancelled_at,
		reward_xp, reward_gold, streak_after, reward_cosmetic_id
	FROM focus_sessions`

func scanSession(row scanner) (*FocusSession, error) {
	var (
		s           FocusSession
		taskID      sql.NullInt64
		completedAt sql.NullTime
		cancelledAt sql.NullTime
		rewardXP    sql.NullInt64
		rewardGold  sql.NullInt64
		streakAfter sql.NullInt64
		cosmeticID  sql.NullString
	)
	if err := row.Scan(
		&s.ID, &s.UserID, &taskID, &s.DurationMinutes, &s.Status,
		&s.StartedAt, &completedAt, &cancelledAt,
		&rewardXP, &rewardGold, &streakAfter, &cosmeticID,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("session scan: %w", err)
	}
	applySessionNulls(&s, taskID, completedAt, cancelledAt, rewardXP, rewardGold, streakAfter, cosmeticID)
	return &s, nil
}

func applySessionNulls(
	s *FocusSession,
	taskID sql.NullInt64,
	completedAt, cancelledAt sql.NullTime,
	rewardXP, rewardGold, streakAfter sql.NullInt64,
	cosmeticID sql.NullString,
) {
	if taskID.Valid {
		v := taskID.Int64
		s.TaskID = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		s.CompletedAt = &v
	}
	if cancelledAt.Valid {
		v := cancelledAt.Time
		s.CancelledAt = &v
	}
	if rewardXP.Valid {
		v := int(rewardXP.Int64)
		s.RewardXP = &v
	}
	if rewardGold.Valid {
		v := int(rewardGold.Int64)
		s.RewardGold = &v
	}
	if streakAfter.Valid {
		v := int(streakAfter.Int64)
		s.StreakAfter = &v
	}
	s.RewardCosmeticID = nullString(cosmeticID)
}
