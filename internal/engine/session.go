package engine

import (
	"context"
	"database/sql"
	"fmt"

	"focusden/internal/storage"
)

type StartInput struct {
	TaskID          *int64
	DurationMinutes int
}

// Start opens a focus session for the user. At most one session may be
// running per user; a second start is a conflict. The check runs inside
// the insert transaction and is additionally backed by a unique partial
// index, so two concurrent starts cannot both land.
func (s *Service) Start(ctx context.Context, userID string, in StartInput) (*storage.FocusSession, error) {
	if !IsAllowedDuration(in.DurationMinutes) {
		return nil, ValidationError{Reason: fmt.Sprintf("duration must be one of %v minutes", AllowedDurations)}
	}

	var session *storage.FocusSession
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.ensureHero(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := s.ensureWorld(ctx, tx, userID); err != nil {
			return err
		}

		if in.TaskID != nil {
			task, err := storage.NewTaskRepo(tx).Get(ctx, *in.TaskID)
			if err != nil {
				return err
			}
			if task == nil || task.UserID != userID {
				return ValidationError{Reason: fmt.Sprintf("task %d does not belong to you", *in.TaskID)}
			}
		}

		sessions := storage.NewSessionRepo(tx)
		active, err := sessions.ActiveForUser(ctx, userID)
		if err != nil {
			return err
		}
		if active != nil {
			return ConflictError{Reason: "active session already in progress"}
		}

		session, err = sessions.Insert(ctx, storage.SessionInsert{
			UserID:          userID,
			TaskID:          in.TaskID,
			DurationMinutes: in.DurationMinutes,
			StartedAt:       s.now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Complete resolves a running session and applies the full reward: base
// XP/gold, leveling roll-over, streak continuity, world-upgrade
// thresholds and the cosmetic drop roll. Session row, hero, world and
// any inventory insert all land in one transaction or not at all.
func (s *Service) Complete(ctx context.Context, userID, sessionID string) (*RewardSummary, error) {
	var summary *RewardSummary
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		sessions := storage.NewSessionRepo(tx)
		session, err := s.ownedSession(ctx, sessions, userID, sessionID)
		if err != nil {
			return err
		}
		if session.Status != string(StatusRunning) {
			return InvalidStateError{Entity: "session", ID: sessionID, Status: session.Status}
		}

		// Hero/world are created by Start; missing here means a
		// data-integrity bug upstream, not a recoverable condition.
		hero, err := storage.NewHeroRepo(tx).Get(ctx, userID)
		if err != nil {
			return err
		}
		if hero == nil {
			return fmt.Errorf("completing session %s: %w", sessionID, NotFoundError{Entity: "hero", ID: userID})
		}
		world, err := storage.NewWorldRepo(tx).Get(ctx, userID)
		if err != nil {
			return err
		}
		if world == nil {
			return fmt.Errorf("completing session %s: %w", sessionID, NotFoundError{Entity: "world state", ID: userID})
		}

		now := s.now().UTC()
		xp, gold := BaseRewards(session.DurationMinutes)

		level, currentXP, leveledUp := ApplyLeveling(hero.Level, hero.XP, xp)
		hero.Level = level
		hero.XP = currentXP
		hero.Gold += gold

		streak := NextStreak(hero.StreakCount, hero.LastCompletedAt, now)
		hero.StreakCount = streak
		if streak > hero.LongestStreak {
			hero.LongestStreak = streak
		}
		completedAt := now
		hero.LastCompletedAt = &completedAt

		world.TotalSessions++
		world.SuccessfulSessions++
		upgrades := ApplyWorldUpgrades(world, now)

		var drop *storage.CosmeticItem
		if s.rng.Float64() < CosmeticDropChance {
			pool, err := storage.NewCosmeticRepo(tx).ListUnowned(ctx, userID)
			if err != nil {
				return err
			}
			drop = PickCosmetic(pool, s.rng)
			if drop != nil {
				if _, err := storage.NewInventoryRepo(tx).Insert(ctx, userID, drop.ID, now); err != nil {
					return err
				}
			}
		}

		if err := storage.NewHeroRepo(tx).Update(ctx, hero); err != nil {
			return err
		}
		if err := storage.NewWorldRepo(tx).Update(ctx, world); err != nil {
			return err
		}

		snap := storage.RewardSnapshot{XP: xp, Gold: gold, StreakAfter: streak}
		if drop != nil {
			snap.CosmeticID = &drop.ID
		}
		if err := sessions.MarkCompleted(ctx, sessionID, now, snap); err != nil {
			return err
		}

		summary = &RewardSummary{
			SessionID:      sessionID,
			XPAwarded:      xp,
			GoldAwarded:    gold,
			LeveledUp:      leveledUp,
			NewLevel:       level,
			CurrentXP:      currentXP,
			XPForNextLevel: XPThreshold(level),
			StreakCount:    streak,
			LongestStreak:  hero.LongestStreak,
			WorldUpgrades:  upgrades,
			CosmeticDrop:   drop,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Cancel marks a running session cancelled. No rewards are applied; the
// attempt still counts toward the world's total-session counter.
// Cancelling an already-terminal session is rejected, not absorbed.
func (s *Service) Cancel(ctx context.Context, userID, sessionID string) (*storage.FocusSession, error) {
	var session *storage.FocusSession
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		sessions := storage.NewSessionRepo(tx)
		var err error
		session, err = s.ownedSession(ctx, sessions, userID, sessionID)
		if err != nil {
			return err
		}
		if session.Status != string(StatusRunning) {
			return InvalidStateError{Entity: "session", ID: sessionID, Status: session.Status}
		}

		now := s.now().UTC()
		if err := sessions.MarkCancelled(ctx, sessionID, now); err != nil {
			return err
		}
		session.Status = string(StatusCancelled)
		session.CancelledAt = &now

		world, err := s.ensureWorld(ctx, tx, userID)
		if err != nil {
			return err
		}
		world.TotalSessions++
		return storage.NewWorldRepo(tx).Update(ctx, world)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Active returns the user's running session, or nil if there is none.
func (s *Service) Active(ctx context.Context, userID string) (*storage.FocusSession, error) {
	return storage.NewSessionRepo(s.db).ActiveForUser(ctx, userID)
}

// History returns the most recent sessions, newest first, joined with
// task and dropped-cosmetic names for display.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]storage.SessionHistoryItem, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return storage.NewSessionRepo(s.db).History(ctx, userID, limit)
}

func (s *Service) ownedSession(ctx context.Context, sessions *storage.SessionRepo, userID, sessionID string) (*storage.FocusSession, error) {
	session, err := sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, NotFoundError{Entity: "session", ID: sessionID}
	}
	return session, nil
}
