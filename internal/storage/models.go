package storage

import "time"

type Hero struct {
	UserID              string
	Name                string
	Level               int
	XP                  int
	Gold                int
	StreakCount         int
	LongestStreak       int
	LastCompletedAt     *time.Time
	EquippedHatID       *string
	EquippedOutfitID    *string
	EquippedAccessoryID *string
	CreatedAt           time.Time
}

type WorldState struct {
	UserID             string
	TotalSessions      int
	SuccessfulSessions int
	StudyRoomLevel     int
	BuildRoomLevel     int
	TrainingRoomLevel  int
	PlazaLevel         int
	LastUpgradeAt      *time.Time
}

type TaskTemplate struct {
	ID              int64
	UserID          string
	Name            string
	Category        *string
	Room            string
	DefaultDuration int
	CreatedAt       time.Time
}

type CosmeticItem struct {
	ID          string
	Slug        string
	Name        string
	Description *string
	Type        string
	Rarity      string
	SpriteKey   string
}

type InventoryItem struct {
	ID         string
	UserID     string
	CosmeticID string
	AcquiredAt time.Time
}

type FocusSession struct {
	ID               string
	UserID           string
	TaskID           *int64
	DurationMinutes  int
	Status           string
	StartedAt        time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	RewardXP         *int
	RewardGold       *int
	StreakAfter      *int
	RewardCosmeticID *string
}

// SessionHistoryItem is a session row joined with display metadata.
type SessionHistoryItem struct {
	Session      FocusSession
	TaskName     *string
	Room         *string
	CosmeticName *string
}
