package engine

import (
	"time"

	"focusden/internal/storage"
)

const (
	// XPPerMinute and GoldPerMinute define the deterministic base reward.
	XPPerMinute   = 2
	GoldPerMinute = 1

	// CosmeticDropChance is the probability of attempting a cosmetic
	// drop on a successful completion.
	CosmeticDropChance = 0.10
)

// RarityWeights drives the weighted-random cosmetic selection.
var RarityWeights = map[Rarity]int{
	RarityCommon: 4,
	RarityRare:   2,
	RarityEpic:   1,
}

// WorldUpgradeThresholds is the ordered table of cumulative
// successful-session counts that upgrade a room from level 1 to 2.
// The training room is tracked but has no threshold.
var WorldUpgradeThresholds = []WorldThreshold{
	{Room: RoomStudy, Threshold: 5, TargetLevel: 2},
	{Room: RoomBuild, Threshold: 15, TargetLevel: 2},
	{Room: RoomPlaza, Threshold: 30, TargetLevel: 2},
}

type WorldThreshold struct {
	Room        Room
	Threshold   int
	TargetLevel int
}

type WorldUpgrade struct {
	Room     Room
	NewLevel int
}

// RewardSummary is the outcome of a successful session completion.
type RewardSummary struct {
	SessionID      string
	XPAwarded      int
	GoldAwarded    int
	LeveledUp      bool
	NewLevel       int
	CurrentXP      int
	XPForNextLevel int
	StreakCount    int
	LongestStreak  int
	WorldUpgrades  []WorldUpgrade
	CosmeticDrop   *storage.CosmeticItem
}

// RandomSource supplies uniform draws in [0, 1). Injected so tests can
// drive drop rolls and weighted sampling deterministically.
type RandomSource interface {
	Float64() float64
}

// BaseRewards computes the deterministic XP/gold for a session length.
func BaseRewards(durationMinutes int) (xp, gold int) {
	return durationMinutes * XPPerMinute, durationMinutes * GoldPerMinute
}

// XPThreshold returns the XP needed to leave the given level.
func XPThreshold(level int) int {
	if level*100 < 100 {
		return 100
	}
	return level * 100
}

// ApplyLeveling adds gained XP and rolls levels over while the current
// threshold is met. Thresholds are positive, so the loop terminates.
func ApplyLeveling(level, currentXP, gained int) (newLevel, newXP int, leveledUp bool) {
	newLevel = level
	newXP = currentXP + gained
	for newXP >= XPThreshold(newLevel) {
		newXP -= XPThreshold(newLevel)
		newLevel++
		leveledUp = true
	}
	return newLevel, newXP, leveledUp
}

// NextStreak computes the streak after a completion at now, given the
// previous streak and the last completion time. Both timestamps are
// truncated to UTC midnight before differencing; same-day repeats keep
// the streak, a one-day gap extends it, anything else resets to 1.
func NextStreak(prev int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}
	prevDay := truncateToDay(*last)
	today := truncateToDay(now)
	diffDays := int(today.Sub(prevDay).Hours() / 24)

	switch diffDays {
	case 0:
		if prev < 1 {
			return 1
		}
		return prev
	case 1:
		if prev < 0 {
			return 1
		}
		return prev + 1
	default:
		return 1
	}
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyWorldUpgrades fires every threshold the cumulative successful
// count has reached whose room is still below its target level. Checking
// the whole table lets restored states catch up past several thresholds
// in one completion.
func ApplyWorldUpgrades(w *storage.WorldState, now time.Time) []WorldUpgrade {
	var upgrades []WorldUpgrade
	for _, t := range WorldUpgradeThresholds {
		lvl := roomLevel(w, t.Room)
		if lvl == nil {
			continue
		}
		if w.SuccessfulSessions >= t.Threshold && *lvl < t.TargetLevel {
			*lvl = t.TargetLevel
			at := now
			w.LastUpgradeAt = &at
			upgrades = append(upgrades, WorldUpgrade{Room: t.Room, NewLevel: t.TargetLevel})
		}
	}
	return upgrades
}

func roomLevel(w *storage.WorldState, room Room) *int {
	switch room {
	case RoomStudy:
		return &w.StudyRoomLevel
	case RoomBuild:
		return &w.BuildRoomLevel
	case RoomTraining:
		return &w.TrainingRoomLevel
	case RoomPlaza:
		return &w.PlazaLevel
	default:
		return nil
	}
}

// PickCosmetic selects one item from the pool by rarity weight: a
// uniform draw in [0, totalWeight) and a linear cumulative scan. Returns
// nil for an empty pool.
func PickCosmetic(pool []storage.CosmeticItem, rng RandomSource) *storage.CosmeticItem {
	if len(pool) == 0 {
		return nil
	}
	total := 0
	for i := range pool {
		total += rarityWeight(Rarity(pool[i].Rarity))
	}
	draw := rng.Float64() * float64(total)
	cumulative := 0.0
	for i := range pool {
		cumulative += float64(rarityWeight(Rarity(pool[i].Rarity)))
		if draw < cumulative {
			return &pool[i]
		}
	}
	return &pool[len(pool)-1]
}

func rarityWeight(r Rarity) int {
	if w, ok := RarityWeights[r]; ok {
		return w
	}
	return RarityWeights[RarityCommon]
}
