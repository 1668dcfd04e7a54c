package engine

import "strings"

type Room string

const (
	RoomStudy    Room = "study"
	RoomBuild    Room = "build"
	RoomTraining Room = "training"
	RoomPlaza    Room = "plaza"
)

func (r Room) IsValid() bool {
	switch r {
	case RoomStudy, RoomBuild, RoomTraining, RoomPlaza:
		return true
	default:
		return false
	}
}

// DefaultRoom is used when user input is missing/invalid.
const DefaultRoom Room = RoomStudy

// ParseRoom parses user input to a Room; empty or unknown input falls
// back to DefaultRoom.
func ParseRoom(input string) Room {
	s := Room(strings.TrimSpace(strings.ToLower(input)))
	if s.IsValid() {
		return s
	}
	return DefaultRoom
}

type Slot string

const (
	SlotHat       Slot = "hat"
	SlotOutfit    Slot = "outfit"
	SlotAccessory Slot = "accessory"
)

func (s Slot) IsValid() bool {
	switch s {
	case SlotHat, SlotOutfit, SlotAccessory:
		return true
	default:
		return false
	}
}

type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic:
		return true
	default:
		return false
	}
}

type SessionStatus string

const (
	StatusRunning   SessionStatus = "running"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// AllowedDurations are the focus session lengths the engine accepts.
var AllowedDurations = []int{25, 50, 90}

func IsAllowedDuration(minutes int) bool {
	for _, d := range AllowedDurations {
		if minutes == d {
			return true
		}
	}
	return false
}

// DefaultHeroName is given to lazily provisioned heroes.
const DefaultHeroName = "Wanderer"
