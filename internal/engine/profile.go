package engine

import (
	"context"
	"database/sql"
	"strings"

	"focusden/internal/storage"
)

// Profile is the hero + world view with equipped cosmetics resolved.
type Profile struct {
	Hero     storage.Hero
	World    storage.WorldState
	Equipped EquippedSet
}

type EquippedSet struct {
	Hat       *storage.CosmeticItem
	Outfit    *storage.CosmeticItem
	Accessory *storage.CosmeticItem
}

var cosmeticSeed = []storage.CosmeticItem{
	{Slug: "starter-cap", Name: "Starter Cap", Description: ptr("A trusty cap for first-time focusers."), Type: string(SlotHat), Rarity: string(RarityCommon), SpriteKey: "starter-cap"},
	{Slug: "ember-hood", Name: "Ember Hood", Description: ptr("Still warm from the last deep-work sprint."), Type: string(SlotHat), Rarity: string(RarityRare), SpriteKey: "ember-hood"},
	{Slug: "focus-coat", Name: "Focus Coat", Description: ptr("Heavy enough to keep distractions out."), Type: string(SlotOutfit), Rarity: string(RarityCommon), SpriteKey: "focus-coat"},
	{Slug: "artisan-tunic", Name: "Artisan Tunic", Description: ptr("Stitched one completed session at a time."), Type: string(SlotOutfit), Rarity: string(RarityRare), SpriteKey: "artisan-tunic"},
	{Slug: "glimmer-bracelet", Name: "Glimmer Bracelet", Description: ptr("Catches the light on streak days."), Type: string(SlotAccessory), Rarity: string(RarityCommon), SpriteKey: "glimmer-bracelet"},
	{Slug: "starlit-compass", Name: "Starlit Compass", Description: ptr("Points at whatever you set out to finish."), Type: string(SlotAccessory), Rarity: string(RarityEpic), SpriteKey: "starlit-compass"},
}

var defaultTaskSeed = []storage.TaskInsert{
	{Name: "Deep Study", Category: ptr("learning"), Room: string(RoomStudy), DefaultDuration: 25},
	{Name: "Build Something", Category: ptr("making"), Room: string(RoomBuild), DefaultDuration: 50},
	{Name: "Morning Training", Category: ptr("health"), Room: string(RoomTraining), DefaultDuration: 25},
}

// ensureHero is the idempotent get-or-create for the hero record. It
// also seeds the global cosmetic catalog and, on first creation, the
// user's default task templates. All seeding is insert-if-absent keyed
// by a natural unique key, so it is safe across processes.
func (s *Service) ensureHero(ctx context.Context, db storage.DBTX, userID string) (*storage.Hero, error) {
	heroes := storage.NewHeroRepo(db)

	cosmetics := storage.NewCosmeticRepo(db)
	for _, item := range cosmeticSeed {
		if err := cosmetics.InsertIfAbsent(ctx, item); err != nil {
			return nil, err
		}
	}

	hero, err := heroes.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hero == nil {
		if err := heroes.Insert(ctx, userID, DefaultHeroName); err != nil {
			return nil, err
		}
		tasks := storage.NewTaskRepo(db)
		for _, t := range defaultTaskSeed {
			t.UserID = userID
			if err := tasks.InsertIfAbsent(ctx, t); err != nil {
				return nil, err
			}
		}
		hero, err = heroes.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if hero == nil {
			return nil, NotFoundError{Entity: "hero", ID: userID}
		}
	}
	return hero, nil
}

// ensureWorld is the idempotent get-or-create for the world record.
func (s *Service) ensureWorld(ctx context.Context, db storage.DBTX, userID string) (*storage.WorldState, error) {
	worlds := storage.NewWorldRepo(db)
	world, err := worlds.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if world == nil {
		if err := worlds.Insert(ctx, userID); err != nil {
			return nil, err
		}
		world, err = worlds.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if world == nil {
			return nil, NotFoundError{Entity: "world state", ID: userID}
		}
	}
	return world, nil
}

// Profile returns the hero, world and equipped cosmetics, creating the
// records with defaults on first access.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	var p *Profile
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		p, err = s.profileTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) profileTx(ctx context.Context, db storage.DBTX, userID string) (*Profile, error) {
	hero, err := s.ensureHero(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	world, err := s.ensureWorld(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	cosmetics := storage.NewCosmeticRepo(db)
	equipped := EquippedSet{}
	for _, e := range []struct {
		id   *string
		dest **storage.CosmeticItem
	}{
		{hero.EquippedHatID, &equipped.Hat},
		{hero.EquippedOutfitID, &equipped.Outfit},
		{hero.EquippedAccessoryID, &equipped.Accessory},
	} {
		if e.id == nil {
			continue
		}
		item, err := cosmetics.Get(ctx, *e.id)
		if err != nil {
			return nil, err
		}
		*e.dest = item
	}

	return &Profile{Hero: *hero, World: *world, Equipped: equipped}, nil
}

// RenameHero updates the hero display name.
func (s *Service) RenameHero(ctx context.Context, userID, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError{Reason: "hero name is required"}
	}

	var p *Profile
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		hero, err := s.ensureHero(ctx, tx, userID)
		if err != nil {
			return err
		}
		hero.Name = name
		if err := storage.NewHeroRepo(tx).Update(ctx, hero); err != nil {
			return err
		}
		p, err = s.profileTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func ptr[T any](v T) *T { return &v }
