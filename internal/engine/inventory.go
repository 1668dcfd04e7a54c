package engine

import (
	"context"
	"database/sql"

	"focusden/internal/storage"
)

// OwnedCosmetic is an unlocked item with its derived equipped state.
type OwnedCosmetic struct {
	Item       storage.CosmeticItem
	AcquiredAt string
	Equipped   bool
}

// Inventory lists the user's unlocked cosmetics with catalog metadata.
// An item is equipped when its id matches the hero's slot pointer for
// the item's own type.
func (s *Service) Inventory(ctx context.Context, userID string) ([]OwnedCosmetic, error) {
	var out []OwnedCosmetic
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		hero, err := s.ensureHero(ctx, tx, userID)
		if err != nil {
			return err
		}
		owned, err := storage.NewInventoryRepo(tx).ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, o := range owned {
			out = append(out, OwnedCosmetic{
				Item:       o.Item,
				AcquiredAt: o.Inventory.AcquiredAt.Format("2006-01-02"),
				Equipped:   isEquipped(hero, o.Item),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type EquipResult struct {
	Profile   Profile
	Inventory []OwnedCosmetic
}

// Equip points the hero slot matching the cosmetic's type at the item,
// or clears it when unequip is set. The slot is single-valued, so a new
// item implicitly replaces the previous occupant. Ownership is required.
func (s *Service) Equip(ctx context.Context, userID, cosmeticID string, unequip bool) (*EquipResult, error) {
	var res *EquipResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		hero, err := s.ensureHero(ctx, tx, userID)
		if err != nil {
			return err
		}

		owns, err := storage.NewInventoryRepo(tx).Owns(ctx, userID, cosmeticID)
		if err != nil {
			return err
		}
		if !owns {
			return NotFoundError{Entity: "cosmetic", ID: cosmeticID}
		}

		item, err := storage.NewCosmeticRepo(tx).Get(ctx, cosmeticID)
		if err != nil {
			return err
		}
		if item == nil {
			return NotFoundError{Entity: "cosmetic", ID: cosmeticID}
		}
		slot := Slot(item.Type)
		if !slot.IsValid() {
			return ValidationError{Reason: "cosmetic has an unknown slot type"}
		}

		if unequip {
			setSlot(hero, slot, nil)
		} else {
			setSlot(hero, slot, &item.ID)
		}
		if err := storage.NewHeroRepo(tx).Update(ctx, hero); err != nil {
			return err
		}

		profile, err := s.profileTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		owned, err := storage.NewInventoryRepo(tx).ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		res = &EquipResult{Profile: *profile}
		for _, o := range owned {
			res.Inventory = append(res.Inventory, OwnedCosmetic{
				Item:       o.Item,
				AcquiredAt: o.Inventory.AcquiredAt.Format("2006-01-02"),
				Equipped:   isEquipped(&profile.Hero, o.Item),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// setSlot is the single slot-pointer mutation shared by every equip
// path; the slot is always derived from the cosmetic's own type, so a
// type/slot mismatch is structurally impossible.
func setSlot(h *storage.Hero, slot Slot, id *string) {
	switch slot {
	case SlotHat:
		h.EquippedHatID = id
	case SlotOutfit:
		h.EquippedOutfitID = id
	case SlotAccessory:
		h.EquippedAccessoryID = id
	}
}

func slotPointer(h *storage.Hero, slot Slot) *string {
	switch slot {
	case SlotHat:
		return h.EquippedHatID
	case SlotOutfit:
		return h.EquippedOutfitID
	case SlotAccessory:
		return h.EquippedAccessoryID
	default:
		return nil
	}
}

func isEquipped(h *storage.Hero, item storage.CosmeticItem) bool {
	current := slotPointer(h, Slot(item.Type))
	return current != nil && *current == item.ID
}
