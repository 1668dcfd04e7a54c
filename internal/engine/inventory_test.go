package engine

import (
	"context"
	"testing"
)

// forceDrop completes a session with a rigged roll so the user owns at
// least one cosmetic, and returns the dropped item's id.
func forceDrop(t *testing.T, svc *Service) string {
	t.Helper()
	old := svc.rng
	svc.rng = &fixedRand{vals: []float64{0}}
	defer func() { svc.rng = old }()

	s := startAndComplete(t, svc, 25)
	if s.CosmeticDrop == nil {
		t.Fatalf("expected a rigged drop")
	}
	return s.CosmeticDrop.ID
}

func TestEquipAndUnequip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id := forceDrop(t, svc)

	res, err := svc.Equip(ctx, testUser, id, false)
	if err != nil {
		t.Fatalf("equip: %v", err)
	}

	item, found := findOwned(res.Inventory, id)
	if !found || !item.Equipped {
		t.Fatalf("inventory does not show %s equipped: %+v", id, res.Inventory)
	}
	slot := slotPointer(&res.Profile.Hero, Slot(item.Item.Type))
	if slot == nil || *slot != id {
		t.Fatalf("hero slot=%v, want %s", slot, id)
	}

	res, err = svc.Equip(ctx, testUser, id, true)
	if err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if slot := slotPointer(&res.Profile.Hero, Slot(item.Item.Type)); slot != nil {
		t.Fatalf("hero slot after unequip=%v, want nil", *slot)
	}
	item, _ = findOwned(res.Inventory, id)
	if item.Equipped {
		t.Fatalf("inventory still shows %s equipped", id)
	}
}

func TestEquipReplacesSlotOccupant(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// Drain the catalog so both items of some slot are owned.
	for i := 0; i < 6; i++ {
		forceDrop(t, svc)
	}

	owned, err := svc.Inventory(ctx, testUser)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	bySlot := map[string][]string{}
	for _, o := range owned {
		bySlot[o.Item.Type] = append(bySlot[o.Item.Type], o.Item.ID)
	}
	hats := bySlot[string(SlotHat)]
	if len(hats) != 2 {
		t.Fatalf("owned hats=%d, want 2", len(hats))
	}

	if _, err := svc.Equip(ctx, testUser, hats[0], false); err != nil {
		t.Fatalf("equip first hat: %v", err)
	}
	res, err := svc.Equip(ctx, testUser, hats[1], false)
	if err != nil {
		t.Fatalf("equip second hat: %v", err)
	}
	if res.Profile.Hero.EquippedHatID == nil || *res.Profile.Hero.EquippedHatID != hats[1] {
		t.Fatalf("equipped hat=%v, want %s", res.Profile.Hero.EquippedHatID, hats[1])
	}
	if first, _ := findOwned(res.Inventory, hats[0]); first.Equipped {
		t.Fatalf("replaced hat still shows equipped")
	}
}

func TestEquipRequiresOwnership(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	if _, err := svc.Equip(context.Background(), testUser, "not-owned", false); !IsNotFound(err) {
		t.Fatalf("err=%v, want not-found error", err)
	}
}

func TestInventoryListsAcquisitions(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	owned, err := svc.Inventory(ctx, testUser)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(owned) != 0 {
		t.Fatalf("fresh inventory=%d items, want 0", len(owned))
	}

	id := forceDrop(t, svc)
	owned, err = svc.Inventory(ctx, testUser)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(owned) != 1 || owned[0].Item.ID != id {
		t.Fatalf("inventory=%+v, want the dropped item", owned)
	}
	if owned[0].AcquiredAt == "" {
		t.Fatalf("missing acquisition date")
	}
	if owned[0].Equipped {
		t.Fatalf("drop should not auto-equip")
	}
}

func findOwned(items []OwnedCosmetic, id string) (OwnedCosmetic, bool) {
	for _, o := range items {
		if o.Item.ID == id {
			return o, true
		}
	}
	return OwnedCosmetic{}, false
}
