package engine

import (
	"context"
	"testing"
)

func TestProfileSeedsDefaults(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.Profile(ctx, testUser)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Hero.Name != DefaultHeroName || p.Hero.Level != 1 || p.Hero.XP != 0 {
		t.Fatalf("new hero=%+v, want %q at level 1", p.Hero, DefaultHeroName)
	}
	if p.World.StudyRoomLevel != 1 || p.World.TotalSessions != 0 {
		t.Fatalf("new world=%+v, want level-1 rooms and zero counters", p.World)
	}
	if p.Equipped.Hat != nil || p.Equipped.Outfit != nil || p.Equipped.Accessory != nil {
		t.Fatalf("new hero has equipped items: %+v", p.Equipped)
	}

	tasks, err := svc.Tasks(ctx, testUser)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("seeded tasks=%d, want 3", len(tasks))
	}

	// Re-entry does not duplicate the seeds.
	if _, err := svc.Profile(ctx, testUser); err != nil {
		t.Fatalf("second profile: %v", err)
	}
	tasks, err = svc.Tasks(ctx, testUser)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("tasks after re-entry=%d, want 3", len(tasks))
	}
}

func TestRenameHero(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.RenameHero(ctx, testUser, "  Ada  ")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if p.Hero.Name != "Ada" {
		t.Fatalf("hero name=%q, want Ada", p.Hero.Name)
	}

	if _, err := svc.RenameHero(ctx, testUser, "   "); !IsValidation(err) {
		t.Fatalf("blank rename err=%v, want validation error", err)
	}
}

func TestTaskCRUD(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, testUser, TaskInput{
		Name:            "Write Journal",
		Category:        "writing",
		Room:            "plaza",
		DefaultDuration: 25,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Room != string(RoomPlaza) || task.Category == nil || *task.Category != "writing" {
		t.Fatalf("created task=%+v", task)
	}

	updated, err := svc.UpdateTask(ctx, testUser, task.ID, TaskInput{
		Name:            "Evening Journal",
		Room:            "study",
		DefaultDuration: 50,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Evening Journal" || updated.Room != string(RoomStudy) || updated.DefaultDuration != 50 {
		t.Fatalf("updated task=%+v", updated)
	}
	if updated.Category != nil {
		t.Fatalf("category=%v, want cleared", *updated.Category)
	}

	if err := svc.DeleteTask(ctx, testUser, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteTask(ctx, testUser, task.ID); !IsNotFound(err) {
		t.Fatalf("repeat delete err=%v, want not-found error", err)
	}
}

func TestTaskValidationAndRoomFallback(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, testUser, TaskInput{Name: "  ", DefaultDuration: 25}); !IsValidation(err) {
		t.Fatalf("blank name err=%v, want validation error", err)
	}
	if _, err := svc.CreateTask(ctx, testUser, TaskInput{Name: "Read", DefaultDuration: 0}); !IsValidation(err) {
		t.Fatalf("zero duration err=%v, want validation error", err)
	}

	task, err := svc.CreateTask(ctx, testUser, TaskInput{Name: "Read", Room: "garage", DefaultDuration: 25})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Room != string(DefaultRoom) {
		t.Fatalf("unknown room stored as %q, want %q", task.Room, DefaultRoom)
	}
}

func TestTaskOwnershipIsolated(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	other, err := svc.CreateTask(ctx, "someone-else", TaskInput{Name: "Theirs", DefaultDuration: 25})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateTask(ctx, testUser, other.ID, TaskInput{Name: "Mine Now", DefaultDuration: 25}); !IsNotFound(err) {
		t.Fatalf("foreign update err=%v, want not-found error", err)
	}
	if err := svc.DeleteTask(ctx, testUser, other.ID); !IsNotFound(err) {
		t.Fatalf("foreign delete err=%v, want not-found error", err)
	}
}
