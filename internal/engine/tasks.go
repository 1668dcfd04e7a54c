package engine

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"focusden/internal/storage"
)

type TaskInput struct {
	Name            string
	Category        string
	Room            string
	DefaultDuration int
}

func (in TaskInput) normalize() (storage.TaskInsert, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return storage.TaskInsert{}, ValidationError{Reason: "task name is required"}
	}
	if in.DefaultDuration <= 0 {
		return storage.TaskInsert{}, ValidationError{Reason: "default duration must be positive"}
	}
	out := storage.TaskInsert{
		Name:            name,
		Room:            string(ParseRoom(in.Room)),
		DefaultDuration: in.DefaultDuration,
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		out.Category = &c
	}
	return out, nil
}

// CreateTask adds a task template preset for the user.
func (s *Service) CreateTask(ctx context.Context, userID string, in TaskInput) (*storage.TaskTemplate, error) {
	insert, err := in.normalize()
	if err != nil {
		return nil, err
	}
	insert.UserID = userID

	var task *storage.TaskTemplate
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.ensureHero(ctx, tx, userID); err != nil {
			return err
		}
		tasks := storage.NewTaskRepo(tx)
		id, err := tasks.Insert(ctx, insert)
		if err != nil {
			return err
		}
		task, err = tasks.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Tasks lists the user's templates, oldest first.
func (s *Service) Tasks(ctx context.Context, userID string) ([]storage.TaskTemplate, error) {
	var out []storage.TaskTemplate
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.ensureHero(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		out, err = storage.NewTaskRepo(tx).ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTask rewrites an owned template with the given fields.
func (s *Service) UpdateTask(ctx context.Context, userID string, taskID int64, in TaskInput) (*storage.TaskTemplate, error) {
	insert, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var task *storage.TaskTemplate
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := storage.NewTaskRepo(tx)
		task, err = s.ownedTask(ctx, tasks, userID, taskID)
		if err != nil {
			return err
		}
		task.Name = insert.Name
		task.Category = insert.Category
		task.Room = insert.Room
		task.DefaultDuration = insert.DefaultDuration
		return tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes an owned template. Past sessions keep their own
// duration, so nothing else changes.
func (s *Service) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := storage.NewTaskRepo(tx)
		if _, err := s.ownedTask(ctx, tasks, userID, taskID); err != nil {
			return err
		}
		return tasks.Delete(ctx, taskID)
	})
}

func (s *Service) ownedTask(ctx context.Context, tasks *storage.TaskRepo, userID string, taskID int64) (*storage.TaskTemplate, error) {
	task, err := tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.UserID != userID {
		return nil, NotFoundError{Entity: "task", ID: strconv.FormatInt(taskID, 10)}
	}
	return task, nil
}
