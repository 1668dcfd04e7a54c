package root

import (
	"context"

	"focusden/internal/config"
	"focusden/internal/engine"
	"focusden/internal/storage"
)

type appEnv struct {
	svc    *engine.Service
	cfg    config.Config
	userID string
}

func openEnv(ctx context.Context) (*appEnv, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return &appEnv{svc: engine.NewService(db), cfg: cfg, userID: cfg.UserID}, cleanup, nil
}
