package engine

import (
	"database/sql"
	"math/rand"
	"time"
)

// Service exposes the focus-session engine over a SQLite database.
// Repos are constructed per call against either the DB or an open
// transaction, so composite updates stay atomic.
type Service struct {
	db  *sql.DB
	now func() time.Time
	rng RandomSource
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) DB() *sql.DB { return s.db }
