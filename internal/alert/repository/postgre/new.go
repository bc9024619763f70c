package postgres

import (
	"database/sql"
	"time"

	"sla-srv/internal/alert/repository"
	pkgLog "sla-srv/pkg/log"
)

type implRepository struct {
	l     pkgLog.Logger
	db    *sql.DB
	clock func() time.Time
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *sql.DB) repository.Repository {
	return &implRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}
