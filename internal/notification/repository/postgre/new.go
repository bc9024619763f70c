package postgres

import (
	"database/sql"
	"time"

	"sla-srv/internal/notification/repository"
	pkgLog "sla-srv/pkg/log"
)

type implRepository struct {
	l     pkgLog.Logger
	db    *sql.DB
	clock func() time.Time
}

var (
	_ repository.Repository         = &implRepository{}
	_ repository.TemplateRepository = &implRepository{}
	_ repository.ContactRepository  = &implRepository{}
)

func newRepository(l pkgLog.Logger, db *sql.DB) *implRepository {
	return &implRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}

func New(l pkgLog.Logger, db *sql.DB) repository.Repository {
	return newRepository(l, db)
}

func NewTemplateRepository(l pkgLog.Logger, db *sql.DB) repository.TemplateRepository {
	return newRepository(l, db)
}

// NewContactRepository reads recipient addresses from the users and clients
// tables.
func NewContactRepository(l pkgLog.Logger, db *sql.DB) repository.ContactRepository {
	return newRepository(l, db)
}
