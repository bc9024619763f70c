package repository

import "time"

// Cursor is the keyset position after the last feedback of a page.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// ListOpenOptions pages open feedbacks ordered by (created_at, id).
type ListOpenOptions struct {
	CompanyIDs []string
	After      *Cursor
	Limit      int
}
