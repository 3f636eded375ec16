package domain

import "time"

// AnimalRow is a flattened shelter listing as stored in the animals table.
// Nullable source fields are pointers; FetchedAt is always set by the mapper.
type AnimalRow struct {
	ID              int64      `db:"id"`
	Name            *string    `db:"name"`
	Type            *string    `db:"type"`
	Age             *string    `db:"age"`
	Gender          *string    `db:"gender"`
	Status          *string    `db:"status"`
	OrgID           *string    `db:"org_id"`
	City            *string    `db:"city"`
	State           *string    `db:"state"`
	PublishedAt     *time.Time `db:"published_at"`
	StatusChangedAt *time.Time `db:"status_changed_at"`
	FetchedAt       time.Time  `db:"fetched_at"`
}
