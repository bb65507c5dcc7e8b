package domain

import "time"

// Project mirrors one row of the externally synced interface sheet,
// keyed by name. A repeated sync for the same name overwrites the row.
type Project struct {
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Vendor      string    `json:"vendor"`
	SyncedAt    time.Time `json:"synced_at"`
}
