// Package userstore persists account, profile, checklist and notification
// state. The default backend is a single JSON file rewritten in full on
// every mutation; a Postgres backend implements the same interface for
// deployments that outgrow the file.
package userstore

import (
	"errors"

	"movie-trends-dashboard/internal/models"
)

// ErrNotFound is returned when a username has no record.
var ErrNotFound = errors.New("user not found")

// Store is the whole-record key-value interface over user records.
// Every call reads the backing store fresh; callers doing read-modify-write
// across two calls can lose updates to a concurrent writer (last-write-wins,
// a documented limitation of the file backend).
type Store interface {
	// Load returns every record keyed by username.
	Load() (map[string]models.UserRecord, error)
	// Save overwrites the entire store with the given mapping.
	Save(records map[string]models.UserRecord) error
	// Get returns one record or ErrNotFound.
	Get(username string) (models.UserRecord, error)
	// Put creates or replaces one record.
	Put(username string, record models.UserRecord) error
	// Delete removes one record; deleting an absent record is a no-op.
	Delete(username string) error
}

// seedAdmin is the record auto-created when the store is empty or absent.
func seedAdmin() models.UserRecord {
	return models.UserRecord{
		Password:       "123",
		FullName:       "Admin User",
		Email:          "admin@example.com",
		MovieChecklist: map[string]models.ChecklistEntry{},
		Notifications:  []models.Notification{},
	}
}

// migrate back-fills fields added after a record was written, so old store
// files keep loading: nil checklists and notification lists become empty.
func migrate(record models.UserRecord) models.UserRecord {
	if record.MovieChecklist == nil {
		record.MovieChecklist = map[string]models.ChecklistEntry{}
	}
	if record.Notifications == nil {
		record.Notifications = []models.Notification{}
	}
	return record
}
