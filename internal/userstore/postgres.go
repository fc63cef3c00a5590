package userstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"movie-trends-dashboard/internal/models"
)

// PostgresStore keeps each user record as a JSONB row, preserving the
// whole-record read/write semantics of the file backend so callers cannot
// tell the two apart.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore runs the store migration and seeds the admin record
// when the table is empty.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	s := &PostgresStore{db: db}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS user_records (
		username TEXT PRIMARY KEY,
		record JSONB NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("user store migration failed: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM user_records`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to inspect user store: %w", err)
	}
	if count == 0 {
		if err := s.Put("admin", seedAdmin()); err != nil {
			return nil, fmt.Errorf("failed to seed user store: %w", err)
		}
		slog.Info("seeded user store", "backend", "postgres")
	}
	return s, nil
}

// Load returns every record keyed by username.
func (s *PostgresStore) Load() (map[string]models.UserRecord, error) {
	rows, err := s.db.Query(`SELECT username, record FROM user_records`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]models.UserRecord)
	for rows.Next() {
		var username string
		var data []byte
		if err := rows.Scan(&username, &data); err != nil {
			return nil, fmt.Errorf("failed to scan user record: %w", err)
		}
		var record models.UserRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to decode record for %s: %w", username, err)
		}
		records[username] = migrate(record)
	}
	return records, rows.Err()
}

// Save overwrites the entire store with the given mapping.
func (s *PostgresStore) Save(records map[string]models.UserRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM user_records`); err != nil {
		return fmt.Errorf("failed to clear user records: %w", err)
	}
	for username, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode record for %s: %w", username, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO user_records (username, record) VALUES ($1, $2)`,
			username, data,
		); err != nil {
			return fmt.Errorf("failed to insert record for %s: %w", username, err)
		}
	}
	return tx.Commit()
}

// Get returns one record or ErrNotFound.
func (s *PostgresStore) Get(username string) (models.UserRecord, error) {
	var data []byte
	err := s.db.QueryRow(
		`SELECT record FROM user_records WHERE username = $1`, username,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return models.UserRecord{}, ErrNotFound
	}
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("failed to get user record: %w", err)
	}
	var record models.UserRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return models.UserRecord{}, fmt.Errorf("failed to decode record for %s: %w", username, err)
	}
	return migrate(record), nil
}

// Put creates or replaces one record.
func (s *PostgresStore) Put(username string, record models.UserRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record for %s: %w", username, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO user_records (username, record) VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET record = EXCLUDED.record
	`, username, data)
	if err != nil {
		return fmt.Errorf("failed to upsert record for %s: %w", username, err)
	}
	return nil
}

// Delete removes one record; absent usernames are a no-op.
func (s *PostgresStore) Delete(username string) error {
	if _, err := s.db.Exec(`DELETE FROM user_records WHERE username = $1`, username); err != nil {
		return fmt.Errorf("failed to delete record for %s: %w", username, err)
	}
	return nil
}
