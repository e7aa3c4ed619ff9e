package database

import (
	"database/sql"
	"fmt"
	"time"
)

// AuditStore persists audit entries to the sqlite archive. The in-memory
// event log is the authoritative bounded view; the archive keeps a durable
// trail for offline inspection and is pruned on a schedule.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore creates an audit store on top of an initialized database.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Insert records one audit entry for a guild.
func (s *AuditStore) Insert(guildID, entry string, at time.Time) error {
	query := `INSERT INTO audit_log (guild_id, entry, timestamp) VALUES (?, ?, ?)`
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare audit insert: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(guildID, entry, at.UTC().Unix()); err != nil {
		return fmt.Errorf("failed to insert audit entry for guild %s: %w", guildID, err)
	}
	return nil
}

// Recent returns up to limit archived entries for a guild, oldest first.
func (s *AuditStore) Recent(guildID string, limit int) ([]string, error) {
	query := `
    SELECT entry FROM (
        SELECT id, entry FROM audit_log WHERE guild_id = ? ORDER BY id DESC LIMIT ?
    ) ORDER BY id ASC`
	rows, err := s.db.Query(query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PruneOlderThan deletes archived entries with a timestamp before the cutoff
// and returns the number of rows removed.
func (s *AuditStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM audit_log WHERE timestamp < ?`, cutoff.UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit entries: %w", err)
	}
	return res.RowsAffected()
}
