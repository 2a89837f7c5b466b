package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh parley installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(). If repository code references a column
// that doesn't exist here, tests fail immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `go test ./...` to verify alignment
const SchemaSQL = `
-- Participants (directory of individuals and organizations)
-- ids are assigned per role, so the primary key is the pair
CREATE TABLE IF NOT EXISTS participants (
	id INTEGER NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('individual', 'organization')),
	display_name TEXT NOT NULL,
	avatar_ref TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (id, role)
);

-- Messages (directed, pairwise). No foreign keys to participants:
-- messages outlive profile removal.
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL CHECK(length(trim(content)) > 0),
	sender_id INTEGER NOT NULL,
	sender_role TEXT NOT NULL CHECK(sender_role IN ('individual', 'organization')),
	recipient_id INTEGER NOT NULL,
	recipient_role TEXT NOT NULL CHECK(recipient_role IN ('individual', 'organization')),
	created_at DATETIME NOT NULL,
	read INTEGER NOT NULL DEFAULT 0 CHECK(read IN (0, 1))
);

CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id, sender_role);
CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages(recipient_id, recipient_role);

-- read only moves from 0 to 1
CREATE TRIGGER IF NOT EXISTS trg_messages_read_monotonic
BEFORE UPDATE OF read ON messages
WHEN OLD.read = 1 AND NEW.read = 0
BEGIN
	SELECT RAISE(ABORT, 'read flag cannot be cleared');
END;

-- everything but read is immutable
CREATE TRIGGER IF NOT EXISTS trg_messages_immutable
BEFORE UPDATE OF content, sender_id, sender_role, recipient_id, recipient_role, created_at ON messages
BEGIN
	SELECT RAISE(ABORT, 'messages are immutable');
END;
`

// InitSchema brings conn up to date.
// A fresh database gets SchemaSQL directly with every migration marked as
// applied; an existing one runs the pending migrations.
func InitSchema(conn *sql.DB) error {
	var tableCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(conn)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := tx.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	for _, m := range migrations {
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return tx.Commit()
}

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}
