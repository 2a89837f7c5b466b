package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

const schemaVersionSQL = `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)
`

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_participants_and_messages",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_message_participant_indexes",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_message_immutability_triggers",
		Up:      migrationV3,
	},
}

// LatestVersion returns the highest known migration version.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(conn *sql.DB) (int, error) {
	var version int
	err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations applies every pending migration, each in its own transaction.
func RunMigrations(conn *sql.DB) error {
	if _, err := conn.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := CurrentVersion(conn)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := conn.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the base tables
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS participants (
			id INTEGER NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('individual', 'organization')),
			display_name TEXT NOT NULL,
			avatar_ref TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id, role)
		);

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
	`)
	return err
}

// migrationV2 adds the per-participant lookup indexes
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id, sender_role);
		CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages(recipient_id, recipient_role);
	`)
	return err
}

// migrationV3 enforces message immutability and the monotonic read flag
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TRIGGER IF NOT EXISTS trg_messages_read_monotonic
		BEFORE UPDATE OF read ON messages
		WHEN OLD.read = 1 AND NEW.read = 0
		BEGIN
			SELECT RAISE(ABORT, 'read flag cannot be cleared');
		END;

		CREATE TRIGGER IF NOT EXISTS trg_messages_immutable
		BEFORE UPDATE OF content, sender_id, sender_role, recipient_id, recipient_role, created_at ON messages
		BEGIN
			SELECT RAISE(ABORT, 'messages are immutable');
		END;
	`)
	return err
}
