// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/parley/internal/db"
	"github.com/example/parley/internal/models"
)

var (
	alice = models.NewParticipantRef(1, models.RoleIndividual)
	bob   = models.NewParticipantRef(2, models.RoleIndividual)
	chess = models.NewParticipantRef(1, models.RoleOrganization)
	drama = models.NewParticipantRef(2, models.RoleOrganization)
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// A single connection keeps every statement on the same in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open(db.DriverName, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedParticipant inserts a directory entry.
func seedParticipant(t *testing.T, db *sql.DB, ref models.ParticipantRef, name string) {
	t.Helper()
	if name == "" {
		name = ref.String()
	}
	_, err := db.Exec(
		"INSERT INTO participants (id, role, display_name, avatar_ref) VALUES (?, ?, ?, '')",
		ref.ID, string(ref.Role), name,
	)
	if err != nil {
		t.Fatalf("failed to seed participant: %v", err)
	}
}

// seedDirectory inserts the four participants shared by the tests.
func seedDirectory(t *testing.T, db *sql.DB) {
	t.Helper()
	seedParticipant(t, db, alice, "Alice")
	seedParticipant(t, db, bob, "Bob")
	seedParticipant(t, db, chess, "Chess Club")
	seedParticipant(t, db, drama, "Drama Club")
}

// seedMessage inserts a message directly and returns its ID.
func seedMessage(t *testing.T, db *sql.DB, from, to models.ParticipantRef, content string, at time.Time, read bool) int64 {
	t.Helper()
	readInt := 0
	if read {
		readInt = 1
	}
	result, err := db.Exec(
		`INSERT INTO messages (content, sender_id, sender_role, recipient_id, recipient_role, created_at, read)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		content, from.ID, string(from.Role), to.ID, string(to.Role), at.UTC(), readInt,
	)
	if err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded message id: %v", err)
	}
	return id
}

// fixedClock returns a clock that advances by one second per call.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}
