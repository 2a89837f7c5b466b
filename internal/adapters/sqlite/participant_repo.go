// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/secondary"
)

// ParticipantRepository implements secondary.ParticipantRepository with SQLite.
// It also serves as the participant directory.
type ParticipantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a new SQLite participant repository.
func NewParticipantRepository(db *sql.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Resolve looks up a participant's display metadata.
func (r *ParticipantRepository) Resolve(ctx context.Context, ref models.ParticipantRef) (*secondary.ParticipantRecord, error) {
	record := &secondary.ParticipantRecord{Ref: ref}

	var createdAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		"SELECT display_name, avatar_ref, created_at FROM participants WHERE id = ? AND role = ?",
		ref.ID, string(ref.Role),
	).Scan(&record.DisplayName, &record.AvatarRef, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrParticipantNotFound, ref)
	}
	if err != nil {
		return nil, storageError("failed to resolve participant", err)
	}

	record.CreatedAt = createdAt.Time
	return record, nil
}

// Create persists a new participant. A zero ID is replaced by the next id
// within the role, computed in the same statement as the insert.
func (r *ParticipantRepository) Create(ctx context.Context, participant *secondary.ParticipantRecord) error {
	createdAt := time.Now().UTC()

	if participant.Ref.ID != 0 {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO participants (id, role, display_name, avatar_ref, created_at) VALUES (?, ?, ?, ?, ?)",
			participant.Ref.ID, string(participant.Ref.Role), participant.DisplayName, participant.AvatarRef, createdAt,
		)
		if err != nil {
			return storageError("failed to create participant", err)
		}
		participant.CreatedAt = createdAt
		return nil
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO participants (id, role, display_name, avatar_ref, created_at)
		 SELECT COALESCE(MAX(id), 0) + 1, ?, ?, ?, ? FROM participants WHERE role = ?
		 RETURNING id`,
		string(participant.Ref.Role), participant.DisplayName, participant.AvatarRef, createdAt,
		string(participant.Ref.Role),
	).Scan(&id)
	if err != nil {
		return storageError("failed to create participant", err)
	}

	participant.Ref.ID = id
	participant.CreatedAt = createdAt
	return nil
}

// List retrieves participants, optionally restricted to one role.
func (r *ParticipantRepository) List(ctx context.Context, filters secondary.ParticipantFilters) ([]*secondary.ParticipantRecord, error) {
	query := "SELECT id, role, display_name, avatar_ref, created_at FROM participants"
	var args []any

	if filters.Role != "" {
		query += " WHERE role = ?"
		args = append(args, string(filters.Role))
	}

	query += " ORDER BY role, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("failed to list participants", err)
	}
	defer rows.Close()

	participants := []*secondary.ParticipantRecord{}
	for rows.Next() {
		var (
			record    secondary.ParticipantRecord
			role      string
			createdAt sql.NullTime
		)
		if err := rows.Scan(&record.Ref.ID, &role, &record.DisplayName, &record.AvatarRef, &createdAt); err != nil {
			return nil, storageError("failed to scan participant", err)
		}
		record.Ref.Role = models.Role(role)
		record.CreatedAt = createdAt.Time
		participants = append(participants, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list participants", err)
	}

	return participants, nil
}

// Delete removes a participant. Messages referencing it are untouched.
func (r *ParticipantRepository) Delete(ctx context.Context, ref models.ParticipantRef) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM participants WHERE id = ? AND role = ?",
		ref.ID, string(ref.Role),
	)
	if err != nil {
		return storageError("failed to delete participant", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to delete participant", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrParticipantNotFound, ref)
	}

	return nil
}

// Ensure ParticipantRepository implements the interface.
var _ secondary.ParticipantRepository = (*ParticipantRepository)(nil)
