// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/secondary"
)

const messageColumns = "id, content, sender_id, sender_role, recipient_id, recipient_role, created_at, read"

// MessageRepository implements secondary.MessageRepository with SQLite.
type MessageRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return NewMessageRepositoryWithClock(db, time.Now)
}

// NewMessageRepositoryWithClock creates a repository that stamps messages with now.
func NewMessageRepositoryWithClock(db *sql.DB, now func() time.Time) *MessageRepository {
	return &MessageRepository{db: db, now: now}
}

// Create persists a new message, assigning its ID and creation time.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	createdAt := r.now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (content, sender_id, sender_role, recipient_id, recipient_role, created_at, read)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		message.Content,
		message.Sender.ID, string(message.Sender.Role),
		message.Recipient.ID, string(message.Recipient.Role),
		createdAt,
	)
	if err != nil {
		return storageError("failed to create message", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageError("failed to read message id", err)
	}

	message.ID = id
	message.CreatedAt = createdAt
	message.Read = false
	return nil
}

// GetByID retrieves a message by its ID.
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*secondary.MessageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE id = ?",
		id,
	)

	record, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: message %d", models.ErrNotFoundOrUnauthorized, id)
	}
	if err != nil {
		return nil, storageError("failed to get message", err)
	}

	return record, nil
}

// List retrieves messages sent or received by a participant, newest first.
// With UnreadOnly, only unread messages addressed to the participant are returned.
func (r *MessageRepository) List(ctx context.Context, filters secondary.MessageFilters) ([]*secondary.MessageRecord, error) {
	p := filters.Participant

	var (
		query string
		args  []any
	)
	if filters.UnreadOnly {
		query = "SELECT " + messageColumns + " FROM messages WHERE recipient_id = ? AND recipient_role = ? AND read = 0"
		args = []any{p.ID, string(p.Role)}
	} else {
		query = "SELECT " + messageColumns + ` FROM messages
			WHERE (sender_id = ? AND sender_role = ?) OR (recipient_id = ? AND recipient_role = ?)`
		args = []any{p.ID, string(p.Role), p.ID, string(p.Role)}
	}

	query += " ORDER BY created_at DESC, id DESC"

	return r.queryMessages(ctx, "failed to list messages", query, args...)
}

// MarkRead marks a message as read on behalf of its recipient.
// Re-marking a read message succeeds since SQLite counts matched rows.
func (r *MessageRepository) MarkRead(ctx context.Context, id int64, recipient models.ParticipantRef) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE messages SET read = 1 WHERE id = ? AND recipient_id = ? AND recipient_role = ?",
		id, recipient.ID, string(recipient.Role),
	)
	if err != nil {
		return storageError("failed to mark message as read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to mark message as read", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: message %d", models.ErrNotFoundOrUnauthorized, id)
	}

	return nil
}

// MarkReadBatch marks the listed messages read where they are addressed to
// recipient and still unread. Returns the number of rows flipped.
func (r *MessageRepository) MarkReadBatch(ctx context.Context, recipient models.ParticipantRef, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := fmt.Sprintf(
		"UPDATE messages SET read = 1 WHERE read = 0 AND recipient_id = ? AND recipient_role = ? AND id IN (%s)",
		placeholders,
	)

	args := append([]any{recipient.ID, string(recipient.Role)}, lo.ToAnySlice(ids)...)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storageError("failed to mark messages as read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, storageError("failed to mark messages as read", err)
	}
	return int(rowsAffected), nil
}

// GetConversation retrieves all messages between two participants, oldest first.
func (r *MessageRepository) GetConversation(ctx context.Context, a, b models.ParticipantRef) ([]*secondary.MessageRecord, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE (sender_id = ? AND sender_role = ? AND recipient_id = ? AND recipient_role = ?)
		   OR (sender_id = ? AND sender_role = ? AND recipient_id = ? AND recipient_role = ?)
		ORDER BY created_at ASC, id ASC
	`

	return r.queryMessages(ctx, "failed to get conversation", query,
		a.ID, string(a.Role), b.ID, string(b.Role),
		b.ID, string(b.Role), a.ID, string(a.Role),
	)
}

// GetUnreadCount returns the count of unread messages addressed to recipient.
func (r *MessageRepository) GetUnreadCount(ctx context.Context, recipient models.ParticipantRef) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE recipient_id = ? AND recipient_role = ? AND read = 0",
		recipient.ID, string(recipient.Role),
	).Scan(&count)
	if err != nil {
		return 0, storageError("failed to get unread count", err)
	}

	return count, nil
}

// queryMessages runs a query and reads every row before returning, so the
// connection is released before callers issue further lookups.
func (r *MessageRepository) queryMessages(ctx context.Context, op, query string, args ...any) ([]*secondary.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	messages := []*secondary.MessageRecord{}
	for rows.Next() {
		record, err := scanMessage(rows)
		if err != nil {
			return nil, storageError("failed to scan message", err)
		}
		messages = append(messages, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}

	return messages, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*secondary.MessageRecord, error) {
	var (
		record        secondary.MessageRecord
		senderRole    string
		recipientRole string
		readInt       int
	)

	err := row.Scan(
		&record.ID, &record.Content,
		&record.Sender.ID, &senderRole,
		&record.Recipient.ID, &recipientRole,
		&record.CreatedAt, &readInt,
	)
	if err != nil {
		return nil, err
	}

	record.Sender.Role = models.Role(senderRole)
	record.Recipient.Role = models.Role(recipientRole)
	record.CreatedAt = record.CreatedAt.UTC()
	record.Read = readInt == 1

	return &record, nil
}

// storageError wraps a driver failure as models.ErrStorageUnavailable.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", models.ErrStorageUnavailable, op, err)
}

// Ensure MessageRepository implements the interface.
var _ secondary.MessageRepository = (*MessageRepository)(nil)
