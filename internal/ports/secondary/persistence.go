// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"

	"github.com/example/parley/internal/models"
)

// MessageRepository defines the secondary port for the message ledger.
// Implementations wrap driver failures with models.ErrStorageUnavailable.
type MessageRepository interface {
	// Create appends a new message. The repository assigns ID and CreatedAt
	// and writes them back into the record; Read is always stored false.
	Create(ctx context.Context, message *MessageRecord) error

	// GetByID retrieves a message by its ID.
	GetByID(ctx context.Context, id int64) (*MessageRecord, error)

	// List retrieves messages matching the given filters, newest first.
	List(ctx context.Context, filters MessageFilters) ([]*MessageRecord, error)

	// MarkRead sets read on the message if it is addressed to recipient.
	// Returns models.ErrNotFoundOrUnauthorized otherwise. Idempotent.
	MarkRead(ctx context.Context, id int64, recipient models.ParticipantRef) error

	// MarkReadBatch sets read on every listed message addressed to recipient
	// and returns how many flipped from unread.
	MarkReadBatch(ctx context.Context, recipient models.ParticipantRef, ids []int64) (int, error)

	// GetConversation retrieves all messages between two participants, oldest first.
	GetConversation(ctx context.Context, a, b models.ParticipantRef) ([]*MessageRecord, error)

	// GetUnreadCount returns the count of unread messages addressed to recipient.
	GetUnreadCount(ctx context.Context, recipient models.ParticipantRef) (int, error)
}

// MessageRecord represents a message as stored in persistence.
type MessageRecord struct {
	ID        int64
	Content   string
	Sender    models.ParticipantRef
	Recipient models.ParticipantRef
	CreatedAt time.Time
	Read      bool
}

// ToModel converts the record to the domain message.
func (r *MessageRecord) ToModel() models.Message {
	return models.Message{
		ID:        r.ID,
		Content:   r.Content,
		Sender:    r.Sender,
		Recipient: r.Recipient,
		CreatedAt: r.CreatedAt,
		Read:      r.Read,
	}
}

// MessageFilters contains filter options for listing messages.
type MessageFilters struct {
	// Participant matches messages where it is the sender or the recipient.
	Participant models.ParticipantRef
	// UnreadOnly restricts to unread messages addressed to Participant.
	UnreadOnly bool
}

// ParticipantDirectory resolves participant references to display metadata.
// Resolve returns an error wrapping models.ErrParticipantNotFound when the
// reference is unknown.
type ParticipantDirectory interface {
	Resolve(ctx context.Context, ref models.ParticipantRef) (*ParticipantRecord, error)
}

// ParticipantRepository defines the secondary port for participant persistence.
// It is also the directory the messaging core reads from.
type ParticipantRepository interface {
	ParticipantDirectory

	// Create persists a new participant. When Ref.ID is zero the next id
	// within the role is assigned and written back into the record.
	Create(ctx context.Context, participant *ParticipantRecord) error

	// List retrieves participants matching the given filters.
	List(ctx context.Context, filters ParticipantFilters) ([]*ParticipantRecord, error)

	// Delete removes a participant.
	Delete(ctx context.Context, ref models.ParticipantRef) error
}

// ParticipantRecord represents a participant as stored in persistence.
type ParticipantRecord struct {
	Ref         models.ParticipantRef
	DisplayName string
	AvatarRef   string
	CreatedAt   time.Time
}

// ParticipantFilters contains filter options for listing participants.
type ParticipantFilters struct {
	Role models.Role
}
