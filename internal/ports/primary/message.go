package primary

import (
	"context"
	"time"

	"github.com/example/parley/internal/models"
)

// MessageService defines the primary port for direct messaging.
// Every operation takes the caller's participant reference explicitly; the
// same operations serve both roles.
type MessageService interface {
	// SendMessage stores a new message. Fails with models.ErrParticipantNotFound
	// when either side does not resolve in the directory.
	SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error)

	// GetMessage returns a single message visible to the requester.
	GetMessage(ctx context.Context, messageID int64, requester models.ParticipantRef) (*Message, error)

	// ListMessages lists every message sent or received by participant, newest first.
	// With unreadOnly set, only unread messages addressed to participant are returned.
	ListMessages(ctx context.Context, participant models.ParticipantRef, unreadOnly bool) ([]*Message, error)

	// MarkRead marks a message read. Only the recipient may do so; anything
	// else yields models.ErrNotFoundOrUnauthorized. Repeating the call is a no-op.
	MarkRead(ctx context.Context, messageID int64, requester models.ParticipantRef) error

	// ListThreads returns one thread per counterpart, most recently active first.
	ListThreads(ctx context.Context, participant models.ParticipantRef) ([]*Thread, error)

	// GetConversation returns the full history between requester and other,
	// oldest first, and marks as read every returned message addressed to
	// requester. The read flip is durable.
	GetConversation(ctx context.Context, requester, other models.ParticipantRef) (*Conversation, error)

	// GetUnreadCount returns the number of unread messages addressed to participant.
	GetUnreadCount(ctx context.Context, participant models.ParticipantRef) (int, error)
}

// SendMessageRequest contains parameters for sending a message.
type SendMessageRequest struct {
	Sender    models.ParticipantRef
	Recipient models.ParticipantRef
	Content   string
}

// Message represents a message at the port boundary, rendered with the
// sender's current display metadata.
type Message struct {
	ID           int64                 `json:"id"`
	Content      string                `json:"content"`
	Sender       models.ParticipantRef `json:"sender"`
	SenderName   string                `json:"sender_name"`
	SenderAvatar string                `json:"sender_avatar,omitempty"`
	Recipient    models.ParticipantRef `json:"recipient"`
	CreatedAt    time.Time             `json:"created_at"`
	Read         bool                  `json:"read"`
}

// Thread summarizes the exchange with one counterpart.
type Thread struct {
	Counterpart       models.ParticipantRef `json:"counterpart"`
	CounterpartName   string                `json:"counterpart_name"`
	CounterpartAvatar string                `json:"counterpart_avatar,omitempty"`
	LatestMessage     ThreadMessage         `json:"latest_message"`
	UnreadCount       int                   `json:"unread_count"`
}

// ThreadMessage is the latest message of a thread, seen from the requester.
type ThreadMessage struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	SentByMe  bool      `json:"sent_by_me"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// Conversation is the ordered history between the requester and one other participant.
type Conversation struct {
	Other    Participant            `json:"other"`
	Messages []*ConversationMessage `json:"messages"`
}

// ConversationMessage is one entry of a conversation. Read reports the flag
// as it was before this retrieval marked the message read.
type ConversationMessage struct {
	ID              int64     `json:"id"`
	Content         string    `json:"content"`
	SentByRequester bool      `json:"sent_by_requester"`
	SenderName      string    `json:"sender_name"`
	CreatedAt       time.Time `json:"created_at"`
	Read            bool      `json:"read"`
}
