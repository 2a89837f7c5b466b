// Package message contains the pure business logic for direct messaging.
// Guards are pure functions that evaluate preconditions without side effects.
package message

import (
	"fmt"
	"strings"

	"github.com/example/parley/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	// Kind is the error kind reported when the guard fails.
	Kind error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Kind != nil {
		return fmt.Errorf("%w: %s", r.Kind, r.Reason)
	}
	return fmt.Errorf("%s", r.Reason)
}

// SendContext provides context for send guards.
type SendContext struct {
	Sender          models.ParticipantRef
	Recipient       models.ParticipantRef
	SenderExists    bool
	RecipientExists bool
	Content         string
}

// CanSend evaluates whether a message can be sent.
// Rules:
// - Content must not be blank
// - Sender must exist in the directory
// - Recipient must exist in the directory
func CanSend(ctx SendContext) GuardResult {
	if strings.TrimSpace(ctx.Content) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "content is blank",
			Kind:    models.ErrEmptyContent,
		}
	}

	if !ctx.SenderExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("sender %s not found", ctx.Sender),
			Kind:    models.ErrParticipantNotFound,
		}
	}

	if !ctx.RecipientExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("recipient %s not found", ctx.Recipient),
			Kind:    models.ErrParticipantNotFound,
		}
	}

	return GuardResult{Allowed: true}
}

// CanView evaluates whether requester may see a message.
// Only the sender and the recipient may.
func CanView(msg models.Message, requester models.ParticipantRef) GuardResult {
	if !msg.Involves(requester) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("message %d", msg.ID),
			Kind:    models.ErrNotFoundOrUnauthorized,
		}
	}
	return GuardResult{Allowed: true}
}
