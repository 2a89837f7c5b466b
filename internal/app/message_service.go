package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	coremessage "github.com/example/parley/internal/core/message"
	"github.com/example/parley/internal/logging"
	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/primary"
	"github.com/example/parley/internal/ports/secondary"
)

// MessageServiceImpl implements the MessageService interface.
type MessageServiceImpl struct {
	messageRepo secondary.MessageRepository
	directory   secondary.ParticipantDirectory
	logger      *slog.Logger
}

// NewMessageService creates a new MessageService with injected dependencies.
func NewMessageService(messageRepo secondary.MessageRepository, directory secondary.ParticipantDirectory, logger *slog.Logger) *MessageServiceImpl {
	if logger == nil {
		logger = logging.Discard()
	}
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		directory:   directory,
		logger:      logger,
	}
}

// SendMessage stores a new message from req.Sender to req.Recipient.
func (s *MessageServiceImpl) SendMessage(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
	if err := req.Sender.Validate(); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	if err := req.Recipient.Validate(); err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}

	sender, senderExists, err := s.lookup(ctx, req.Sender)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender: %w", err)
	}
	_, recipientExists, err := s.lookup(ctx, req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	// Guard check
	guard := coremessage.CanSend(coremessage.SendContext{
		Sender:          req.Sender,
		Recipient:       req.Recipient,
		SenderExists:    senderExists,
		RecipientExists: recipientExists,
		Content:         req.Content,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	record := &secondary.MessageRecord{
		Content:   req.Content,
		Sender:    req.Sender,
		Recipient: req.Recipient,
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	logging.FromContext(ctx, s.logger).Info("message sent",
		"message_id", record.ID,
		"sender", record.Sender.String(),
		"recipient", record.Recipient.String(),
	)

	return toMessage(record, models.Participant{
		Ref:         req.Sender,
		DisplayName: sender.DisplayName,
		AvatarRef:   sender.AvatarRef,
	}), nil
}

// GetMessage retrieves a message the requester sent or received.
func (s *MessageServiceImpl) GetMessage(ctx context.Context, messageID int64, requester models.ParticipantRef) (*primary.Message, error) {
	record, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := coremessage.CanView(record.ToModel(), requester).Error(); err != nil {
		return nil, err
	}

	display := s.displayLookup(ctx)
	return toMessage(record, display(record.Sender)), nil
}

// ListMessages lists messages sent or received by participant, newest first.
func (s *MessageServiceImpl) ListMessages(ctx context.Context, participant models.ParticipantRef, unreadOnly bool) ([]*primary.Message, error) {
	if err := participant.Validate(); err != nil {
		return nil, err
	}

	records, err := s.messageRepo.List(ctx, secondary.MessageFilters{
		Participant: participant,
		UnreadOnly:  unreadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	display := s.displayLookup(ctx)
	return lo.Map(records, func(r *secondary.MessageRecord, _ int) *primary.Message {
		return toMessage(r, display(r.Sender))
	}), nil
}

// MarkRead marks a message as read on behalf of its recipient.
func (s *MessageServiceImpl) MarkRead(ctx context.Context, messageID int64, requester models.ParticipantRef) error {
	if err := s.messageRepo.MarkRead(ctx, messageID, requester); err != nil {
		return err
	}

	logging.FromContext(ctx, s.logger).Debug("message marked read",
		"message_id", messageID,
		"recipient", requester.String(),
	)
	return nil
}

// ListThreads returns one thread per counterpart, most recently active first.
func (s *MessageServiceImpl) ListThreads(ctx context.Context, participant models.ParticipantRef) ([]*primary.Thread, error) {
	if err := participant.Validate(); err != nil {
		return nil, err
	}

	records, err := s.messageRepo.List(ctx, secondary.MessageFilters{Participant: participant})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	threads := coremessage.BuildThreads(participant, toModels(records))

	display := s.displayLookup(ctx)
	return lo.Map(threads, func(t coremessage.Thread, _ int) *primary.Thread {
		counterpart := display(t.Counterpart)
		return &primary.Thread{
			Counterpart:       t.Counterpart,
			CounterpartName:   counterpart.DisplayName,
			CounterpartAvatar: counterpart.AvatarRef,
			LatestMessage: primary.ThreadMessage{
				ID:        t.Latest.ID,
				Content:   t.Latest.Content,
				SentByMe:  t.Latest.Sender == participant,
				CreatedAt: t.Latest.CreatedAt,
				Read:      t.Latest.Read,
			},
			UnreadCount: t.UnreadCount,
		}
	}), nil
}

// GetConversation returns the history between requester and other, oldest
// first, and marks read every returned message addressed to requester.
// The returned Read flags are those observed before the flip.
func (s *MessageServiceImpl) GetConversation(ctx context.Context, requester, other models.ParticipantRef) (*primary.Conversation, error) {
	if err := requester.Validate(); err != nil {
		return nil, err
	}
	if err := other.Validate(); err != nil {
		return nil, err
	}

	records, err := s.messageRepo.GetConversation(ctx, requester, other)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	messages := toModels(records)
	coremessage.SortChronological(messages)

	if unread := coremessage.UnreadIDsFor(requester, messages); len(unread) > 0 {
		flipped, err := s.messageRepo.MarkReadBatch(ctx, requester, unread)
		if err != nil {
			return nil, fmt.Errorf("failed to mark conversation read: %w", err)
		}
		logging.FromContext(ctx, s.logger).Debug("conversation marked read",
			"requester", requester.String(),
			"other", other.String(),
			"flipped", flipped,
		)
	}

	display := s.displayLookup(ctx)
	otherDisplay := display(other)

	return &primary.Conversation{
		Other: primary.Participant{
			Ref:         other,
			DisplayName: otherDisplay.DisplayName,
			AvatarRef:   otherDisplay.AvatarRef,
		},
		Messages: lo.Map(messages, func(m models.Message, _ int) *primary.ConversationMessage {
			return &primary.ConversationMessage{
				ID:              m.ID,
				Content:         m.Content,
				SentByRequester: m.Sender == requester,
				SenderName:      display(m.Sender).DisplayName,
				CreatedAt:       m.CreatedAt,
				Read:            m.Read,
			}
		}),
	}, nil
}

// GetUnreadCount returns the count of unread messages addressed to participant.
func (s *MessageServiceImpl) GetUnreadCount(ctx context.Context, participant models.ParticipantRef) (int, error) {
	if err := participant.Validate(); err != nil {
		return 0, err
	}
	return s.messageRepo.GetUnreadCount(ctx, participant)
}

// Helper methods

// lookup resolves ref for a write path. A missing participant is reported
// through exists; any other directory failure is returned.
func (s *MessageServiceImpl) lookup(ctx context.Context, ref models.ParticipantRef) (*secondary.ParticipantRecord, bool, error) {
	record, err := s.directory.Resolve(ctx, ref)
	if errors.Is(err, models.ErrParticipantNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// displayLookup returns a memoized resolver for read paths. Any directory
// failure yields the unknown participant so one stale profile never hides
// the rest of the result.
func (s *MessageServiceImpl) displayLookup(ctx context.Context) func(models.ParticipantRef) models.Participant {
	seen := make(map[models.ParticipantRef]models.Participant)
	return func(ref models.ParticipantRef) models.Participant {
		if p, ok := seen[ref]; ok {
			return p
		}

		p := models.UnknownParticipant(ref)
		record, err := s.directory.Resolve(ctx, ref)
		if err != nil {
			logging.FromContext(ctx, s.logger).Warn("participant not resolved, rendering as unknown",
				"participant", ref.String(),
				"error", err,
			)
		} else {
			p.DisplayName = record.DisplayName
			p.AvatarRef = record.AvatarRef
		}

		seen[ref] = p
		return p
	}
}

func toModels(records []*secondary.MessageRecord) []models.Message {
	return lo.Map(records, func(r *secondary.MessageRecord, _ int) models.Message {
		return r.ToModel()
	})
}

func toMessage(r *secondary.MessageRecord, sender models.Participant) *primary.Message {
	return &primary.Message{
		ID:           r.ID,
		Content:      r.Content,
		Sender:       r.Sender,
		SenderName:   sender.DisplayName,
		SenderAvatar: sender.AvatarRef,
		Recipient:    r.Recipient,
		CreatedAt:    r.CreatedAt,
		Read:         r.Read,
	}
}

// Ensure MessageServiceImpl implements the interface.
var _ primary.MessageService = (*MessageServiceImpl)(nil)
