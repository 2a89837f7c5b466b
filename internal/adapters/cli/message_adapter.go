// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/primary"
)

const timeLayout = "2006-01-02 15:04"

var (
	unreadMark = color.New(color.FgHiMagenta).Sprint("●")
	readMark   = color.New(color.FgHiBlack).Sprint("✓")
	outArrow   = color.New(color.FgCyan).Sprint("→")
	inArrow    = color.New(color.FgGreen).Sprint("←")
)

// MessageAdapter is a thin adapter that translates CLI operations to MessageService calls.
// It depends only on the MessageService interface, enabling easy testing with mocks.
type MessageAdapter struct {
	service primary.MessageService
	out     io.Writer
}

// NewMessageAdapter creates a new MessageAdapter with the given service.
func NewMessageAdapter(service primary.MessageService, out io.Writer) *MessageAdapter {
	return &MessageAdapter{
		service: service,
		out:     out,
	}
}

// Send sends a message from sender to recipient.
func (a *MessageAdapter) Send(ctx context.Context, sender, recipient models.ParticipantRef, content string) (*primary.Message, error) {
	msg, err := a.service.SendMessage(ctx, primary.SendMessageRequest{
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Message sent: #%d\n", msg.ID)
	fmt.Fprintf(a.out, "  From: %s (%s)\n", msg.SenderName, msg.Sender)
	fmt.Fprintf(a.out, "  To:   %s\n", msg.Recipient)
	return msg, nil
}

// Inbox lists the participant's messages. Without all, only unread ones.
func (a *MessageAdapter) Inbox(ctx context.Context, participant models.ParticipantRef, all bool) error {
	messages, err := a.service.ListMessages(ctx, participant, !all)
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	if len(messages) == 0 {
		if all {
			fmt.Fprintln(a.out, "No messages")
		} else {
			fmt.Fprintln(a.out, "No unread messages")
		}
		return nil
	}

	fmt.Fprintf(a.out, "Inbox for %s\n\n", participant)

	for _, msg := range messages {
		status := readMark
		if msg.Recipient == participant && !msg.Read {
			status = unreadMark
		}

		arrow, who := inArrow, fmt.Sprintf("%s (%s)", msg.SenderName, msg.Sender)
		if msg.Sender == participant {
			arrow, who = outArrow, msg.Recipient.String()
		}

		fmt.Fprintf(a.out, "%s #%d [%s] %s %s\n", status, msg.ID, msg.CreatedAt.Local().Format(timeLayout), arrow, who)
		fmt.Fprintf(a.out, "  %s\n", truncate(msg.Content, 60))
		fmt.Fprintln(a.out)
	}

	unread, err := a.service.GetUnreadCount(ctx, participant)
	if err != nil {
		return fmt.Errorf("failed to count unread messages: %w", err)
	}
	fmt.Fprintf(a.out, "Total: %d messages (%d unread)\n", len(messages), unread)
	return nil
}

// Read displays a message and marks it read when the requester is its recipient.
func (a *MessageAdapter) Read(ctx context.Context, messageID int64, requester models.ParticipantRef) error {
	msg, err := a.service.GetMessage(ctx, messageID, requester)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}

	fmt.Fprintf(a.out, "Message: #%d\n", msg.ID)
	fmt.Fprintf(a.out, "From: %s (%s)\n", msg.SenderName, msg.Sender)
	fmt.Fprintf(a.out, "To: %s\n", msg.Recipient)
	fmt.Fprintf(a.out, "Date: %s\n", msg.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(a.out, "\n%s\n", msg.Content)

	if msg.Recipient == requester && !msg.Read {
		if err := a.service.MarkRead(ctx, messageID, requester); err != nil {
			return fmt.Errorf("failed to mark as read: %w", err)
		}
		fmt.Fprintln(a.out, "\n✓ Marked as read")
	}

	return nil
}

// Threads lists one line per counterpart.
func (a *MessageAdapter) Threads(ctx context.Context, participant models.ParticipantRef) error {
	threads, err := a.service.ListThreads(ctx, participant)
	if err != nil {
		return fmt.Errorf("failed to list threads: %w", err)
	}

	if len(threads) == 0 {
		fmt.Fprintln(a.out, "No conversations yet")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-24s %-7s %-16s %s\n", "WITH", "NAME", "UNREAD", "LAST", "MESSAGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, th := range threads {
		unread := fmt.Sprintf("%-7d", th.UnreadCount)
		if th.UnreadCount > 0 {
			unread = color.New(color.FgHiMagenta).Sprint(unread)
		}

		prefix := ""
		if th.LatestMessage.SentByMe {
			prefix = "You: "
		}

		fmt.Fprintf(a.out, "%-20s %-24s %s %-16s %s\n",
			th.Counterpart,
			truncate(th.CounterpartName, 24),
			unread,
			th.LatestMessage.CreatedAt.Local().Format(timeLayout),
			prefix+truncate(th.LatestMessage.Content, 40),
		)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Conversation prints the history with other, oldest first. Reading it marks
// the incoming messages read.
func (a *MessageAdapter) Conversation(ctx context.Context, requester, other models.ParticipantRef) error {
	conv, err := a.service.GetConversation(ctx, requester, other)
	if err != nil {
		return fmt.Errorf("failed to get conversation: %w", err)
	}

	if len(conv.Messages) == 0 {
		fmt.Fprintf(a.out, "No conversation with %s (%s)\n", conv.Other.DisplayName, other)
		return nil
	}

	fmt.Fprintf(a.out, "Conversation: %s ↔ %s (%s)\n\n", requester, conv.Other.DisplayName, other)

	newlyRead := 0
	for _, msg := range conv.Messages {
		direction := inArrow
		if msg.SentByRequester {
			direction = outArrow
		} else if !msg.Read {
			newlyRead++
		}

		fmt.Fprintf(a.out, "%s [%s] %s\n", direction, msg.CreatedAt.Local().Format(timeLayout), msg.SenderName)
		fmt.Fprintf(a.out, "  %s\n", msg.Content)
		fmt.Fprintln(a.out)
	}

	fmt.Fprintf(a.out, "Total: %d messages", len(conv.Messages))
	if newlyRead > 0 {
		fmt.Fprintf(a.out, " (%d marked read)", newlyRead)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Unread prints the unread count.
func (a *MessageAdapter) Unread(ctx context.Context, participant models.ParticipantRef) error {
	count, err := a.service.GetUnreadCount(ctx, participant)
	if err != nil {
		return fmt.Errorf("failed to count unread messages: %w", err)
	}

	fmt.Fprintf(a.out, "%d unread\n", count)
	return nil
}

// truncate shortens s to maxLen runes on a single line.
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
