package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/primary"
)

var (
	alice = models.NewParticipantRef(1, models.RoleIndividual)
	chess = models.NewParticipantRef(1, models.RoleOrganization)
	when  = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
)

// mockMessageService implements primary.MessageService for testing
type mockMessageService struct {
	sendMessageFn     func(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error)
	getMessageFn      func(ctx context.Context, id int64, requester models.ParticipantRef) (*primary.Message, error)
	listMessagesFn    func(ctx context.Context, p models.ParticipantRef, unreadOnly bool) ([]*primary.Message, error)
	listThreadsFn     func(ctx context.Context, p models.ParticipantRef) ([]*primary.Thread, error)
	getConversationFn func(ctx context.Context, requester, other models.ParticipantRef) (*primary.Conversation, error)
	unreadCount       int

	// Track calls for verification
	lastSendReq    primary.SendMessageRequest
	lastUnreadOnly bool
	markReadCalls  []int64
}

func (m *mockMessageService) SendMessage(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
	m.lastSendReq = req
	if m.sendMessageFn != nil {
		return m.sendMessageFn(ctx, req)
	}
	return &primary.Message{
		ID: 7, Content: req.Content, Sender: req.Sender, SenderName: "Alice",
		Recipient: req.Recipient, CreatedAt: when,
	}, nil
}

func (m *mockMessageService) GetMessage(ctx context.Context, id int64, requester models.ParticipantRef) (*primary.Message, error) {
	if m.getMessageFn != nil {
		return m.getMessageFn(ctx, id, requester)
	}
	return &primary.Message{ID: id, Content: "hello", Sender: chess, SenderName: "Chess Club", Recipient: alice, CreatedAt: when}, nil
}

func (m *mockMessageService) ListMessages(ctx context.Context, p models.ParticipantRef, unreadOnly bool) ([]*primary.Message, error) {
	m.lastUnreadOnly = unreadOnly
	if m.listMessagesFn != nil {
		return m.listMessagesFn(ctx, p, unreadOnly)
	}
	return []*primary.Message{}, nil
}

func (m *mockMessageService) MarkRead(ctx context.Context, id int64, requester models.ParticipantRef) error {
	m.markReadCalls = append(m.markReadCalls, id)
	return nil
}

func (m *mockMessageService) ListThreads(ctx context.Context, p models.ParticipantRef) ([]*primary.Thread, error) {
	if m.listThreadsFn != nil {
		return m.listThreadsFn(ctx, p)
	}
	return []*primary.Thread{}, nil
}

func (m *mockMessageService) GetConversation(ctx context.Context, requester, other models.ParticipantRef) (*primary.Conversation, error) {
	if m.getConversationFn != nil {
		return m.getConversationFn(ctx, requester, other)
	}
	return &primary.Conversation{Other: primary.Participant{Ref: other, DisplayName: "Chess Club"}}, nil
}

func (m *mockMessageService) GetUnreadCount(ctx context.Context, p models.ParticipantRef) (int, error) {
	return m.unreadCount, nil
}

func TestMessageAdapter_Send(t *testing.T) {
	mock := &mockMessageService{}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	_, err := adapter.Send(context.Background(), alice, chess, "Can I join?")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if mock.lastSendReq.Recipient != chess || mock.lastSendReq.Content != "Can I join?" {
		t.Errorf("unexpected request %+v", mock.lastSendReq)
	}
	output := buf.String()
	if !strings.Contains(output, "Message sent: #7") {
		t.Errorf("expected confirmation, got: %s", output)
	}
	if !strings.Contains(output, "organization:1") {
		t.Errorf("expected recipient in output, got: %s", output)
	}
}

func TestMessageAdapter_Send_Error(t *testing.T) {
	mock := &mockMessageService{
		sendMessageFn: func(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
			return nil, models.ErrParticipantNotFound
		},
	}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	_, err := adapter.Send(context.Background(), alice, chess, "hi")
	if !errors.Is(err, models.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failure, got: %s", buf.String())
	}
}

func TestMessageAdapter_Inbox(t *testing.T) {
	tests := []struct {
		name     string
		all      bool
		messages []*primary.Message
		want     []string
	}{
		{name: "empty unread", all: false, want: []string{"No unread messages"}},
		{name: "empty all", all: true, want: []string{"No messages"}},
		{
			name: "mixed",
			all:  true,
			messages: []*primary.Message{
				{ID: 2, Content: "See you Thursday", Sender: chess, SenderName: "Chess Club", Recipient: alice, CreatedAt: when},
				{ID: 1, Content: "Can I join?", Sender: alice, SenderName: "Alice", Recipient: chess, CreatedAt: when, Read: true},
			},
			want: []string{"Inbox for individual:1", "#2", "Chess Club (organization:1)", "See you Thursday", "#1", "Total: 2 messages (1 unread)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockMessageService{
				listMessagesFn: func(ctx context.Context, p models.ParticipantRef, unreadOnly bool) ([]*primary.Message, error) {
					if tt.messages == nil {
						return []*primary.Message{}, nil
					}
					return tt.messages, nil
				},
				unreadCount: 1,
			}
			var buf bytes.Buffer
			adapter := NewMessageAdapter(mock, &buf)

			if err := adapter.Inbox(context.Background(), alice, tt.all); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if mock.lastUnreadOnly == tt.all {
				t.Errorf("expected unreadOnly=%v", !tt.all)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("expected output to contain %q, got: %s", w, buf.String())
				}
			}
		})
	}
}

func TestMessageAdapter_Read_MarksIncomingUnread(t *testing.T) {
	mock := &mockMessageService{}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	if err := adapter.Read(context.Background(), 5, alice); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(mock.markReadCalls) != 1 || mock.markReadCalls[0] != 5 {
		t.Errorf("expected MarkRead(5), got %v", mock.markReadCalls)
	}
	if !strings.Contains(buf.String(), "Marked as read") {
		t.Errorf("expected read confirmation, got: %s", buf.String())
	}
}

func TestMessageAdapter_Read_SentMessageNotMarked(t *testing.T) {
	mock := &mockMessageService{}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	// the mock message is from chess to alice; chess is the sender
	if err := adapter.Read(context.Background(), 5, chess); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mock.markReadCalls) != 0 {
		t.Errorf("expected no MarkRead call, got %v", mock.markReadCalls)
	}
}

func TestMessageAdapter_Threads(t *testing.T) {
	mock := &mockMessageService{
		listThreadsFn: func(ctx context.Context, p models.ParticipantRef) ([]*primary.Thread, error) {
			return []*primary.Thread{
				{
					Counterpart:     chess,
					CounterpartName: "Chess Club",
					LatestMessage:   primary.ThreadMessage{ID: 3, Content: "Bring a board", SentByMe: true, CreatedAt: when},
					UnreadCount:     2,
				},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	if err := adapter.Threads(context.Background(), alice); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	for _, w := range []string{"organization:1", "Chess Club", "2", "You: Bring a board"} {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q, got: %s", w, output)
		}
	}
}

func TestMessageAdapter_Threads_Empty(t *testing.T) {
	mock := &mockMessageService{}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	if err := adapter.Threads(context.Background(), alice); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No conversations yet") {
		t.Errorf("expected empty notice, got: %s", buf.String())
	}
}

func TestMessageAdapter_Conversation(t *testing.T) {
	mock := &mockMessageService{
		getConversationFn: func(ctx context.Context, requester, other models.ParticipantRef) (*primary.Conversation, error) {
			return &primary.Conversation{
				Other: primary.Participant{Ref: other, DisplayName: "Chess Club"},
				Messages: []*primary.ConversationMessage{
					{ID: 1, Content: "Can I join?", SentByRequester: true, SenderName: "Alice", CreatedAt: when},
					{ID: 2, Content: "Of course", SenderName: "Chess Club", CreatedAt: when.Add(time.Minute)},
				},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	if err := adapter.Conversation(context.Background(), alice, chess); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	if strings.Index(output, "Can I join?") > strings.Index(output, "Of course") {
		t.Errorf("expected oldest message first, got: %s", output)
	}
	if !strings.Contains(output, "Total: 2 messages (1 marked read)") {
		t.Errorf("expected summary line, got: %s", output)
	}
}

func TestMessageAdapter_Conversation_Empty(t *testing.T) {
	mock := &mockMessageService{}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	if err := adapter.Conversation(context.Background(), alice, chess); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No conversation with Chess Club") {
		t.Errorf("expected empty notice, got: %s", buf.String())
	}
}

func TestMessageAdapter_Unread(t *testing.T) {
	mock := &mockMessageService{unreadCount: 4}
	var buf bytes.Buffer
	adapter := NewMessageAdapter(mock, &buf)

	if err := adapter.Unread(context.Background(), alice); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != "4 unread" {
		t.Errorf("expected '4 unread', got %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "line one\nline two", max: 40, want: "line one line two"},
		{in: "abcdefghijkl", max: 8, want: "abcde..."},
		{in: "héllo wörld", max: 8, want: "héllo..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
