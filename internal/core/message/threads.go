package message

import (
	"slices"

	"github.com/samber/lo"

	"github.com/example/parley/internal/models"
)

// Thread is the per-counterpart summary derived from a participant's messages.
type Thread struct {
	Counterpart models.ParticipantRef
	Latest      models.Message
	// UnreadCount counts messages from Counterpart to the owner that are unread.
	UnreadCount int
}

// Newer reports whether a sorts after b: later CreatedAt, then higher ID.
func Newer(a, b models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// BuildThreads groups the messages involving owner by counterpart. Each
// counterpart appears once, with its latest message and unread count.
// Threads are ordered by their latest message, newest first. Messages that do
// not involve owner are ignored.
func BuildThreads(owner models.ParticipantRef, messages []models.Message) []Thread {
	byCounterpart := make(map[models.ParticipantRef]*Thread)

	for _, msg := range messages {
		other, ok := msg.Counterpart(owner)
		if !ok {
			continue
		}

		thread, exists := byCounterpart[other]
		if !exists {
			thread = &Thread{Counterpart: other, Latest: msg}
			byCounterpart[other] = thread
		} else if Newer(msg, thread.Latest) {
			thread.Latest = msg
		}

		if msg.Sender == other && msg.UnreadFor(owner) {
			thread.UnreadCount++
		}
	}

	threads := lo.MapToSlice(byCounterpart, func(_ models.ParticipantRef, t *Thread) Thread {
		return *t
	})
	slices.SortFunc(threads, func(a, b Thread) int {
		switch {
		case Newer(a.Latest, b.Latest):
			return -1
		case Newer(b.Latest, a.Latest):
			return 1
		default:
			return 0
		}
	})
	return threads
}
