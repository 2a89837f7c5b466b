package message

import (
	"slices"

	"github.com/samber/lo"

	"github.com/example/parley/internal/models"
)

// SortChronological orders messages oldest first, ties broken by ascending ID.
func SortChronological(messages []models.Message) {
	slices.SortFunc(messages, func(a, b models.Message) int {
		switch {
		case Newer(b, a):
			return -1
		case Newer(a, b):
			return 1
		default:
			return 0
		}
	})
}

// UnreadIDsFor returns the IDs of messages addressed to requester that are
// still unread. These are the messages a conversation read flips.
func UnreadIDsFor(requester models.ParticipantRef, messages []models.Message) []int64 {
	return lo.FilterMap(messages, func(m models.Message, _ int) (int64, bool) {
		return m.ID, m.UnreadFor(requester)
	})
}

// BetweenPair reports whether the message was exchanged between a and b, in
// either direction.
func BetweenPair(msg models.Message, a, b models.ParticipantRef) bool {
	return (msg.Sender == a && msg.Recipient == b) || (msg.Sender == b && msg.Recipient == a)
}
