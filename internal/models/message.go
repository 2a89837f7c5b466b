package models

import "time"

// Message is a directed message between two participants. Everything except
// Read is fixed at creation; Read only ever moves from false to true.
type Message struct {
	ID        int64
	Content   string
	Sender    ParticipantRef
	Recipient ParticipantRef
	CreatedAt time.Time
	Read      bool
}

// Involves reports whether p is the sender or the recipient.
func (m Message) Involves(p ParticipantRef) bool {
	return m.Sender == p || m.Recipient == p
}

// Counterpart returns the participant opposite p. The second result is false
// when p is not part of the message.
func (m Message) Counterpart(p ParticipantRef) (ParticipantRef, bool) {
	switch p {
	case m.Sender:
		return m.Recipient, true
	case m.Recipient:
		return m.Sender, true
	default:
		return ParticipantRef{}, false
	}
}

// UnreadFor reports whether the message is addressed to p and still unread.
func (m Message) UnreadFor(p ParticipantRef) bool {
	return m.Recipient == p && !m.Read
}
