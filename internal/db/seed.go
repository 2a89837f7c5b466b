package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: a few
// individuals and organizations and a handful of conversations between them,
// some read and some not.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC()

	participants := []struct {
		id     int64
		role   string
		name   string
		avatar string
	}{
		{1, "individual", "Alex Johnson", "avatars/alex.png"},
		{2, "individual", "Jordan Lee", "avatars/jordan.png"},
		{3, "individual", "Morgan Smith", ""},
		{1, "organization", "Robotics Club", "avatars/robotics.png"},
		{2, "organization", "Debate Society", ""},
		{3, "organization", "Jazz Ensemble", "avatars/jazz.png"},
	}
	for _, p := range participants {
		if _, err := database.Exec(
			"INSERT INTO participants (id, role, display_name, avatar_ref, created_at) VALUES (?, ?, ?, ?, ?)",
			p.id, p.role, p.name, p.avatar, now,
		); err != nil {
			return fmt.Errorf("seed participants: %w", err)
		}
	}

	messages := []struct {
		senderID      int64
		senderRole    string
		recipientID   int64
		recipientRole string
		content       string
		minutesAgo    int
		read          bool
	}{
		{1, "individual", 1, "organization", "Hi! Is the robotics club taking new members?", 180, true},
		{1, "organization", 1, "individual", "We are. Come by the lab on Thursday.", 170, true},
		{1, "individual", 1, "organization", "Great, see you then.", 160, false},
		{2, "individual", 2, "organization", "When is the next debate practice?", 90, false},
		{2, "organization", 2, "individual", "Tuesday at 6pm in room 204.", 60, false},
		{3, "organization", 3, "individual", "We saw you play at the open mic. Want to audition?", 30, false},
		{3, "organization", 3, "individual", "Auditions close Friday.", 20, false},
		{1, "individual", 2, "individual", "Are you going to the club fair?", 10, false},
	}
	for _, m := range messages {
		read := 0
		if m.read {
			read = 1
		}
		if _, err := database.Exec(
			`INSERT INTO messages (content, sender_id, sender_role, recipient_id, recipient_role, created_at, read)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.content, m.senderID, m.senderRole, m.recipientID, m.recipientRole,
			now.Add(-time.Duration(m.minutesAgo)*time.Minute), read,
		); err != nil {
			return fmt.Errorf("seed messages: %w", err)
		}
	}

	return nil
}
