package cli

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/example/parley/internal/models"
)

var bareID = regexp.MustCompile(`^\d+$`)

// parseParticipantArg parses a "role:id" argument, with a hint when the
// role was left off.
func parseParticipantArg(arg string) (models.ParticipantRef, error) {
	if bareID.MatchString(arg) {
		return models.ParticipantRef{}, fmt.Errorf("invalid participant '%s'. Include the role: individual:%s or organization:%s", arg, arg, arg)
	}
	return models.ParseParticipantRef(arg)
}

// parseMessageID parses a positive message id.
func parseMessageID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid message ID '%s'. Expected a positive number", arg)
	}
	return id, nil
}
