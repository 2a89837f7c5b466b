// Package identity resolves which participant a CLI invocation acts as.
package identity

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/parley/internal/config"
	"github.com/example/parley/internal/models"
)

// ErrNoIdentity is returned when neither a flag nor the config names a participant.
var ErrNoIdentity = errors.New("no participant identity configured (use --as role:id or set participant_id/participant_role in .parley/config.json)")

// Resolve returns the acting participant.
// Resolution order: explicit override ("role:id"), then the config in dir.
func Resolve(override string, cfg *config.Config) (models.ParticipantRef, error) {
	if override != "" {
		ref, err := models.ParseParticipantRef(override)
		if err != nil {
			return models.ParticipantRef{}, fmt.Errorf("invalid --as value: %w", err)
		}
		return ref, nil
	}

	if cfg == nil {
		return models.ParticipantRef{}, ErrNoIdentity
	}

	ref, ok, err := cfg.Identity()
	if err != nil {
		return models.ParticipantRef{}, fmt.Errorf("invalid identity in config: %w", err)
	}
	if !ok {
		return models.ParticipantRef{}, ErrNoIdentity
	}
	return ref, nil
}

// Current resolves the acting participant using the config in the working directory.
func Current(override string) (models.ParticipantRef, error) {
	if override != "" {
		return Resolve(override, nil)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return models.ParticipantRef{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return models.ParticipantRef{}, err
	}
	return Resolve("", cfg)
}
