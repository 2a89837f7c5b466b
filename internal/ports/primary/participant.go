package primary

import (
	"context"

	"github.com/example/parley/internal/models"
)

// ParticipantService defines the primary port for the participant directory.
type ParticipantService interface {
	// RegisterParticipant creates a participant; its id is assigned within its role.
	RegisterParticipant(ctx context.Context, req RegisterParticipantRequest) (*Participant, error)

	// GetParticipant retrieves a participant by reference.
	GetParticipant(ctx context.Context, ref models.ParticipantRef) (*Participant, error)

	// ListParticipants lists participants, optionally restricted to one role.
	ListParticipants(ctx context.Context, role models.Role) ([]*Participant, error)

	// RemoveParticipant deletes a directory entry. Messages are kept.
	RemoveParticipant(ctx context.Context, ref models.ParticipantRef) error
}

// RegisterParticipantRequest contains parameters for registering a participant.
type RegisterParticipantRequest struct {
	Role        models.Role `json:"role" validate:"required,oneof=individual organization"`
	DisplayName string      `json:"display_name" validate:"required,max=200"`
	AvatarRef   string      `json:"avatar_ref" validate:"omitempty,max=2048"`
}

// Participant represents a directory entry at the port boundary.
type Participant struct {
	Ref         models.ParticipantRef `json:"ref"`
	DisplayName string                `json:"display_name"`
	AvatarRef   string                `json:"avatar_ref,omitempty"`
}
