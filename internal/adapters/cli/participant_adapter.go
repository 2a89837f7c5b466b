package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/primary"
)

// ParticipantAdapter is a thin adapter that translates CLI operations to ParticipantService calls.
type ParticipantAdapter struct {
	service primary.ParticipantService
	out     io.Writer
}

// NewParticipantAdapter creates a new ParticipantAdapter with the given service.
func NewParticipantAdapter(service primary.ParticipantService, out io.Writer) *ParticipantAdapter {
	return &ParticipantAdapter{
		service: service,
		out:     out,
	}
}

// Add registers a participant.
func (a *ParticipantAdapter) Add(ctx context.Context, role, name, avatar string) (*primary.Participant, error) {
	p, err := a.service.RegisterParticipant(ctx, primary.RegisterParticipantRequest{
		Role:        models.Role(role),
		DisplayName: name,
		AvatarRef:   avatar,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Registered %s: %s\n", p.Ref, p.DisplayName)
	return p, nil
}

// List lists participants, optionally restricted to role.
func (a *ParticipantAdapter) List(ctx context.Context, role string) error {
	var filter models.Role
	if role != "" {
		parsed, err := models.ParseRole(role)
		if err != nil {
			return err
		}
		filter = parsed
	}

	participants, err := a.service.ListParticipants(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list participants: %w", err)
	}

	if len(participants) == 0 {
		fmt.Fprintln(a.out, "No participants found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %s\n", "PARTICIPANT", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, p := range participants {
		fmt.Fprintf(a.out, "%-20s %s\n", p.Ref, p.DisplayName)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a single participant.
func (a *ParticipantAdapter) Show(ctx context.Context, ref models.ParticipantRef) error {
	p, err := a.service.GetParticipant(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to get participant: %w", err)
	}

	fmt.Fprintf(a.out, "\nParticipant: %s\n", p.Ref)
	fmt.Fprintf(a.out, "Name:   %s\n", p.DisplayName)
	if p.AvatarRef != "" {
		fmt.Fprintf(a.out, "Avatar: %s\n", p.AvatarRef)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Remove deletes a participant from the directory.
func (a *ParticipantAdapter) Remove(ctx context.Context, ref models.ParticipantRef) error {
	if err := a.service.RemoveParticipant(ctx, ref); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Removed %s (message history kept)\n", ref)
	return nil
}
