package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/example/parley/internal/logging"
	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/primary"
	"github.com/example/parley/internal/ports/secondary"
)

// ParticipantServiceImpl implements the ParticipantService interface.
type ParticipantServiceImpl struct {
	participantRepo secondary.ParticipantRepository
	validate        *validator.Validate
	logger          *slog.Logger
}

// NewParticipantService creates a new ParticipantService with injected dependencies.
func NewParticipantService(participantRepo secondary.ParticipantRepository, logger *slog.Logger) *ParticipantServiceImpl {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ParticipantServiceImpl{
		participantRepo: participantRepo,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		logger:          logger,
	}
}

// RegisterParticipant creates a participant. Role aliases are accepted.
func (s *ParticipantServiceImpl) RegisterParticipant(ctx context.Context, req primary.RegisterParticipantRequest) (*primary.Participant, error) {
	role, err := models.ParseRole(string(req.Role))
	if err != nil {
		return nil, err
	}
	req.Role = role
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.AvatarRef = strings.TrimSpace(req.AvatarRef)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidParticipant, err)
	}

	record := &secondary.ParticipantRecord{
		Ref:         models.ParticipantRef{Role: req.Role},
		DisplayName: req.DisplayName,
		AvatarRef:   req.AvatarRef,
	}
	if err := s.participantRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	logging.FromContext(ctx, s.logger).Info("participant registered", "participant", record.Ref.String())

	return toParticipant(record), nil
}

// GetParticipant retrieves a participant by reference.
func (s *ParticipantServiceImpl) GetParticipant(ctx context.Context, ref models.ParticipantRef) (*primary.Participant, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	record, err := s.participantRepo.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return toParticipant(record), nil
}

// ListParticipants lists participants. An empty role lists both roles.
func (s *ParticipantServiceImpl) ListParticipants(ctx context.Context, role models.Role) ([]*primary.Participant, error) {
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalidParticipant, role)
	}

	records, err := s.participantRepo.List(ctx, secondary.ParticipantFilters{Role: role})
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return lo.Map(records, func(r *secondary.ParticipantRecord, _ int) *primary.Participant {
		return toParticipant(r)
	}), nil
}

// RemoveParticipant deletes a directory entry. Its messages stay in the ledger.
func (s *ParticipantServiceImpl) RemoveParticipant(ctx context.Context, ref models.ParticipantRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	if err := s.participantRepo.Delete(ctx, ref); err != nil {
		return err
	}

	logging.FromContext(ctx, s.logger).Info("participant removed", "participant", ref.String())
	return nil
}

func toParticipant(r *secondary.ParticipantRecord) *primary.Participant {
	return &primary.Participant{
		Ref:         r.Ref,
		DisplayName: r.DisplayName,
		AvatarRef:   r.AvatarRef,
	}
}

// Ensure ParticipantServiceImpl implements the interface.
var _ primary.ParticipantService = (*ParticipantServiceImpl)(nil)
