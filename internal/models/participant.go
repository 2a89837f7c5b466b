package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Role distinguishes the two kinds of participants.
type Role string

const (
	RoleIndividual   Role = "individual"
	RoleOrganization Role = "organization"
)

// Legacy role names still accepted on input.
const (
	legacyRoleStudent = "student"
	legacyRoleClub    = "club"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleIndividual, RoleOrganization}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleIndividual || r == RoleOrganization
}

// ParseRole parses a role name, accepting the legacy "student" and "club" aliases.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleIndividual), legacyRoleStudent:
		return RoleIndividual, nil
	case string(RoleOrganization), legacyRoleClub:
		return RoleOrganization, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q (expected individual or organization)", ErrInvalidParticipant, s)
	}
}

// ParticipantRef identifies a participant. IDs are only unique within a role,
// so the pair is the identity: individual 7 and organization 7 are different
// participants.
type ParticipantRef struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// NewParticipantRef builds a reference without validating it.
func NewParticipantRef(id int64, role Role) ParticipantRef {
	return ParticipantRef{ID: id, Role: role}
}

// Validate checks that the reference has a positive id and a known role.
func (p ParticipantRef) Validate() error {
	if !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidParticipant, p.Role)
	}
	if p.ID <= 0 {
		return fmt.Errorf("%w: id must be positive (got %d)", ErrInvalidParticipant, p.ID)
	}
	return nil
}

// String renders the reference as "role:id".
func (p ParticipantRef) String() string {
	return fmt.Sprintf("%s:%d", p.Role, p.ID)
}

// ParseParticipantRef parses a reference like "individual:12" or "club:3".
func ParseParticipantRef(s string) (ParticipantRef, error) {
	rolePart, idPart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ParticipantRef{}, fmt.Errorf("%w: invalid participant %q (expected role:id)", ErrInvalidParticipant, s)
	}

	role, err := ParseRole(rolePart)
	if err != nil {
		return ParticipantRef{}, err
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return ParticipantRef{}, fmt.Errorf("%w: invalid participant id %q", ErrInvalidParticipant, idPart)
	}

	ref := ParticipantRef{ID: id, Role: role}
	if err := ref.Validate(); err != nil {
		return ParticipantRef{}, err
	}
	return ref, nil
}

// UnknownParticipantName is shown when the directory cannot resolve a participant.
const UnknownParticipantName = "Unknown"

// Participant is a directory entry.
type Participant struct {
	Ref         ParticipantRef
	DisplayName string
	AvatarRef   string
}

// UnknownParticipant returns the placeholder profile used on read paths when
// the directory lookup fails.
func UnknownParticipant(ref ParticipantRef) Participant {
	return Participant{Ref: ref, DisplayName: UnknownParticipantName}
}
