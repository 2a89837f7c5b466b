package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/primary"
)

// mockParticipantService implements primary.ParticipantService for testing
type mockParticipantService struct {
	participants []*primary.Participant
	removeErr    error

	lastRegisterReq primary.RegisterParticipantRequest
	lastListRole    models.Role
}

func (m *mockParticipantService) RegisterParticipant(ctx context.Context, req primary.RegisterParticipantRequest) (*primary.Participant, error) {
	m.lastRegisterReq = req
	return &primary.Participant{Ref: models.NewParticipantRef(3, req.Role), DisplayName: req.DisplayName}, nil
}

func (m *mockParticipantService) GetParticipant(ctx context.Context, ref models.ParticipantRef) (*primary.Participant, error) {
	for _, p := range m.participants {
		if p.Ref == ref {
			return p, nil
		}
	}
	return nil, models.ErrParticipantNotFound
}

func (m *mockParticipantService) ListParticipants(ctx context.Context, role models.Role) ([]*primary.Participant, error) {
	m.lastListRole = role
	return m.participants, nil
}

func (m *mockParticipantService) RemoveParticipant(ctx context.Context, ref models.ParticipantRef) error {
	return m.removeErr
}

func TestParticipantAdapter_Add(t *testing.T) {
	mock := &mockParticipantService{}
	var buf bytes.Buffer
	adapter := NewParticipantAdapter(mock, &buf)

	p, err := adapter.Add(context.Background(), "organization", "Chess Club", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Ref.ID != 3 {
		t.Errorf("expected assigned id 3, got %d", p.Ref.ID)
	}
	if !strings.Contains(buf.String(), "Registered organization:3: Chess Club") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestParticipantAdapter_List(t *testing.T) {
	mock := &mockParticipantService{
		participants: []*primary.Participant{
			{Ref: alice, DisplayName: "Alice"},
			{Ref: chess, DisplayName: "Chess Club"},
		},
	}
	var buf bytes.Buffer
	adapter := NewParticipantAdapter(mock, &buf)

	if err := adapter.List(context.Background(), "club"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastListRole != models.RoleOrganization {
		t.Errorf("expected alias to resolve to organization, got %q", mock.lastListRole)
	}
	for _, w := range []string{"individual:1", "Alice", "organization:1", "Chess Club"} {
		if !strings.Contains(buf.String(), w) {
			t.Errorf("expected output to contain %q, got: %s", w, buf.String())
		}
	}

	if err := adapter.List(context.Background(), "robot"); !errors.Is(err, models.ErrInvalidParticipant) {
		t.Errorf("expected ErrInvalidParticipant, got %v", err)
	}
}

func TestParticipantAdapter_List_Empty(t *testing.T) {
	mock := &mockParticipantService{}
	var buf bytes.Buffer
	adapter := NewParticipantAdapter(mock, &buf)

	if err := adapter.List(context.Background(), ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No participants found") {
		t.Errorf("expected empty notice, got: %s", buf.String())
	}
}

func TestParticipantAdapter_Show(t *testing.T) {
	mock := &mockParticipantService{
		participants: []*primary.Participant{{Ref: chess, DisplayName: "Chess Club", AvatarRef: "avatars/chess.png"}},
	}
	var buf bytes.Buffer
	adapter := NewParticipantAdapter(mock, &buf)

	if err := adapter.Show(context.Background(), chess); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "avatars/chess.png") {
		t.Errorf("expected avatar in output, got: %s", buf.String())
	}

	err := adapter.Show(context.Background(), alice)
	if !errors.Is(err, models.ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestParticipantAdapter_Remove(t *testing.T) {
	mock := &mockParticipantService{}
	var buf bytes.Buffer
	adapter := NewParticipantAdapter(mock, &buf)

	if err := adapter.Remove(context.Background(), chess); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Removed organization:1") {
		t.Errorf("unexpected output: %s", buf.String())
	}

	mock.removeErr = models.ErrParticipantNotFound
	buf.Reset()
	if err := adapter.Remove(context.Background(), chess); !errors.Is(err, models.ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound, got %v", err)
	}
}
