package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/parley/internal/adapters/sqlite"
	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/secondary"
)

func TestParticipantRepository_Resolve(t *testing.T) {
	testDB := setupTestDB(t)
	seedDirectory(t, testDB)
	repo := sqlite.NewParticipantRepository(testDB)
	ctx := context.Background()

	record, err := repo.Resolve(ctx, chess)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if record.DisplayName != "Chess Club" {
		t.Errorf("expected 'Chess Club', got %q", record.DisplayName)
	}
	if record.Ref != chess {
		t.Errorf("expected ref %v, got %v", chess, record.Ref)
	}

	// same id, other role
	record, err = repo.Resolve(ctx, alice)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if record.DisplayName != "Alice" {
		t.Errorf("expected 'Alice', got %q", record.DisplayName)
	}
}

func TestParticipantRepository_Resolve_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(testDB)

	_, err := repo.Resolve(context.Background(), models.NewParticipantRef(42, models.RoleOrganization))
	if !errors.Is(err, models.ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestParticipantRepository_Create_AssignsIDPerRole(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(testDB)
	ctx := context.Background()

	create := func(role models.Role, name string) *secondary.ParticipantRecord {
		t.Helper()
		record := &secondary.ParticipantRecord{
			Ref:         models.ParticipantRef{Role: role},
			DisplayName: name,
		}
		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		return record
	}

	first := create(models.RoleIndividual, "Alice")
	club := create(models.RoleOrganization, "Chess Club")
	second := create(models.RoleIndividual, "Bob")

	if first.Ref.ID != 1 {
		t.Errorf("expected first individual id 1, got %d", first.Ref.ID)
	}
	if club.Ref.ID != 1 {
		t.Errorf("expected first organization id 1, got %d", club.Ref.ID)
	}
	if second.Ref.ID != 2 {
		t.Errorf("expected second individual id 2, got %d", second.Ref.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestParticipantRepository_Create_ExplicitID(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(testDB)
	ctx := context.Background()

	record := &secondary.ParticipantRecord{
		Ref:         models.NewParticipantRef(10, models.RoleOrganization),
		DisplayName: "Robotics",
		AvatarRef:   "avatars/robotics.png",
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resolved, err := repo.Resolve(ctx, record.Ref)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.AvatarRef != "avatars/robotics.png" {
		t.Errorf("expected avatar to round trip, got %q", resolved.AvatarRef)
	}

	// duplicate
	if err := repo.Create(ctx, record); err == nil {
		t.Error("expected duplicate participant to fail")
	}
}

func TestParticipantRepository_List(t *testing.T) {
	testDB := setupTestDB(t)
	seedDirectory(t, testDB)
	repo := sqlite.NewParticipantRepository(testDB)
	ctx := context.Background()

	all, err := repo.List(ctx, secondary.ParticipantFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 participants, got %d", len(all))
	}

	orgs, err := repo.List(ctx, secondary.ParticipantFilters{Role: models.RoleOrganization})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orgs) != 2 {
		t.Fatalf("expected 2 organizations, got %d", len(orgs))
	}
	for _, o := range orgs {
		if o.Ref.Role != models.RoleOrganization {
			t.Errorf("unexpected role %q", o.Ref.Role)
		}
	}
}

func TestParticipantRepository_Delete(t *testing.T) {
	testDB := setupTestDB(t)
	seedDirectory(t, testDB)
	repo := sqlite.NewParticipantRepository(testDB)
	ctx := context.Background()

	if err := repo.Delete(ctx, drama); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.Resolve(ctx, drama); !errors.Is(err, models.ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, drama); !errors.Is(err, models.ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound on second delete, got %v", err)
	}
}
