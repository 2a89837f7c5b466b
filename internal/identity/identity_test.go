package identity

import (
	"errors"
	"testing"

	"github.com/example/parley/internal/config"
	"github.com/example/parley/internal/models"
)

func TestResolve(t *testing.T) {
	withIdentity := config.Default()
	withIdentity.ParticipantID = 8
	withIdentity.ParticipantRole = "organization"

	tests := []struct {
		name     string
		override string
		cfg      *config.Config
		want     models.ParticipantRef
		wantErr  error
	}{
		{
			name:     "override wins over config",
			override: "individual:3",
			cfg:      withIdentity,
			want:     models.NewParticipantRef(3, models.RoleIndividual),
		},
		{
			name: "falls back to config",
			cfg:  withIdentity,
			want: models.NewParticipantRef(8, models.RoleOrganization),
		},
		{
			name:    "no identity anywhere",
			cfg:     config.Default(),
			wantErr: ErrNoIdentity,
		},
		{
			name:    "nil config",
			wantErr: ErrNoIdentity,
		},
		{
			name:     "malformed override",
			override: "individual-3",
			wantErr:  models.ErrInvalidParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.override, tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
