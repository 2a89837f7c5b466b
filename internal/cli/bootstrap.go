// Package cli provides CLI commands for the parley application.
package cli

import (
	gocontext "context"

	"github.com/spf13/cobra"

	"github.com/example/parley/internal/ctxutil"
	"github.com/example/parley/internal/identity"
	"github.com/example/parley/internal/models"
)

// actAs holds the --as override for the current invocation.
var actAs string

// RegisterGlobalFlags adds the persistent flags shared by every command.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&actAs, "as", "", "act as participant role:id (overrides config)")
}

// currentParticipant resolves who this invocation acts as.
func currentParticipant() (models.ParticipantRef, error) {
	return identity.Current(actAs)
}

// NewContext creates a context.Background() with the acting participant
// embedded when one can be resolved.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if ref, err := currentParticipant(); err == nil {
		return ctxutil.WithActor(ctx, ref)
	}
	return ctx
}
