package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/parley/internal/wire"
)

// ParticipantCmd returns the participant command
func ParticipantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Manage the participant directory",
		Long: `Register, inspect and remove participants.

A participant is an individual or an organization. Ids are assigned per role,
so individual:1 and organization:1 are different participants.`,
	}

	cmd.AddCommand(participantAddCmd())
	cmd.AddCommand(participantListCmd())
	cmd.AddCommand(participantShowCmd())
	cmd.AddCommand(participantRemoveCmd())

	return cmd
}

func participantAddCmd() *cobra.Command {
	var avatar string

	cmd := &cobra.Command{
		Use:   "add <role> <name>",
		Short: "Register a participant",
		Long: `Register an individual or organization.

Examples:
  parley participant add individual "Alex Johnson"
  parley participant add organization "Robotics Club" --avatar avatars/robotics.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := wire.ParticipantAdapterWithOutput(cmd.OutOrStdout())
			_, err := adapter.Add(NewContext(), args[0], args[1], avatar)
			return err
		},
	}

	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar reference")

	return cmd
}

func participantListCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ParticipantAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), role)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "only list this role (individual or organization)")

	return cmd
}

func participantShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <role:id>",
		Short: "Show a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseParticipantArg(args[0])
			if err != nil {
				return err
			}
			return wire.ParticipantAdapterWithOutput(cmd.OutOrStdout()).Show(NewContext(), ref)
		},
	}
}

func participantRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <role:id>",
		Short: "Remove a participant from the directory",
		Long: `Remove a participant. Messages they sent or received are kept and show
as coming from an unknown participant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseParticipantArg(args[0])
			if err != nil {
				return err
			}
			return wire.ParticipantAdapterWithOutput(cmd.OutOrStdout()).Remove(NewContext(), ref)
		},
	}
}
