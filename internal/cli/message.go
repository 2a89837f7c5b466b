package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/parley/internal/wire"
)

// MessageCmd returns the message command
func MessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "message",
		Aliases: []string{"msg"},
		Short:   "Send and read direct messages",
		Long: `Send and read messages between individuals and organizations.

Commands act as the participant named by --as, or the participant_id and
participant_role in .parley/config.json.`,
	}

	cmd.AddCommand(messageSendCmd())
	cmd.AddCommand(messageInboxCmd())
	cmd.AddCommand(messageReadCmd())
	cmd.AddCommand(messageThreadsCmd())
	cmd.AddCommand(messageConversationCmd())
	cmd.AddCommand(messageUnreadCmd())

	return cmd
}

func messageSendCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "send <content>",
		Short: "Send a message to another participant",
		Long: `Send a message to an individual or organization.

Examples:
  parley message send "See you at practice" --to organization:1
  parley message send --as club:2 "Tryouts moved to Friday" --to individual:3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to is required")
			}
			recipient, err := parseParticipantArg(to)
			if err != nil {
				return fmt.Errorf("invalid recipient: %w", err)
			}
			sender, err := currentParticipant()
			if err != nil {
				return err
			}

			_, err = wire.MessageAdapterWithOutput(cmd.OutOrStdout()).
				Send(NewContext(), sender, recipient, strings.Join(args, " "))
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient role:id")

	return cmd
}

func messageInboxCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List messages addressed to you",
		Long:  `List unread messages addressed to you, newest first. Use --all to include read ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := currentParticipant()
			if err != nil {
				return err
			}
			return wire.MessageAdapterWithOutput(cmd.OutOrStdout()).Inbox(NewContext(), me, all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include read messages")

	return cmd
}

func messageReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <message-id>",
		Short: "Show a message and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMessageID(args[0])
			if err != nil {
				return err
			}
			me, err := currentParticipant()
			if err != nil {
				return err
			}
			return wire.MessageAdapterWithOutput(cmd.OutOrStdout()).Read(NewContext(), id, me)
		},
	}
}

func messageThreadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "threads",
		Short: "List your conversations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := currentParticipant()
			if err != nil {
				return err
			}
			return wire.MessageAdapterWithOutput(cmd.OutOrStdout()).Threads(NewContext(), me)
		},
	}
}

func messageConversationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conversation <role:id>",
		Short: "Show the full exchange with another participant",
		Long: `Show every message between you and another participant, oldest first.
Messages they sent you are marked read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			other, err := parseParticipantArg(args[0])
			if err != nil {
				return err
			}
			me, err := currentParticipant()
			if err != nil {
				return err
			}
			return wire.MessageAdapterWithOutput(cmd.OutOrStdout()).Conversation(NewContext(), me, other)
		},
	}
}

func messageUnreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Show how many unread messages you have",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := currentParticipant()
			if err != nil {
				return err
			}
			return wire.MessageAdapterWithOutput(cmd.OutOrStdout()).Unread(NewContext(), me)
		},
	}
}
