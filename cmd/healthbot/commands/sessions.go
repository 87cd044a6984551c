// ABOUTME: CLI commands to manage stored chat sessions
// ABOUTME: Lists, shows, and clears session history in Charm KV
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/harper/healthbot/internal/charm"
	"github.com/harper/healthbot/internal/history"
	"github.com/spf13/cobra"
)

var sessionsShowLimit int

// NewSessionsCmd creates the sessions command group
func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage chat session history",
		Long: `Manage chat session history stored in Charm KV.

History syncs automatically across devices linked to the same Charm
account.`,
	}

	cmd.AddCommand(newSessionsListCmd())
	cmd.AddCommand(newSessionsShowCmd())
	cmd.AddCommand(newSessionsClearCmd())

	return cmd
}

func newSessionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore()
			if err != nil {
				return err
			}

			sessions, err := store.Sessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No chat sessions recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tSTARTED\tTURNS")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%d\n", s.SessionID, formatTime(s.StartedAt), s.TurnCount)
			}
			return w.Flush()
		},
	}
}

func newSessionsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the turns of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(sessionsShowLimit, "limit"); err != nil {
				return err
			}

			store, err := historyStore()
			if err != nil {
				return err
			}

			turns, err := store.Turns(args[0])
			if err != nil {
				return err
			}
			if len(turns) > sessionsShowLimit {
				turns = turns[len(turns)-sessionsShowLimit:]
			}

			out := cmd.OutOrStdout()
			for _, turn := range turns {
				fmt.Fprintf(out, "[%s]\nYou: %s\nHealthbot: %s\n\n", formatTime(turn.CreatedAt), turn.Question, truncate(turn.Answer, 400))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&sessionsShowLimit, "limit", 20, "Maximum turns to display")
	return cmd
}

func newSessionsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [session-id]",
		Short: "Delete one session, or all sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := store.ClearSession(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Session %s cleared.\n", args[0])
				return nil
			}

			if err := store.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All chat history cleared.")
			return nil
		},
	}
}

func historyStore() (*history.Store, error) {
	kv, err := charm.GetClient()
	if err != nil {
		return nil, fmt.Errorf("opening chat history: %w", err)
	}
	return history.NewStore(kv), nil
}
