// ABOUTME: Root CLI command and global flags for healthbot
// ABOUTME: Wires all subcommands and the shared index-dir override
package commands

import (
	"github.com/spf13/cobra"
)

var (
	indexDirFlag string
)

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthbot",
		Short: "Retrieval-augmented health information assistant",
		Long: `healthbot answers health questions from an indexed set of medical
documents. Every answer is grounded in retrieved passages; when the index
has nothing relevant, healthbot says so instead of guessing.

Educational information only - not a substitute for professional medical
advice. Always consult a healthcare provider.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&indexDirFlag, "index", "", "Index directory (default: $HEALTHBOT_INDEX_DIR or XDG data dir)")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewSessionsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
