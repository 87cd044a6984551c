// ABOUTME: CLI command to ask a single health question
// ABOUTME: Runs one query through the RAG pipeline and prints answer with sources
package commands

import (
	"errors"
	"fmt"

	"github.com/harper/healthbot/internal/rag"
	"github.com/spf13/cobra"
)

var askShowSources bool

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single health question",
		Long: `Ask one health question and print the grounded answer.

The question is embedded, the most similar passages are retrieved from the
local index, and the answer is generated from those passages only.

Examples:
  healthbot ask "What are the symptoms of diabetes?"
  healthbot ask --sources "How can I prevent heart disease?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().BoolVar(&askShowSources, "sources", false, "Print the retrieved passages after the answer")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, err := openEngine(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	answer, err := engine.Answer(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, rag.ErrInvalidQuery) {
			return fmt.Errorf("please enter a question")
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, answer.Text)

	if askShowSources && len(answer.Context) > 0 {
		fmt.Fprintln(out, "\nSources:")
		for i, sc := range answer.Context {
			fmt.Fprintf(out, "  %d. [%.2f] %s: %s\n", i+1, sc.Score, sc.Chunk.Source, truncate(sc.Chunk.Content, 80))
		}
	}

	return nil
}
