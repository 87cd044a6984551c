// ABOUTME: Interactive chat REPL over the RAG pipeline
// ABOUTME: Turn-level errors keep the session alive; history syncs via Charm KV
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/healthbot/internal/charm"
	"github.com/harper/healthbot/internal/history"
	"github.com/harper/healthbot/internal/models"
	"github.com/harper/healthbot/internal/rag"
	"github.com/spf13/cobra"
)

const disclaimer = `Medical Disclaimer
This chatbot provides educational information only.
  - Not a substitute for professional medical advice
  - Always consult healthcare providers
  - For emergencies, call your local emergency number`

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive question-and-answer session.

Each question runs through the full retrieval pipeline independently; the
session transcript is kept for display and synced to your Charm account
when available. Type "exit" or "quit" to leave.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	engine, err := openEngine(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Health Information Chatbot")
	fmt.Fprintln(out, disclaimer)
	fmt.Fprintln(out)

	// History persistence is best-effort; chat works without it
	var store *history.Store
	sessionID := uuid.New().String()[:8]
	if kv, err := charm.GetClient(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: chat history unavailable: %v\n", err)
	} else {
		store = history.NewStore(kv)
		if err := store.StartSession(sessionID); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not record session: %v\n", err)
			store = nil
		}
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}

		answer, err := engine.Answer(cmd.Context(), line)
		if err != nil {
			switch {
			case errors.Is(err, rag.ErrInvalidQuery):
				fmt.Fprintln(out, "Please enter a question.")
			case errors.Is(err, rag.ErrGenerationTimeout):
				fmt.Fprintln(out, "The answer took too long to generate. Please try again.")
			default:
				fmt.Fprintf(out, "Sorry, something went wrong: %v\n", err)
			}
			continue
		}

		fmt.Fprintf(out, "\nHealthbot: %s\n", answer.Text)
		fmt.Fprintln(out, strings.Repeat("=", 60))

		if store != nil {
			turn := models.ChatTurn{
				TurnID:    uuid.New().String(),
				SessionID: sessionID,
				Question:  line,
				Answer:    answer.Text,
				CreatedAt: time.Now(),
			}
			if err := store.AppendTurn(sessionID, turn); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not save turn: %v\n", err)
			}
		}
	}

	return scanner.Err()
}
