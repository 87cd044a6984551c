// ABOUTME: Tests for root CLI command and global flags
// ABOUTME: Verifies command structure, subcommands, and flag handling

package commands

import (
	"strings"
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "healthbot" {
		t.Errorf("Use = %q, want %q", cmd.Use, "healthbot")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}

	// The medical disclaimer must be visible in help output
	if !strings.Contains(cmd.Long, "not a substitute") {
		t.Error("Long description should contain the medical disclaimer")
	}

	if !cmd.SilenceUsage {
		t.Error("SilenceUsage should be true so errors are not followed by usage dumps")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"ask", "chat", "ingest", "sessions", "version"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			if err != nil {
				t.Fatalf("Find(%q) error: %v", name, err)
			}
			if sub == cmd {
				t.Errorf("subcommand %q not registered", name)
			}
		})
	}
}

func TestRootCmd_IndexFlag(t *testing.T) {
	cmd := NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("index")
	if flag == nil {
		t.Fatal("--index flag not found")
	}
	if flag.DefValue != "" {
		t.Errorf("--index default = %q, want empty", flag.DefValue)
	}
}
