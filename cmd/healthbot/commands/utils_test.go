// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, formatTime, and validation helpers

package commands

import (
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string unchanged",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long string truncated",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "unicode truncated with ellipsis",
			input:  "你好世界你好世界",
			maxLen: 5,
			want:   "你好...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "seconds ago",
			t:    now.Add(-30 * time.Second),
			want: "just now",
		},
		{
			name: "minutes ago",
			t:    now.Add(-5 * time.Minute),
			want: "5m ago",
		},
		{
			name: "hours ago",
			t:    now.Add(-3 * time.Hour),
			want: "3h ago",
		},
		{
			name: "days ago",
			t:    now.Add(-2 * 24 * time.Hour),
			want: "2d ago",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTime(tt.t)
			if got != tt.want {
				t.Errorf("formatTime = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("old date uses absolute format", func(t *testing.T) {
		old := now.Add(-30 * 24 * time.Hour)
		got := formatTime(old)
		if !strings.Contains(got, "-") {
			t.Errorf("formatTime(%v) = %q, want yyyy-mm-dd format", old, got)
		}
	})
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(1, "limit"); err != nil {
		t.Errorf("validatePositiveInt(1) error: %v", err)
	}

	if err := validatePositiveInt(0, "limit"); err == nil {
		t.Error("validatePositiveInt(0) should return error")
	}

	err := validatePositiveInt(-5, "limit")
	if err == nil {
		t.Fatal("validatePositiveInt(-5) should return error")
	}
	if !strings.Contains(err.Error(), "limit") {
		t.Errorf("error %q should name the parameter", err)
	}
}
