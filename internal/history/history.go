// ABOUTME: Chat session history persisted in Charm KV
// ABOUTME: Append-only turns per session, owned by the CLI shell, never read by the engine
package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/harper/healthbot/internal/charm"
	"github.com/harper/healthbot/internal/models"
)

// Session summarizes one chat session
type Session struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	TurnCount int       `json:"turn_count"`
}

// Store persists chat sessions and their turns
type Store struct {
	kv *charm.Client
}

// NewStore creates a history store over the given charm client
func NewStore(kv *charm.Client) *Store {
	return &Store{kv: kv}
}

// SessionKey builds the KV key for a session record
func SessionKey(sessionID string) string {
	return charm.SessionPrefix + sessionID
}

// TurnKey builds the KV key for a turn; the zero-padded sequence keeps
// lexical key order equal to turn order.
func TurnKey(sessionID string, seq int) string {
	return fmt.Sprintf("%s%s:%06d", charm.TurnPrefix, sessionID, seq)
}

// StartSession records a new session
func (s *Store) StartSession(sessionID string) error {
	return s.kv.SetJSON(SessionKey(sessionID), Session{
		SessionID: sessionID,
		StartedAt: time.Now(),
	})
}

// AppendTurn stores one exchange at the end of a session
func (s *Store) AppendTurn(sessionID string, turn models.ChatTurn) error {
	keys, err := s.kv.ListKeys(charm.TurnPrefix + sessionID + ":")
	if err != nil {
		return fmt.Errorf("listing turns for session %s: %w", sessionID, err)
	}

	if err := s.kv.SetJSON(TurnKey(sessionID, len(keys)), turn); err != nil {
		return err
	}

	var sess Session
	if err := s.kv.GetJSON(SessionKey(sessionID), &sess); err != nil {
		// Session record missing; recreate it rather than losing the turn
		sess = Session{SessionID: sessionID, StartedAt: turn.CreatedAt}
	}
	sess.TurnCount = len(keys) + 1
	return s.kv.SetJSON(SessionKey(sessionID), sess)
}

// Turns returns all turns of a session in order
func (s *Store) Turns(sessionID string) ([]models.ChatTurn, error) {
	keys, err := s.kv.ListKeys(charm.TurnPrefix + sessionID + ":")
	if err != nil {
		return nil, fmt.Errorf("listing turns for session %s: %w", sessionID, err)
	}
	sort.Strings(keys)

	turns := make([]models.ChatTurn, 0, len(keys))
	for _, key := range keys {
		var turn models.ChatTurn
		if err := s.kv.GetJSON(key, &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Sessions returns all recorded sessions, newest first
func (s *Store) Sessions() ([]Session, error) {
	keys, err := s.kv.ListKeys(charm.SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	sessions := make([]Session, 0, len(keys))
	for _, key := range keys {
		var sess Session
		if err := s.kv.GetJSON(key, &sess); err != nil {
			continue
		}
		sessions = append(sessions, sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

// ClearSession deletes a session and its turns
func (s *Store) ClearSession(sessionID string) error {
	keys, err := s.kv.ListKeys(charm.TurnPrefix + sessionID + ":")
	if err != nil {
		return fmt.Errorf("listing turns for session %s: %w", sessionID, err)
	}
	for _, key := range keys {
		if err := s.kv.Delete(key); err != nil {
			return err
		}
	}
	return s.kv.Delete(SessionKey(sessionID))
}

// ClearAll deletes every session and turn
func (s *Store) ClearAll() error {
	for _, prefix := range []string{charm.TurnPrefix, charm.SessionPrefix} {
		keys, err := s.kv.ListKeys(prefix)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := s.kv.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}
