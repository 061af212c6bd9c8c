package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spiceshop/storefront-go/pkg/config"
	"github.com/spiceshop/storefront-go/pkg/logger"
)

// Store holds the admin session with an explicit lifecycle: Init on app
// start, SetAdmin after login, Clear on logout. It persists to a single
// file so back-office sessions survive process restarts, the way the web
// client kept its serialized "admin" blob around.
//
// Customer sessions are cookie-based and live in the API client's jar; they
// are intentionally not stored here.
type Store struct {
	mu     sync.Mutex
	path   string
	state  state
	logger *logger.Logger
}

type state struct {
	AdminToken string    `json:"adminToken,omitempty"`
	AdminEmail string    `json:"adminEmail,omitempty"`
	SavedAt    time.Time `json:"savedAt,omitempty"`
}

// NewStore builds the store. An empty configured path falls back to the
// user config directory.
func NewStore(cfg config.SessionConfig, logg *logger.Logger) (*Store, error) {
	if logg == nil {
		return nil, errors.New("session logger is required")
	}
	path := cfg.File
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "spiceshop", "session.json")
	}
	return &Store{path: path, logger: logg}, nil
}

// Init loads any persisted session. A missing file is a fresh session, not
// an error.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		// A corrupt session file should never brick the client.
		s.logger.Warn(ctx, "discarding unreadable session file")
		s.state = state{}
		return nil
	}
	return nil
}

// SetAdmin records and persists a fresh admin session.
func (s *Store) SetAdmin(ctx context.Context, token, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{AdminToken: token, AdminEmail: email, SavedAt: time.Now().UTC()}
	return s.persistLocked(ctx)
}

// Clear wipes the session in memory and on disk.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	s.logger.Info(ctx, "admin session cleared")
	return nil
}

// AdminToken implements api.TokenSource. Expired tokens read as absent so a
// stale session asks for a fresh login instead of a guaranteed 401.
func (s *Store) AdminToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.AdminToken == "" || !tokenUsable(s.state.AdminToken, time.Now()) {
		return ""
	}
	return s.state.AdminToken
}

// AdminEmail returns the logged-in operator's email, or "".
func (s *Store) AdminEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AdminEmail
}

// HasAdminSession reports whether a usable admin token is present.
func (s *Store) HasAdminSession() bool {
	return s.AdminToken() != ""
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	s.logger.Debug(ctx, "admin session persisted")
	return nil
}

// tokenUsable peeks at the JWT exp claim without verifying the signature.
// Verification is the backend's job; the client only wants to know whether
// presenting the token is pointless. Tokens that do not parse, or carry no
// exp claim, stay opaque and are presented as-is.
func tokenUsable(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.Before(exp.Time)
}
