// Package admin gates the emperor editing surface behind a password
// and exposes the editing operations themselves.
package admin

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dynastygames/emperorquiz/internal/game"
)

// SessionTTL is how long an authenticated admin session lives.
const SessionTTL = 24 * time.Hour

// checkDelay pads every password check so response timing reveals
// nothing about where a comparison failed.
const checkDelay = 500 * time.Millisecond

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticator verifies the admin password against a bcrypt hash and
// hands out expiring session tokens.
type Authenticator struct {
	mu       sync.Mutex
	hash     []byte
	sessions map[string]time.Time
	logger   *slog.Logger
	now      func() time.Time
	delay    time.Duration
}

func NewAuthenticator(passwordHash string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		hash:     []byte(passwordHash),
		sessions: make(map[string]time.Time),
		logger:   logger,
		now:      time.Now,
		delay:    checkDelay,
	}
}

// Login checks the password and, on success, returns a fresh session.
// The artificial delay is applied on both outcomes.
func (a *Authenticator) Login(ctx context.Context, password string) (Session, error) {
	select {
	case <-time.After(a.delay):
	case <-ctx.Done():
		return Session{}, ctx.Err()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.hash) == 0 {
		return Session{}, game.NewError(game.KindIllegalState, game.ReasonUnauthorized, "admin access is not configured")
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		a.logger.Warn("admin login rejected")
		return Session{}, game.NewError(game.KindValidation, game.ReasonUnauthorized, "wrong password")
	}

	sess := Session{
		Token:     uuid.NewString(),
		ExpiresAt: a.now().Add(SessionTTL),
	}
	a.sessions[sess.Token] = sess.ExpiresAt
	a.logger.Info("admin authenticated", "expires", sess.ExpiresAt)
	return sess, nil
}

// Check reports whether token names a live session, pruning it if
// expired.
func (a *Authenticator) Check(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	expires, ok := a.sessions[token]
	if !ok {
		return false
	}
	if a.now().After(expires) {
		delete(a.sessions, token)
		return false
	}
	return true
}

// Logout invalidates the session. Unknown tokens are ignored.
func (a *Authenticator) Logout(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, token)
}
