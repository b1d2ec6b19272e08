package getlisted

import (
	"context"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/getlisted/getlisted-go/internal/apierr"
)

// Session is the client-side record of the currently authenticated user.
// Error holds the normalized display message of the last failed operation
// ("" when none); Loading is true while an operation is in flight.
type Session struct {
	IsAuthenticated bool
	User            *User
	Loading         bool
	Error           string
}

// sessionExpiredMsg is shown when a persisted token no longer restores.
const sessionExpiredMsg = "Session expired. Please log in again."

// tokenSaveFailedMsg is shown when the server authenticated us but the
// token could not be persisted locally.
const tokenSaveFailedMsg = "Failed to save session"

// SessionStore owns the session state and its lifecycle operations. It is
// constructed once at application start and passed by reference to
// consumers; state is read through Snapshot and mutated only by the store's
// own operations.
//
// Failure contract, shared by every operation: Loading is set before the
// network call and cleared in all outcomes; on failure Error is set to the
// server's message when available (else a per-operation fallback) and the
// structured error is returned so callers can branch on its Kind without
// parsing the message.
type SessionStore struct {
	client *Client

	mu        sync.Mutex
	state     Session
	listeners []func(bool)

	restoreMaxAttempts int
	restoreBaseBackoff time.Duration
}

// SessionOption configures a SessionStore during construction.
type SessionOption func(*SessionStore)

// WithRestoreRetry sets how many times Restore attempts the who-am-I call
// in total and the initial backoff between attempts. Values below one
// attempt or a non-positive backoff keep the defaults (3 attempts, 200ms).
func WithRestoreRetry(maxAttempts int, baseBackoff time.Duration) SessionOption {
	return func(s *SessionStore) {
		if maxAttempts >= 1 {
			s.restoreMaxAttempts = maxAttempts
		}
		if baseBackoff > 0 {
			s.restoreBaseBackoff = baseBackoff
		}
	}
}

// NewSessionStore builds a store over c. Call Restore once at startup to
// re-establish a persisted session.
func NewSessionStore(c *Client, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		client:             c,
		restoreMaxAttempts: 3,
		restoreBaseBackoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current session state.
func (s *SessionStore) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// OnAuthChange registers fn to run whenever IsAuthenticated flips. It fires
// on transitions only, not on every state write, and runs synchronously on
// the goroutine that performed the transition.
func (s *SessionStore) OnAuthChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Restore re-establishes the session from the persisted token, once, at
// process start.
//
// No token: the store settles Anonymous without any network call. A token
// whose JWT expiry has already passed is discarded locally, also without a
// network call. Otherwise the who-am-I endpoint is called; recoverable
// failures (network, 5xx) are retried with exponential backoff before
// giving up. Any final failure discards the token and settles Anonymous
// with a session-expired message.
func (s *SessionStore) Restore(ctx context.Context) error {
	tok, ok := s.client.tokens.Token()
	if !ok {
		s.setAnonymous("")
		return nil
	}
	if tokenExpired(tok, time.Now()) {
		log.Debug().Msg("persisted token already expired, skipping restore call")
		_ = s.client.tokens.Clear()
		s.setAnonymous(sessionExpiredMsg)
		return nil
	}

	s.setLoading()

	var user *User
	attempt := func() error {
		u, err := s.client.Me(ctx)
		if err != nil {
			if !apierr.Recoverable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		user = u
		return nil
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.restoreBaseBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(s.restoreMaxAttempts-1)), ctx)

	if err := backoff.Retry(attempt, policy); err != nil {
		_ = s.client.tokens.Clear()
		s.setAnonymous(sessionExpiredMsg)
		return err
	}

	log.Debug().Str("user_id", user.ID).Msg("session restored")
	s.setAuthenticated(user)
	return nil
}

// Register creates a new account. It never authenticates the caller: the
// server gates login behind email verification, so on success the session
// settles Anonymous.
func (s *SessionStore) Register(ctx context.Context, req RegisterRequest) error {
	s.setLoading()
	if _, err := s.client.Register(ctx, req); err != nil {
		return s.fail(err, "Registration failed")
	}
	s.setAnonymous("")
	return nil
}

// Login exchanges credentials for a session. On success the returned token
// is persisted and the store transitions to Authenticated.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.setLoading()
	ar, err := s.client.Login(ctx, email, password)
	if err != nil {
		return s.fail(err, "Invalid credentials")
	}
	if err := s.client.tokens.Save(ar.Token); err != nil {
		return s.fail(err, tokenSaveFailedMsg)
	}
	u := ar.User
	s.setAuthenticated(&u)
	return nil
}

// Logout tears down the session. The server call is best-effort: its
// failure is recorded in Error but the persisted token is discarded and the
// store settles Anonymous regardless. Logout itself never returns an error.
func (s *SessionStore) Logout(ctx context.Context) {
	msg := ""
	if err := s.client.Logout(ctx); err != nil {
		log.Debug().Err(err).Msg("server logout failed, tearing down locally")
		msg = apierr.DisplayMessage(err, "Logout failed")
	}
	_ = s.client.tokens.Clear()
	s.setAnonymous(msg)
}

// ForgotPassword asks the server to mail a reset link. No session
// transition beyond loading/error.
func (s *SessionStore) ForgotPassword(ctx context.Context, email string) error {
	s.setLoading()
	if _, err := s.client.ForgotPassword(ctx, email); err != nil {
		return s.fail(err, "Failed to send reset email")
	}
	s.settle()
	return nil
}

// ResetPassword sets a new password using the emailed reset token. On
// success the returned session token is persisted and the store
// authenticates, mirroring Login.
func (s *SessionStore) ResetPassword(ctx context.Context, token, password string) error {
	s.setLoading()
	ar, err := s.client.ResetPassword(ctx, token, password)
	if err != nil {
		return s.fail(err, "Password reset failed")
	}
	if err := s.client.tokens.Save(ar.Token); err != nil {
		return s.fail(err, tokenSaveFailedMsg)
	}
	u := ar.User
	s.setAuthenticated(&u)
	return nil
}

// VerifyEmail confirms an address server-side. No authentication side
// effect.
func (s *SessionStore) VerifyEmail(ctx context.Context, token string) error {
	s.setLoading()
	if err := s.client.VerifyEmail(ctx, token); err != nil {
		return s.fail(err, "Email verification failed")
	}
	s.settle()
	return nil
}

// UpdateProfile applies a partial update to the current user's details and
// patches User in place on success.
func (s *SessionStore) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	s.setLoading()
	u, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return s.fail(err, "Profile update failed")
	}
	s.mu.Lock()
	s.state.User = u
	s.state.Loading = false
	s.state.Error = ""
	s.mu.Unlock()
	return nil
}

// UpdatePassword changes the password for the current session.
func (s *SessionStore) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	s.setLoading()
	if err := s.client.UpdatePassword(ctx, currentPassword, newPassword); err != nil {
		return s.fail(err, "Password update failed")
	}
	s.settle()
	return nil
}

// ClearError clears the error message. Idempotent.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

// ------------------------- internals -------------------------

func (s *SessionStore) setLoading() {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()
}

// settle clears loading and error without touching the authentication state.
func (s *SessionStore) settle() {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = ""
	s.mu.Unlock()
}

// fail records the normalized message and returns the original error.
func (s *SessionStore) fail(err error, fallback string) error {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = apierr.DisplayMessage(err, fallback)
	s.mu.Unlock()
	return err
}

func (s *SessionStore) setAuthenticated(u *User) {
	s.mu.Lock()
	flipped := !s.state.IsAuthenticated
	s.state = Session{IsAuthenticated: true, User: u}
	listeners := s.listenersLocked()
	s.mu.Unlock()
	if flipped {
		for _, fn := range listeners {
			fn(true)
		}
	}
}

func (s *SessionStore) setAnonymous(errMsg string) {
	s.mu.Lock()
	flipped := s.state.IsAuthenticated
	s.state = Session{Error: errMsg}
	listeners := s.listenersLocked()
	s.mu.Unlock()
	if flipped {
		for _, fn := range listeners {
			fn(false)
		}
	}
}

func (s *SessionStore) listenersLocked() []func(bool) {
	out := make([]func(bool), len(s.listeners))
	copy(out, s.listeners)
	return out
}

// tokenExpired reports whether tok is a JWT whose exp claim has passed.
// Opaque (non-JWT) tokens and JWTs without an exp claim return false; the
// server stays the authority on their validity.
func tokenExpired(tok string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
