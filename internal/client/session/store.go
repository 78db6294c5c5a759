// Package session owns the authenticated session: who is signed in, the
// access/refresh token pair, and the periodic token renewal loop. It is the
// sole writer of the token, refresh_token and user storage keys (and clears
// currentPet on logout, since the acting pet is session-scoped). Everything
// else reads session state through snapshots.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/avelichko/petbook/internal/client/models"
	"github.com/avelichko/petbook/internal/client/storage"
	"github.com/avelichko/petbook/internal/common"
	"github.com/avelichko/petbook/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// State is the session lifecycle state. Loading is transient: it only exists
// between construction and the synchronous rehydration in New.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// DefaultRefreshInterval is how often the access token is renewed while a
// session is active.
const DefaultRefreshInterval = 25 * time.Minute

// refresher is the slice of the API client the store depends on.
type refresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// txRepository is implemented by repositories that can group writes into a
// single transaction, like storage.SQLiteRepository.
type txRepository interface {
	InTx(ctx context.Context, fn func(storage.Repository) error) error
}

// Status is the snapshot guards evaluate. It carries no tokens.
type Status struct {
	State State
	Admin bool
}

type Store struct {
	repo  storage.Repository
	api   refresher
	log   logging.Logger
	every time.Duration

	mu      sync.Mutex
	state   State
	session *models.Session
	stop    chan struct{}
}

// New constructs the store and rehydrates any persisted session. The read is
// synchronous and touches only local storage; no network call happens here.
// A corrupt persisted user record forces a full teardown of all session keys.
func New(ctx context.Context, repo storage.Repository, api refresher, log logging.Logger, every time.Duration) *Store {
	if every <= 0 {
		every = DefaultRefreshInterval
	}
	s := &Store{
		repo:  repo,
		api:   api,
		log:   log,
		every: every,
		state: StateLoading,
	}
	s.initialize(ctx)
	return s
}

func (s *Store) initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.repo.Get(ctx, common.KeyUser)
	if err != nil || raw == nil {
		if err != nil {
			s.log.Error(ctx, "failed to read persisted session", "error", err)
		}
		s.state = StateUnauthenticated
		return
	}

	var rec models.UserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn(ctx, "corrupt persisted session, clearing", "error", err)
		s.clearPersistedLocked(ctx)
		s.state = StateUnauthenticated
		return
	}

	token, _ := s.repo.Get(ctx, common.KeyToken)
	refresh, _ := s.repo.Get(ctx, common.KeyRefreshToken)

	if len(token) == 0 {
		// No access token, no authenticated session.
		s.state = StateUnauthenticated
		return
	}

	s.session = sessionFromRecord(rec, string(token), string(refresh))
	s.state = StateAuthenticated
	s.startRefreshLoopLocked()
	s.log.Info(ctx, "session rehydrated", "user_id", s.session.UserID, "role", s.session.RoleID)
}

func sessionFromRecord(rec models.UserRecord, token, refresh string) *models.Session {
	return &models.Session{
		UserID:       rec.ID,
		DisplayName:  rec.DisplayName,
		Email:        rec.Email,
		RoleID:       rec.Role(),
		City:         rec.NormalizedCity(),
		AccessToken:  token,
		RefreshToken: refresh,
	}
}

// Login establishes a session from a successful login response: the three
// session keys are persisted, in-memory state is replaced, and the refresh
// timer is (re)started. Any previously running timer is stopped first, so at
// most one is ever active.
func (s *Store) Login(ctx context.Context, resp *models.LoginResponse) error {
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// All three keys land together or not at all; a partial write would
	// rehydrate as a broken session.
	err = s.persist(ctx, func(repo storage.Repository) error {
		if err := repo.Set(ctx, common.KeyToken, []byte(resp.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.KeyRefreshToken, []byte(resp.RefreshToken)); err != nil {
			return err
		}
		return repo.Set(ctx, common.KeyUser, userJSON)
	})
	if err != nil {
		return err
	}

	s.session = sessionFromRecord(resp.User, resp.AccessToken, resp.RefreshToken)
	s.state = StateAuthenticated
	s.startRefreshLoopLocked()
	s.log.Info(ctx, "logged in", "user_id", s.session.UserID, "expires_at", tokenExpiry(resp.AccessToken))
	return nil
}

// Refresh renews the access token using the stored refresh token. Identity
// fields are untouched. A failed refresh is never absorbed: it tears the
// session down as if Logout had been called.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateAuthenticated || s.session == nil {
		s.mu.Unlock()
		return common.ErrNoSession
	}
	refreshToken := s.session.RefreshToken
	s.mu.Unlock()

	token, err := s.api.RefreshToken(ctx, refreshToken)
	if err != nil {
		s.log.Warn(ctx, "token refresh failed, logging out", "error", err)
		s.Logout(ctx)
		return fmt.Errorf("%w: %v", common.ErrRefreshFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		// Logged out while the request was in flight.
		return common.ErrNoSession
	}
	s.session.AccessToken = token
	if err := s.repo.Set(ctx, common.KeyToken, []byte(token)); err != nil {
		s.log.Error(ctx, "failed to persist renewed token", "error", err)
	}
	s.log.Debug(ctx, "access token renewed", "expires_at", tokenExpiry(token))
	return nil
}

// Logout clears all persisted session keys (including the session-scoped
// active pet), wipes in-memory state and cancels the refresh timer.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearPersistedLocked(ctx)
	s.session = nil
	s.state = StateUnauthenticated
	s.stopRefreshLoopLocked()
	s.log.Info(ctx, "logged out")
}

// Close stops the refresh timer. It does not touch persisted state, so a
// later rehydration picks the session back up.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRefreshLoopLocked()
}

// persist runs fn transactionally when the repository supports it, so
// multi-key writes cannot be left half-applied. Plain repositories fall back
// to direct writes.
func (s *Store) persist(ctx context.Context, fn func(storage.Repository) error) error {
	if tr, ok := s.repo.(txRepository); ok {
		return tr.InTx(ctx, fn)
	}
	return fn(s.repo)
}

func (s *Store) clearPersistedLocked(ctx context.Context) {
	for _, key := range []string{common.KeyToken, common.KeyRefreshToken, common.KeyUser, common.KeyCurrentPet} {
		if err := s.repo.Delete(ctx, key); err != nil {
			s.log.Error(ctx, "failed to clear persisted key", "key", key, "error", err)
		}
	}
}

func (s *Store) startRefreshLoopLocked() {
	s.stopRefreshLoopLocked()
	stop := make(chan struct{})
	s.stop = stop

	go func() {
		ticker := time.NewTicker(s.every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = s.Refresh(context.Background())
			case <-stop:
				return
			}
		}
	}()
}

func (s *Store) stopRefreshLoopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// tokenExpiry extracts the exp claim from an access token without verifying
// the signature. Used for logging only; authorization stays server-side.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// IsAdmin reports whether the signed-in user has the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.IsAdmin()
}

// City returns the session's city, or the global default when signed out.
func (s *Store) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return common.DefaultCity
	}
	return s.session.City
}

// AccessToken returns the current access token, or "" when signed out. This
// is the token source handed to the API client.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

// Snapshot returns a copy of the session, or nil when signed out.
func (s *Store) Snapshot() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Status returns the guard-facing view of the store.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, Admin: s.session.IsAdmin()}
}
