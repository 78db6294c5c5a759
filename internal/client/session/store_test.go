package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/avelichko/petbook/internal/client/models"
	"github.com/avelichko/petbook/internal/client/storage"
	"github.com/avelichko/petbook/internal/common"
	"github.com/avelichko/petbook/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type memRepo struct {
	mu      sync.Mutex
	m       map[string][]byte
	failSet map[string]error
}

func newMemRepo() *memRepo { return &memRepo{m: map[string][]byte{}} }

func (r *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[key], nil
}

func (r *memRepo) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failSet[key]; err != nil {
		return err
	}
	r.m[key] = value
	return nil
}

func (r *memRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, key)
	return nil
}

func (r *memRepo) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.m[key]
	return ok
}

// txMemRepo stages writes like SQLiteRepository.InTx: fn runs against a
// copy, which replaces the live map only when fn succeeds.
type txMemRepo struct {
	*memRepo
}

func (r *txMemRepo) InTx(_ context.Context, fn func(storage.Repository) error) error {
	stage := newMemRepo()
	r.mu.Lock()
	for k, v := range r.m {
		stage.m[k] = v
	}
	stage.failSet = r.failSet
	r.mu.Unlock()

	if err := fn(stage); err != nil {
		return err
	}

	r.mu.Lock()
	r.m = stage.m
	r.mu.Unlock()
	return nil
}

type fakeRefresher struct {
	mu     sync.Mutex
	token  string
	err    error
	calls  int
	called chan struct{}
}

func (f *fakeRefresher) RefreshToken(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.called != nil {
		select {
		case f.called <- struct{}{}:
		default:
		}
	}
	return f.token, f.err
}

func (f *fakeRefresher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func intPtr(v int) *int { return &v }

func loginResponse() *models.LoginResponse {
	return &models.LoginResponse{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User: models.UserRecord{
			ID:           42,
			DisplayName:  "Dana",
			Email:        "dana@pets.io",
			LegacyRoleID: intPtr(2),
		},
	}
}

// ---- tests ----

func TestNew_NoPersistedSession_StartsUnauthenticated(t *testing.T) {
	s := New(context.Background(), newMemRepo(), &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()

	require.Equal(t, StateUnauthenticated, s.State())
	require.False(t, s.IsAuthenticated())
	require.Equal(t, "global", s.City())
	require.Nil(t, s.Snapshot())
}

func TestNew_RehydratesPersistedSession(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	require.NoError(t, repo.Set(ctx, common.KeyUser, []byte(`{"id":7,"display_name":"Ben","rol_id":2,"city":"riga"}`)))
	require.NoError(t, repo.Set(ctx, common.KeyToken, []byte("tok")))
	require.NoError(t, repo.Set(ctx, common.KeyRefreshToken, []byte("ref")))

	s := New(ctx, repo, &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()

	require.True(t, s.IsAuthenticated())
	require.True(t, s.IsAdmin(), "legacy rol_id must map to the canonical role")
	require.Equal(t, "riga", s.City())
	require.Equal(t, "tok", s.AccessToken())

	snap := s.Snapshot()
	require.Equal(t, int64(7), snap.UserID)
	require.Equal(t, "ref", snap.RefreshToken)
}

func TestNew_CorruptUserRecord_ClearsAllKeys(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	require.NoError(t, repo.Set(ctx, common.KeyUser, []byte(`{not json`)))
	require.NoError(t, repo.Set(ctx, common.KeyToken, []byte("tok")))
	require.NoError(t, repo.Set(ctx, common.KeyRefreshToken, []byte("ref")))
	require.NoError(t, repo.Set(ctx, common.KeyCurrentPet, []byte(`{"id":1}`)))

	s := New(ctx, repo, &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()

	require.Equal(t, StateUnauthenticated, s.State())
	for _, key := range []string{common.KeyToken, common.KeyRefreshToken, common.KeyUser, common.KeyCurrentPet} {
		require.False(t, repo.has(key), "key %q must be cleared", key)
	}
}

func TestNew_UserWithoutToken_IsUnauthenticated(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	require.NoError(t, repo.Set(ctx, common.KeyUser, []byte(`{"id":7}`)))

	s := New(ctx, repo, &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()

	require.False(t, s.IsAuthenticated())
}

func TestLogin_PersistsKeysAndDerivedReads(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := New(ctx, repo, &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()

	require.NoError(t, s.Login(ctx, loginResponse()))

	require.True(t, s.IsAuthenticated())
	require.True(t, s.IsAdmin())
	require.Equal(t, "global", s.City(), "missing city must default")
	require.True(t, repo.has(common.KeyToken))
	require.True(t, repo.has(common.KeyRefreshToken))
	require.True(t, repo.has(common.KeyUser))
}

func TestLogin_PartialPersistFailure_LeavesNoKeys(t *testing.T) {
	ctx := context.Background()
	repo := &txMemRepo{memRepo: newMemRepo()}
	repo.failSet = map[string]error{common.KeyRefreshToken: errors.New("disk full")}

	s := New(ctx, repo, &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()

	err := s.Login(ctx, loginResponse())
	require.Error(t, err)
	require.False(t, s.IsAuthenticated())
	require.False(t, repo.has(common.KeyToken), "a failed login must not leave a stale token behind")
	require.False(t, repo.has(common.KeyUser))
}

func TestRefresh_ReplacesOnlyAccessToken(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	api := &fakeRefresher{token: "access-2"}
	s := New(ctx, repo, api, testLogger(), time.Hour)
	defer s.Close()
	require.NoError(t, s.Login(ctx, loginResponse()))

	require.NoError(t, s.Refresh(ctx))

	snap := s.Snapshot()
	require.Equal(t, "access-2", snap.AccessToken)
	require.Equal(t, "refresh-1", snap.RefreshToken, "refresh token must not change")
	require.Equal(t, int64(42), snap.UserID, "identity fields must not change")

	tok, err := repo.Get(ctx, common.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "access-2", string(tok))
}

func TestRefresh_FailureTearsDownSession(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	api := &fakeRefresher{err: errors.New("boom")}
	s := New(ctx, repo, api, testLogger(), time.Hour)
	defer s.Close()
	require.NoError(t, s.Login(ctx, loginResponse()))
	require.NoError(t, repo.Set(ctx, common.KeyCurrentPet, []byte(`{"id":1}`)))

	err := s.Refresh(ctx)
	require.ErrorIs(t, err, common.ErrRefreshFailed)

	// Session torn down without the caller invoking Logout.
	require.Equal(t, StateUnauthenticated, s.State())
	for _, key := range []string{common.KeyToken, common.KeyRefreshToken, common.KeyUser, common.KeyCurrentPet} {
		require.False(t, repo.has(key), "key %q must be cleared", key)
	}
}

func TestRefresh_WithoutSessionIsRejected(t *testing.T) {
	s := New(context.Background(), newMemRepo(), &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()

	require.ErrorIs(t, s.Refresh(context.Background()), common.ErrNoSession)
}

func TestLogout_ClearsEverythingIncludingActivePet(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := New(ctx, repo, &fakeRefresher{}, testLogger(), time.Hour)
	defer s.Close()
	require.NoError(t, s.Login(ctx, loginResponse()))
	require.NoError(t, repo.Set(ctx, common.KeyCurrentPet, []byte(`{"id":9}`)))

	s.Logout(ctx)

	require.False(t, s.IsAuthenticated())
	require.Equal(t, "", s.AccessToken())
	require.False(t, repo.has(common.KeyCurrentPet), "active pet is session-scoped")
}

func TestRefreshLoop_FiresWhileAuthenticatedAndStopsOnLogout(t *testing.T) {
	ctx := context.Background()
	api := &fakeRefresher{token: "access-2", called: make(chan struct{}, 1)}
	s := New(ctx, newMemRepo(), api, testLogger(), 10*time.Millisecond)
	defer s.Close()
	require.NoError(t, s.Login(ctx, loginResponse()))

	select {
	case <-api.called:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh timer never fired")
	}

	s.Logout(ctx)
	before := api.callCount()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, before, api.callCount(), "timer must not fire after logout")
}

func TestLogin_TwiceKeepsSingleTimer(t *testing.T) {
	ctx := context.Background()
	api := &fakeRefresher{token: "t"}
	s := New(ctx, newMemRepo(), api, testLogger(), time.Hour)
	defer s.Close()

	require.NoError(t, s.Login(ctx, loginResponse()))
	require.NoError(t, s.Login(ctx, loginResponse()))

	// The second login must have replaced, not stacked, the timer; closing
	// twice would panic if the old stop channel leaked.
	s.Logout(ctx)
	s.Logout(ctx)
}
