package services

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/client/federated"
	"github.com/dmitrijs2005/marketfeed/internal/client/feed"
	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/client/session"
	"github.com/dmitrijs2005/marketfeed/internal/client/storage"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type testEnv struct {
	store   *storage.MemoryStore
	users   *users.StoreRepository
	session *session.Manager
	feed    *feed.Feed

	auth    AuthService
	profile ProfileService
	posts   PostService
	engage  EngagementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logging.Discard()
	store := storage.NewMemoryStore()
	repo := users.NewStoreRepository(store, log)
	sess := session.NewManager(store)
	f := feed.New()

	return &testEnv{
		store:   store,
		users:   repo,
		session: sess,
		feed:    f,
		auth:    NewAuthService(repo, sess, federated.Policy{Attempts: 3, Interval: time.Millisecond}, log),
		profile: NewProfileService(repo, sess, AvatarOptions{Size: 32}, log),
		posts:   NewPostService(f, repo, sess, log),
		engage:  NewEngagementService(f, sess, log),
	}
}

func (e *testEnv) signup(t *testing.T, name, email, password string) {
	t.Helper()
	_, err := e.auth.Signup(context.Background(), SignupRequest{
		Name: name, Email: email, Password: password, Confirm: password,
	})
	require.NoError(t, err)
}

func (e *testEnv) stored(t *testing.T, key string) []byte {
	t.Helper()
	v, err := e.store.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func makeToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"RS256"}`)) + "." +
		enc.EncodeToString([]byte(payload)) + ".c2ln"
}

// ---- fake provider ----

type fakeProvider struct {
	readyAfter int
	calls      int
	token      string
	credErr    error
}

func (f *fakeProvider) Ready(context.Context) error {
	f.calls++
	if f.calls < f.readyAfter {
		return context.DeadlineExceeded
	}
	return nil
}

func (f *fakeProvider) Credential(context.Context) (string, error) {
	return f.token, f.credErr
}
