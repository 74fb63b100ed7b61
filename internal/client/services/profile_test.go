package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/client/federated"
	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/client/session"
	"github.com/dmitrijs2005/marketfeed/internal/client/storage"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile_NameOnly(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Ann", "ann@x.com", "pw")

	u, err := e.profile.UpdateProfile(ctx, ProfileUpdate{Name: "  Ann Smith "})
	require.NoError(t, err)
	require.Equal(t, "Ann Smith", u.Name)
	require.Equal(t, "ann@x.com", u.Email)

	stored, err := e.users.Find(ctx, "ann@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ann Smith", stored.Name)
}

func TestUpdateProfile_RekeysAndSessionFollows(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Ann", "ann@x.com", "pw")
	_, err := e.auth.Login(ctx, "ann@x.com", "pw", false)
	require.NoError(t, err)

	u, err := e.profile.UpdateProfile(ctx, ProfileUpdate{Email: " Ann.New@X.com"})
	require.NoError(t, err)
	require.Equal(t, "ann.new@x.com", u.Email)

	old, err := e.users.Find(ctx, "ann@x.com")
	require.NoError(t, err)
	require.Nil(t, old)
	moved, err := e.users.Find(ctx, "ann.new@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ann", moved.Name)
	require.NotNil(t, moved.Password)

	email, ok := e.session.Current()
	require.True(t, ok)
	require.Equal(t, "ann.new@x.com", email)
	require.False(t, e.session.Persistent())
	require.Nil(t, e.stored(t, storage.KeyLoggedInUser))

	_, err = e.auth.Login(ctx, "ann.new@x.com", "pw", true)
	require.NoError(t, err)
}

// sessionWriteFailStore fails writes to the session key once armed.
type sessionWriteFailStore struct {
	*storage.MemoryStore
	armed atomic.Bool
}

var errSessionWrite = errors.New("session write refused")

func (s *sessionWriteFailStore) Set(ctx context.Context, key string, value []byte) error {
	if key == storage.KeyLoggedInUser && s.armed.Load() {
		return errSessionWrite
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *sessionWriteFailStore) Delete(ctx context.Context, key string) error {
	if key == storage.KeyLoggedInUser && s.armed.Load() {
		return errSessionWrite
	}
	return s.MemoryStore.Delete(ctx, key)
}

func TestUpdateProfile_SessionErrorRestoresRecord(t *testing.T) {
	ctx := context.Background()
	log := logging.Discard()
	store := &sessionWriteFailStore{MemoryStore: storage.NewMemoryStore()}
	repo := users.NewStoreRepository(store, log)
	sess := session.NewManager(store)
	auth := NewAuthService(repo, sess, federated.Policy{Attempts: 1, Interval: time.Millisecond}, log)
	profile := NewProfileService(repo, sess, AvatarOptions{Size: 32}, log)

	_, err := auth.Signup(ctx, SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "pw", Confirm: "pw"})
	require.NoError(t, err)

	store.armed.Store(true)
	_, err = profile.UpdateProfile(ctx, ProfileUpdate{Name: "Renamed", Email: "new@x.com"})
	require.ErrorIs(t, err, errSessionWrite)

	email, ok := sess.Current()
	require.True(t, ok)
	require.Equal(t, "ann@x.com", email)

	moved, err := repo.Find(ctx, "new@x.com")
	require.NoError(t, err)
	require.Nil(t, moved)

	kept, err := repo.Find(ctx, "ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, kept)
	require.Equal(t, "Ann", kept.Name)

	store.armed.Store(false)
	u, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", u.Email)
}

func TestUpdateProfile_PersistentSessionStaysPersistent(t *testing.T) {
	e := newTestEnv(t)
	e.signup(t, "Ann", "ann@x.com", "pw")

	_, err := e.profile.UpdateProfile(context.Background(), ProfileUpdate{Email: "ann2@x.com"})
	require.NoError(t, err)
	require.True(t, e.session.Persistent())
	require.Equal(t, []byte("ann2@x.com"), e.stored(t, storage.KeyLoggedInUser))
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Bob", "bob@x.com", "pw")
	e.signup(t, "Ann", "ann@x.com", "pw")
	before := e.stored(t, storage.KeyUsers)

	_, err := e.profile.UpdateProfile(ctx, ProfileUpdate{Name: "Renamed", Email: "BOB@x.com"})
	require.ErrorIs(t, err, common.ErrEmailConflict)

	require.Equal(t, before, e.stored(t, storage.KeyUsers))
	email, _ := e.session.Current()
	require.Equal(t, "ann@x.com", email)
}

func TestUpdateProfile_SameKeyDifferentCase(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Ann", "ann@x.com", "pw")

	u, err := e.profile.UpdateProfile(ctx, ProfileUpdate{Email: "  ANN@x.com"})
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", u.Email)

	list, err := e.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestProfile_RequiresSession(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.profile.UpdateProfile(ctx, ProfileUpdate{Name: "X"})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, err = e.profile.SetAvatar(ctx, "data:image/png;base64,AAAA")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, err = e.profile.SetAvatarFromFile(ctx, "missing.png")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestSetAvatar(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Ann", "ann@x.com", "pw")

	u, err := e.profile.SetAvatar(ctx, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,AAAA", u.Avatar)

	stored, err := e.users.Find(ctx, "ann@x.com")
	require.NoError(t, err)
	require.Equal(t, u.Avatar, stored.Avatar)
}

func TestSetAvatarFromFile(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Ann", "ann@x.com", "pw")

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		img.Set(x, x%48, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	u, err := e.profile.SetAvatarFromFile(ctx, path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u.Avatar, "data:image/png;base64,"))

	txt := filepath.Join(t.TempDir(), "me.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	_, err = e.profile.SetAvatarFromFile(ctx, txt)
	require.ErrorIs(t, err, common.ErrUnsupportedMedia)
}
