package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"stylesuggest/internal/suggestion/model"
	"stylesuggest/internal/suggestion/repository"
	"stylesuggest/router"
	"stylesuggest/socket"
	"stylesuggest/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStore struct {
	URL      string
	Repo     *repository.MemoryRepository
	Requests *atomic.Int64
}

func newTestStore(t *testing.T, seed ...model.Suggestion) *testStore {
	t.Helper()
	repo := repository.NewMemoryRepository(seed...)
	var requests atomic.Int64
	api := router.Setup(repo, socket.NewHub(), "")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		api.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return &testStore{URL: server.URL, Repo: repo, Requests: &requests}
}

// deadURL returns the address of a server that has already been shut down.
func deadURL(t *testing.T) string {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("local-%d", n)
	}
}

func snapshotOf(t *testing.T, kv store.KV) []model.Suggestion {
	t.Helper()
	items, err := readSnapshot(context.Background(), kv)
	require.NoError(t, err)
	return items
}

func TestLoad_RemoteMirrorsSnapshot(t *testing.T) {
	ts := newTestStore(t, model.DefaultSeed()...)
	kv := store.NewMemoryKV()
	c, err := New(ModeRemote, kv, WithBaseURL(ts.URL))
	require.NoError(t, err)

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSeed(), items)
	assert.False(t, c.Offline())
	assert.Equal(t, model.DefaultSeed(), snapshotOf(t, kv))
}

func TestLoad_OfflineWithoutSnapshotIsEmpty(t *testing.T) {
	c, err := New(ModeRemote, store.NewMemoryKV(), WithBaseURL(deadURL(t)))
	require.NoError(t, err)

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.True(t, c.Offline())
}

func TestLoad_OfflineReturnsMirroredSnapshot(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, model.DefaultSeed()...)
	kv := store.NewMemoryKV()

	online, err := New(ModeRemote, kv, WithBaseURL(ts.URL), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	_, err = online.Load(ctx)
	require.NoError(t, err)
	_, err = online.Save(ctx, "", "Saia", "Saia midi.")
	require.NoError(t, err)
	mirrored := snapshotOf(t, kv)

	offline, err := New(ModeRemote, kv, WithBaseURL(deadURL(t)))
	require.NoError(t, err)
	items, err := offline.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, mirrored, items)
	assert.Len(t, items, 3)
}

func TestLoad_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	kv := store.NewMemoryKV()
	require.NoError(t, writeSnapshot(context.Background(), kv, model.DefaultSeed()))

	c, err := New(ModeRemote, kv, WithBaseURL(server.URL))
	require.NoError(t, err)
	items, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSeed(), items)
}

func TestLoad_CorruptSnapshot(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), SnapshotKey, "{not a list"))

	c, err := New(ModeLocal, kv)
	require.NoError(t, err)
	items, err := c.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, items)
}

func TestSave_RejectsEmptyFieldsWithoutIO(t *testing.T) {
	ts := newTestStore(t)
	kv := store.NewMemoryKV()
	c, err := New(ModeRemote, kv, WithBaseURL(ts.URL))
	require.NoError(t, err)

	for _, tc := range []struct{ name, description string }{
		{"", "desc"},
		{"name", ""},
	} {
		_, err := c.Save(context.Background(), "", tc.name, tc.description)
		assert.ErrorIs(t, err, ErrEmptyFields)
	}

	assert.Equal(t, int64(0), ts.Requests.Load())
	_, ok, _ := kv.Get(context.Background(), SnapshotKey)
	assert.False(t, ok)
}

func TestSave_AcceptsWhitespaceFields(t *testing.T) {
	ts := newTestStore(t)
	c, err := New(ModeRemote, store.NewMemoryKV(), WithBaseURL(ts.URL))
	require.NoError(t, err)

	saved, err := c.Save(context.Background(), "", " ", "desc")
	require.NoError(t, err)
	assert.Equal(t, " ", saved.Name)
	assert.Equal(t, int64(1), ts.Requests.Load())
}

func TestLoad_RemoteRewritesCorruptSnapshotFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))
	kv := store.NewFileKV(path)
	ts := newTestStore(t, model.DefaultSeed()...)

	online, err := New(ModeRemote, kv, WithBaseURL(ts.URL), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	_, err = online.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSeed(), snapshotOf(t, kv))

	_, err = online.Save(ctx, "", "Saia", "Saia midi.")
	require.NoError(t, err)

	offline, err := New(ModeRemote, store.NewFileKV(path), WithBaseURL(deadURL(t)))
	require.NoError(t, err)
	items, err := offline.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestSave_CreateRemote(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t)
	kv := store.NewMemoryKV()
	c, err := New(ModeRemote, kv, WithBaseURL(ts.URL), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	_, err = c.Load(ctx)
	require.NoError(t, err)

	created, err := c.Save(ctx, "", "Vestido Floral", "Um vestido leve e florido.")
	require.NoError(t, err)
	assert.NotEqual(t, "local-1", created.ID, "the store assigns its own id")
	assert.Equal(t, []model.Suggestion{created}, c.Suggestions())

	stored, _ := ts.Repo.List(ctx)
	assert.Equal(t, []model.Suggestion{created}, stored)

	// The snapshot is mirrored from the candidate, not the acknowledgment.
	assert.Equal(t, []model.Suggestion{{ID: "local-1", Name: "Vestido Floral", Description: "Um vestido leve e florido."}}, snapshotOf(t, kv))

	// The next successful load converges both.
	_, err = c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, snapshotOf(t, kv))
}

func TestSave_UpdateRemote(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, model.DefaultSeed()...)
	kv := store.NewMemoryKV()
	c, err := New(ModeRemote, kv, WithBaseURL(ts.URL))
	require.NoError(t, err)
	_, err = c.Load(ctx)
	require.NoError(t, err)

	updated, err := c.Save(ctx, "1", "Vestido Longo", "Até os pés.")
	require.NoError(t, err)
	assert.Equal(t, model.Suggestion{ID: "1", Name: "Vestido Longo", Description: "Até os pés."}, updated)

	want := []model.Suggestion{updated, model.DefaultSeed()[1]}
	assert.Equal(t, want, c.Suggestions())
	assert.Equal(t, want, snapshotOf(t, kv))
}

func TestSave_UpdateMissingLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, model.DefaultSeed()...)
	c, err := New(ModeRemote, store.NewMemoryKV(), WithBaseURL(ts.URL))
	require.NoError(t, err)
	_, err = c.Load(ctx)
	require.NoError(t, err)

	got, err := c.Save(ctx, "999", "x", "y")
	require.NoError(t, err)
	assert.Equal(t, "999", got.ID)
	assert.Equal(t, model.DefaultSeed(), c.Suggestions())

	stored, _ := ts.Repo.List(ctx)
	assert.Equal(t, model.DefaultSeed(), stored)
}

func TestSave_OfflineStillMirrors(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, writeSnapshot(ctx, kv, model.DefaultSeed()))

	c, err := New(ModeRemote, kv, WithBaseURL(deadURL(t)), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	_, err = c.Load(ctx)
	require.NoError(t, err)

	got, err := c.Save(ctx, "", "Saia", "Saia midi.")
	require.NoError(t, err)
	assert.Equal(t, "local-1", got.ID)

	// No acknowledgment, so the in-memory list is unchanged.
	assert.Equal(t, model.DefaultSeed(), c.Suggestions())
	assert.Equal(t, append(model.DefaultSeed(), got), snapshotOf(t, kv))
}

func TestDelete_Remote(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, model.DefaultSeed()...)
	kv := store.NewMemoryKV()
	c, err := New(ModeRemote, kv, WithBaseURL(ts.URL))
	require.NoError(t, err)
	_, err = c.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "1"))
	require.NoError(t, c.Delete(ctx, "1"))

	want := []model.Suggestion{model.DefaultSeed()[1]}
	assert.Equal(t, want, c.Suggestions())
	assert.Equal(t, want, snapshotOf(t, kv))
	stored, _ := ts.Repo.List(ctx)
	assert.Equal(t, want, stored)
}

func TestDelete_Offline(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, writeSnapshot(ctx, kv, model.DefaultSeed()))

	c, err := New(ModeRemote, kv, WithBaseURL(deadURL(t)))
	require.NoError(t, err)
	_, err = c.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "2"))
	assert.Equal(t, model.DefaultSeed(), c.Suggestions())
	assert.Equal(t, model.DefaultSeed()[:1], snapshotOf(t, kv))
}

func TestLocalMode(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	c, err := New(ModeLocal, kv, WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, c.Mode())

	items, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	first, err := c.Save(ctx, "", "Vestido Floral", "Um vestido leve e florido.")
	require.NoError(t, err)
	second, err := c.Save(ctx, "", "Camisa Jeans", "Uma camisa clássica de jeans.")
	require.NoError(t, err)
	_, err = c.Save(ctx, first.ID, "Vestido Longo", "Até os pés.")
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, second.ID))

	want := []model.Suggestion{{ID: "local-1", Name: "Vestido Longo", Description: "Até os pés."}}
	assert.Equal(t, want, c.Suggestions())

	reopened, err := New(ModeLocal, kv)
	require.NoError(t, err)
	items, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, items)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(ModeRemote, store.NewMemoryKV())
	assert.Error(t, err)

	_, err = New("hybrid", store.NewMemoryKV())
	assert.Error(t, err)

	_, err = New(ModeLocal, nil)
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	const secret = "test-secret"
	api := router.Setup(repository.NewMemoryRepository(model.DefaultSeed()...), socket.NewHub(), secret)
	server := httptest.NewServer(api)
	defer server.Close()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	c, err := New(ModeRemote, store.NewMemoryKV(), WithBaseURL(server.URL), WithToken(token))
	require.NoError(t, err)
	_, err = c.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, c.Offline())

	anon, err := New(ModeRemote, store.NewMemoryKV(), WithBaseURL(server.URL))
	require.NoError(t, err)
	_, err = anon.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, anon.Offline())
}
