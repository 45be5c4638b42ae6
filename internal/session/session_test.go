// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogctl/blogctl/internal/api"
)

// memStore is an in-memory TokenStore.
type memStore struct {
	mu    sync.Mutex
	token string
}

func (m *memStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// identityServer spins up a /api/users/me endpoint and returns the cache
// pieces wired against it. The handler runs for every identity request; hits
// counts them.
func identityServer(t *testing.T, handler http.HandlerFunc) (*api.Client, *int64) {
	t.Helper()

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)
	return client, &hits
}

func okIdentity(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.User{ID: 1, Username: "alice"})
	}
}

func TestCurrentNoToken(t *testing.T) {
	client, hits := identityServer(t, okIdentity(t))
	cache := New(&memStore{}, client)

	assert.Nil(t, cache.Current(t.Context()))
	assert.EqualValues(t, 0, *hits, "no token must mean no network call")
}

func TestCurrentCachesUser(t *testing.T) {
	client, hits := identityServer(t, okIdentity(t))
	cache := New(&memStore{token: "tok-1"}, client)

	user := cache.Current(t.Context())
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)

	// Second call is served from memory.
	again := cache.Current(t.Context())
	assert.Same(t, user, again)
	assert.EqualValues(t, 1, atomic.LoadInt64(hits))
}

func TestConcurrentCallsCoalesce(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	var once sync.Once
	client, hits := identityServer(t, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		_ = json.NewEncoder(w).Encode(api.User{ID: 1, Username: "alice"})
	})
	cache := New(&memStore{token: "tok-1"}, client)

	const callers = 8
	results := make([]*api.User, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Current(t.Context())
		}(i)
	}

	// Let the first fetch get airborne, then open the gate for everyone.
	<-started
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(hits), "callers must share one fetch")
	for _, user := range results {
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
	}
}

func TestRejectedSessionDiscardsToken(t *testing.T) {
	client, hits := identityServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Could not validate credentials"}`))
	})

	store := &memStore{token: "tok-stale"}
	cache := New(store, client)

	assert.Nil(t, cache.Current(t.Context()))
	assert.Equal(t, "", store.Token(), "rejected token must be discarded")
	assert.EqualValues(t, 1, *hits)

	// With the token gone the next call answers without the network.
	assert.Nil(t, cache.Current(t.Context()))
	assert.EqualValues(t, 1, *hits)
}

func TestTransientFaultKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)
	srv.Close() // connection refused from here on

	store := &memStore{token: "tok-1"}
	cache := New(store, client)

	assert.Nil(t, cache.Current(t.Context()))
	assert.Equal(t, "tok-1", store.Token(), "transient fault must not discard the token")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	client, hits := identityServer(t, okIdentity(t))
	store := &memStore{token: "tok-1"}
	cache := New(store, client)

	require.NotNil(t, cache.Current(t.Context()))
	assert.EqualValues(t, 1, *hits)

	cache.Invalidate()
	assert.Equal(t, "tok-1", store.Token(), "invalidate leaves the token alone")

	require.NotNil(t, cache.Current(t.Context()))
	assert.EqualValues(t, 2, *hits)
}

func TestLogout(t *testing.T) {
	client, _ := identityServer(t, okIdentity(t))
	store := &memStore{token: "tok-1"}

	var navigated string
	cache := New(store, client, WithNavigator(func(path string) {
		navigated = path
	}))

	require.NotNil(t, cache.Current(t.Context()))

	cache.Logout()

	assert.Equal(t, "", store.Token())
	assert.Equal(t, "/", navigated)
	assert.Nil(t, cache.Current(t.Context()), "no user after logout")
}

func TestTokenAccessors(t *testing.T) {
	client, _ := identityServer(t, okIdentity(t))
	store := &memStore{}
	cache := New(store, client)

	assert.Equal(t, "", cache.Token())
	require.NoError(t, cache.SetToken("tok-9"))
	assert.Equal(t, "tok-9", cache.Token())
	assert.Equal(t, "tok-9", store.Token())
}
