// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"

	"github.com/blogctl/blogctl/internal/api"
)

// currentUserKey is the singleflight key for the identity fetch. There is
// only ever one identity per cache, so a fixed key is enough.
const currentUserKey = "current-user"

// TokenStore is the persistent slot holding the bearer token. Satisfied by
// creds.Store; tests supply an in-memory fake.
type TokenStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

// Identity resolves a bearer token to the user behind it. Satisfied by
// (*api.Client).Me.
type Identity interface {
	Me(ctx context.Context, token string) (*api.User, error)
}

// Cache memoizes the authenticated user for the lifetime of the process.
// Concurrent lookups while a fetch is in flight are coalesced into that one
// fetch; every waiter gets its outcome.
type Cache struct {
	store    TokenStore
	identity Identity
	navigate func(path string)

	group singleflight.Group

	mu   sync.RWMutex
	user *api.User
}

// Option configures a Cache.
type Option func(*Cache)

// WithNavigator sets the callback invoked with the target path when Logout
// wants the surrounding app to return to the site root.
func WithNavigator(fn func(path string)) Option {
	return func(c *Cache) {
		if fn != nil {
			c.navigate = fn
		}
	}
}

// New builds a Cache over the given token store and identity resolver.
func New(store TokenStore, identity Identity, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		identity: identity,
		navigate: func(string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the authenticated user, or nil when there is none.
//
// The cached user is returned without a network call. Otherwise a single
// identity fetch is issued; callers arriving while it is in flight share its
// outcome instead of triggering their own. With no stored token the answer is
// nil immediately.
//
// Failures never escape: an unauthorized response discards the stored token,
// a transport or decode fault is logged and the token is kept for a later
// retry. Either way the caller sees nil.
func (c *Cache) Current(ctx context.Context) *api.User {
	c.mu.RLock()
	user := c.user
	c.mu.RUnlock()
	if user != nil {
		return user
	}

	// Do collapses concurrent callers onto one fetch and always clears the
	// in-flight slot before returning, so a later call can refetch.
	v, err, _ := c.group.Do(currentUserKey, func() (any, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		log.WithError(err).Warn("failed to fetch current user")
		return nil
	}
	if v == nil {
		return nil
	}
	return v.(*api.User)
}

// fetch performs one identity lookup. A nil, nil return means "definitively
// unauthenticated"; an error return means a transient fault.
func (c *Cache) fetch(ctx context.Context) (*api.User, error) {
	// A waiter that queued behind a successful fetch finds the user already
	// cached.
	c.mu.RLock()
	user := c.user
	c.mu.RUnlock()
	if user != nil {
		return user, nil
	}

	token := c.store.Token()
	if token == "" {
		return nil, nil
	}

	user, err := c.identity.Me(ctx, token)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			// The server rejected the token. It's dead, drop it.
			log.Debugf("session rejected (%d), discarding token", apiErr.StatusCode)
			if err := c.store.Clear(); err != nil {
				log.WithError(err).Warn("failed to clear stored token")
			}
			return nil, nil
		}
		// Transport or decode fault. Keep the token so a later call can retry.
		return nil, err
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()

	return user, nil
}

// Logout clears the stored token and the cached user, then sends the app
// back to the site root.
func (c *Cache) Logout() {
	if err := c.store.Clear(); err != nil {
		log.WithError(err).Warn("failed to clear stored token")
	}

	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()

	c.navigate("/")
}

// Token returns the persisted token, or "" when logged out.
func (c *Cache) Token() string {
	return c.store.Token()
}

// SetToken persists a new token. The cached user is left alone; call
// Invalidate when the identity may have changed.
func (c *Cache) SetToken(token string) error {
	return c.store.SetToken(token)
}

// Invalidate drops only the in-memory user so the next Current call
// re-fetches with the unchanged token. Used after account mutations.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
}
