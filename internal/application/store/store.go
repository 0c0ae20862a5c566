// Package store owns the in-memory dataset (users, posts, session) and
// mediates every read and write of durable storage. The whole dataset is
// loaded once at startup and flushed in full on every mutation; there is no
// incremental persistence.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/infrastructure/logger"
	"github.com/vibeshot/core/internal/ports"
)

// Fixed storage keys, unchanged from the original dataset so existing data
// loads as-is.
const (
	KeyUsers   = "vibe_users"
	KeyPosts   = "vibe_posts"
	KeySession = "vibe_session"
)

// Store is the single source of truth for users, posts and the session. It
// is an explicit handle passed to services, not a package-level singleton.
type Store struct {
	mu     sync.Mutex
	kv     ports.KV
	logger *logger.Logger
	now    func() int64

	users   []*entities.User
	posts   []*entities.Post
	session *entities.User
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the millisecond clock. Tests use it for deterministic
// ids and timestamps.
func WithNow(now func() int64) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store over the given backend. Call Load before use.
func New(kv ports.KV, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: log.WithComponent("store"),
		now:    func() int64 { return time.Now().UnixMilli() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads all three keys. A missing or undecodable record defaults to an
// empty collection or no session; neither is fatal. An empty post collection
// triggers demo seeding, which is persisted immediately.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.posts = nil
	s.session = nil

	if err := s.loadKey(ctx, KeyUsers, &s.users); err != nil {
		return err
	}
	if err := s.loadKey(ctx, KeyPosts, &s.posts); err != nil {
		return err
	}
	if err := s.loadKey(ctx, KeySession, &s.session); err != nil {
		return err
	}

	if len(s.posts) == 0 {
		s.seed()
		if err := s.saveLocked(ctx); err != nil {
			return fmt.Errorf("persist seed data: %w", err)
		}
		s.logger.Infow("Seeded demo dataset", "users", len(s.users), "posts", len(s.posts))
	}

	return nil
}

// loadKey deserializes one key into dest. Absent keys and corrupt records
// both resolve to the zero value.
func (s *Store) loadKey(ctx context.Context, key string, dest interface{}) error {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warnw("Discarding undecodable record", "key", key, "error", err)
	}
	return nil
}

// Save serializes and writes users, then posts, then session. The writes are
// sequenced, not atomic as a group; each individual key write is atomic at
// the backend. A capacity failure surfaces as entities.ErrStorageFull and
// leaves the in-memory state valid.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	if err := s.saveKey(ctx, KeyUsers, s.users); err != nil {
		return err
	}
	if err := s.saveKey(ctx, KeyPosts, s.posts); err != nil {
		return err
	}
	return s.saveKey(ctx, KeySession, s.session)
}

func (s *Store) saveKey(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		if errors.Is(err, ports.ErrCapacityExceeded) {
			s.logger.Warnw("Storage capacity exceeded", "key", key, "bytes", len(data))
			return fmt.Errorf("save %s: %w", key, entities.ErrStorageFull)
		}
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// UpdateSession replaces the session and, when a user with a matching email
// exists, re-points that list entry at the same object so the list and the
// session never diverge. The change is persisted.
func (s *Store) UpdateSession(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	s.session = user
	if user != nil {
		for i, u := range s.users {
			if u.Email == user.Email {
				s.users[i] = user
				break
			}
		}
	}
	s.mu.Unlock()
	return s.Save(ctx)
}

// SetSession replaces the session without persisting. Callers that batch
// several mutations call Save once afterwards.
func (s *Store) SetSession(user *entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = user
}

// Session returns the authenticated user, or nil.
func (s *Store) Session() *entities.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Users returns the user list. The slice is a copy; the elements are shared.
func (s *Store) Users() []*entities.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entities.User(nil), s.users...)
}

// Posts returns the post list. The slice is a copy; the elements are shared.
func (s *Store) Posts() []*entities.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entities.Post(nil), s.posts...)
}

// AppendUser adds a user to the end of the list.
func (s *Store) AppendUser(user *entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, user)
}

// PrependPost puts a post at the head of the list so it leads the default
// recency order.
func (s *Store) PrependPost(post *entities.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]*entities.Post{post}, s.posts...)
}

// UserByEmail looks a user up by its identity key.
func (s *Store) UserByEmail(email string) (*entities.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return nil, false
}

// UserByName looks a user up by display handle. Name-keyed joins go through
// here so a future move to surrogate keys only touches this layer.
func (s *Store) UserByName(name string) (*entities.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Name == name {
			return u, true
		}
	}
	return nil, false
}

// PostByID looks a post up by id.
func (s *Store) PostByID(id int64) (*entities.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Now returns the store's current time in unix milliseconds.
func (s *Store) Now() int64 {
	return s.now()
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
