// Package session caches the signed-in identity projection in Redis:
// one serialized blob per user, overwritten wholesale at sign-in and
// deleted at sign-out. It is a cache, not a source of truth; nothing
// here is ever consulted for authorization.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
)

// Store wraps a Redis client that may be nil. With no client every
// method is a no-op (reads miss, writes succeed silently), matching
// the policy of disabling Redis-backed features when the server is
// unreachable.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a Store over the given client. A zero or negative ttl
// keeps sessions until explicitly cleared.
func New(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(userID uint64) string {
	return "session:" + strconv.FormatUint(userID, 10)
}

// Put overwrites the cached session for its user.
func (s *Store) Put(ctx context.Context, sess model.Session) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sess.UserID), b, s.ttl).Err()
}

// Get returns the cached session, or nil when absent or when Redis
// is not configured.
func (s *Store) Get(ctx context.Context, userID uint64) (*model.Session, error) {
	if s == nil || s.rdb == nil {
		return nil, nil
	}
	b, err := s.rdb.Get(ctx, key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Delete clears the cached session. Deleting an absent session is
// not an error; sign-out is idempotent.
func (s *Store) Delete(ctx context.Context, userID uint64) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, key(userID)).Err()
}

// Merge folds partial profile fields into an existing cached
// session. A missing session is left missing: the next sign-in or
// /me call rebuilds it from the store.
func (s *Store) Merge(ctx context.Context, userID uint64, fullName, phone *string) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	sess, err := s.Get(ctx, userID)
	if err != nil || sess == nil {
		return err
	}
	if fullName != nil {
		sess.FullName = *fullName
	}
	if phone != nil {
		sess.Phone = phone
	}
	return s.Put(ctx, *sess)
}
