// Package cache holds a redis read-through cache in front of the user repository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"todoManagement/models"
	"todoManagement/repository"
)

// DefaultTTL bounds how long a cached user may be served.
const DefaultTTL = 5 * time.Minute

// cachedUser mirrors models.User including the hash, which the model hides from JSON.
type cachedUser struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// Users caches GetByID lookups and drops the entry on every write to that user.
// All other calls go straight to the wrapped repository.
type Users struct {
	repository.UserRepositoryI
	rdb *redis.Client
	ttl time.Duration
}

var _ repository.UserRepositoryI = (*Users)(nil)

// NewUsers wraps next with a cache stored in rdb.
func NewUsers(next repository.UserRepositoryI, rdb *redis.Client, ttl time.Duration) *Users {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Users{UserRepositoryI: next, rdb: rdb, ttl: ttl}
}

// Connect opens a client for addr and checks it with PING.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func userKey(id int64) string {
	return "todo:user:" + strconv.FormatInt(id, 10)
}

// GetByID serves from the cache when possible. Cache faults fall back to the
// repository; a missing user is never cached.
func (u *Users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	raw, err := u.rdb.Get(ctx, userKey(id)).Bytes()
	if err == nil {
		var cu cachedUser
		if jerr := json.Unmarshal(raw, &cu); jerr == nil {
			return &models.User{ID: cu.ID, Email: cu.Email, PasswordHash: cu.PasswordHash, Role: models.UserRole(cu.Role)}, nil
		}
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	usr, err := u.UserRepositoryI.GetByID(ctx, id)
	if err != nil || usr == nil {
		return usr, err
	}
	u.store(ctx, usr)
	return usr, nil
}

func (u *Users) store(ctx context.Context, usr *models.User) {
	payload, err := json.Marshal(cachedUser{
		ID:           usr.ID,
		Email:        usr.Email,
		PasswordHash: usr.PasswordHash,
		Role:         string(usr.Role),
	})
	if err != nil {
		return
	}
	_ = u.rdb.Set(ctx, userKey(usr.ID), payload, u.ttl).Err()
}

// Invalidate drops the cached entry for id.
func (u *Users) Invalidate(ctx context.Context, id int64) error {
	return u.rdb.Del(ctx, userKey(id)).Err()
}

func (u *Users) UpdateRole(ctx context.Context, id int64, role models.UserRole) error {
	if err := u.UserRepositoryI.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	return u.Invalidate(ctx, id)
}

func (u *Users) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if err := u.UserRepositoryI.UpdatePassword(ctx, id, passwordHash); err != nil {
		return err
	}
	return u.Invalidate(ctx, id)
}
