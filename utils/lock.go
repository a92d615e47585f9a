// utils/lock.go
package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the lease only when the caller still owns it
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// LockManager hands out short-lived per-key leases backed by Redis SET NX.
// With a nil client every acquire succeeds, so a missing Redis degrades to
// the unlocked behavior instead of blocking the business flow.
type LockManager struct {
	client *redis.Client
}

func NewLockManager(client *redis.Client) *LockManager {
	return &LockManager{client: client}
}

// Acquire takes the lease for key, returning the owner token to release
// with. ok is false when another owner currently holds the lease.
func (m *LockManager) Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error) {
	if m.client == nil {
		return "", true, nil
	}

	token = uuid.NewString()
	ok, err = m.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// Release gives the lease back; a token that no longer owns the key is a
// no-op (the lease expired and someone else took it)
func (m *LockManager) Release(ctx context.Context, key, token string) error {
	if m.client == nil || token == "" {
		return nil
	}
	return releaseScript.Run(ctx, m.client, []string{key}, token).Err()
}
