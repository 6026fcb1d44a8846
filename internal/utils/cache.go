package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gymbrah/GymBrah-backend/internal/database"
)

const defaultCacheTTL = time.Minute

// CacheGetBytes lit une entrée de cache Redis, retourne false en cas de miss
func CacheGetBytes(key string) ([]byte, bool) {
	rc := database.Redis
	if rc == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	b, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// CacheSetJSON sérialise v et le stocke avec un TTL
func CacheSetJSON(key string, v interface{}, ttl time.Duration) {
	rc := database.Redis
	if rc == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Set(ctx, key, b, ttl).Err(); err != nil {
		LogDebug("cache set failed key=%s err=%v", key, err)
	}
}

// CacheDelete supprime une entrée (invalidation après écriture)
func CacheDelete(keys ...string) {
	rc := database.Redis
	if rc == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = rc.Del(ctx, keys...).Err()
}
