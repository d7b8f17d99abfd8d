package cart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Persister stores the raw cart blob. Load returns nil data when nothing has
// been stored under key yet.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// ─────────────────────────────────────────────────────────────
// File
// ─────────────────────────────────────────────────────────────

// FileBlob keeps each blob in <Dir>/<key>.json.
type FileBlob struct {
	Dir string
}

func (f FileBlob) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f FileBlob) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}
	return data, nil
}

func (f FileBlob) Save(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	return os.Rename(tmp, f.path(key))
}

// ─────────────────────────────────────────────────────────────
// Redis
// ─────────────────────────────────────────────────────────────

// SessionTTL is how long an untouched server cart survives.
const SessionTTL = 30 * 24 * time.Hour

// RedisBlob stores server-side cart sessions.
type RedisBlob struct {
	Client *redis.Client
	TTL    time.Duration
}

// SessionCookie carries the server cart id.
const SessionCookie = "cart_id"

// SessionKey is the Redis key of the cart belonging to cartID.
func SessionKey(cartID string) string {
	return StorageKey + ":" + cartID
}

func (r RedisBlob) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r RedisBlob) Save(ctx context.Context, key string, data []byte) error {
	ttl := r.TTL
	if ttl == 0 {
		ttl = SessionTTL
	}
	if err := r.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────
// Memory
// ─────────────────────────────────────────────────────────────

// MemoryBlob is a Persister kept in process memory.
type MemoryBlob struct {
	mu    sync.Mutex
	blobs map[string][]byte
	// Fail makes every Save return an error.
	Fail bool
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{blobs: make(map[string][]byte)}
}

func (m *MemoryBlob) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.blobs[key]...), nil
}

func (m *MemoryBlob) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return errors.New("memory blob: save disabled")
	}
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}
