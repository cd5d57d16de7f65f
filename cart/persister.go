package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Persister is the durable slot a session cart snapshot lives in. The store
// treats it as best-effort: a failing persister never fails a cart operation.
type Persister interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, snapshot []byte) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNoSnapshot = errors.New("no cart snapshot")

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisPersister) Load(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisPersister) Save(ctx context.Context, sessionID string, snapshot []byte) error {
	if err := r.client.Set(ctx, snapshotKey(sessionID), snapshot, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, snapshotKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("cart:v1:%s", sessionID)
}

// MemoryPersister keeps snapshots in process memory. It backs deployments
// without Redis; carts then survive only as long as the server does.
type MemoryPersister struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{snapshots: make(map[string][]byte)}
}

func (m *MemoryPersister) Load(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.snapshots[sessionID]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return data, nil
}

func (m *MemoryPersister) Save(_ context.Context, sessionID string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[sessionID] = append([]byte(nil), snapshot...)
	return nil
}

func (m *MemoryPersister) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, sessionID)
	return nil
}
