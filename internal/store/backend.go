package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// Slot names, one independent key-value slot per collection. Each slot holds
// the collection serialized as a bare JSON array, no envelope or version.
const (
	SlotWhatsAppLeads   = "whatsappLeads"
	SlotContactForms    = "contactForms"
	SlotServiceBookings = "serviceBookings"
	SlotClients         = "clients"
)

// Backend persists collection slots. Read returns ErrSlotMissing for a slot
// that has never been written.
type Backend interface {
	Read(ctx context.Context, slot string) ([]byte, error)
	Write(ctx context.Context, slot string, data []byte) error
}

// RedisBackend keeps slots in Redis.
type RedisBackend struct {
	redis *redis.Client
}

// NewRedisBackend creates a Redis-backed slot store.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{redis: client}
}

func (b *RedisBackend) key(slot string) string {
	return fmt.Sprintf("backoffice:data:%s", slot)
}

// Read retrieves a slot's raw JSON payload.
func (b *RedisBackend) Read(ctx context.Context, slot string) ([]byte, error) {
	data, err := b.redis.Get(ctx, b.key(slot)).Bytes()
	if err == redis.Nil {
		return nil, ErrSlotMissing
	}
	if err != nil {
		return nil, fmt.Errorf("store: read slot %s: %w", slot, err)
	}
	return data, nil
}

// Write stores a slot's raw JSON payload.
func (b *RedisBackend) Write(ctx context.Context, slot string, data []byte) error {
	if err := b.redis.Set(ctx, b.key(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("store: write slot %s: %w", slot, err)
	}
	return nil
}

// FileBackend keeps one JSON file per slot under a data directory. Intended
// for local and single-instance deployments.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the data directory if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(slot string) string {
	return filepath.Join(b.dir, slot+".json")
}

// Read retrieves a slot's raw JSON payload.
func (b *FileBackend) Read(ctx context.Context, slot string) ([]byte, error) {
	data, err := os.ReadFile(b.path(slot))
	if os.IsNotExist(err) {
		return nil, ErrSlotMissing
	}
	if err != nil {
		return nil, fmt.Errorf("store: read slot %s: %w", slot, err)
	}
	return data, nil
}

// Write stores a slot's raw JSON payload. The write goes through a temp file
// and rename so a crash never leaves a half-written slot.
func (b *FileBackend) Write(ctx context.Context, slot string, data []byte) error {
	tmp := b.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("store: write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp, b.path(slot)); err != nil {
		return fmt.Errorf("store: write slot %s: %w", slot, err)
	}
	return nil
}

var (
	_ Backend = (*RedisBackend)(nil)
	_ Backend = (*FileBackend)(nil)
)
