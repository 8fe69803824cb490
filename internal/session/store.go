package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StorageKey is the fixed key the identity is stored under.
const StorageKey = "user"

// Store persists a single identity record.
type Store interface {
	// Load returns nil without error when nothing is stored.
	Load(ctx context.Context) (*Identity, error)
	Save(ctx context.Context, id Identity) error
	Delete(ctx context.Context) error
}

// FileStore keeps a JSON document on disk. The identity lives under StorageKey;
// other keys in the document are preserved.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns <user config dir>/jobmatch/session.json.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "jobmatch", "session.json"), nil
}

func (s *FileStore) Load(_ context.Context) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	raw, ok := doc[StorageKey]
	if !ok {
		return nil, nil
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("decode stored %s: %w", StorageKey, err)
	}
	return &id, nil
}

func (s *FileStore) Save(_ context.Context, id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	doc[StorageKey] = raw

	return s.write(doc)
}

func (s *FileStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[StorageKey]; !ok {
		return nil
	}
	delete(doc, StorageKey)

	return s.write(doc)
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse session file %q: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// RedisKey follows the app:{module}:{entity} layout.
const RedisKey = "app:session:" + StorageKey

// RedisConfig configures RedisStore.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RedisStore keeps the identity as a JSON string in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: rdb}, nil
}

func (s *RedisStore) Load(ctx context.Context) (*Identity, error) {
	data, err := s.client.Get(ctx, RedisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", RedisKey, err)
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("decode stored %s: %w", StorageKey, err)
	}
	return &id, nil
}

func (s *RedisStore) Save(ctx context.Context, id Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := s.client.Set(ctx, RedisKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", RedisKey, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, RedisKey).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", RedisKey, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
