package cache

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const credentialKey = "swing:license_key"

// CredentialStore persists the single license credential. It is the only
// key this client ever touches.
type CredentialStore struct {
	client *redis.Client
}

func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

// Connect opens the Redis connection used for credential persistence.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}
	log.Println("Connected to Redis")
	return client, nil
}

// Get returns the stored credential, or "" when none is stored.
func (s *CredentialStore) Get(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, credentialKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read stored credential: %w", err)
	}
	return val, nil
}

func (s *CredentialStore) Set(ctx context.Context, credential string) error {
	if err := s.client.Set(ctx, credentialKey, credential, 0).Err(); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, credentialKey).Err(); err != nil {
		return fmt.Errorf("evict credential: %w", err)
	}
	return nil
}
