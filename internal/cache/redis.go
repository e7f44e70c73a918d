package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 5 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, machineID string) (*domain.Machine, error) {
	key := cacheKey(machineID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var machine domain.Machine
	if err2 := json.Unmarshal(data, &machine); err2 != nil {
		return nil, fmt.Errorf("unmarshal machine failed: %w", err2)
	}

	return &machine, nil
}

func (r RedisCache) Set(ctx context.Context, machineID string, machine *domain.Machine) error {
	key := cacheKey(machineID)
	jsonMachine, err := json.Marshal(machine)
	if err != nil {
		return fmt.Errorf("marshal machine failed: %w", err)
	}

	// Jitter spreads expirations so a popular machine doesn't stampede
	jitter := time.Duration(rand.Intn(60)) * time.Second
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, string(jsonMachine), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, machineID string) error {
	key := cacheKey(machineID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cacheKey(machineID string) string {
	return fmt.Sprintf("machine:%s", machineID)
}
