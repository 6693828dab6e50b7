package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository"
)

const keyPrefix = "guest_cart:"

// guestCartTTL bounds how long an abandoned guest cart survives.
const guestCartTTL = 30 * 24 * time.Hour

type guestCartStore struct {
	client *redis.Client
}

// NewGuestCartStore creates a GuestCartStore backed by Redis. Each guest
// session owns one key holding a JSON array of cart lines.
func NewGuestCartStore(client *redis.Client) repository.GuestCartStore {
	return &guestCartStore{client: client}
}

func key(guestKey string) string {
	return keyPrefix + guestKey
}

func (s *guestCartStore) Load(ctx context.Context, guestKey string) ([]entity.CartLine, error) {
	raw, err := s.client.Get(ctx, key(guestKey)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest cart %s: %w", guestKey, err)
	}
	return decodeLines(guestKey, raw), nil
}

func (s *guestCartStore) Save(ctx context.Context, guestKey string, lines []entity.CartLine) error {
	if len(lines) == 0 {
		return s.Clear(ctx, guestKey)
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart %s: %w", guestKey, err)
	}
	if err := s.client.Set(ctx, key(guestKey), payload, guestCartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart %s: %w", guestKey, err)
	}
	return nil
}

func (s *guestCartStore) Clear(ctx context.Context, guestKey string) error {
	if err := s.client.Del(ctx, key(guestKey)).Err(); err != nil {
		return fmt.Errorf("failed to clear guest cart %s: %w", guestKey, err)
	}
	return nil
}

func (s *guestCartStore) Drain(ctx context.Context, guestKey string) ([]entity.CartLine, error) {
	// GETDEL claims the lines and removes the key in one step, so a second
	// migration racing this one reads an empty cart.
	raw, err := s.client.GetDel(ctx, key(guestKey)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to drain guest cart %s: %w", guestKey, err)
	}
	return decodeLines(guestKey, raw), nil
}

// decodeLines treats malformed stored data as an empty cart. Guest carts are
// best-effort convenience state; a parse failure is logged, never surfaced.
func decodeLines(guestKey, raw string) []entity.CartLine {
	var lines []entity.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		slog.Warn("Discarding malformed guest cart", "guest_key", guestKey, "err", err)
		return nil
	}
	return lines
}
