// Package redis persists gate outcomes in Redis for audit and inspection.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Store implements ports.OutcomeStore using Redis. Each outcome is stored as
// a JSON value; a per-transition ZSET (scored by check time) serves as the
// newest-first index.
type Store struct {
	client  *backend.Client
	prefix  string
	ttl     time.Duration
	history int64
}

type Option func(*Store)

// WithTTL sets the expiration for outcome records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for outcome records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithHistoryLimit caps how many outcomes are indexed per transition.
// Older entries are trimmed on save. Zero means unlimited.
func WithHistoryLimit(n int64) Option {
	return func(s *Store) {
		s.history = n
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client:  client,
		prefix:  "palisade:outcome:",
		ttl:     0, // No expiration by default
		history: 100,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(outcomeID string) string {
	return s.prefix + outcomeID
}

func (s *Store) indexKey(transitionID string) string {
	return s.prefix + "index:" + transitionID
}

// Save persists the outcome and indexes it under its transition.
func (s *Store) Save(ctx context.Context, outcome *domain.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	index := s.indexKey(outcome.TransitionID)
	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(outcome.ID), data, s.ttl)
	pipe.ZAdd(ctx, index, backend.Z{
		Score:  float64(outcome.CheckedAt.UnixNano()),
		Member: outcome.ID,
	})
	if s.history > 0 {
		// Keep only the newest N index entries.
		pipe.ZRemRangeByRank(ctx, index, 0, -(s.history + 1))
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, index, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Recent returns up to limit outcomes for a transition, newest first.
// Index entries whose records have expired are skipped.
func (s *Store) Recent(ctx context.Context, transitionID string, limit int) ([]domain.Outcome, error) {
	if limit <= 0 {
		limit = int(s.history)
	}

	ids, err := s.client.ZRevRange(ctx, s.indexKey(transitionID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read outcome index: %w", err)
	}

	outcomes := make([]domain.Outcome, 0, len(ids))
	for _, id := range ids {
		val, err := s.client.Get(ctx, s.key(id)).Result()
		if err == backend.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get outcome %s: %w", id, err)
		}

		var outcome domain.Outcome
		if err := json.Unmarshal([]byte(val), &outcome); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outcome %s: %w", id, err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ ports.OutcomeStore = (*Store)(nil)
