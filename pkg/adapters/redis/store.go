package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/ports"
	"github.com/aretw0/rulegen/pkg/rulepack"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "rulegen:pack:"

// Store implements ports.PackRepository using Redis.
// Each pack is a JSON string under prefix+id. A sorted set scored by a
// monotonically increasing counter keeps the first-save order.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL expires saved packs after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient creates a store over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "{index}"
}

func (s *Store) seqKey() string {
	return s.prefix + "{seq}"
}

// Save stores the pack. A pack that is already indexed keeps its position.
// The IDs {index} and {seq} name the store's own keys and are rejected.
func (s *Store) Save(ctx context.Context, pack domain.RulePack) error {
	if err := rulepack.Validate(pack); err != nil {
		return err
	}
	if s.key(pack.ID) == s.indexKey() || s.key(pack.ID) == s.seqKey() {
		return fmt.Errorf("%w: pack id %s is reserved", domain.ErrInvalidArgument, pack.ID)
	}
	data, err := rulepack.MarshalJSON(pack)
	if err != nil {
		return err
	}

	seq, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate sequence for pack %s: %w", pack.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Set(ctx, s.key(pack.ID), data, s.ttl)
		pipe.ZAddNX(ctx, s.indexKey(), backend.Z{Score: float64(seq), Member: pack.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save pack %s: %w", pack.ID, err)
	}
	return nil
}

// Load retrieves a pack by ID.
func (s *Store) Load(ctx context.Context, id string) (domain.RulePack, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.RulePack{}, fmt.Errorf("%w: %s", ports.ErrPackNotFound, id)
	}
	if err != nil {
		return domain.RulePack{}, fmt.Errorf("failed to load pack %s: %w", id, err)
	}
	return rulepack.ParseJSON(data)
}

// Delete removes a pack and its index entry. Missing packs are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete pack %s: %w", id, err)
	}
	return nil
}

// List returns the IDs of stored packs in first-save order.
// Index entries whose pack has expired are removed on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	cmds, err := s.client.Pipelined(ctx, func(pipe backend.Pipeliner) error {
		for _, id := range ids {
			pipe.Exists(ctx, s.key(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}

	live := make([]string, 0, len(ids))
	var stale []any
	for i, cmd := range cmds {
		if cmd.(*backend.IntCmd).Val() > 0 {
			live = append(live, ids[i])
		} else {
			stale = append(stale, ids[i])
		}
	}

	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to clean pack index: %w", err)
		}
	}
	return live, nil
}

// Packs returns every stored pack in first-save order.
func (s *Store) Packs(ctx context.Context) ([]domain.RulePack, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.RulePack{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read packs: %w", err)
	}

	packs := make([]domain.RulePack, 0, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			// Expired between List and MGET.
			continue
		}
		pack, err := rulepack.ParseJSON([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", ids[i], err)
		}
		packs = append(packs, pack)
	}
	return packs, nil
}
