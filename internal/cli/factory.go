package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/pkg/adapters/file"
	loamAdapter "github.com/aretw0/rulegen/pkg/adapters/loam"
	redisAdapter "github.com/aretw0/rulegen/pkg/adapters/redis"
	"github.com/aretw0/rulegen/pkg/domain"
)

// SourceOptions selects where rule packs are loaded from.
// Sources load in a fixed order: pack files, then the loam repository, then redis,
// so later sources override variables of earlier ones.
type SourceOptions struct {
	Packs       []string
	LoamDir     string
	RedisAddr   string
	RedisPrefix string

	// MaxDepth overrides the default expansion depth when set. Zero is a valid limit.
	MaxDepth *int
	Debug    bool
}

// loadPacks reads every configured source in load order.
func loadPacks(ctx context.Context, opts SourceOptions) ([]domain.RulePack, error) {
	var packs []domain.RulePack

	if len(opts.Packs) > 0 {
		got, err := file.New(opts.Packs...).Packs(ctx)
		if err != nil {
			return nil, err
		}
		packs = append(packs, got...)
	}

	if opts.LoamDir != "" {
		src, err := loamAdapter.Open(opts.LoamDir)
		if err != nil {
			return nil, err
		}
		got, err := src.Packs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read loam packs: %w", err)
		}
		packs = append(packs, got...)
	}

	if opts.RedisAddr != "" {
		var storeOpts []redisAdapter.Option
		if opts.RedisPrefix != "" {
			storeOpts = append(storeOpts, redisAdapter.WithPrefix(opts.RedisPrefix))
		}
		store := redisAdapter.New(opts.RedisAddr, storeOpts...)
		defer store.Close()

		got, err := store.Packs(ctx)
		if err != nil {
			return nil, err
		}
		packs = append(packs, got...)
	}

	return packs, nil
}

// NewGenerator initializes a generator with standard CLI conventions.
func NewGenerator(ctx context.Context, opts SourceOptions, logger *slog.Logger, hooks domain.LifecycleHooks) (*rulegen.Generator, error) {
	if opts.Debug {
		hooks = createDebugHooks(logger).Merge(hooks)
	}

	genOpts := []rulegen.Option{
		rulegen.WithLogger(logger),
		rulegen.WithLifecycleHooks(hooks),
	}
	if opts.MaxDepth != nil {
		genOpts = append(genOpts, rulegen.WithDefaultMaxDepth(*opts.MaxDepth))
	}

	gen, err := rulegen.New(genOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing generator: %w", err)
	}

	packs, err := loadPacks(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := gen.LoadRulePacks(packs...); err != nil {
		return nil, err
	}
	logger.Debug("Sources loaded", "packs", len(packs), "symbols", len(gen.AvailableSymbols()))

	return gen, nil
}
