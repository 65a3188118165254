package rulegen

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/ports"
)

// Locked serializes access to a Generator so it can be shared by goroutines.
// Every call holds the lock for its full duration, so a seeded Generate observes
// exactly the stream it seeded.
type Locked struct {
	mu  sync.Mutex
	gen *Generator
}

// NewLocked wraps gen. The caller must not use gen directly afterwards.
func NewLocked(gen *Generator) *Locked {
	return &Locked{gen: gen}
}

// Generate calls Generator.Generate under the lock.
func (l *Locked) Generate(root string, opts ...GenerateOption) (*domain.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.Generate(root, opts...)
}

// GenerateN calls Generator.GenerateN under the lock.
func (l *Locked) GenerateN(root string, n int, opts ...GenerateOption) ([]*domain.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.GenerateN(root, n, opts...)
}

// AvailableSymbols calls Generator.AvailableSymbols under the lock.
func (l *Locked) AvailableSymbols() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.AvailableSymbols()
}

// RulesForSymbol calls Generator.RulesForSymbol under the lock.
func (l *Locked) RulesForSymbol(symbol string) []domain.Rule {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.RulesForSymbol(symbol)
}

// Variables calls Generator.Variables under the lock.
func (l *Locked) Variables() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.Variables()
}

// LoadRulePacks calls Generator.LoadRulePacks under the lock.
func (l *Locked) LoadRulePacks(packs ...domain.RulePack) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.LoadRulePacks(packs...)
}

// LoadFrom reads the source outside the lock and loads the packs under it.
func (l *Locked) LoadFrom(ctx context.Context, src ports.PackSource) error {
	packs, err := src.Packs(ctx)
	if err != nil {
		return fmt.Errorf("failed to read rule packs: %w", err)
	}
	return l.LoadRulePacks(packs...)
}

// SetVariable calls Generator.SetVariable under the lock.
func (l *Locked) SetVariable(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen.SetVariable(key, value)
}

// Clear calls Generator.Clear under the lock.
func (l *Locked) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen.Clear()
}

// Reload calls Generator.Reload under the lock, so no caller observes an empty store.
func (l *Locked) Reload(packs ...domain.RulePack) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.Reload(packs...)
}

// Snapshot calls Generator.Snapshot under the lock.
func (l *Locked) Snapshot() domain.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.Snapshot()
}
