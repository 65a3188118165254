package memory

import (
	"context"

	"github.com/aretw0/rulegen/pkg/domain"
)

// Source implements ports.PackSource over packs held in memory.
type Source struct {
	packs []domain.RulePack
}

// NewSource creates a source that yields copies of the given packs in order.
func NewSource(packs ...domain.RulePack) *Source {
	stored := make([]domain.RulePack, len(packs))
	for i, p := range packs {
		stored[i] = p.Clone()
	}
	return &Source{packs: stored}
}

// Packs returns copies of the stored packs, so callers cannot mutate the source.
func (s *Source) Packs(ctx context.Context) ([]domain.RulePack, error) {
	out := make([]domain.RulePack, len(s.packs))
	for i, p := range s.packs {
		out[i] = p.Clone()
	}
	return out, nil
}
