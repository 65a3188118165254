package ports

import (
	"context"

	"github.com/aretw0/rulegen/pkg/domain"
)

// RuleReader is the read-only view of the rule store the engine consults.
// Implementations must not be mutated while an expansion is in progress.
type RuleReader interface {
	// Rules returns the ordered alternatives registered for symbol (empty when undefined).
	Rules(symbol string) []domain.Rule
}

// PackSource yields rule packs in the order they should be loaded.
// Load order matters: later packs override variables of earlier ones.
type PackSource interface {
	Packs(ctx context.Context) ([]domain.RulePack, error)
}
