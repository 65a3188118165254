package memory_test

import (
	"testing"

	"github.com/aretw0/rulegen/pkg/adapters/memory"
	"github.com/aretw0/rulegen/pkg/domain"
	contract "github.com/aretw0/rulegen/pkg/ports/tests"
)

func TestMemorySource_Contract(t *testing.T) {
	packs := []domain.RulePack{
		{
			ID:        "greetings",
			Rules:     []domain.Rule{{Symbol: "greeting", Text: "Hello, {name}!"}},
			Variables: map[string]string{"name": "Alice"},
		},
		{
			ID:    "names",
			Rules: []domain.Rule{{Symbol: "name", Text: "World", Tags: []string{"common"}}},
		},
	}

	contract.PackSourceContractTest(t, memory.NewSource(packs...), packs)
}
