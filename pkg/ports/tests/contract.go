package tests

import (
	"context"
	"testing"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PackSourceContractTest verifies that a source yields exactly the expected packs, in order.
func PackSourceContractTest(t *testing.T, source ports.PackSource, expected []domain.RulePack) {
	t.Helper()

	t.Run("Packs_Order", func(t *testing.T) {
		packs, err := source.Packs(context.Background())
		require.NoError(t, err)
		require.Len(t, packs, len(expected))

		for i, want := range expected {
			assert.Equal(t, want.ID, packs[i].ID, "pack %d", i)
			assert.Equal(t, want.Rules, packs[i].Rules, "rules of %s", want.ID)
			assert.Equal(t, len(want.Variables), len(packs[i].Variables), "variables of %s", want.ID)
			for k, v := range want.Variables {
				assert.Equal(t, v, packs[i].Variables[k], "variable %s of %s", k, want.ID)
			}
		}
	})

	t.Run("Packs_Repeatable", func(t *testing.T) {
		first, err := source.Packs(context.Background())
		require.NoError(t, err)
		second, err := source.Packs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

// PackRepositoryContractTest verifies the save/load/list/delete behavior of a repository.
// The repository must be empty when the test starts.
func PackRepositoryContractTest(t *testing.T, repo ports.PackRepository) {
	t.Helper()
	ctx := context.Background()

	first := domain.RulePack{
		ID:        "first",
		Name:      "First",
		Rules:     []domain.Rule{{Symbol: "greeting", Text: "Hello, {name}!"}},
		Variables: map[string]string{"name": "Alice"},
	}
	second := domain.RulePack{
		ID:    "second",
		Rules: []domain.Rule{{Symbol: "name", Text: "World", Weight: 2, Tags: []string{"common"}}},
	}

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := repo.Load(ctx, "missing")
		assert.ErrorIs(t, err, ports.ErrPackNotFound)
	})

	t.Run("Save_Load", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		got, err := repo.Load(ctx, "first")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})

	t.Run("List_InSaveOrder", func(t *testing.T) {
		// Re-saving must not move a pack to the end.
		require.NoError(t, repo.Save(ctx, first))

		ids, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, ids)

		packs, err := repo.Packs(ctx)
		require.NoError(t, err)
		require.Len(t, packs, 2)
		assert.Equal(t, second, packs[1])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "first"))
		require.NoError(t, repo.Delete(ctx, "first"))

		_, err := repo.Load(ctx, "first")
		assert.ErrorIs(t, err, ports.ErrPackNotFound)

		ids, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"second"}, ids)
	})
}
