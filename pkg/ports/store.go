package ports

import (
	"context"
	"errors"

	"github.com/aretw0/rulegen/pkg/domain"
)

// ErrPackNotFound is returned when a pack ID is not present in a repository.
var ErrPackNotFound = errors.New("rule pack not found")

// PackRepository stores rule packs by ID.
type PackRepository interface {
	PackSource

	// Save stores the pack, replacing any pack with the same ID.
	Save(ctx context.Context, pack domain.RulePack) error
	// Load returns the pack with the given ID or ErrPackNotFound.
	Load(ctx context.Context, id string) (domain.RulePack, error)
	// Delete removes the pack. Deleting a missing pack is not an error.
	Delete(ctx context.Context, id string) error
	// List returns pack IDs in the order they were first saved.
	List(ctx context.Context) ([]string, error)
}
