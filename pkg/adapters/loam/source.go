package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/rulepack"
)

// Source adapts a Loam repository to ports.PackSource.
// Every document (markdown with frontmatter, JSON or YAML) is one rule pack.
type Source struct {
	Repo *loam.TypedRepository[PackMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PackMetadata]) *Source {
	return &Source{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps JSON numbers exact; read-only mode stops Loam from
	// creating its dev sandbox, since packs are never written back.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[PackMetadata](repo)), nil
}

// Packs returns every document as a pack, sorted by pack ID.
// A pack without an id takes the document ID (the file path without extension),
// and a markdown body becomes the description when none is set.
func (s *Source) Packs(ctx context.Context) ([]domain.RulePack, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	packs := make([]domain.RulePack, 0, len(docs))
	for _, doc := range docs {
		docID := trimExtension(doc.ID)
		record := doc.Data.record(docID, strings.TrimSpace(doc.Content))

		pack, err := rulepack.Decode(record)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}

		if existing, ok := seen[pack.ID]; ok {
			return nil, fmt.Errorf("collision detected: pack ID '%s' is defined in both '%s' and '%s'", pack.ID, existing, doc.ID)
		}
		seen[pack.ID] = doc.ID
		packs = append(packs, pack)
	}

	sort.SliceStable(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}

// Watch emits the ID of every pack document that changes until ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
