// Package file loads rule packs from JSON and YAML files on disk.
package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/rulepack"
)

// Source implements ports.PackSource over a list of files and directories.
// Paths are read in the order given; directories contribute their pack files
// (.json, .yaml, .yml, searched recursively) in lexical order.
type Source struct {
	paths []string
}

// New creates a source over paths.
func New(paths ...string) *Source {
	return &Source{paths: paths}
}

// Packs reads and decodes every pack file.
func (s *Source) Packs(ctx context.Context) ([]domain.RulePack, error) {
	var packs []domain.RulePack
	for _, path := range s.paths {
		files, err := expand(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			pack, err := ReadPack(f)
			if err != nil {
				return nil, err
			}
			packs = append(packs, pack)
		}
	}
	return packs, nil
}

// ReadPack decodes a single pack file, choosing the format from its extension.
func ReadPack(path string) (domain.RulePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RulePack{}, fmt.Errorf("failed to read rule pack: %w", err)
	}
	pack, err := rulepack.Parse(data, rulepack.FormatFromPath(path))
	if err != nil {
		return domain.RulePack{}, fmt.Errorf("%s: %w", path, err)
	}
	return pack, nil
}

// WritePack encodes pack to path, choosing the format from its extension.
func WritePack(path string, pack domain.RulePack) error {
	data, err := rulepack.Marshal(pack, rulepack.FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write rule pack: %w", err)
	}
	return nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule pack: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isPackFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

func isPackFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
