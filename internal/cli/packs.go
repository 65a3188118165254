package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/rulegen/pkg/adapters/file"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/rulepack"
)

// ErrValidationFailed is returned by RunValidate when at least one file is invalid.
var ErrValidationFailed = errors.New("validation failed")

// RunValidate checks every pack file and reports each problem on its own line.
func RunValidate(out io.Writer, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one file is required", domain.ErrInvalidArgument)
	}

	failed := 0
	for _, path := range paths {
		pack, err := file.ReadPack(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s\n", path)
			problems := rulepack.ValidationErrors(err)
			if len(problems) == 0 {
				problems = []error{err}
			}
			for _, p := range problems {
				fmt.Fprintf(out, "  - %v\n", p)
			}
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d rules, %d variables)\n", path, len(pack.Rules), len(pack.Variables))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrValidationFailed, failed, len(paths))
	}
	return nil
}

// RunConvert re-encodes a pack file in the target format.
func RunConvert(out io.Writer, path, to string) error {
	format, err := rulepack.ParseFormat(to)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	pack, err := file.ReadPack(path)
	if err != nil {
		return err
	}
	return writePack(out, pack, format)
}

// MergeOptions holds the flags of the merge command.
type MergeOptions struct {
	ID     string
	Name   string
	Format string
	Paths  []string
}

// RunMerge combines the pack files, in order, into one pack.
func RunMerge(out io.Writer, opts MergeOptions) error {
	if opts.ID == "" {
		return fmt.Errorf("%w: merged pack id is required", domain.ErrInvalidArgument)
	}
	format, err := rulepack.ParseFormat(opts.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	packs := make([]domain.RulePack, 0, len(opts.Paths))
	for _, path := range opts.Paths {
		pack, err := file.ReadPack(path)
		if err != nil {
			return err
		}
		packs = append(packs, pack)
	}

	return writePack(out, rulepack.Merge(opts.ID, opts.Name, packs...), format)
}

// TagsOptions holds the flags of the tags command.
type TagsOptions struct {
	Path   string
	Filter []string
	Format string
}

// RunTags lists the tags used in a pack. With a filter it prints the pack reduced
// to the rules carrying any of the tags instead.
func RunTags(out io.Writer, opts TagsOptions) error {
	pack, err := file.ReadPack(opts.Path)
	if err != nil {
		return err
	}

	if len(opts.Filter) == 0 {
		tags := rulepack.AllTags(pack)
		if len(tags) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(out, strings.Join(tags, "\n"))
		return err
	}

	format, err := rulepack.ParseFormat(opts.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return writePack(out, rulepack.FilterByTags(pack, opts.Filter...), format)
}

func writePack(out io.Writer, pack domain.RulePack, format rulepack.Format) error {
	data, err := rulepack.Marshal(pack, format)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
