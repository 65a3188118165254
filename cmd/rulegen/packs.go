package main

import (
	"github.com/aretw0/rulegen/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <files...>",
	Short: "Check rule pack files",
	Long:  `Parses every file and reports missing ids, rules without a symbol and invalid weights.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunValidate(cmd.OutOrStdout(), args)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a rule pack between JSON and YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		return cli.RunConvert(cmd.OutOrStdout(), args[0], to)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <files...>",
	Short: "Merge rule packs into one",
	Long:  `Concatenates the rules of every file in order. Later files win on variables.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		format, _ := cmd.Flags().GetString("format")
		return cli.RunMerge(cmd.OutOrStdout(), cli.MergeOptions{
			ID:     id,
			Name:   name,
			Format: format,
			Paths:  args,
		})
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags <file>",
	Short: "List the tags of a rule pack, or filter it by tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetStringSlice("filter")
		format, _ := cmd.Flags().GetString("format")
		return cli.RunTags(cmd.OutOrStdout(), cli.TagsOptions{
			Path:   args[0],
			Filter: filter,
			Format: format,
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(tagsCmd)

	convertCmd.Flags().String("to", "yaml", "Target format: json or yaml")

	mergeCmd.Flags().String("id", "", "ID of the merged pack")
	mergeCmd.Flags().String("name", "", "Name of the merged pack (defaults to the merged names)")
	mergeCmd.Flags().String("format", "yaml", "Output format: json or yaml")
	_ = mergeCmd.MarkFlagRequired("id")

	tagsCmd.Flags().StringSlice("filter", nil, "Keep only rules carrying any of these tags")
	tagsCmd.Flags().String("format", "yaml", "Output format of a filtered pack: json or yaml")
}
