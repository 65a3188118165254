package main

import (
	"os"

	"github.com/aretw0/rulegen/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var generateCmd = &cobra.Command{
	Use:     "generate <symbol>",
	Aliases: []string{"gen"},
	Short:   "Expand a symbol into text",
	Long: `Expands the symbol using the loaded packs and prints one result per line.
Integer seeds are numeric seeds; any other seed is hashed as a string.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := commandLogger(cmd)
		if err != nil {
			return err
		}

		seed, _ := cmd.Flags().GetString("seed")
		vars, _ := cmd.Flags().GetStringArray("var")
		allowUndefined, _ := cmd.Flags().GetBool("allow-undefined")
		count, _ := cmd.Flags().GetInt("count")
		jsonMode, _ := cmd.Flags().GetBool("json")
		markdown, _ := cmd.Flags().GetBool("markdown")

		opts := cli.GenerateOptions{
			SourceOptions:  sourceOptions(cmd),
			Symbol:         args[0],
			Seed:           seed,
			HasSeed:        cmd.Flags().Changed("seed"),
			Vars:           vars,
			AllowUndefined: allowUndefined,
			Count:          count,
			JSON:           jsonMode,
			Markdown:       markdown,
			Color:          term.IsTerminal(int(os.Stdout.Fd())),
		}

		return cli.RunGenerate(cmd.Context(), cmd.OutOrStdout(), opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("seed", "", "Seed for reproducible output")
	generateCmd.Flags().StringArray("var", nil, "Variable as key=value (repeatable)")
	generateCmd.Flags().Bool("allow-undefined", false, "Print undefined symbols as their bare name")
	generateCmd.Flags().IntP("count", "n", 1, "Number of results (1 to 100)")
	generateCmd.Flags().Bool("json", false, "Print results as JSON")
	generateCmd.Flags().Bool("markdown", false, "Render results as markdown")
	generateCmd.MarkFlagsMutuallyExclusive("json", "markdown")
}
