package main

import (
	"github.com/aretw0/rulegen/internal/cli"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the loaded symbols and their rule counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := commandLogger(cmd)
		if err != nil {
			return err
		}
		return cli.RunSymbols(cmd.Context(), cmd.OutOrStdout(), sourceOptions(cmd), logger)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules <symbol>",
	Short: "Show the alternatives of a symbol with their probability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := commandLogger(cmd)
		if err != nil {
			return err
		}
		return cli.RunRules(cmd.Context(), cmd.OutOrStdout(), sourceOptions(cmd), args[0], logger)
	},
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [root]",
	Short: "Export the symbol reference graph",
	Long: `Outputs a Mermaid diagram (graph TD) of which symbols reference which.
With a root symbol, one expansion is run and the symbols it visited are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := commandLogger(cmd)
		if err != nil {
			return err
		}

		seed, _ := cmd.Flags().GetString("seed")
		opts := cli.GraphOptions{
			SourceOptions: sourceOptions(cmd),
			Seed:          seed,
			HasSeed:       cmd.Flags().Changed("seed"),
		}
		if len(args) > 0 {
			opts.Root = args[0]
		}
		return cli.RunGraph(cmd.Context(), cmd.OutOrStdout(), opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("seed", "", "Seed of the highlighted expansion")
}
