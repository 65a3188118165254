package main

import (
	"github.com/aretw0/rulegen/internal/cli"
	"github.com/aretw0/rulegen/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the loaded packs as a JSON API over HTTP.
Settings come from RULEGEN_* environment variables; flags override them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		debug, _ := cmd.Flags().GetBool("debug")
		logger, err := cli.CreateLogger(debug, cfg.LogLevel)
		if err != nil {
			return err
		}

		opts := cli.ServeOptions{
			SourceOptions: overrideSources(cmd, cli.SourceOptionsFromConfig(cfg)),
			Addr:          cfg.Addr,
			MaxInputSize:  cfg.MaxInputSize,
		}
		if cmd.Flags().Changed("addr") {
			opts.Addr, _ = cmd.Flags().GetString("addr")
		}
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.RunServe(sigCtx, cmd.OutOrStdout(), opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("watch", false, "Reload packs when the loam repository changes")
}
