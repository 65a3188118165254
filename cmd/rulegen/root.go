package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/rulegen/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rulegen",
	Short: "rulegen expands weighted grammars into text",
	Long: `rulegen loads rule packs (symbols with weighted alternative texts) and expands a
root symbol into text. The same packs and the same seed always produce the same output.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringArrayP("pack", "p", nil, "Rule pack file or directory (repeatable)")
	rootCmd.PersistentFlags().String("loam", "", "Load packs from a loam repository directory")
	rootCmd.PersistentFlags().String("redis", "", "Load packs from a redis server at this address")
	rootCmd.PersistentFlags().String("redis-prefix", "", "Key prefix of packs stored in redis")
	rootCmd.PersistentFlags().Int("max-depth", 10, "Maximum number of nested rule expansions")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// sourceOptions reads the pack source flags shared by every command.
func sourceOptions(cmd *cobra.Command) cli.SourceOptions {
	packs, _ := cmd.Flags().GetStringArray("pack")
	loamDir, _ := cmd.Flags().GetString("loam")
	redisAddr, _ := cmd.Flags().GetString("redis")
	redisPrefix, _ := cmd.Flags().GetString("redis-prefix")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := cli.SourceOptions{
		Packs:       packs,
		LoamDir:     loamDir,
		RedisAddr:   redisAddr,
		RedisPrefix: redisPrefix,
		Debug:       debug,
	}
	if cmd.Flags().Changed("max-depth") {
		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		opts.MaxDepth = &maxDepth
	}
	return opts
}

// overrideSources layers explicitly set flags over base, which comes from the environment.
func overrideSources(cmd *cobra.Command, base cli.SourceOptions) cli.SourceOptions {
	flags := sourceOptions(cmd)
	if cmd.Flags().Changed("pack") {
		base.Packs = flags.Packs
	}
	if cmd.Flags().Changed("loam") {
		base.LoamDir = flags.LoamDir
	}
	if cmd.Flags().Changed("redis") {
		base.RedisAddr = flags.RedisAddr
	}
	if cmd.Flags().Changed("redis-prefix") {
		base.RedisPrefix = flags.RedisPrefix
	}
	if flags.MaxDepth != nil {
		base.MaxDepth = flags.MaxDepth
	}
	base.Debug = flags.Debug
	return base
}

func commandLogger(cmd *cobra.Command) (*slog.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.CreateLogger(debug, "")
}
