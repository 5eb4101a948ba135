package main

import (
	"fmt"
	"os"

	"github.com/caffeineduck/demoshell/config"
	"github.com/caffeineduck/demoshell/inspect"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "demoshell",
	Short: "WebAssembly demo shell server",
	Long: `demoshell - Serve a page that runs one of several WebAssembly demos.

The page reads its query string on load and starts the matching demo
(?tracer, ?life, ?mendelbrot, ?3d by default) from an external module,
or shows a list of links when none is requested. The dispatch table is
configurable in demoshell.yaml.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Config file (YAML)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable compilation cache")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if noCache {
		cfg.NoCache = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newInspector(cfg *config.Config) (*inspect.Inspector, error) {
	var opts []inspect.Option
	if !cfg.NoCache {
		opts = append(opts, inspect.WithDiskCache(cfg.CacheDir))
	}
	return inspect.New(opts...)
}
