package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/caffeineduck/demoshell/site"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the demo page",
	Long: `Start an HTTP server that renders the demo page and its assets.

Endpoints:
  GET /              Demo page (canvas, links, dispatcher loader)
  GET /static/*      Assets directory (dispatch.wasm, wasm_exec.js, module)
  GET /api/demos     Dispatch table as JSON
  GET /healthz       Health check

On startup the configured module binary, if present, is checked for every
entry point in the dispatch table. Missing entry points are logged.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().String("assets", "", "Assets directory (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("assets") {
		cfg.AssetsDir, _ = cmd.Flags().GetString("assets")
	}

	in, err := newInspector(cfg)
	if err != nil {
		return err
	}
	defer in.Close()

	srv, err := site.New(cfg, site.WithInspector(in))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, _, err := srv.CheckModule(ctx); err != nil {
		cmd.PrintErrf("Warning: module check failed: %v\n", err)
	}

	return srv.ListenAndServe(ctx)
}
