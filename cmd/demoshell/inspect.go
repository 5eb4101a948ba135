package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/caffeineduck/demoshell/inspect"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [module.wasm]",
	Short: "Check a demo module against the dispatch table",
	Long: `Compile a demo module without running it and report, for every row of
the dispatch table, whether the entry point is exported and callable with
no arguments.

Without an argument the module binary from the config is inspected.
Exits non-zero when any entry point is missing or needs arguments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.ModulePath()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no module given and module.binary is not configured")
	}

	in, err := newInspector(cfg)
	if err != nil {
		return err
	}
	defer in.Close()

	report, err := in.InspectFile(cmd.Context(), path, cfg.Demos)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FLAG\tENTRY\tSTATUS")
	for _, e := range report.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Demo.Flag, e.Demo.Entry, entryStatus(e))
	}
	tw.Flush()

	if len(report.Imports) > 0 {
		fmt.Fprintf(out, "imports: %v\n", report.Imports)
	}

	if !report.OK() {
		bad := len(report.Missing()) + len(report.Unusable())
		return fmt.Errorf("%d of %d entry points unusable in %s", bad, len(report.Entries), path)
	}
	return nil
}

func entryStatus(e inspect.Entry) string {
	switch {
	case !e.Exported:
		return "missing"
	case !e.Callable():
		return fmt.Sprintf("needs %d args", e.Params)
	default:
		return "ok"
	}
}
