package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/caffeineduck/demoshell/dispatch"
	"github.com/spf13/cobra"
)

var demosCmd = &cobra.Command{
	Use:   "demos [flag]",
	Short: "List the dispatch table in priority order",
	Long: `List the dispatch table in priority order.

With a flag argument only that demo is printed, and an unknown flag is an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE:  runDemos,
}

func init() {
	demosCmd.Flags().String("base-url", "", "Print page URLs relative to this base (e.g. http://localhost:8080/)")
	rootCmd.AddCommand(demosCmd)
}

func runDemos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	baseURL, _ := cmd.Flags().GetString("base-url")

	demos := cfg.Demos
	if len(args) == 1 {
		d, ok := cfg.Demos.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown demo flag %q (have %s)", args[0], strings.Join(cfg.Demos.Flags(), ", "))
		}
		demos = dispatch.Table{d}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if baseURL == "" {
		fmt.Fprintln(tw, "FLAG\tENTRY\tTITLE")
	} else {
		fmt.Fprintln(tw, "FLAG\tENTRY\tTITLE\tURL")
	}
	for _, d := range demos {
		if baseURL == "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Flag, d.Entry, d.Title)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s?%s\n", d.Flag, d.Entry, d.Title, strings.TrimSuffix(baseURL, "?"), d.Flag)
	}
	return tw.Flush()
}
