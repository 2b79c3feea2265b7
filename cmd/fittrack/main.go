package main

import (
	"os"

	"github.com/limbo/fittrack/internal/app"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var a *app.App
	root := &cobra.Command{
		Use:           "fittrack",
		Short:         "Daily health log: sync, statistics, reports and backups",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a = app.New()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.Close()
			}
		},
	}
	get := func() *app.App { return a }
	root.AddCommand(
		migrateCmd(get),
		syncCmd(get),
		statsCmd(get),
		reportCmd(get),
		insightsCmd(get),
		exportCmd(get),
		importCmd(get),
		ingestCmd(get),
		tokenCmd(get),
	)
	return root
}
