package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manshift",
		Short: "Manshift — shift man-hour assignment and scheduling",
		Long:  "Manshift distributes work-item man-hours across a shift's workers and packs each worker's day into a timeline.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newSessionCmd())
	cmd.AddCommand(newWorkerCmd())
	cmd.AddCommand(newItemCmd())
	cmd.AddCommand(newPriorityCmd())
	cmd.AddCommand(newBreakCmd())
	cmd.AddCommand(newDirectCmd())
	cmd.AddCommand(newAssignCmd())
	cmd.AddCommand(newDayCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "manshift %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
