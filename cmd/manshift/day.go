package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/manshift/internal/assign"
)

func newDayCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "day <session-id> <worker-id>",
		Short: "Show a worker's packed day timeline",
		Long: `Prints the worker's schedule for the shift: fixed breaks and direct
entries hold their slots, and the remaining assignments are packed into
the free time around them in priority order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDay(cmd, configPath, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runDay(cmd *cobra.Command, configPath, sessionArg, workerArg string) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}
	workerID, err := parseID(workerArg, "worker")
	if err != nil {
		return err
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	day, err := assign.BuildWorkerDay(gormDB, sessionID, workerID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s — %s MH\n\n", day.WorkerName, formatMH(day.TotalMH))
	if len(day.Schedule) == 0 {
		fmt.Fprintln(out, "No scheduled work.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "START\tEND\tGIBUN\tWORK ORDER\tOP\tMH\tFIXED\tDESCRIPTION")
	for _, p := range day.Schedule {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.StartLabel, p.EndLabel, p.Gibun, p.WorkOrder, p.Op,
			formatMH(p.Hours), yesNo(p.Fixed), truncate(p.Description, 40))
	}
	w.Flush()
	return nil
}
