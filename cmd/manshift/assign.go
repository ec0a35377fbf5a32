package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/zulandar/manshift/internal/assign"
)

func newAssignCmd() *cobra.Command {
	var (
		configPath string
		sync       bool
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "assign <session-id>",
		Short: "Distribute work items across the session's workers",
		Long: `Recomputes the automatic assignments: every auto item's man-hours are
split in 0.1 MH slots across the workers with the lowest running load.
Previous automatic rows are replaced; pinned, break, and direct entries
stay and count as existing load. With --sync, items shared by several
workers are then aligned to a common start time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(cmd, configPath, args[0], sync, seed, cmd.Flags().Changed("seed"))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	cmd.Flags().BoolVar(&sync, "sync", false, "align shared items to common start times afterwards")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible tie-breaking")
	return cmd
}

func runAssign(cmd *cobra.Command, configPath, sessionArg string, sync bool, seed int64, seedSet bool) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if seedSet {
		rng = rand.New(rand.NewSource(seed))
	}

	if err := assign.AutoAssign(gormDB, sessionID, rng); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Distributed session %d\n", sessionID)

	if sync {
		if err := assign.SyncSchedules(gormDB, sessionID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Synchronized shared item start times\n")
	}
	return nil
}
