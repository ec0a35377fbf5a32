package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/manshift/internal/assign"
	"github.com/zulandar/manshift/internal/timeline"
	"gorm.io/gorm"
)

func newBreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Break and administrative time commands",
	}

	cmd.AddCommand(newBreakAddCmd())
	return cmd
}

func newBreakAddCmd() *cobra.Command {
	var (
		configPath string
		reason     string
	)

	cmd := &cobra.Command{
		Use:   "add <session-id> <worker-id> <start> <end>",
		Short: "Add a fixed break for a worker",
		Long: `Blocks out a break on the worker's timeline, HH:MM wall-clock. An end
at or before the start crosses midnight. Breaks never count toward the
worker's productive total.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixedAdd(cmd, configPath, args, reason, assign.AddBreak, "break")
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	cmd.Flags().StringVar(&reason, "reason", "", "break reason shown on the schedule")
	return cmd
}

func newDirectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "direct",
		Short: "Direct (free-text) entry commands",
	}

	cmd.AddCommand(newDirectAddCmd())
	return cmd
}

func newDirectAddCmd() *cobra.Command {
	var (
		configPath string
		label      string
	)

	cmd := &cobra.Command{
		Use:   "add <session-id> <worker-id> <start> <end>",
		Short: "Add a fixed direct entry for a worker",
		Long:  "Blocks out a labeled slot on the worker's timeline, outside the distributed work items.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixedAdd(cmd, configPath, args, label, assign.AddDirect, "direct entry")
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	cmd.Flags().StringVar(&label, "label", "", "label shown on the schedule (required)")
	cmd.MarkFlagRequired("label")
	return cmd
}

type fixedAddFunc func(db *gorm.DB, sessionID, workerID uint, startMin, endMin int, code string) error

func runFixedAdd(cmd *cobra.Command, configPath string, args []string, code string, add fixedAddFunc, what string) error {
	sessionID, err := parseID(args[0], "session")
	if err != nil {
		return err
	}
	workerID, err := parseID(args[1], "worker")
	if err != nil {
		return err
	}
	startMin, err := timeline.ParseMinute(args[2])
	if err != nil {
		return fmt.Errorf("invalid start %q: %w", args[2], err)
	}
	endMin, err := timeline.ParseMinute(args[3])
	if err != nil {
		return fmt.Errorf("invalid end %q: %w", args[3], err)
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := add(gormDB, sessionID, workerID, startMin, endMin, code); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s-%s for worker %d\n",
		what, timeline.FormatMinute(startMin), timeline.FormatMinute(endMin), workerID)
	return nil
}
