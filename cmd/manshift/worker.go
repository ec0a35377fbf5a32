package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/manshift/internal/models"
)

func newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Worker management commands",
	}

	cmd.AddCommand(newWorkerAddCmd())
	cmd.AddCommand(newWorkerListCmd())
	cmd.AddCommand(newWorkerSetLimitCmd())
	return cmd
}

func newWorkerAddCmd() *cobra.Command {
	var (
		configPath string
		limit      float64
	)

	cmd := &cobra.Command{
		Use:   "add <session-id> <name>",
		Short: "Add a worker to a session",
		Long:  "Registers a worker on the shift. Without --limit, the configured default man-hour limit applies.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkerAdd(cmd, configPath, args[0], args[1], limit, cmd.Flags().Changed("limit"))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	cmd.Flags().Float64Var(&limit, "limit", 0, "man-hour limit for this worker")
	return cmd
}

func runWorkerAdd(cmd *cobra.Command, configPath, sessionArg, name string, limit float64, limitSet bool) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if !limitSet {
		limit = cfg.DefaultLimitMH
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	var s models.Session
	if err := gormDB.First(&s, sessionID).Error; err != nil {
		return fmt.Errorf("session %d: %w", sessionID, err)
	}

	w := models.Worker{SessionID: sessionID, Name: name, LimitMH: limit}
	if err := gormDB.Create(&w).Error; err != nil {
		return fmt.Errorf("add worker: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added worker %d (%s, limit %s MH)\n", w.ID, w.Name, formatMH(w.LimitMH))
	return nil
}

func newWorkerListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's workers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkerList(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runWorkerList(cmd *cobra.Command, configPath, sessionArg string) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var workers []models.Worker
	if err := gormDB.Where("session_id = ?", sessionID).Order("id").Find(&workers).Error; err != nil {
		return fmt.Errorf("list workers: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(workers) == 0 {
		fmt.Fprintln(out, "No workers found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLIMIT\tUSED")
	for _, wk := range workers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", wk.ID, wk.Name, formatMH(wk.LimitMH), formatMH(wk.UsedMH))
	}
	w.Flush()
	return nil
}

func newWorkerSetLimitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set-limit <worker-id> <limit>",
		Short: "Change a worker's man-hour limit",
		Long:  "Sets the load threshold the distributor uses for this worker. Takes effect on the next assignment run.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkerSetLimit(cmd, configPath, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runWorkerSetLimit(cmd *cobra.Command, configPath, workerArg, limitArg string) error {
	workerID, err := parseID(workerArg, "worker")
	if err != nil {
		return err
	}
	limit, err := strconv.ParseFloat(limitArg, 64)
	if err != nil || limit < 0 {
		return fmt.Errorf("invalid limit %q", limitArg)
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var w models.Worker
	if err := gormDB.First(&w, workerID).Error; err != nil {
		return fmt.Errorf("worker %d: %w", workerID, err)
	}
	if err := gormDB.Model(&w).Update("limit_mh", limit).Error; err != nil {
		return fmt.Errorf("set limit: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Worker %d (%s) limit set to %s MH\n", w.ID, w.Name, formatMH(limit))
	return nil
}
