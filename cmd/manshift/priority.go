package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/manshift/internal/assign"
	"github.com/zulandar/manshift/internal/models"
)

func newPriorityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority",
		Short: "Gibun priority management commands",
	}

	cmd.AddCommand(newPrioritySetCmd())
	cmd.AddCommand(newPriorityListCmd())
	return cmd
}

func newPrioritySetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set <session-id> <gibun> <order>",
		Short: "Set a gibun's distribution priority",
		Long:  "Lower order goes first in the distributor. Gibuns without an explicit order use the default 999.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrioritySet(cmd, configPath, args[0], args[1], args[2])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runPrioritySet(cmd *cobra.Command, configPath, sessionArg, gibun, orderArg string) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}
	order, err := strconv.Atoi(orderArg)
	if err != nil || order < 0 {
		return fmt.Errorf("invalid order %q", orderArg)
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := assign.SetGibunPriority(gormDB, sessionID, gibun, order); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Gibun %q order set to %d\n", gibun, order)
	return nil
}

func newPriorityListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's gibun priorities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPriorityList(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runPriorityList(cmd *cobra.Command, configPath, sessionArg string) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var rows []models.GibunPriority
	if err := gormDB.Where("session_id = ?", sessionID).Order("order_no, gibun").Find(&rows).Error; err != nil {
		return fmt.Errorf("list priorities: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No gibun priorities found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GIBUN\tORDER")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\n", r.Gibun, r.OrderNo)
	}
	w.Flush()
	return nil
}
