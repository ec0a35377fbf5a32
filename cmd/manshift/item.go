package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/manshift/internal/assign"
	"github.com/zulandar/manshift/internal/models"
)

func newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Work item management commands",
	}

	cmd.AddCommand(newItemAddCmd())
	cmd.AddCommand(newItemListCmd())
	cmd.AddCommand(newItemPinCmd())
	cmd.AddCommand(newItemUnpinCmd())
	return cmd
}

func newItemAddCmd() *cobra.Command {
	var (
		configPath  string
		gibun       string
		workOrder   string
		op          string
		description string
		workMH      float64
		manual      bool
		sortOrder   int
	)

	cmd := &cobra.Command{
		Use:   "add <session-id>",
		Short: "Add a work item to a session",
		Long:  "Adds a work item. Items are distributed automatically unless --manual holds them for explicit pinning. New gibuns get a priority row automatically.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemAdd(cmd, configPath, args[0], models.WorkItem{
				Gibun:       gibun,
				WorkOrder:   workOrder,
				Op:          op,
				Description: description,
				WorkMH:      workMH,
				IsManual:    manual,
				SortOrder:   sortOrder,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	cmd.Flags().StringVar(&gibun, "gibun", "", "gibun (work group key, required)")
	cmd.Flags().StringVar(&workOrder, "work-order", "", "work order number (required)")
	cmd.Flags().StringVar(&op, "op", "", "operation code")
	cmd.Flags().StringVar(&description, "description", "", "work description")
	cmd.Flags().Float64Var(&workMH, "mh", 0, "planned man-hours (required)")
	cmd.Flags().BoolVar(&manual, "manual", false, "exclude from automatic distribution")
	cmd.Flags().IntVar(&sortOrder, "sort", 0, "ordering within the gibun")
	cmd.MarkFlagRequired("gibun")
	cmd.MarkFlagRequired("work-order")
	cmd.MarkFlagRequired("mh")
	return cmd
}

func runItemAdd(cmd *cobra.Command, configPath, sessionArg string, item models.WorkItem) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}
	if item.WorkMH < 0 {
		return fmt.Errorf("man-hours must not be negative")
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var s models.Session
	if err := gormDB.First(&s, sessionID).Error; err != nil {
		return fmt.Errorf("session %d: %w", sessionID, err)
	}

	item.SessionID = sessionID
	if err := gormDB.Create(&item).Error; err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	if err := assign.SyncGibunPriorities(gormDB, sessionID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added item %d (%s %s, %s MH)\n", item.ID, item.Gibun, item.WorkOrder, formatMH(item.WorkMH))
	return nil
}

func newItemListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's work items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemList(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runItemList(cmd *cobra.Command, configPath, sessionArg string) error {
	sessionID, err := parseID(sessionArg, "session")
	if err != nil {
		return err
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var items []models.WorkItem
	if err := gormDB.Where("session_id = ?", sessionID).Order("sort_order, id").Find(&items).Error; err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No work items found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGIBUN\tWORK ORDER\tOP\tMH\tMANUAL\tDESCRIPTION")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Gibun, it.WorkOrder, it.Op, formatMH(it.WorkMH), yesNo(it.IsManual), truncate(it.Description, 40))
	}
	w.Flush()
	return nil
}

func newItemPinCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pin <item-id> <worker-id> <hours>",
		Short: "Pin hours of a manual item to a worker",
		Long:  "Allocates hours of a manual work item to one worker. Pinning the same pair again replaces the earlier allocation.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemPin(cmd, configPath, args[0], args[1], args[2])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runItemPin(cmd *cobra.Command, configPath, itemArg, workerArg, hoursArg string) error {
	itemID, err := parseID(itemArg, "item")
	if err != nil {
		return err
	}
	workerID, err := parseID(workerArg, "worker")
	if err != nil {
		return err
	}
	hours, err := strconv.ParseFloat(hoursArg, 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q", hoursArg)
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := assign.PinManual(gormDB, itemID, workerID, hours); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s MH of item %d to worker %d\n", formatMH(hours), itemID, workerID)
	return nil
}

func newItemUnpinCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "unpin <item-id> <worker-id>",
		Short: "Remove a pinned allocation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemUnpin(cmd, configPath, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runItemUnpin(cmd *cobra.Command, configPath, itemArg, workerArg string) error {
	itemID, err := parseID(itemArg, "item")
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

	if err := assign.UnpinManual(gormDB, itemID, workerID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unpinned item %d from worker %d\n", itemID, workerID)
	return nil
}
