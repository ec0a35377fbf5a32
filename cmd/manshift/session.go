package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/manshift/internal/models"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Shift session management commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionFinishCmd())
	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var (
		configPath string
		shift      string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new shift session",
		Long:  "Creates a planning session for one shift. The shift kind is fixed for the life of the session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionCreate(cmd, configPath, args[0], shift)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	cmd.Flags().StringVar(&shift, "shift", models.ShiftDay, "shift kind (DAY or NIGHT)")
	return cmd
}

func runSessionCreate(cmd *cobra.Command, configPath, name, shift string) error {
	if shift != models.ShiftDay && shift != models.ShiftNight {
		return fmt.Errorf("invalid shift %q (DAY or NIGHT)", shift)
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	s := models.Session{Name: name, ShiftKind: shift, IsActive: true}
	if err := gormDB.Create(&s).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created session %d (%s, %s shift)\n", s.ID, s.Name, s.ShiftKind)
	return nil
}

func newSessionListCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Long:  "Lists active sessions, newest first. With --all, finished sessions are included.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionList(cmd, configPath, all)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	cmd.Flags().BoolVar(&all, "all", false, "include finished sessions")
	return cmd
}

func runSessionList(cmd *cobra.Command, configPath string, all bool) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	q := gormDB.Order("created_at DESC")
	if !all {
		q = q.Where("is_active = ?", true)
	}
	var sessions []models.Session
	if err := q.Find(&sessions).Error; err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSHIFT\tACTIVE\tCREATED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.ID, truncate(s.Name, 40), s.ShiftKind, yesNo(s.IsActive), s.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func newSessionFinishCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "finish <session-id>",
		Short: "Finish a session",
		Long:  "Marks a session inactive. Its data is kept until the history purge removes it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionFinish(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "manshift.yaml", "path to Manshift config file")
	return cmd
}

func runSessionFinish(cmd *cobra.Command, configPath, arg string) error {
	id, err := parseID(arg, "session")
	if err != nil {
		return err
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var s models.Session
	if err := gormDB.First(&s, id).Error; err != nil {
		return fmt.Errorf("session %d: %w", id, err)
	}
	if err := gormDB.Model(&s).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("finish session %d: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Finished session %d (%s)\n", s.ID, s.Name)
	return nil
}
