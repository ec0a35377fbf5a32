package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDBCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"db", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db --help failed: %v", err)
	}

	out := buf.String()
	for _, sub := range []string{"init", "reset", "purge"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestNewDBPurgeCmd(t *testing.T) {
	cmd := newDBPurgeCmd()
	if cmd.Use != "purge" {
		t.Errorf("Use = %q, want %q", cmd.Use, "purge")
	}

	hoursFlag := cmd.Flags().Lookup("hours")
	if hoursFlag == nil {
		t.Fatal("expected --hours flag")
	}
	if hoursFlag.DefValue != "0" {
		t.Errorf("--hours default = %q, want %q", hoursFlag.DefValue, "0")
	}
	if cmd.Flags().Lookup("dry-run") == nil {
		t.Fatal("expected --dry-run flag")
	}

	cfgFlag := cmd.Flags().Lookup("config")
	if cfgFlag == nil {
		t.Fatal("expected --config flag")
	}
	if cfgFlag.DefValue != "manshift.yaml" {
		t.Errorf("--config default = %q, want %q", cfgFlag.DefValue, "manshift.yaml")
	}
	if cfgFlag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want %q", cfgFlag.Shorthand, "c")
	}
}

func TestDBReset_RefusesWithoutTerminal(t *testing.T) {
	cfgPath := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"db", "reset", "-c", cfgPath})

	// Test stdin is not a terminal, so reset must demand --yes.
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Errorf("err = %v, want refusal mentioning --yes", err)
	}
}
