package main

import (
	"testing"

	"github.com/yeager/tp-lint/internal/config"
)

// TestNewStatsCmd tests the stats command creation.
func TestNewStatsCmd(t *testing.T) {
	t.Parallel()

	cmd := NewStatsCmd()

	t.Run("accepts at most one argument", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{}); err != nil {
			t.Errorf("unexpected error without arguments: %v", err)
		}
		if err := cmd.Args(cmd, []string{"sv"}); err != nil {
			t.Errorf("unexpected error with one argument: %v", err)
		}
		if err := cmd.Args(cmd, []string{"sv", "da"}); err == nil {
			t.Error("expected error with two arguments")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"domain", "top", "json", "no-cache"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})

	t.Run("top defaults to the ranking size", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("top")
		if flag == nil {
			t.Fatal("expected top flag")
		}
		if flag.DefValue != "10" {
			t.Errorf("expected default \"10\", got %q", flag.DefValue)
		}
	})
}

// TestBuildStatsConfig tests flag to config translation.
func TestBuildStatsConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewStatsCmd()
		cfg, err := buildStatsConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.TopN != config.DefaultTopN {
			t.Errorf("TopN = %d, expected %d", cfg.TopN, config.DefaultTopN)
		}
		if cfg.Domain != "" || cfg.JSONReport || cfg.NoCache {
			t.Errorf("expected zero values, got %+v", cfg)
		}
		if len(cfg.Languages) != 0 {
			t.Errorf("Languages = %v, expected none", cfg.Languages)
		}
	})

	t.Run("applies flags and argument", func(t *testing.T) {
		t.Parallel()

		cmd := NewStatsCmd()
		if err := cmd.ParseFlags([]string{"-d", "coreutils", "-n", "5", "-j", "--no-cache"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		cfg, err := buildStatsConfig(cmd, []string{"sv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Domain != "coreutils" {
			t.Errorf("Domain = %q, expected coreutils", cfg.Domain)
		}
		if cfg.TopN != 5 {
			t.Errorf("TopN = %d, expected 5", cfg.TopN)
		}
		if !cfg.JSONReport || !cfg.NoCache {
			t.Error("expected json and no-cache to be set")
		}
		if len(cfg.Languages) != 1 || cfg.Languages[0] != "sv" {
			t.Errorf("Languages = %v, expected [sv]", cfg.Languages)
		}
	})
}
