package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/evtco/internal/calculation"
	"github.com/rgehrsitz/evtco/internal/config"
	"github.com/rgehrsitz/evtco/internal/logging"
	"github.com/rgehrsitz/evtco/internal/tui"
)

func newRootCmd() *cobra.Command {
	var opts tui.Options
	var logFile string

	cmd := &cobra.Command{
		Use:   "evtco-tui [profile]",
		Short: "Interactive EV subscription vs. combustion lease comparison",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ProfilePath = args[0]
			}
			if opts.ProfilePath != "" {
				if _, err := os.Stat(opts.ProfilePath); os.IsNotExist(err) {
					return fmt.Errorf("profile not found: %s", opts.ProfilePath)
				}
			}

			// The alternate screen owns the terminal, so logs only go to a file
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				opts.Logger = newLogger(f)
			}

			p := tea.NewProgram(
				tui.NewModel(opts),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	f := cmd.Flags()
	f.StringVarP(&opts.ProfilePath, "profile", "p", "", "Profile file (YAML, JSON or HJSON)")
	f.StringVar(&opts.AssumptionsPath, "assumptions", "", "Assumptions file overriding the German defaults")
	f.StringVar(&opts.CatalogPath, "catalog", "", "Vehicle catalog file (default: built-in sample catalog)")
	f.StringVar(&opts.EVID, "ev", "", "ID of the subscription EV")
	f.StringVar(&opts.ICEID, "ice", "", "ID of the leased combustion car")
	f.StringVar(&logFile, "log-file", "", "Append debug logs to this file")
	return cmd
}

func newLogger(f *os.File) calculation.Logger {
	return logging.NewZerologLogger(logging.Options{Component: "engine", Debug: true, Out: f})
}

func main() {
	if err := config.LoadDotEnv(""); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
