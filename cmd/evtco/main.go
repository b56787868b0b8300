package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	profile         string
	assumptions     string
	catalog         string
	ev              string
	ice             string
	format          string
	metricsTextfile string
	debug           bool
	strict          bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "evtco",
		Short: "EV subscription vs. combustion lease TCO calculator",
		Long: `Compares the total cost of ownership of an all-inclusive EV subscription
with leasing a combustion car over a holding period, including energy,
maintenance, insurance, vehicle tax, excess kilometres and CO2.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.profile, "profile", "p", "", "Profile file (YAML, JSON or HJSON); EVTCO_* variables override it")
	pf.StringVar(&opts.assumptions, "assumptions", "", "Assumptions file overriding the German defaults")
	pf.StringVar(&opts.catalog, "catalog", "", "Vehicle catalog file (default: built-in sample catalog)")
	pf.StringVar(&opts.ev, "ev", "", "ID of the subscription EV")
	pf.StringVar(&opts.ice, "ice", "", "ID of the leased combustion car")
	pf.StringVarP(&opts.format, "format", "f", "table", fmt.Sprintf("Output format %v", compare.Formats))
	pf.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging for detailed calculations")
	pf.BoolVar(&opts.strict, "strict", false, "Fail instead of warn when the profile is invalid")

	cmd.AddCommand(
		calculateCmd(opts),
		chartCmd(opts),
		breakdownCmd(opts),
		purchaseCmd(opts),
		sensitivityCmd(opts),
		breakEvenCmd(opts),
		vehiclesCmd(opts),
		validateCmd(opts),
		profileCmd(opts),
		whatIfCmd(opts),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "evtco %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func main() {
	if err := config.LoadDotEnv(""); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
