package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/evtco/internal/calculation"
	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/config"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/logging"
	"github.com/rgehrsitz/evtco/internal/metrics"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/spf13/cobra"
)

// session is everything a command needs after the inputs are loaded
type session struct {
	opts        *rootOptions
	command     string
	started     time.Time
	log         *logging.ZerologLogger
	recorder    *metrics.Recorder
	parser      *config.InputParser
	profile     domain.UserProfile
	assumptions *domain.Assumptions
	catalog     *refdata.Catalog
	engine      *calculation.CalculationEngine
	comparator  *compare.Comparator
}

func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	level := "warn"
	if opts.debug {
		level = "debug"
	}
	s := &session{
		opts:    opts,
		command: cmd.Name(),
		started: time.Now(),
		log: logging.NewZerologLogger(logging.Options{
			Component: "cli",
			Level:     level,
			Debug:     opts.debug,
			Out:       cmd.ErrOrStderr(),
		}),
		parser: config.NewInputParser(),
	}

	if opts.metricsTextfile != "" {
		recorder, err := metrics.NewRecorder(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to set up metrics: %w", err)
		}
		s.recorder = recorder
	}

	var err error
	if s.profile, err = s.parser.LoadProfile(opts.profile); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if s.assumptions, err = s.parser.LoadAssumptions(opts.assumptions); err != nil {
		return nil, fmt.Errorf("failed to load assumptions: %w", err)
	}
	if s.catalog, err = s.parser.LoadCatalog(opts.catalog); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := s.profile.Validate(); err != nil {
		if opts.strict {
			return nil, fmt.Errorf("invalid profile: %w", err)
		}
		s.log.Warnf("profile has invalid values, results may be meaningless: %v", err)
	}

	s.engine = calculation.NewCalculationEngineWithAssumptions(s.assumptions)
	s.engine.SetLogger(s.log.With("engine"))
	s.comparator = compare.NewComparator(s.engine)

	s.log.Debugf("session ready: profile=%q assumptions=%q catalog=%q vehicles=%d",
		opts.profile, opts.assumptions, opts.catalog, len(s.catalog.Vehicles))
	return s, nil
}

// vehicles resolves the EV and ICE from the flags, then the profile
func (s *session) vehicles() (ev, ice domain.Vehicle, err error) {
	return config.ResolveVehicles(s.catalog, s.profile, s.opts.ev, s.opts.ice)
}

// compare resolves the pair and runs the comparison
func (s *session) compare() (*domain.ComparisonResult, error) {
	ev, ice, err := s.vehicles()
	if err != nil {
		return nil, err
	}
	result := s.comparator.Compare(ev, ice, s.profile)
	if result == nil {
		return nil, fmt.Errorf("cannot compare %s with %s: the EV needs subscription terms and the combustion car lease terms", ev.ID, ice.ID)
	}
	s.recorder.ObserveComparison(result)
	return result, nil
}

// finish records the command and flushes metrics. It returns err unchanged
// unless writing the metrics file fails on an otherwise successful run.
func (s *session) finish(err error) error {
	s.recorder.ObserveCommand(s.command, time.Since(s.started), err)
	if werr := s.recorder.WriteTextfile(s.opts.metricsTextfile); werr != nil {
		s.log.Errorf("failed to write metrics to %s: %v", s.opts.metricsTextfile, werr)
		if err == nil {
			err = fmt.Errorf("failed to write metrics: %w", werr)
		}
	}
	if err != nil {
		s.log.Debugf("%s failed after %s: %v", s.command, time.Since(s.started), err)
	}
	return err
}

// write prints to stdout, or to the --output file when one is given
func write(cmd *cobra.Command, output, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", output)
	return nil
}
