package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/evtco/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SolveAll searches the break-even point of every target concurrently.
// Targets without a sign change are reported as unsuccessful results rather
// than failing the whole run. Results keep the order of targets.
func (s *Solver) SolveAll(
	ctx context.Context,
	ev, ice domain.Vehicle,
	p domain.UserProfile,
	targets []Target,
) (*MultiResult, error) {
	if len(targets) == 0 {
		targets = AllTargets
	}

	results := make([]Result, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	if s.Options.Parallelism > 0 {
		g.SetLimit(s.Options.Parallelism)
	}

	for i, target := range targets {
		g.Go(func() error {
			req := Request{Target: target, EV: ev, ICE: ice, Profile: p}
			result, err := s.Solve(ctx, req)
			if errors.Is(err, ErrNoCrossing) {
				lo, hi := target.DefaultBounds()
				results[i] = Result{
					Target:          target,
					Unit:            target.Unit(),
					Min:             lo,
					Max:             hi,
					Current:         current(req),
					ConvergenceInfo: "no break-even point in range",
				}
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	multi := &MultiResult{Results: results}
	multi.Recommendations = s.generateRecommendations(multi)
	return multi, nil
}

// generateRecommendations describes how far each input is from its break-even point
func (s *Solver) generateRecommendations(result *MultiResult) []string {
	recommendations := []string{}

	for _, r := range result.Results {
		if !r.Success {
			continue
		}
		delta := r.Value.Sub(r.Current)
		switch r.Target {
		case TargetAnnualMileage:
			recommendations = append(recommendations,
				fmt.Sprintf("Mileage: the offers cost the same at %s %s (you drive %s)",
					r.Value.StringFixed(0), r.Unit, r.Current.StringFixed(0)))
		case TargetFuelPrice:
			recommendations = append(recommendations,
				fmt.Sprintf("Fuel: break-even at %s %s, %s from today's price",
					r.Value.StringFixed(2), r.Unit, signed(delta.StringFixed(2), delta.IsPositive())))
		case TargetElectricityPrice:
			recommendations = append(recommendations,
				fmt.Sprintf("Electricity: break-even at %s %s, %s from today's price",
					r.Value.StringFixed(2), r.Unit, signed(delta.StringFixed(2), delta.IsPositive())))
		case TargetSubscriptionRate:
			recommendations = append(recommendations,
				fmt.Sprintf("Subscription: a rate up to %s %s still beats the lease",
					r.Value.StringFixed(0), r.Unit))
		}
	}

	return recommendations
}

func signed(s string, positive bool) string {
	if positive {
		return "+" + s
	}
	return s
}
