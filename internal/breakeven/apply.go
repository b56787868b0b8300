package breakeven

import (
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// Apply returns copies of the request's vehicles and profile with the
// target set to value. The request itself is left untouched.
func Apply(req Request, value decimal.Decimal) (domain.Vehicle, domain.Vehicle, domain.UserProfile) {
	ev, ice, p := req.EV, req.ICE, req.Profile

	switch req.Target {
	case TargetAnnualMileage:
		p.AnnualMileage = value
	case TargetFuelPrice:
		p.FuelPrice = value
	case TargetElectricityPrice:
		p = p.WithElectricityPrice(value)
	case TargetSubscriptionRate:
		if ev.Subscription != nil {
			terms := *ev.Subscription
			terms.MonthlyRate = value
			ev.Subscription = &terms
		}
	}
	return ev, ice, p
}

// current reads the target's value from the request
func current(req Request) decimal.Decimal {
	switch req.Target {
	case TargetAnnualMileage:
		return req.Profile.AnnualMileage
	case TargetFuelPrice:
		return req.Profile.FuelPrice
	case TargetElectricityPrice:
		return req.Profile.HomeChargingPrice
	case TargetSubscriptionRate:
		if req.EV.Subscription != nil {
			return req.EV.Subscription.MonthlyRate
		}
	}
	return decimal.Zero
}
