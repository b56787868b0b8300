package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry maps transform names to factories so transforms can be
// built from CLI strings
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory creates a transform from string parameters
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a registry with all built-in transforms
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Usage
	registry.Register("set_mileage", createSetMileage)
	registry.Register("adjust_mileage", createAdjustMileage)
	registry.Register("set_holding_period", createSetHoldingPeriod)

	// Prices
	registry.Register("set_fuel_price", createSetFuelPrice)
	registry.Register("set_electricity_price", createSetElectricityPrice)
	registry.Register("price_forecast", createSetPriceForecast)

	// Charging and situation
	registry.Register("charging_preset", createSetChargingPreset)
	registry.Register("wallbox", createSetWallbox)
	registry.Register("company_car", createCompanyCar)
	registry.Register("city_parking", createCityParking)
	registry.Register("employer_charging", createEmployerCharging)

	return registry
}

// Register adds a transform factory to the registry
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the registered transform names in sorted order
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:param1=value1,param2=value2". A bare name
// is allowed for transforms without required parameters.
// Example: "set_mileage:km=25000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %q", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ProfileTransform, error) {
	out := make([]ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func createSetMileage(params map[string]string) (ProfileTransform, error) {
	km, err := requireDecimal("set_mileage", params, "km")
	if err != nil {
		return nil, err
	}
	return &SetMileage{Km: km}, nil
}

func createAdjustMileage(params map[string]string) (ProfileTransform, error) {
	delta, err := requireDecimal("adjust_mileage", params, "km")
	if err != nil {
		return nil, err
	}
	return &AdjustMileage{DeltaKm: delta}, nil
}

func createSetHoldingPeriod(params map[string]string) (ProfileTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("set_holding_period requires 'years' parameter")
	}
	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &SetHoldingPeriod{Years: years}, nil
}

func createSetFuelPrice(params map[string]string) (ProfileTransform, error) {
	price, err := requireDecimal("set_fuel_price", params, "price")
	if err != nil {
		return nil, err
	}
	return &SetFuelPrice{Price: price}, nil
}

func createSetElectricityPrice(params map[string]string) (ProfileTransform, error) {
	price, err := requireDecimal("set_electricity_price", params, "price")
	if err != nil {
		return nil, err
	}
	return &SetElectricityPrice{Price: price}, nil
}

func createSetPriceForecast(params map[string]string) (ProfileTransform, error) {
	forecast, ok := params["forecast"]
	if !ok {
		return nil, fmt.Errorf("price_forecast requires 'forecast' parameter")
	}
	return &SetPriceForecast{Forecast: domain.PriceForecast(forecast)}, nil
}

func createSetChargingPreset(params map[string]string) (ProfileTransform, error) {
	preset, ok := params["preset"]
	if !ok {
		return nil, fmt.Errorf("charging_preset requires 'preset' parameter")
	}
	return &SetChargingPreset{Preset: preset}, nil
}

func createSetWallbox(params map[string]string) (ProfileTransform, error) {
	t := &SetWallbox{Enabled: true}
	if s, ok := params["enabled"]; ok {
		t.Enabled = parseBool(s)
	}
	if _, ok := params["cost"]; ok {
		cost, err := requireDecimal("wallbox", params, "cost")
		if err != nil {
			return nil, err
		}
		t.Cost = cost
	}
	return t, nil
}

func createCompanyCar(params map[string]string) (ProfileTransform, error) {
	t := &CompanyCar{}
	if _, ok := params["tax_bracket"]; ok {
		rate, err := requireDecimal("company_car", params, "tax_bracket")
		if err != nil {
			return nil, err
		}
		t.TaxBracket = rate
	}
	return t, nil
}

func createCityParking(params map[string]string) (ProfileTransform, error) {
	cost, err := requireDecimal("city_parking", params, "cost")
	if err != nil {
		return nil, err
	}
	return &CityParking{MonthlyCost: cost}, nil
}

func createEmployerCharging(params map[string]string) (ProfileTransform, error) {
	t := &EmployerCharging{Enabled: true}
	if s, ok := params["enabled"]; ok {
		t.Enabled = parseBool(s)
	}
	return t, nil
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func parseBool(s string) bool {
	return s == "true" || s == "yes" || s == "1"
}
