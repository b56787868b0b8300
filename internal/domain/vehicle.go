package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DriveType identifies the powertrain of a vehicle
type DriveType string

const (
	DriveTypeEV     DriveType = "ev"
	DriveTypeICE    DriveType = "ice"
	DriveTypeHybrid DriveType = "hybrid"
	DriveTypePHEV   DriveType = "phev"
)

// FuelType identifies what a combustion engine burns
type FuelType string

const (
	FuelBenzin FuelType = "benzin"
	FuelDiesel FuelType = "diesel"
	FuelStrom  FuelType = "strom"
	FuelHybrid FuelType = "hybrid"
)

// VehicleClass is the size segment used to preselect a vehicle pair
type VehicleClass string

const (
	ClassKleinwagen   VehicleClass = "kleinwagen"
	ClassKompakt      VehicleClass = "kompakt"
	ClassMittelklasse VehicleClass = "mittelklasse"
	ClassSUV          VehicleClass = "suv"
	ClassLimousine    VehicleClass = "limousine"
	ClassKombi        VehicleClass = "kombi"
)

// Consumption is energy (kWh) or fuel (l) use per 100 km
type Consumption struct {
	Combined decimal.Decimal `yaml:"combined" json:"combined"`
	City     decimal.Decimal `yaml:"city" json:"city"`
	Highway  decimal.Decimal `yaml:"highway" json:"highway"`
}

// EVSpecs holds battery electric specifics
type EVSpecs struct {
	BatteryCapacity  decimal.Decimal `yaml:"battery_capacity" json:"batteryCapacity"`
	RangeWLTP        decimal.Decimal `yaml:"range_wltp" json:"rangeWLTP"`
	ChargingSpeedAC  decimal.Decimal `yaml:"charging_speed_ac" json:"chargingSpeedAC"`
	ChargingSpeedDC  decimal.Decimal `yaml:"charging_speed_dc" json:"chargingSpeedDC"`
	THGQuoteEligible bool            `yaml:"thg_quote_eligible" json:"thgQuoteEligible"`
}

// ICESpecs holds combustion engine specifics
type ICESpecs struct {
	EngineSize   int             `yaml:"engine_size" json:"engineSize"`     // ccm
	CO2Emissions decimal.Decimal `yaml:"co2_emissions" json:"co2Emissions"` // g/km
	FuelType     FuelType        `yaml:"fuel_type" json:"fuelType"`
	TankCapacity decimal.Decimal `yaml:"tank_capacity" json:"tankCapacity"`
}

// SubscriptionTerms are the all-inclusive subscription conditions
type SubscriptionTerms struct {
	MonthlyRate        decimal.Decimal `yaml:"monthly_rate" json:"monthlyRate"`
	IncludedKmPerMonth decimal.Decimal `yaml:"included_km_per_month" json:"includedKmPerMonth"`
	ExcessKmRate       decimal.Decimal `yaml:"excess_km_rate" json:"excessKmRate"`
	StartFee           decimal.Decimal `yaml:"start_fee" json:"startFee"`
	MinDuration        int             `yaml:"min_duration" json:"minDuration"` // months
}

// LeaseTerms are the conditions of a classic lease
type LeaseTerms struct {
	MonthlyRate       decimal.Decimal `yaml:"monthly_rate" json:"monthlyRate"`
	IncludedKmPerYear decimal.Decimal `yaml:"included_km_per_year" json:"includedKmPerYear"`
	ExcessKmRate      decimal.Decimal `yaml:"excess_km_rate" json:"excessKmRate"`
	DownPayment       decimal.Decimal `yaml:"down_payment" json:"downPayment"`
	Duration          int             `yaml:"duration" json:"duration"` // months
}

// Subsidy is a named discount on the purchase price
type Subsidy struct {
	ID         string          `yaml:"id" json:"id"`
	Name       string          `yaml:"name" json:"name"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Type       string          `yaml:"type" json:"type"` // federal, state, municipal, manufacturer
	Region     string          `yaml:"region,omitempty" json:"region,omitempty"`
	Conditions string          `yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

// Vehicle describes a car that can be bought, subscribed or leased.
// Optional blocks are nil when the capability is absent.
type Vehicle struct {
	ID           string       `yaml:"id" json:"id"`
	Name         string       `yaml:"name" json:"name"`
	Brand        string       `yaml:"brand" json:"brand"`
	Model        string       `yaml:"model" json:"model"`
	Year         int          `yaml:"year" json:"year"`
	DriveType    DriveType    `yaml:"drive_type" json:"driveType"`
	VehicleClass VehicleClass `yaml:"vehicle_class" json:"vehicleClass"`

	BasePrice          decimal.Decimal `yaml:"base_price" json:"basePrice"`
	AvailableSubsidies []Subsidy       `yaml:"available_subsidies,omitempty" json:"availableSubsidies,omitempty"`
	Consumption        Consumption     `yaml:"consumption" json:"consumption"`

	EVSpecs      *EVSpecs           `yaml:"ev_specs,omitempty" json:"evSpecs,omitempty"`
	ICESpecs     *ICESpecs          `yaml:"ice_specs,omitempty" json:"iceSpecs,omitempty"`
	Subscription *SubscriptionTerms `yaml:"subscription,omitempty" json:"vibeAbo,omitempty"`
	Leasing      *LeaseTerms        `yaml:"leasing,omitempty" json:"leasing,omitempty"`

	MaintenanceCostPerKm decimal.Decimal `yaml:"maintenance_cost_per_km" json:"maintenanceCostPerKm"`
	InsuranceClass       int             `yaml:"insurance_class" json:"insuranceClass"`
}

// ElectricVehicle is a Vehicle known to carry EV specs
type ElectricVehicle struct {
	Vehicle
	Specs EVSpecs
}

// CombustionVehicle is a Vehicle known to carry ICE specs
type CombustionVehicle struct {
	Vehicle
	Specs ICESpecs
}

// SubscribableEV is an electric vehicle offered on subscription
type SubscribableEV struct {
	ElectricVehicle
	Terms SubscriptionTerms
}

// LeasableICE is a combustion vehicle offered on a lease
type LeasableICE struct {
	CombustionVehicle
	Terms LeaseTerms
}

// IsEV reports whether the vehicle is battery electric
func (v Vehicle) IsEV() bool {
	return v.DriveType == DriveTypeEV
}

// Electric returns the EV view of the vehicle
func (v Vehicle) Electric() (ElectricVehicle, bool) {
	if v.DriveType != DriveTypeEV || v.EVSpecs == nil {
		return ElectricVehicle{}, false
	}
	return ElectricVehicle{Vehicle: v, Specs: *v.EVSpecs}, true
}

// Combustion returns the ICE view of the vehicle
func (v Vehicle) Combustion() (CombustionVehicle, bool) {
	if v.ICESpecs == nil {
		return CombustionVehicle{}, false
	}
	return CombustionVehicle{Vehicle: v, Specs: *v.ICESpecs}, true
}

// Subscribable returns the view used by the subscription pipeline
func (v Vehicle) Subscribable() (SubscribableEV, bool) {
	ev, ok := v.Electric()
	if !ok || v.Subscription == nil {
		return SubscribableEV{}, false
	}
	return SubscribableEV{ElectricVehicle: ev, Terms: *v.Subscription}, true
}

// Leasable returns the view used by the lease pipeline
func (v Vehicle) Leasable() (LeasableICE, bool) {
	ice, ok := v.Combustion()
	if !ok || v.Leasing == nil {
		return LeasableICE{}, false
	}
	return LeasableICE{CombustionVehicle: ice, Terms: *v.Leasing}, true
}

// Validate checks that the optional spec blocks match the drive type
func (v Vehicle) Validate() error {
	var errs []error
	if v.ID == "" {
		errs = append(errs, &ValidationError{Field: "id", Message: "is required"})
	}
	switch v.DriveType {
	case DriveTypeEV:
		if v.EVSpecs == nil {
			errs = append(errs, &ValidationError{Field: "ev_specs", Message: "is required for ev"})
		}
		if v.ICESpecs != nil {
			errs = append(errs, &ValidationError{Field: "ice_specs", Message: "must be empty for ev"})
		}
	case DriveTypeICE:
		if v.ICESpecs == nil {
			errs = append(errs, &ValidationError{Field: "ice_specs", Message: "is required for ice"})
		}
		if v.EVSpecs != nil {
			errs = append(errs, &ValidationError{Field: "ev_specs", Message: "must be empty for ice"})
		}
	case DriveTypeHybrid, DriveTypePHEV:
	default:
		errs = append(errs, &ValidationError{Field: "drive_type", Message: fmt.Sprintf("unknown drive type %q", v.DriveType)})
	}
	if v.BasePrice.IsNegative() {
		errs = append(errs, &ValidationError{Field: "base_price", Message: "cannot be negative"})
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("vehicle %s: %w", v.ID, err)
	}
	return nil
}
