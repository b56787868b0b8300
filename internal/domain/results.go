package domain

import "github.com/shopspring/decimal"

// Recommendation is the binary outcome of a comparison
type Recommendation string

const (
	RecommendVibeAbo    Recommendation = "vibeAbo"
	RecommendIceLeasing Recommendation = "iceLeasing"
)

// YearlyCosts is one year of a single-vehicle cost trajectory
type YearlyCosts struct {
	Year         int             `json:"year"`
	CalendarYear int             `json:"calendarYear"`
	EnergyPrice  decimal.Decimal `json:"energyPrice"` // per kWh or litre applied this year

	Rates              decimal.Decimal `json:"rates"`
	EnergyCost         decimal.Decimal `json:"energyCost"`
	MaintenanceCost    decimal.Decimal `json:"maintenanceCost"`
	InsuranceCost      decimal.Decimal `json:"insuranceCost"`
	TaxCost            decimal.Decimal `json:"taxCost"`
	ExcessDistanceCost decimal.Decimal `json:"excessDistanceCost"`
	CompanyCarTax      decimal.Decimal `json:"companyCarTax"`
	ParkingAdjustment  decimal.Decimal `json:"parkingAdjustment"` // negative for savings
	THGIncome          decimal.Decimal `json:"thgIncome"`

	NetRunningCost decimal.Decimal `json:"netRunningCost"`
	CumulativeCost decimal.Decimal `json:"cumulativeCost"`
}

// MonthlyPoint is a cumulative cost sample, rounded to whole euros
type MonthlyPoint struct {
	Month      int             `json:"month"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// VibeAboTCOResult is the outcome of the subscription pipeline
type VibeAboTCOResult struct {
	VehicleName          string          `json:"vehicleName"`
	StartFee             decimal.Decimal `json:"startFee"`
	TotalMonthlyRates    decimal.Decimal `json:"totalMonthlyRates"`
	TotalEnergyCost      decimal.Decimal `json:"totalEnergyCost"`
	ExcessKmCost         decimal.Decimal `json:"excessKmCost"`
	WallboxCost          decimal.Decimal `json:"wallboxCost"`
	CompanyCarTax        decimal.Decimal `json:"companyCarTax"`
	ParkingSavings       decimal.Decimal `json:"parkingSavings"`
	TotalCostOfOwnership decimal.Decimal `json:"totalCostOfOwnership"`
	CostPerKm            decimal.Decimal `json:"costPerKm"`
	CostPerMonth         decimal.Decimal `json:"costPerMonth"`
	TotalCO2Emissions    decimal.Decimal `json:"totalCO2Emissions"` // kg
	YearlyCosts          []YearlyCosts   `json:"yearlyCosts"`
	MonthlyData          []MonthlyPoint  `json:"monthlyData"`
}

// IceLeasingTCOResult is the outcome of the lease pipeline
type IceLeasingTCOResult struct {
	VehicleName          string          `json:"vehicleName"`
	DownPayment          decimal.Decimal `json:"downPayment"`
	TotalMonthlyRates    decimal.Decimal `json:"totalMonthlyRates"`
	TotalFuelCost        decimal.Decimal `json:"totalFuelCost"`
	TotalMaintenanceCost decimal.Decimal `json:"totalMaintenanceCost"`
	TotalInsuranceCost   decimal.Decimal `json:"totalInsuranceCost"`
	TotalTaxCost         decimal.Decimal `json:"totalTaxCost"`
	ExcessKmCost         decimal.Decimal `json:"excessKmCost"`
	CompanyCarTax        decimal.Decimal `json:"companyCarTax"`
	ParkingCost          decimal.Decimal `json:"parkingCost"`
	TotalCostOfOwnership decimal.Decimal `json:"totalCostOfOwnership"`
	CostPerKm            decimal.Decimal `json:"costPerKm"`
	CostPerMonth         decimal.Decimal `json:"costPerMonth"`
	TotalCO2Emissions    decimal.Decimal `json:"totalCO2Emissions"`
	YearlyCosts          []YearlyCosts   `json:"yearlyCosts"`
	MonthlyData          []MonthlyPoint  `json:"monthlyData"`
}

// PurchaseTCOResult is the outcome of buying the vehicle outright
type PurchaseTCOResult struct {
	VehicleName          string          `json:"vehicleName"`
	PurchasePrice        decimal.Decimal `json:"purchasePrice"`
	TotalSubsidies       decimal.Decimal `json:"totalSubsidies"`
	NetPurchasePrice     decimal.Decimal `json:"netPurchasePrice"`
	WallboxCost          decimal.Decimal `json:"wallboxCost"`
	TotalEnergyCost      decimal.Decimal `json:"totalEnergyCost"`
	TotalMaintenanceCost decimal.Decimal `json:"totalMaintenanceCost"`
	TotalInsuranceCost   decimal.Decimal `json:"totalInsuranceCost"`
	TotalTaxCost         decimal.Decimal `json:"totalTaxCost"`
	TotalTHGIncome       decimal.Decimal `json:"totalTHGIncome"`
	ResidualValue        decimal.Decimal `json:"residualValue"`
	TotalDepreciation    decimal.Decimal `json:"totalDepreciation"`
	TotalCostOfOwnership decimal.Decimal `json:"totalCostOfOwnership"`
	CostPerKm            decimal.Decimal `json:"costPerKm"`
	CostPerMonth         decimal.Decimal `json:"costPerMonth"`
	TotalCO2Emissions    decimal.Decimal `json:"totalCO2Emissions"`
	YearlyCosts          []YearlyCosts   `json:"yearlyCosts"`
}

// CO2Equivalent expresses a CO2 amount in relatable units
type CO2Equivalent struct {
	Flights     decimal.Decimal `json:"flights"`
	Trees       decimal.Decimal `json:"trees"`
	Smartphones decimal.Decimal `json:"smartphones"`
	CarKm       decimal.Decimal `json:"carKm"`
}

// ComparisonResult is the final output of a subscription vs lease comparison.
// Savings are positive when the subscription is cheaper.
type ComparisonResult struct {
	VibeAbo    *VibeAboTCOResult    `json:"vibeAbo"`
	IceLeasing *IceLeasingTCOResult `json:"iceLeasing"`

	SavingsTotal    decimal.Decimal `json:"savingsTotal"`
	SavingsPerYear  decimal.Decimal `json:"savingsPerYear"`
	SavingsPerMonth decimal.Decimal `json:"savingsPerMonth"`
	SavingsPerKm    decimal.Decimal `json:"savingsPerKm"`

	CO2Savings           decimal.Decimal `json:"co2Savings"`
	CO2SavingsEquivalent CO2Equivalent   `json:"co2SavingsEquivalent"`

	Recommendation     Recommendation `json:"recommendation"`
	RecommendationText string         `json:"recommendationText"`

	// First month the subscription is cumulatively no more expensive, 0 if never
	BreakEvenMonth int `json:"breakEvenMonth"`
}

// ChartDataPoint is one month of the cumulative cost chart
type ChartDataPoint struct {
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	Label                string          `json:"label"`
	VibeAboCumulative    decimal.Decimal `json:"vibeAboCumulative"`
	IceLeasingCumulative decimal.Decimal `json:"iceLeasingCumulative"`
	VibeAboMonthly       decimal.Decimal `json:"vibeAboMonthly"`
	IceLeasingMonthly    decimal.Decimal `json:"iceLeasingMonthly"`
	Difference           decimal.Decimal `json:"difference"`
}

// CostBreakdown compares one cost category across both pipelines
type CostBreakdown struct {
	Category   string          `json:"category"`
	VibeAbo    decimal.Decimal `json:"vibeAbo"`
	IceLeasing decimal.Decimal `json:"iceLeasing"`
	Savings    decimal.Decimal `json:"savings"`
}
