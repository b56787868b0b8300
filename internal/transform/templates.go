package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages named what-if scenarios
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template categories, in help order
const (
	CategoryUsage     = "Usage"
	CategoryCharging  = "Charging"
	CategoryPrices    = "Prices"
	CategorySituation = "Situation"
)

var templateCategories = []string{CategoryUsage, CategoryCharging, CategoryPrices, CategorySituation}

// CreateBuiltInTemplates returns the common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "low_mileage",
		Category:    CategoryUsage,
		Description: "Drive 8,000 km per year",
		Transforms:  []ProfileTransform{&SetMileage{Km: decimal.NewFromInt(8000)}},
	})
	registry.Register(Template{
		Name:        "high_mileage",
		Category:    CategoryUsage,
		Description: "Drive 30,000 km per year",
		Transforms:  []ProfileTransform{&SetMileage{Km: decimal.NewFromInt(30000)}},
	})
	registry.Register(Template{
		Name:        "short_term",
		Category:    CategoryUsage,
		Description: "Keep the car for 2 years",
		Transforms:  []ProfileTransform{&SetHoldingPeriod{Years: 2}},
	})
	registry.Register(Template{
		Name:        "long_term",
		Category:    CategoryUsage,
		Description: "Keep the car for 8 years",
		Transforms:  []ProfileTransform{&SetHoldingPeriod{Years: 8}},
	})

	registry.Register(Template{
		Name:        "tenant",
		Category:    CategoryCharging,
		Description: "No wallbox, public charging only",
		Transforms: []ProfileTransform{
			&SetWallbox{Enabled: false},
			&SetChargingPreset{Preset: "publicOnly"},
		},
	})
	registry.Register(Template{
		Name:        "homeowner",
		Category:    CategoryCharging,
		Description: "Own wallbox, charging at home only",
		Transforms: []ProfileTransform{
			&SetWallbox{Enabled: true},
			&SetChargingPreset{Preset: "homeOnly"},
		},
	})
	registry.Register(Template{
		Name:        "work_charging",
		Category:    CategoryCharging,
		Description: "Free charging at the employer, mixed charging",
		Transforms: []ProfileTransform{
			&EmployerCharging{Enabled: true},
			&SetChargingPreset{Preset: "mixed"},
		},
	})

	registry.Register(Template{
		Name:        "fuel_shock",
		Category:    CategoryPrices,
		Description: "Fuel at 2.20 €/l with aggressive price growth",
		Transforms: []ProfileTransform{
			&SetFuelPrice{Price: decimal.RequireFromString("2.20")},
			&SetPriceForecast{Forecast: domain.ForecastAggressive},
		},
	})
	registry.Register(Template{
		Name:        "cheap_power",
		Category:    CategoryPrices,
		Description: "Electricity at 0.25 €/kWh",
		Transforms:  []ProfileTransform{&SetElectricityPrice{Price: decimal.RequireFromString("0.25")}},
	})
	registry.Register(Template{
		Name:        "calm_markets",
		Category:    CategoryPrices,
		Description: "Conservative energy price growth",
		Transforms:  []ProfileTransform{&SetPriceForecast{Forecast: domain.ForecastConservative}},
	})

	registry.Register(Template{
		Name:        "company_car",
		Category:    CategorySituation,
		Description: "Company car taxed at 42%",
		Transforms:  []ProfileTransform{&CompanyCar{TaxBracket: decimal.RequireFromString("0.42")}},
	})
	registry.Register(Template{
		Name:        "city_commuter",
		Category:    CategorySituation,
		Description: "City resident paying 120 € parking per month, mixed charging",
		Transforms: []ProfileTransform{
			&CityParking{MonthlyCost: decimal.NewFromInt(120)},
			&SetChargingPreset{Preset: "mixed"},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base domain.UserProfile, template Template) (domain.UserProfile, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	byCategory := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	categories := append([]string{}, templateCategories...)
	if _, ok := byCategory[""]; ok {
		categories = append(categories, "")
	}
	for _, category := range categories {
		templates := byCategory[category]
		if len(templates) == 0 {
			continue
		}
		if category == "" {
			category = "Other"
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  evtco whatif --with tenant,high_mileage\n")
	sb.WriteString("  evtco whatif --transform set_mileage:km=25000 --transform wallbox:enabled=false\n")

	return sb.String()
}
