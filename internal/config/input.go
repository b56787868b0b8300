package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/shopspring/decimal"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override profile keys.
// Nested keys are separated by a double underscore.
const EnvPrefix = "EVTCO_"

var (
	ErrVehicleNotFound    = errors.New("vehicle not found in catalog")
	ErrVehicleNotSelected = errors.New("no vehicle selected")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
)

// InputParser handles parsing of profile, assumptions and catalog files
type InputParser struct {
	envPrefix string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{envPrefix: EnvPrefix}
}

// LoadDotEnv loads KEY=value pairs from a .env file into the process
// environment. A missing file is not an error; variables already set win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadProfile layers the default profile, the optional file (YAML, JSON or
// HJSON) and EVTCO_ environment overrides, in that order
func (ip *InputParser) LoadProfile(filename string) (domain.UserProfile, error) {
	profile := refdata.DefaultProfile()

	k := koanf.New(".")
	if filename != "" {
		if err := ip.loadFile(k, filename); err != nil {
			return profile, err
		}
	}
	if err := k.Load(env.Provider(ip.envPrefix, ".", ip.envKey), nil); err != nil {
		return profile, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := unmarshal(k, &profile); err != nil {
		return profile, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

// LoadAssumptions overlays a file on the default assumptions. An empty
// filename returns the defaults.
func (ip *InputParser) LoadAssumptions(filename string) (*domain.Assumptions, error) {
	a := domain.DefaultAssumptions()
	if filename == "" {
		return a, nil
	}

	k := koanf.New(".")
	if err := ip.loadFile(k, filename); err != nil {
		return nil, err
	}
	if err := unmarshal(k, a); err != nil {
		return nil, fmt.Errorf("failed to decode assumptions: %w", err)
	}
	if err := ValidateAssumptions(a); err != nil {
		return nil, fmt.Errorf("assumptions validation failed: %w", err)
	}
	return a, nil
}

// LoadCatalog reads a vehicle catalog file. An empty filename returns the
// embedded sample catalog.
func (ip *InputParser) LoadCatalog(filename string) (*refdata.Catalog, error) {
	if filename == "" {
		return refdata.DefaultCatalog()
	}

	k := koanf.New(".")
	if err := ip.loadFile(k, filename); err != nil {
		return nil, err
	}
	var c refdata.Catalog
	if err := unmarshal(k, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveProfile writes a profile as YAML
func (ip *InputParser) SaveProfile(p domain.UserProfile, filename string) error {
	data, err := yamlv3.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ResolveVehicles picks the vehicle pair. Explicit IDs win over the
// profile's selection; with neither, the first pair of the profile's
// vehicle class is used.
func ResolveVehicles(c *refdata.Catalog, p domain.UserProfile, evID, iceID string) (ev, ice domain.Vehicle, err error) {
	if evID == "" {
		evID = p.EVVehicleID
	}
	if iceID == "" {
		iceID = p.ICEVehicleID
	}

	if evID == "" || iceID == "" {
		defEV, defICE, ok := c.DefaultPair(p.VehicleClass)
		if !ok {
			return ev, ice, fmt.Errorf("%w: class %q has no subscription and lease pair", ErrVehicleNotSelected, p.VehicleClass)
		}
		if evID == "" {
			evID = defEV.ID
		}
		if iceID == "" {
			iceID = defICE.ID
		}
	}

	var ok bool
	if ev, ok = c.Find(evID); !ok {
		return ev, ice, fmt.Errorf("%w: %s", ErrVehicleNotFound, evID)
	}
	if ice, ok = c.Find(iceID); !ok {
		return ev, ice, fmt.Errorf("%w: %s", ErrVehicleNotFound, iceID)
	}
	return ev, ice, nil
}

// ValidateAssumptions rejects assumptions the engine cannot work with
func ValidateAssumptions(a *domain.Assumptions) error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, &domain.ValidationError{Field: field, Message: msg})
	}

	if a.InsuranceMinimum.IsNegative() {
		add("insurance_minimum", "cannot be negative")
	}
	if a.EVMaintenanceFactor.IsNegative() {
		add("ev_maintenance_factor", "cannot be negative")
	}
	if !a.CO2Equivalents.TreeYearKg.IsPositive() || !a.CO2Equivalents.FlightKg.IsPositive() ||
		!a.CO2Equivalents.SmartphoneKg.IsPositive() || !a.CO2Equivalents.AverageCarKmKg.IsPositive() {
		add("co2_equivalents", "factors must be positive")
	}
	for name, g := range a.PriceForecasts {
		if g.FuelGrowth.LessThanOrEqual(decimal.NewFromInt(-1)) || g.ElectricityGrowth.LessThanOrEqual(decimal.NewFromInt(-1)) {
			add("price_forecasts."+string(name), "growth must be above -100%")
		}
	}
	return errors.Join(errs...)
}

func (ip *InputParser) loadFile(k *koanf.Koanf, filename string) error {
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".hjson":
		parser = hjsonParser{}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := k.Load(file.Provider(filename), parser); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}

// envKey maps EVTCO_CHARGING_SCENARIO__HOME to charging_scenario.home
func (ip *InputParser) envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, ip.envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// unmarshal decodes into out without zeroing fields the sources leave unset
func unmarshal(k *koanf.Koanf, out any) error {
	return k.UnmarshalWithConf("", out, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				decimalHook,
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           out,
			WeaklyTypedInput: true,
		},
	})
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook turns YAML/JSON numbers and environment strings into decimals
func decimalHook(from, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		return v, nil
	}
	return nil, fmt.Errorf("cannot convert %s to decimal", from)
}
