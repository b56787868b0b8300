package refdata

import (
	_ "embed"
	"fmt"

	"github.com/rgehrsitz/evtco/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is an ordered list of vehicles
type Catalog struct {
	Vehicles []domain.Vehicle `yaml:"vehicles" json:"vehicles"`
}

// DefaultCatalog parses the embedded sample catalogue
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes a YAML catalogue and validates every vehicle
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse vehicle catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every vehicle and rejects duplicate IDs
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Vehicles))
	for _, v := range c.Vehicles {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid catalog: %w", err)
		}
		if seen[v.ID] {
			return fmt.Errorf("invalid catalog: duplicate vehicle id %q", v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}

// Find looks a vehicle up by ID
func (c *Catalog) Find(id string) (domain.Vehicle, bool) {
	for _, v := range c.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}

// Subscribable lists EVs that carry subscription terms
func (c *Catalog) Subscribable() []domain.Vehicle {
	return c.filter(func(v domain.Vehicle) bool {
		_, ok := v.Subscribable()
		return ok
	})
}

// Leasable lists combustion vehicles that carry lease terms
func (c *Catalog) Leasable() []domain.Vehicle {
	return c.filter(func(v domain.Vehicle) bool {
		_, ok := v.Leasable()
		return ok
	})
}

// ByClass lists vehicles of one size segment
func (c *Catalog) ByClass(class domain.VehicleClass) []domain.Vehicle {
	return c.filter(func(v domain.Vehicle) bool { return v.VehicleClass == class })
}

// DefaultPair picks the first subscribable EV and leasable ICE of a class.
// An empty class matches any vehicle.
func (c *Catalog) DefaultPair(class domain.VehicleClass) (ev, ice domain.Vehicle, ok bool) {
	var haveEV, haveICE bool
	for _, v := range c.Vehicles {
		if class != "" && v.VehicleClass != class {
			continue
		}
		if _, sub := v.Subscribable(); sub && !haveEV {
			ev, haveEV = v, true
		}
		if _, lease := v.Leasable(); lease && !haveICE {
			ice, haveICE = v, true
		}
	}
	return ev, ice, haveEV && haveICE
}

func (c *Catalog) filter(keep func(domain.Vehicle) bool) []domain.Vehicle {
	var out []domain.Vehicle
	for _, v := range c.Vehicles {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
