// Package catalog holds the fixed choices the booking form offers.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type Service struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Catalog struct {
	Services  []Service `yaml:"services" json:"services"`
	TimeSlots []string  `yaml:"time_slots" json:"time_slots"`
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Services) == 0 {
		return errors.New("catalog: no services")
	}
	if len(c.TimeSlots) == 0 {
		return errors.New("catalog: no time slots")
	}

	seen := map[string]bool{}
	for _, s := range c.Services {
		if s.ID == "" {
			return errors.New("catalog: service without id")
		}
		if seen[s.ID] {
			return fmt.Errorf("catalog: duplicate service %q", s.ID)
		}
		seen[s.ID] = true
	}

	seen = map[string]bool{}
	for _, hm := range c.TimeSlots {
		if _, err := time.Parse("15:04", hm); err != nil || len(hm) != 5 {
			return fmt.Errorf("catalog: bad time slot %q", hm)
		}
		if seen[hm] {
			return fmt.Errorf("catalog: duplicate time slot %q", hm)
		}
		seen[hm] = true
	}
	return nil
}

func (c *Catalog) HasService(id string) bool {
	for _, s := range c.Services {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (c *Catalog) HasTime(hm string) bool {
	for _, t := range c.TimeSlots {
		if t == hm {
			return true
		}
	}
	return false
}
