// Package content defines the world catalog (commodities, production
// activities, building types) and loads it from built-in defaults,
// YAML files, and Lua scripts, in that order. Later sources append to
// earlier ones; definitions refer to commodities and activities by name.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

type CommodityDef struct {
	Name           string `yaml:"name"`
	InverseDensity uint32 `yaml:"inverse_density"` // display only
}

type AmountDef struct {
	Commodity string `yaml:"commodity"`
	Amount    int64  `yaml:"amount"`
}

type ActivityDef struct {
	Name    string      `yaml:"name"`
	Inputs  []AmountDef `yaml:"inputs"`
	Outputs []AmountDef `yaml:"outputs"`
}

type BuildingTypeDef struct {
	Name         string      `yaml:"name"`
	Activities   []string    `yaml:"activities"` // activity names, slot order
	Construction []AmountDef `yaml:"construction"`
}

// Catalog is the complete world definition applied to the store at boot.
type Catalog struct {
	Commodities   []CommodityDef    `yaml:"commodities"`
	Activities    []ActivityDef     `yaml:"activities"`
	BuildingTypes []BuildingTypeDef `yaml:"building_types"`
}

// Merge appends other's definitions to c.
func (c *Catalog) Merge(other *Catalog) {
	c.Commodities = append(c.Commodities, other.Commodities...)
	c.Activities = append(c.Activities, other.Activities...)
	c.BuildingTypes = append(c.BuildingTypes, other.BuildingTypes...)
}

// Builtin returns the default world: three commodities, two recipes, two
// building types.
func Builtin() *Catalog {
	return &Catalog{
		Commodities: []CommodityDef{
			{Name: "Basic ore", InverseDensity: 125},
			{Name: "Basic fuel", InverseDensity: 1000},
			{Name: "Basic material", InverseDensity: 100},
		},
		Activities: []ActivityDef{
			{
				Name:    "Refine basic ore",
				Inputs:  []AmountDef{{Commodity: "Basic ore", Amount: 1}},
				Outputs: []AmountDef{{Commodity: "Basic material", Amount: 1}},
			},
			{
				Name:    "Extract basic ore",
				Outputs: []AmountDef{{Commodity: "Basic ore", Amount: 1}},
			},
		},
		BuildingTypes: []BuildingTypeDef{
			{
				Name:         "Extractor",
				Activities:   []string{"Extract basic ore"},
				Construction: []AmountDef{{Commodity: "Basic ore", Amount: 50}},
			},
			{
				Name:         "Refinery",
				Activities:   []string{"Refine basic ore"},
				Construction: []AmountDef{{Commodity: "Basic ore", Amount: 50}},
			},
		},
	}
}

// LoadFile loads one YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// LoadDir merges every .yaml file in dir, in name order. A missing dir is
// not an error; the built-ins alone make a playable world.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	merged := &Catalog{}
	for _, name := range names {
		c, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		merged.Merge(c)
	}
	return merged, nil
}
