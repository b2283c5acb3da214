package content

import (
	"fmt"

	"github.com/magnate/server/internal/config"
	"github.com/magnate/server/internal/store"
	"go.uber.org/zap"
)

// Apply pushes a catalog into the store: commodities first, then
// activities, then building types, resolving name references as it goes.
// Runs at boot before the engine serves anything, so it needs no locks.
func Apply(cat *Catalog, st *store.Store) error {
	commodities := make(map[string]store.CommodityID, len(cat.Commodities))
	for _, def := range cat.Commodities {
		if def.Name == "" {
			return fmt.Errorf("commodity with empty name")
		}
		if _, dup := commodities[def.Name]; dup {
			return fmt.Errorf("duplicate commodity %q", def.Name)
		}
		commodities[def.Name] = st.CreateCommodity(def.Name, def.InverseDensity)
	}

	activities := make(map[string]store.ActivityID, len(cat.Activities))
	for _, def := range cat.Activities {
		if len(def.Inputs) > store.MaxInputs {
			return fmt.Errorf("activity %q: %d inputs exceeds %d", def.Name, len(def.Inputs), store.MaxInputs)
		}
		if len(def.Outputs) > store.MaxOutputs {
			return fmt.Errorf("activity %q: %d outputs exceeds %d", def.Name, len(def.Outputs), store.MaxOutputs)
		}
		id := st.CreateActivity(def.Name)
		for i, in := range def.Inputs {
			c, ok := commodities[in.Commodity]
			if !ok {
				return fmt.Errorf("activity %q: unknown commodity %q", def.Name, in.Commodity)
			}
			st.ActivitySetInput(id, i, c, in.Amount)
		}
		for i, out := range def.Outputs {
			c, ok := commodities[out.Commodity]
			if !ok {
				return fmt.Errorf("activity %q: unknown commodity %q", def.Name, out.Commodity)
			}
			st.ActivitySetOutput(id, i, c, out.Amount)
		}
		activities[def.Name] = id
	}

	for _, def := range cat.BuildingTypes {
		if len(def.Activities) > store.MaxActivities {
			return fmt.Errorf("building type %q: %d activities exceeds %d", def.Name, len(def.Activities), store.MaxActivities)
		}
		if len(def.Construction) > store.MaxConstruction {
			return fmt.Errorf("building type %q: %d construction entries exceeds %d", def.Name, len(def.Construction), store.MaxConstruction)
		}
		id := st.CreateBuildingType(def.Name)
		for i, name := range def.Activities {
			a, ok := activities[name]
			if !ok {
				return fmt.Errorf("building type %q: unknown activity %q", def.Name, name)
			}
			st.BuildingTypeSetActivity(id, i, a)
		}
		for i, in := range def.Construction {
			c, ok := commodities[in.Commodity]
			if !ok {
				return fmt.Errorf("building type %q: unknown commodity %q", def.Name, in.Commodity)
			}
			st.BuildingTypeSetConstruction(id, i, c, in.Amount)
		}
	}
	return nil
}

// Bootstrap assembles the full catalog (built-ins, then the YAML dir,
// then Lua scripts) and applies it to the store. Must run exactly once,
// before any request or tick.
func Bootstrap(cfg config.ContentConfig, st *store.Store, log *zap.Logger) error {
	cat := Builtin()

	if cfg.CatalogDir != "" {
		fromYAML, err := LoadDir(cfg.CatalogDir)
		if err != nil {
			return fmt.Errorf("load catalog dir: %w", err)
		}
		cat.Merge(fromYAML)
	}
	if cfg.ScriptDir != "" {
		fromLua, err := RunScripts(cfg.ScriptDir, log)
		if err != nil {
			return fmt.Errorf("run content scripts: %w", err)
		}
		cat.Merge(fromLua)
	}

	if err := Apply(cat, st); err != nil {
		return err
	}
	log.Info("world catalog applied",
		zap.Int("commodities", st.NumCommodities()),
		zap.Int("activities", st.NumActivities()),
		zap.Int("building_types", st.NumBuildingTypes()))
	return nil
}
