package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RunScripts executes every .lua file in dir (name order) in a fresh VM
// and returns the catalog the scripts registered. Scripts see three
// globals, commodity{}, activity{} and building_type{}, each taking a
// definition table mirroring the YAML schema. A missing dir yields an
// empty catalog.
func RunScripts(dir string, log *zap.Logger) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, err
	}

	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer vm.Close()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	cat := &Catalog{}
	vm.SetGlobal("commodity", vm.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		cat.Commodities = append(cat.Commodities, CommodityDef{
			Name:           lua.LVAsString(L.GetField(tbl, "name")),
			InverseDensity: uint32(lua.LVAsNumber(L.GetField(tbl, "inverse_density"))),
		})
		return 0
	}))
	vm.SetGlobal("activity", vm.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		cat.Activities = append(cat.Activities, ActivityDef{
			Name:    lua.LVAsString(L.GetField(tbl, "name")),
			Inputs:  amountList(L, L.GetField(tbl, "inputs")),
			Outputs: amountList(L, L.GetField(tbl, "outputs")),
		})
		return 0
	}))
	vm.SetGlobal("building_type", vm.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		cat.BuildingTypes = append(cat.BuildingTypes, BuildingTypeDef{
			Name:         lua.LVAsString(L.GetField(tbl, "name")),
			Activities:   stringList(L.GetField(tbl, "activities")),
			Construction: amountList(L, L.GetField(tbl, "construction")),
		})
		return 0
	}))

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := vm.DoFile(path); err != nil {
			return nil, fmt.Errorf("run %s: %w", path, err)
		}
		log.Debug("loaded content script", zap.String("file", path))
	}
	return cat, nil
}

func amountList(L *lua.LState, v lua.LValue) []AmountDef {
	arr, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	var out []AmountDef
	arr.ForEach(func(_, item lua.LValue) {
		entry, ok := item.(*lua.LTable)
		if !ok {
			return
		}
		out = append(out, AmountDef{
			Commodity: lua.LVAsString(L.GetField(entry, "commodity")),
			Amount:    int64(lua.LVAsNumber(L.GetField(entry, "amount"))),
		})
	})
	return out
}

func stringList(v lua.LValue) []string {
	arr, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	arr.ForEach(func(_, item lua.LValue) {
		out = append(out, lua.LVAsString(item))
	})
	return out
}
