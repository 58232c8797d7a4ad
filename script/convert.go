package script

import (
	"encoding/json"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/export"
)

// snapshotValue converts a snapshot into nested Lua tables
// Goes through the JSON codec so scripts see the same names as exported files
func snapshotValue(L *lua.LState, snap engine.Snapshot) (lua.LValue, error) {
	data, err := export.Encode(snap, export.FormatJSON)
	if err != nil {
		return lua.LNil, err
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return lua.LNil, err
	}
	return toLua(L, tree), nil
}

// toLua converts decoded JSON values; arrays become 1-based sequences
func toLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case []any:
		t := L.CreateTable(len(x), 0)
		for _, item := range x {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.RawSetString(k, toLua(L, x[k]))
		}
		return t
	}
	return lua.LNil
}
