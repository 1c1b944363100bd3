// Package script hosts mod scripts in a sandboxed Lua VM. Mods
// register event hooks and custom commands at load time; at dispatch
// time their code sees the event payload as a mutable `data` table
// plus helper functions for touching the world.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/engine/world"
	lua "github.com/yuin/gopher-lua"
)

// knownEvents gates register_hook so a typo'd event name fails at load
// time instead of silently never firing.
var knownEvents = map[string]events.Type{
	"on_enter_room":      events.OnEnterRoom,
	"on_exit_room":       events.OnExitRoom,
	"on_take_item":       events.OnTakeItem,
	"on_drop_item":       events.OnDropItem,
	"on_attack":          events.OnAttack,
	"on_kill":            events.OnKill,
	"on_death":           events.OnDeath,
	"on_talk":            events.OnTalk,
	"on_use_item":        events.OnUseItem,
	"on_examine":         events.OnExamine,
	"on_command":         events.OnCommand,
	"on_unknown_command": events.OnUnknownCommand,
	"on_save":            events.OnSave,
	"on_load":            events.OnLoad,
}

// Host owns one sandboxed Lua VM shared by all loaded mods. Not safe
// for concurrent use; the engine serializes all calls.
type Host struct {
	L     *lua.LState
	world *world.World
	bus   *events.Bus
	echo  []string
}

// NewHost creates the VM, opens the safe library subset, scrubs the
// dangerous globals, and registers the mod API.
func NewHost(w *world.World, bus *events.Bus) *Host {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	h := &Host{L: L, world: w, bus: bus}

	openSafeLibs(L)
	sandbox(L)
	h.registerAPI()
	return h
}

// Close releases the VM.
func (h *Host) Close() {
	h.L.Close()
}

// LoadDir executes every .lua file in dir in alphabetical order. A
// file that fails to execute aborts the load with its name in the
// error.
func (h *Host) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading mods directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	for _, f := range files {
		if err := h.LoadFile(filepath.Join(dir, f)); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile executes one mod file.
func (h *Host) LoadFile(path string) error {
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("executing mod %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadString executes mod source directly. Used by tests and the
// trace console.
func (h *Host) LoadString(src string) error {
	return h.L.DoString(src)
}

// openSafeLibs opens only the side-effect-free Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach the process or filesystem.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}

func (h *Host) registerAPI() {
	L := h.L

	// register_hook{event = "...", priority = 0, filter = {...}, code = function(data) end}
	L.SetGlobal("register_hook", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		eventName := getString(tbl, "event")
		event, ok := knownEvents[eventName]
		if !ok {
			L.RaiseError("register_hook: unknown event %q", eventName)
			return 0
		}
		fn, ok := tbl.RawGetString("code").(*lua.LFunction)
		if !ok {
			L.RaiseError("register_hook: %s hook has no code function", eventName)
			return 0
		}
		hook := &events.Hook{
			Event:    event,
			Priority: getInt(tbl, "priority"),
			Fn:       h.hookFunc(fn),
		}
		if ft, ok := tbl.RawGetString("filter").(*lua.LTable); ok {
			hook.Filter = tableToAnyMap(ft)
		}
		h.bus.RegisterHook(hook)
		return 0
	}))

	// register_command{verb = "...", aliases = {...}, help = "...", code = function(args) end}
	L.SetGlobal("register_command", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		verb := getString(tbl, "verb")
		if verb == "" {
			L.RaiseError("register_command: missing verb")
			return 0
		}
		fn, ok := tbl.RawGetString("code").(*lua.LFunction)
		if !ok {
			L.RaiseError("register_command: %q has no code function", verb)
			return 0
		}
		cmd := &events.Command{
			Verb: verb,
			Help: getString(tbl, "help"),
			Fn:   h.commandFunc(fn),
		}
		if at, ok := tbl.RawGetString("aliases").(*lua.LTable); ok {
			at.ForEach(func(_, v lua.LValue) {
				if s, ok := v.(lua.LString); ok {
					cmd.Aliases = append(cmd.Aliases, string(s))
				}
			})
		}
		h.bus.RegisterCommand(cmd)
		return 0
	}))

	// echo("text") appends a narrative line to the current dispatch.
	L.SetGlobal("echo", L.NewFunction(func(L *lua.LState) int {
		h.echo = append(h.echo, L.CheckString(1))
		return 0
	}))

	L.SetGlobal("get_npc", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		m := h.world.FindMonsterInRoom(name, h.world.Player.CurrentRoom)
		if m == nil {
			L.Push(lua.LNil)
			return 1
		}
		t := L.NewTable()
		t.RawSetString("id", lua.LNumber(m.ID))
		t.RawSetString("name", lua.LString(m.Name))
		t.RawSetString("room_id", lua.LNumber(m.RoomID))
		t.RawSetString("health", lua.LNumber(m.Health))
		t.RawSetString("friendliness", lua.LString(string(m.Friendliness)))
		L.Push(t)
		return 1
	}))

	L.SetGlobal("get_item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		it := h.world.FindItemInRoom(name, h.world.Player.CurrentRoom)
		if it == nil {
			it = h.world.FindInventoryItem(name)
		}
		if it == nil {
			L.Push(lua.LNil)
			return 1
		}
		t := L.NewTable()
		t.RawSetString("id", lua.LNumber(it.ID))
		t.RawSetString("name", lua.LString(it.Name))
		t.RawSetString("location", lua.LNumber(it.Location))
		t.RawSetString("value", lua.LNumber(it.Value))
		L.Push(t)
		return 1
	}))

	// spawn_item("name", room_id) -> new item id
	L.SetGlobal("spawn_item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		roomID := L.CheckInt(2)
		it := h.world.SpawnItem(name, roomID)
		L.Push(lua.LNumber(it.ID))
		return 1
	}))

	// spawn_npc("name", room_id, hardiness, agility) -> new npc id
	L.SetGlobal("spawn_npc", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		roomID := L.CheckInt(2)
		hardiness := L.OptInt(3, 5)
		agility := L.OptInt(4, 5)
		m := h.world.SpawnMonster(name, roomID, hardiness, agility)
		L.Push(lua.LNumber(m.ID))
		return 1
	}))

	L.SetGlobal("set_flag", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		value := true
		if L.GetTop() >= 2 {
			value = lua.LVAsBool(L.Get(2))
		}
		h.world.Flags[name] = value
		return 0
	}))

	L.SetGlobal("get_flag", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(h.world.Flags[L.CheckString(1)]))
		return 1
	}))

	L.SetGlobal("has_flag", L.NewFunction(func(L *lua.LState) int {
		_, ok := h.world.Flags[L.CheckString(1)]
		L.Push(lua.LBool(ok))
		return 1
	}))
}

// hookFunc wraps a Lua function as a bus handler: payload in as the
// `data` table, mutations read back out after the call.
func (h *Host) hookFunc(fn *lua.LFunction) events.HandlerFunc {
	return func(p *events.Payload) ([]string, error) {
		h.echo = nil
		h.setContextGlobals()
		data := h.payloadToLua(p)

		err := h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, data)
		if err == nil {
			h.luaToPayload(data, p)
			h.applyPlayerTable()
		}

		lines := h.echo
		h.echo = nil
		return lines, err
	}
}

// commandFunc wraps a Lua function as a custom command body.
func (h *Host) commandFunc(fn *lua.LFunction) events.CommandFunc {
	return func(args string) ([]string, error) {
		h.echo = nil
		h.setContextGlobals()

		err := h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LString(args))
		if err == nil {
			h.applyPlayerTable()
		}

		lines := h.echo
		h.echo = nil
		return lines, err
	}
}

// setContextGlobals refreshes the `player` and `room` tables before
// running mod code.
func (h *Host) setContextGlobals() {
	L := h.L
	pl := h.world.Player

	pt := L.NewTable()
	pt.RawSetString("name", lua.LString(pl.Name))
	pt.RawSetString("health", lua.LNumber(pl.Health))
	pt.RawSetString("max_health", lua.LNumber(pl.Hardiness))
	pt.RawSetString("gold", lua.LNumber(pl.Gold))
	pt.RawSetString("room_id", lua.LNumber(pl.CurrentRoom))
	L.SetGlobal("player", pt)

	rt := L.NewTable()
	if room := h.world.CurrentRoom(); room != nil {
		rt.RawSetString("id", lua.LNumber(room.ID))
		rt.RawSetString("name", lua.LString(room.Name))
		rt.RawSetString("description", lua.LString(room.Description))
	}
	L.SetGlobal("room", rt)
}

// applyPlayerTable writes mutable player fields back from the `player`
// global after mod code has run.
func (h *Host) applyPlayerTable() {
	pt, ok := h.L.GetGlobal("player").(*lua.LTable)
	if !ok {
		return
	}
	pl := h.world.Player
	if n, ok := pt.RawGetString("health").(lua.LNumber); ok {
		pl.Health = int(n)
	}
	if n, ok := pt.RawGetString("gold").(lua.LNumber); ok {
		pl.Gold = int(n)
	}
}

// payloadToLua builds the `data` table a hook receives.
func (h *Host) payloadToLua(p *events.Payload) *lua.LTable {
	L := h.L
	t := L.NewTable()

	t.RawSetString("cancel", lua.LBool(p.Cancel))
	t.RawSetString("handled", lua.LBool(p.Handled))
	t.RawSetString("message", lua.LString(p.Message))
	if p.Command != "" {
		t.RawSetString("command", lua.LString(p.Command))
	}
	if p.Verb != "" {
		t.RawSetString("verb", lua.LString(p.Verb))
	}
	if p.Args != "" {
		t.RawSetString("args", lua.LString(p.Args))
	}
	if p.Direction != "" {
		t.RawSetString("direction", lua.LString(p.Direction))
	}
	if p.Topic != "" {
		t.RawSetString("topic", lua.LString(p.Topic))
	}
	if p.Damage != 0 {
		t.RawSetString("damage", lua.LNumber(p.Damage))
	}
	if p.RoomID != 0 {
		t.RawSetString("room_id", lua.LNumber(p.RoomID))
	}
	if p.Item != nil {
		t.RawSetString("item_id", lua.LNumber(p.Item.ID))
		t.RawSetString("item_name", lua.LString(p.Item.Name))
	}
	if npc := p.NPC; npc != nil {
		t.RawSetString("npc_id", lua.LNumber(npc.ID))
		t.RawSetString("npc_name", lua.LString(npc.Name))
	}
	if m := p.Monster; m != nil {
		t.RawSetString("npc_id", lua.LNumber(m.ID))
		t.RawSetString("npc_name", lua.LString(m.Name))
	}
	for k, v := range p.Extra {
		t.RawSetString(k, goToLua(L, v))
	}
	return t
}

// luaToPayload reads control fields and overrides back from the data
// table. Unknown keys land in Extra so later hooks of the same
// dispatch can see them.
func (h *Host) luaToPayload(t *lua.LTable, p *events.Payload) {
	t.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch string(key) {
		case "cancel":
			p.Cancel = lua.LVAsBool(v)
		case "handled":
			p.Handled = lua.LVAsBool(v)
		case "message":
			p.Message = lua.LVAsString(v)
		case "damage":
			if n, ok := v.(lua.LNumber); ok {
				p.Damage = int(n)
			}
		case "room_id":
			if n, ok := v.(lua.LNumber); ok {
				p.RoomID = int(n)
			}
		case "command", "verb", "args", "direction", "topic",
			"item_id", "item_name", "npc_id", "npc_name":
			// Read-only context fields.
		default:
			if p.Extra == nil {
				p.Extra = map[string]any{}
			}
			p.Extra[string(key)] = toGoValue(v)
		}
	})
}

func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// toGoValue converts a Lua value to a Go value; tables become []any
// when array-like, map[string]any otherwise.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		return float64(val)
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if n := val.Len(); n > 0 {
			arr := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

func goToLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := L.NewTable()
		for _, e := range val {
			t.Append(goToLua(L, e))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, e := range val {
			t.RawSetString(k, goToLua(L, e))
		}
		return t
	default:
		return lua.LNil
	}
}

func tableToAnyMap(tbl *lua.LTable) map[string]any {
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}
