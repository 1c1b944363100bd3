package engine

import (
	"testing"

	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/types"
)

func TestAttackWithFixedWeapon(t *testing.T) {
	e := newTestEngine(t)
	e.ProcessCommand("take sword")
	e.ProcessCommand("equip sword")

	out := e.ProcessCommand("attack goblin")
	// 10 dice of 1 side roll exactly 10.
	if !hasLine(out, "You hit Goblin for 10 damage!") {
		t.Fatalf("output = %v", out)
	}
	if e.World.Monsters[20].Health != 2 {
		t.Errorf("goblin health = %d, want 2", e.World.Monsters[20].Health)
	}
	// Survivor counter-attacks.
	if !hasLineContaining(out, "Goblin strikes back for") {
		t.Errorf("no counter-attack in %v", out)
	}
}

func TestAttackMarksHostile(t *testing.T) {
	e := newTestEngine(t)
	e.ProcessCommand("attack scout")
	if e.World.Monsters[21].Friendliness != types.Hostile {
		t.Error("attacked NPC did not turn hostile")
	}
}

func TestUnarmedDamageRange(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 50; i++ {
		d := e.rollPlayerDamage(types.Intent{})
		if d < 1 || d > 3 {
			t.Fatalf("unarmed damage = %d, want 1-3", d)
		}
	}
}

func TestKillAwardsGoldAndFiresEvents(t *testing.T) {
	e := newTestEngine(t)
	e.ProcessCommand("take sword")
	e.ProcessCommand("equip sword")
	e.World.Monsters[20].Health = 3

	killFired := false
	e.Bus.RegisterHook(&events.Hook{
		Event: events.OnKill,
		Fn: func(p *events.Payload) ([]string, error) {
			killFired = true
			return []string{"The hall falls silent."}, nil
		},
	})

	out := e.ProcessCommand("attack goblin")
	if !killFired {
		t.Error("on_kill hook did not fire")
	}
	if !hasLine(out, "The hall falls silent.") || !hasLine(out, "Goblin falls dead at your feet!") {
		t.Fatalf("output = %v", out)
	}
	if !hasLine(out, "You find 7 gold on the corpse.") {
		t.Fatalf("no gold award in %v", out)
	}
	if !e.World.Monsters[20].Dead {
		t.Error("monster not marked dead")
	}
	// No counter-attack from a corpse.
	if hasLineContaining(out, "strikes back") {
		t.Errorf("dead monster counter-attacked: %v", out)
	}
}

func TestAttackDamageOverrideByHook(t *testing.T) {
	e := newTestEngine(t)
	e.Bus.RegisterHook(&events.Hook{
		Event: events.OnAttack,
		Fn: func(p *events.Payload) ([]string, error) {
			p.Damage = 0
			return []string{"Your blow glances off an invisible ward."}, nil
		},
	})

	out := e.ProcessCommand("attack goblin")
	if !hasLine(out, "You hit Goblin for 0 damage!") {
		t.Fatalf("output = %v", out)
	}
	if e.World.Monsters[20].Health != 12 {
		t.Errorf("goblin health = %d, want unchanged 12", e.World.Monsters[20].Health)
	}
}

func TestPlayerDeathEndsGame(t *testing.T) {
	e := newTestEngine(t)
	e.World.Player.Health = 1

	deathFired := false
	e.Bus.RegisterHook(&events.Hook{
		Event: events.OnDeath,
		Fn: func(p *events.Payload) ([]string, error) {
			deathFired = true
			return nil, nil
		},
	})

	// Keep attacking until the counter-attack lands a point of damage.
	var out []string
	for i := 0; i < 20 && !e.World.GameOver; i++ {
		out = e.ProcessCommand("attack goblin")
	}
	if !e.World.GameOver {
		t.Fatal("player never died to counter-attacks")
	}
	if !deathFired {
		t.Error("on_death hook did not fire")
	}
	if !hasLine(out, "You have died. Your adventure ends here.") {
		t.Errorf("output = %v", out)
	}
}

func TestArmorReducesCounterDamage(t *testing.T) {
	e := newTestEngine(t)
	e.World.Items[16] = &types.Item{ID: 16, Name: "Plate Mail", IsArmor: true, ArmorValue: 6, Location: 0}
	e.World.Player.Inventory = append(e.World.Player.Inventory, 16)
	e.ProcessCommand("wear plate mail")

	start := e.World.Player.Health
	e.ProcessCommand("attack goblin")
	// Counter rolls at most 6; armor 6 absorbs it all.
	if e.World.Player.Health != start {
		t.Errorf("health dropped from %d to %d despite full absorb", start, e.World.Player.Health)
	}
}

func TestAggressiveCompanionJoinsAttack(t *testing.T) {
	e := newTestEngine(t)
	e.ProcessCommand("recruit scout")
	e.ProcessCommand("tell scout to be aggressive")

	out := e.ProcessCommand("attack goblin")
	if !hasLineContaining(out, "Scout strikes Goblin for") {
		t.Errorf("companion did not attack: %v", out)
	}
}

func TestPassiveCompanionStaysOut(t *testing.T) {
	e := newTestEngine(t)
	e.ProcessCommand("recruit scout")
	e.ProcessCommand("tell scout to rest")

	out := e.ProcessCommand("attack goblin")
	if hasLineContaining(out, "Scout strikes") {
		t.Errorf("passive companion attacked: %v", out)
	}
}

func TestFleeTakesAnExit(t *testing.T) {
	e := newTestEngine(t)
	// Make the only viable flee route east; north stays locked.
	delete(e.World.Rooms[1].Exits, "north")

	out := e.ProcessCommand("flee")
	if !hasLine(out, "You flee east!") {
		t.Fatalf("output = %v", out)
	}
	if e.World.Player.CurrentRoom != 3 {
		t.Errorf("room = %d after flee, want 3", e.World.Player.CurrentRoom)
	}
}
