package engine

import (
	"fmt"
	"strings"

	"github.com/sagacraft/sagacraft/types"
)

// maxPartySize is the hard cap on recruited companions.
const maxPartySize = 3

func (e *Engine) handleRecruit(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Recruit whom?"}
	}

	m := e.World.FindMonsterInRoom(intent.Target, e.World.Player.CurrentRoom)
	if m == nil {
		return []string{fmt.Sprintf("There is no %s here.", intent.Target)}
	}
	if m.Friendliness != types.Friendly {
		return []string{fmt.Sprintf("%s has no interest in joining you.", m.Name)}
	}
	if len(e.World.Companions) >= maxPartySize {
		return []string{"Your party is full."}
	}

	// The NPC leaves the room roster and lives on as a companion.
	m.RoomID = types.RemovedRoom

	c := &types.Companion{
		NPCID:     m.ID,
		Name:      m.Name,
		Role:      roleFor(m),
		Loyalty:   50,
		Health:    m.Health,
		MaxHealth: m.Hardiness,
		Hardiness: m.Hardiness,
		Agility:   m.Agility,
		Stance:    types.StanceFollow,
	}
	if c.Role == types.RoleRogue {
		c.AttackBonus = 1
	}
	e.World.Companions = append(e.World.Companions, c)

	return []string{fmt.Sprintf("%s joins your party as a %s!", c.Name, c.Role)}
}

// roleFor derives a companion role from raw stats: quick ones become
// rogues, sturdy ones fighters.
func roleFor(m *types.Monster) types.Role {
	if m.Agility > m.Hardiness {
		return types.RoleRogue
	}
	return types.RoleFighter
}

func (e *Engine) handleDismiss(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Dismiss whom?"}
	}

	c := e.World.FindCompanion(intent.Target)
	if c == nil {
		return []string{fmt.Sprintf("%s is not in your party.", intent.Target)}
	}

	for i, other := range e.World.Companions {
		if other == c {
			e.World.Companions = append(e.World.Companions[:i], e.World.Companions[i+1:]...)
			break
		}
	}

	// The NPC record returns to the world at the player's location.
	if m, ok := e.World.Monsters[c.NPCID]; ok {
		m.RoomID = e.World.Player.CurrentRoom
		m.Health = c.Health
	}

	return []string{fmt.Sprintf("%s leaves your party.", c.Name)}
}

func (e *Engine) handlePartyOrder(intent types.Intent) []string {
	if intent.Companion == "" {
		return []string{"Give an order to whom?"}
	}

	c := e.World.FindCompanion(intent.Companion)
	if c == nil {
		return []string{fmt.Sprintf("%s is not in your party.", intent.Companion)}
	}
	if intent.Order == "" {
		return []string{fmt.Sprintf("Tell %s to do what?", c.Name)}
	}

	order := strings.ToLower(intent.Order)
	switch {
	case containsAny(order, "wait", "stay"):
		c.Waiting = true
		c.WaitRoom = e.World.Player.CurrentRoom
		return []string{fmt.Sprintf("%s waits here.", c.Name)}
	case containsAny(order, "follow", "come"):
		c.Waiting = false
		c.WaitRoom = 0
		return []string{fmt.Sprintf("%s falls in behind you.", c.Name)}
	case containsAny(order, "aggressive", "attack"):
		c.Stance = types.StanceAggressive
		return []string{fmt.Sprintf("%s readies for battle.", c.Name)}
	case containsAny(order, "defensive", "defend"):
		c.Stance = types.StanceDefensive
		return []string{fmt.Sprintf("%s takes a guarded stance.", c.Name)}
	case containsAny(order, "support", "help"):
		c.Stance = types.StanceSupport
		return []string{fmt.Sprintf("%s will support you.", c.Name)}
	case containsAny(order, "passive", "rest"):
		c.Stance = types.StancePassive
		return []string{fmt.Sprintf("%s stands down.", c.Name)}
	default:
		return []string{fmt.Sprintf("%s doesn't understand that order.", c.Name)}
	}
}

// handleGather recalls every waiting companion to the player's side.
func (e *Engine) handleGather() []string {
	recalled := 0
	for _, c := range e.World.Companions {
		if c.Waiting {
			c.Waiting = false
			c.WaitRoom = 0
			recalled++
		}
	}
	if recalled == 0 {
		return []string{"Your party is already with you."}
	}
	return []string{"Your party regroups around you."}
}

// ShowParty renders the party roster.
func (e *Engine) ShowParty() []string {
	if len(e.World.Companions) == 0 {
		return []string{"You are traveling alone."}
	}
	out := []string{"Your party:"}
	for _, c := range e.World.Companions {
		line := fmt.Sprintf("  %s (%s) — health %d/%d, loyalty %d, stance %s",
			c.Name, c.Role, c.Health, c.MaxHealth, c.Loyalty, c.Stance)
		if !c.Alive() {
			line = fmt.Sprintf("  %s (%s) — fallen", c.Name, c.Role)
		} else if c.Waiting {
			line += " (waiting)"
		}
		out = append(out, line)
	}
	return out
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
