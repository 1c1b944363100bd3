package engine

import (
	"fmt"
	"strings"

	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/types"
)

func (e *Engine) handleTalk(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Talk to whom?"}
	}

	m := e.World.FindMonsterInRoom(intent.Target, e.World.Player.CurrentRoom)
	if m == nil {
		return []string{fmt.Sprintf("There is no %s here to talk to.", intent.Target)}
	}

	p := e.payload()
	p.NPC = m
	p.Topic = intent.Topic
	out := e.Bus.Trigger(events.OnTalk, p)
	if p.Cancel {
		if p.Message != "" {
			out = append(out, p.Message)
		}
		return out
	}
	if p.Handled {
		return out
	}

	d := e.World.DialogueFor(m.ID)
	switch {
	case d != nil && intent.Topic != "":
		out = append(out, e.discussTopic(m, d, intent.Topic)...)
	case d != nil:
		out = append(out, fmt.Sprintf("%s says: \"%s\"", m.Name, d.Greeting))
		if keywords := availableTopics(d); len(keywords) > 0 {
			out = append(out, "You could ask about: "+strings.Join(keywords, ", "))
		}
	case m.Friendliness == types.Hostile:
		out = append(out, fmt.Sprintf("%s snarls at you. Words won't help here.", m.Name))
	default:
		out = append(out, fmt.Sprintf("%s has nothing to say right now.", m.Name))
	}

	return append(out, e.advanceQuests("talk_to_npc", m.ID)...)
}

func (e *Engine) discussTopic(m *types.Monster, d *types.Dialogue, topic string) []string {
	for i := range d.Topics {
		t := &d.Topics[i]
		if !strings.Contains(strings.ToLower(t.Keyword), strings.ToLower(topic)) {
			continue
		}
		if t.OneTimeOnly && t.Used {
			return []string{fmt.Sprintf("%s has said all there is to say about that.", m.Name)}
		}
		if t.RequiresItem != 0 && !e.World.HasInventoryItem(t.RequiresItem) {
			return []string{fmt.Sprintf("%s won't discuss that with you yet.", m.Name)}
		}

		out := []string{fmt.Sprintf("%s says: \"%s\"", m.Name, t.Response)}
		if t.GivesItem != 0 {
			if it, ok := e.World.Items[t.GivesItem]; ok {
				e.World.AddToInventory(it)
				out = append(out, fmt.Sprintf("%s gives you the %s.", m.Name, it.Name))
			}
		}
		if t.UnlocksQuest != 0 {
			out = append(out, e.startQuest(t.UnlocksQuest)...)
		}
		if t.MakesFriendly {
			m.Friendliness = types.Friendly
		}
		t.Used = true
		return out
	}
	return []string{fmt.Sprintf("%s shrugs. \"I know nothing about that.\"", m.Name)}
}

func availableTopics(d *types.Dialogue) []string {
	var keywords []string
	for i := range d.Topics {
		t := &d.Topics[i]
		if t.OneTimeOnly && t.Used {
			continue
		}
		keywords = append(keywords, t.Keyword)
	}
	return keywords
}

func (e *Engine) handleGive(intent types.Intent) []string {
	if intent.Object == "" || intent.Target == "" {
		return []string{"Give what to whom?"}
	}

	it := e.World.FindInventoryItem(intent.Object)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Object)}
	}
	m := e.World.FindMonsterInRoom(intent.Target, e.World.Player.CurrentRoom)
	if m == nil {
		return []string{fmt.Sprintf("There is no %s here.", intent.Target)}
	}

	e.World.RemoveFromInventory(it, m.ID)
	m.Inventory = append(m.Inventory, it.ID)
	out := []string{fmt.Sprintf("You give the %s to %s.", it.Name, m.Name)}

	// A gift softens a bad disposition one step.
	switch m.Friendliness {
	case types.Hostile:
		m.Friendliness = types.Neutral
		out = append(out, fmt.Sprintf("%s eyes you with a little less malice.", m.Name))
	case types.Neutral:
		m.Friendliness = types.Friendly
		out = append(out, fmt.Sprintf("%s smiles at you warmly.", m.Name))
	}
	return out
}

func (e *Engine) handleTrade(intent types.Intent) []string {
	m := e.tradingPartner(intent.Target)
	if m == nil {
		return []string{"There is no one here to trade with."}
	}

	stock := e.World.MonsterItems(m)
	if len(stock) == 0 {
		return []string{fmt.Sprintf("%s has nothing for sale.", m.Name)}
	}
	out := []string{fmt.Sprintf("%s offers:", m.Name)}
	for _, it := range stock {
		out = append(out, fmt.Sprintf("  %s — %d gold", it.Name, it.Value))
	}
	out = append(out, fmt.Sprintf("You have %d gold.", e.World.Player.Gold))
	return out
}

func (e *Engine) handleBuy(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Buy what?"}
	}

	m := e.tradingPartner("")
	if m == nil {
		return []string{"There is no one here to buy from."}
	}

	var it *types.Item
	for _, stock := range e.World.MonsterItems(m) {
		if strings.Contains(strings.ToLower(stock.Name), strings.ToLower(intent.Target)) {
			it = stock
			break
		}
	}
	if it == nil {
		return []string{fmt.Sprintf("%s isn't selling a %s.", m.Name, intent.Target)}
	}
	if e.World.Player.Gold < it.Value {
		return []string{fmt.Sprintf("You can't afford the %s. It costs %d gold.", it.Name, it.Value)}
	}

	e.World.Player.Gold -= it.Value
	m.Gold += it.Value
	removeID(&m.Inventory, it.ID)
	e.World.AddToInventory(it)
	return []string{fmt.Sprintf("You buy the %s for %d gold.", it.Name, it.Value)}
}

func (e *Engine) handleSell(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Sell what?"}
	}

	m := e.tradingPartner("")
	if m == nil {
		return []string{"There is no one here to sell to."}
	}

	it := e.World.FindInventoryItem(intent.Target)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Target)}
	}

	price := it.Value / 2
	if price < 1 {
		price = 1
	}
	if m.Gold < price {
		return []string{fmt.Sprintf("%s can't afford your %s.", m.Name, it.Name)}
	}

	if e.World.Player.EquippedWeapon == it.ID {
		e.World.Player.EquippedWeapon = 0
	}
	if e.World.Player.EquippedArmor == it.ID {
		e.World.Player.EquippedArmor = 0
	}
	e.World.RemoveFromInventory(it, m.ID)
	m.Inventory = append(m.Inventory, it.ID)
	m.Gold -= price
	e.World.Player.Gold += price
	return []string{fmt.Sprintf("You sell the %s for %d gold.", it.Name, price)}
}

// tradingPartner picks the merchant to deal with: the named NPC if
// given, otherwise the first trader in the room.
func (e *Engine) tradingPartner(name string) *types.Monster {
	room := e.World.Player.CurrentRoom
	if name != "" {
		m := e.World.FindMonsterInRoom(name, room)
		if m != nil && m.CanTrade {
			return m
		}
		return nil
	}
	for _, m := range e.World.MonstersInRoom(room) {
		if m.CanTrade {
			return m
		}
	}
	return nil
}

func removeID(s *[]int, id int) {
	for i, v := range *s {
		if v == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return
		}
	}
}
