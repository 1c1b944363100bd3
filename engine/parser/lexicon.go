package parser

import (
	"strings"

	"github.com/sagacraft/sagacraft/types"
)

// verbSynonyms maps each canonical verb to its accepted synonyms.
// Two-word entries ("pick up", "peer at") are matched before single words
// at the same token position. "tell" is deliberately absent from the talk
// synonyms: it is handled specially so "tell guard to wait" parses as a
// party order while "tell merchant" parses as talk.
var verbSynonyms = map[string][]string{
	// Movement
	"go":    {"move", "walk", "run", "travel", "head", "proceed"},
	"enter": {"step into"},
	"exit":  {"depart"},

	// Looking
	"look":   {"l", "examine", "inspect", "check", "view", "observe", "see", "study", "peer at", "gaze at"},
	"read":   {"peruse", "scan"},
	"search": {"seek", "hunt for", "look for", "find"},

	// Taking / dropping
	"get":  {"take", "grab", "pick up", "acquire", "obtain", "collect", "lift", "snatch", "gather"},
	"drop": {"put down", "leave", "discard", "release", "abandon"},
	"put":  {"place", "set", "insert", "stow"},

	// Inventory
	"inventory": {"i", "inv", "items", "possessions", "belongings"},

	// Equipment
	"equip":   {"wear", "wield", "don", "put on", "arm"},
	"unequip": {"remove", "take off", "doff", "unwield"},

	// Combat
	"attack": {"fight", "hit", "strike", "kill", "slay", "battle", "combat", "assault", "hurt", "punch", "kick"},
	"flee":   {"run away", "escape", "retreat"},

	// Interaction
	"talk":  {"speak", "chat", "converse", "say", "ask"},
	"give":  {"offer", "hand", "present"},
	"trade": {"barter", "exchange", "swap"},
	"buy":   {"purchase"},
	"sell":  {},

	// Using items
	"use":   {"utilize", "employ", "activate", "apply"},
	"open":  {"unlock", "unfasten"},
	"close": {"shut", "lock", "fasten"},
	"drink": {"sip", "quaff", "gulp"},
	"eat":   {"consume", "devour", "munch"},

	// Information
	"status": {"stats", "condition", "health"},
	"help":   {"?", "commands", "instructions"},
	"quests": {"missions", "tasks", "objectives"},

	// Party
	"recruit": {"hire", "enlist", "invite"},
	"dismiss": {"fire", "send away"},
	"party":   {"companions", "group", "team", "followers"},
	"order":   {"tell", "command", "instruct", "direct"},
	"regroup": {"reunite"},

	// Session ("exit" is movement, not quitting)
	"quit": {"q", "bye", "goodbye", "end"},
}

// canonicalActions maps canonical verb strings to Intent actions. Verbs
// without an entry pass through as their own action tag.
var canonicalActions = map[string]types.Action{
	"go":        types.ActionMove,
	"look":      types.ActionLook,
	"read":      types.ActionRead,
	"search":    types.ActionSearch,
	"get":       types.ActionGet,
	"drop":      types.ActionDrop,
	"put":       types.ActionPut,
	"inventory": types.ActionInventory,
	"equip":     types.ActionEquip,
	"unequip":   types.ActionUnequip,
	"attack":    types.ActionAttack,
	"flee":      types.ActionFlee,
	"talk":      types.ActionTalk,
	"give":      types.ActionGive,
	"trade":     types.ActionTrade,
	"buy":       types.ActionBuy,
	"sell":      types.ActionSell,
	"use":       types.ActionUse,
	"open":      types.ActionOpen,
	"close":     types.ActionClose,
	"drink":     types.ActionDrink,
	"eat":       types.ActionEat,
	"status":    types.ActionStatus,
	"help":      types.ActionHelp,
	"quests":    types.ActionQuests,
	"recruit":   types.ActionRecruit,
	"dismiss":   types.ActionDismiss,
	"party":     types.ActionParty,
	"regroup":   types.ActionGather,
	"quit":      types.ActionQuit,
}

// directionSynonyms maps each of the ten canonical directions to its
// short form and -ward/-wards variants.
var directionSynonyms = map[string][]string{
	"north":     {"n", "northward", "northwards"},
	"south":     {"s", "southward", "southwards"},
	"east":      {"e", "eastward", "eastwards"},
	"west":      {"w", "westward", "westwards"},
	"up":        {"u", "upward", "upwards", "upstairs"},
	"down":      {"d", "downward", "downwards", "downstairs"},
	"northeast": {"ne", "north-east"},
	"northwest": {"nw", "north-west"},
	"southeast": {"se", "south-east"},
	"southwest": {"sw", "south-west"},
}

// stopWords are articles and prepositions stripped from object phrases
// when no prepositional split applies.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"at": true, "to": true, "in": true, "on": true,
	"from": true, "with": true, "of": true,
	"into": true, "onto": true,
	"my": true, "some": true,
}

// synonymToVerb is the inverted verb table, built once at init.
var synonymToVerb = map[string]string{}

func init() {
	for verb, syns := range verbSynonyms {
		synonymToVerb[verb] = verb
		for _, s := range syns {
			synonymToVerb[s] = verb
		}
	}
}

// normalizeVerb maps a word (or two-word phrase) to its canonical verb.
// Returns "" when the word is not a known verb or synonym.
func normalizeVerb(word string) string {
	return synonymToVerb[word]
}

// KnowsVerb reports whether a word is a recognized verb or synonym.
// The engine uses it to tell a failed examine apart from input whose
// verb was never understood at all.
func KnowsVerb(word string) bool {
	return synonymToVerb[strings.ToLower(word)] != ""
}

// normalizeDirection maps a word to its canonical direction, or "".
func normalizeDirection(word string) string {
	if _, ok := directionSynonyms[word]; ok {
		return word
	}
	for dir, syns := range directionSynonyms {
		for _, s := range syns {
			if word == s {
				return dir
			}
		}
	}
	return ""
}

// actionFor converts a canonical verb into its Intent action tag.
func actionFor(verb string) types.Action {
	if a, ok := canonicalActions[verb]; ok {
		return a
	}
	return types.Action(verb)
}
