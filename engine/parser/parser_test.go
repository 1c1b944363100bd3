package parser

import (
	"testing"

	"github.com/sagacraft/sagacraft/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Bare verbs
		{
			name:  "look",
			input: "look",
			want:  types.Intent{Action: types.ActionLook},
		},
		{
			name:  "l → look",
			input: "l",
			want:  types.Intent{Action: types.ActionLook},
		},
		{
			name:  "i → inventory",
			input: "i",
			want:  types.Intent{Action: types.ActionInventory},
		},
		{
			name:  "stats → status",
			input: "stats",
			want:  types.Intent{Action: types.ActionStatus},
		},

		// Verb synonyms
		{
			name:  "take key → get key",
			input: "take key",
			want:  types.Intent{Action: types.ActionGet, Target: "key"},
		},
		{
			name:  "grab the torch",
			input: "grab the torch",
			want:  types.Intent{Action: types.ActionGet, Target: "torch"},
		},
		{
			name:  "hit goblin → attack goblin",
			input: "hit goblin",
			want:  types.Intent{Action: types.ActionAttack, Target: "goblin"},
		},
		{
			name:  "examine sword → look sword",
			input: "examine sword",
			want:  types.Intent{Action: types.ActionLook, Target: "sword"},
		},
		{
			name:  "quaff potion → drink potion",
			input: "quaff potion",
			want:  types.Intent{Action: types.ActionDrink, Target: "potion"},
		},

		// Two-word verb phrases win over single words
		{
			name:  "pick up sword",
			input: "pick up sword",
			want:  types.Intent{Action: types.ActionGet, Target: "sword"},
		},
		{
			name:  "put down shield → drop shield",
			input: "put down shield",
			want:  types.Intent{Action: types.ActionDrop, Target: "shield"},
		},
		{
			name:  "look for key → search key",
			input: "look for key",
			want:  types.Intent{Action: types.ActionSearch, Target: "key"},
		},

		// Directions
		{
			name:  "bare north",
			input: "north",
			want:  types.Intent{Action: types.ActionMove, Direction: "north"},
		},
		{
			name:  "n shortcut",
			input: "n",
			want:  types.Intent{Action: types.ActionMove, Direction: "north"},
		},
		{
			name:  "go northward",
			input: "go northward",
			want:  types.Intent{Action: types.ActionMove, Direction: "north"},
		},
		{
			name:  "walk southwards",
			input: "walk southwards",
			want:  types.Intent{Action: types.ActionMove, Direction: "south"},
		},
		{
			name:  "go ne",
			input: "go ne",
			want:  types.Intent{Action: types.ActionMove, Direction: "northeast"},
		},
		{
			name:  "go upstairs",
			input: "go upstairs",
			want:  types.Intent{Action: types.ActionMove, Direction: "up"},
		},
		{
			name:  "go in",
			input: "go in",
			want:  types.Intent{Action: types.ActionMove, Direction: "in"},
		},
		{
			name:  "go outside",
			input: "go outside",
			want:  types.Intent{Action: types.ActionMove, Direction: "out"},
		},

		// enter / exit
		{
			name:  "enter tavern",
			input: "enter tavern",
			want:  types.Intent{Action: types.ActionMove, Target: "tavern"},
		},
		{
			name:  "bare exit",
			input: "exit",
			want:  types.Intent{Action: types.ActionMove, Direction: "out"},
		},
		{
			name:  "go to the tavern",
			input: "go to the tavern",
			want:  types.Intent{Action: types.ActionMove, Target: "tavern"},
		},

		// drop always takes the whole rest
		{
			name:  "leave the armor → drop armor",
			input: "leave the armor",
			want:  types.Intent{Action: types.ActionDrop, Target: "armor"},
		},

		// Party orders vs talk
		{
			name:  "tell guard to wait",
			input: "tell guard to wait",
			want:  types.Intent{Action: types.ActionPartyOrder, Companion: "guard", Order: "wait"},
		},
		{
			name:  "order elf to be aggressive",
			input: "order elf to be aggressive",
			want:  types.Intent{Action: types.ActionPartyOrder, Companion: "elf", Order: "be aggressive"},
		},
		{
			name:  "tell merchant (no order) → talk",
			input: "tell merchant",
			want:  types.Intent{Action: types.ActionTalk, Target: "merchant"},
		},

		// Prepositional decomposition
		{
			name:  "put coin in chest",
			input: "put coin in chest",
			want:  types.Intent{Action: types.ActionPut, Object: "coin", Container: "chest"},
		},
		{
			name:  "put gem into the bag",
			input: "put gem into the bag",
			want:  types.Intent{Action: types.ActionPut, Object: "gem", Container: "bag"},
		},
		{
			name:  "put book on shelf",
			input: "put book on shelf",
			want:  types.Intent{Action: types.ActionPut, Object: "book", Target: "shelf"},
		},
		{
			name:  "give sword to guard",
			input: "give sword to guard",
			want:  types.Intent{Action: types.ActionGive, Object: "sword", Target: "guard"},
		},
		{
			name:  "ask guard about dragon",
			input: "ask guard about dragon",
			want:  types.Intent{Action: types.ActionTalk, Target: "guard", Topic: "dragon"},
		},
		{
			name:  "attack troll with sword",
			input: "attack troll with sword",
			want:  types.Intent{Action: types.ActionAttack, Object: "troll", Instrument: "sword"},
		},
		{
			name:  "in beats about",
			input: "put note about dragons in chest",
			want:  types.Intent{Action: types.ActionPut, Object: "note about dragons", Container: "chest"},
		},

		// Talk phrasings
		{
			name:  "talk to guard",
			input: "talk to guard",
			want:  types.Intent{Action: types.ActionTalk, Target: "guard"},
		},
		{
			name:  "speak with guard",
			input: "speak with guard",
			want:  types.Intent{Action: types.ActionTalk, Target: "guard"},
		},

		// Questions
		{
			name:  "what am i carrying → inventory",
			input: "what am i carrying",
			want:  types.Intent{Action: types.ActionInventory},
		},
		{
			name:  "what do i have → inventory",
			input: "what do i have",
			want:  types.Intent{Action: types.ActionInventory},
		},
		{
			name:  "where am i",
			input: "where am i",
			want:  types.Intent{Action: types.ActionQuestion, QuestionType: "question", Text: "where am i"},
		},
		{
			name:  "can i go north",
			input: "can i go north",
			want:  types.Intent{Action: types.ActionQuestion, QuestionType: "ability_check", Text: "can i go north"},
		},
		{
			name:  "is there a door",
			input: "is there a door",
			want:  types.Intent{Action: types.ActionQuestion, QuestionType: "existence_check", Text: "is there a door"},
		},

		// Quitting ("exit" stays movement)
		{
			name:  "quit",
			input: "quit",
			want:  types.Intent{Action: types.ActionQuit},
		},
		{
			name:  "q → quit",
			input: "q",
			want:  types.Intent{Action: types.ActionQuit},
		},
		{
			name:  "goodbye → quit",
			input: "goodbye",
			want:  types.Intent{Action: types.ActionQuit},
		},

		// Case insensitivity
		{
			name:  "TAKE KEY",
			input: "TAKE KEY",
			want:  types.Intent{Action: types.ActionGet, Target: "key"},
		},

		// Unknown verbs fall back to look
		{
			name:  "unknown single word",
			input: "xyzzy",
			want:  types.Intent{Action: types.ActionLook, Target: "xyzzy"},
		},
		{
			name:  "unknown verb with object",
			input: "fondle the statue",
			want:  types.Intent{Action: types.ActionLook, Target: "fondle statue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDirectionSynonymsRoundTrip(t *testing.T) {
	for dir, syns := range directionSynonyms {
		if got := normalizeDirection(dir); got != dir {
			t.Errorf("normalizeDirection(%q) = %q, want %q", dir, got, dir)
		}
		for _, s := range syns {
			if got := normalizeDirection(s); got != dir {
				t.Errorf("normalizeDirection(%q) = %q, want %q", s, got, dir)
			}
		}
	}
}

func TestVerbSynonymsAreClosed(t *testing.T) {
	// Every synonym must map back to exactly its canonical verb, and no
	// synonym may appear under two verbs.
	seen := map[string]string{}
	for verb, syns := range verbSynonyms {
		for _, s := range append([]string{verb}, syns...) {
			if prev, dup := seen[s]; dup && prev != verb {
				t.Errorf("synonym %q registered under both %q and %q", s, prev, verb)
			}
			seen[s] = verb
			if got := normalizeVerb(s); got != verb {
				t.Errorf("normalizeVerb(%q) = %q, want %q", s, got, verb)
			}
		}
	}
}
