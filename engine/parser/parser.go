// Package parser turns raw player input into a structured Intent.
//
// Parsing is pure and total: no side effects, and every non-empty input
// produces an Intent — unrecognized verbs fall back to a look at the
// phrase rather than an error.
package parser

import (
	"regexp"
	"strings"

	"github.com/sagacraft/sagacraft/types"
)

var (
	inventoryQuestionRe = regexp.MustCompile(`^what (am i|do i) (carrying|have|hold)`)
	questionWordRe      = regexp.MustCompile(`^(what|where|who|why|how|when) `)
	abilityQuestionRe   = regexp.MustCompile(`^can i `)
	existenceQuestionRe = regexp.MustCompile(`^is there `)
)

// Parse converts one line of input into an Intent. Empty input yields
// ActionNone; everything else gets a best-effort interpretation.
func Parse(text string) types.Intent {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return types.Intent{Action: types.ActionNone}
	}

	// Fixed question idioms take precedence over verb matching, so that
	// "what am i carrying" never parses as a talk at "am i carrying".
	if inventoryQuestionRe.MatchString(text) {
		return types.Intent{Action: types.ActionInventory}
	}
	if abilityQuestionRe.MatchString(text) {
		return types.Intent{Action: types.ActionQuestion, QuestionType: "ability_check", Text: text}
	}
	if existenceQuestionRe.MatchString(text) {
		return types.Intent{Action: types.ActionQuestion, QuestionType: "existence_check", Text: text}
	}
	if questionWordRe.MatchString(text) {
		return types.Intent{Action: types.ActionQuestion, QuestionType: "question", Text: text}
	}

	words := strings.Fields(text)

	// Leftmost-longest verb scan: at each position try the two-word
	// phrase before the single word, so "pick up sword" finds "pick up"
	// rather than failing on "pick".
	verb, raw, rest := scanVerb(words)
	if verb == "" {
		if dir := normalizeDirection(text); dir != "" {
			return types.Intent{Action: types.ActionMove, Direction: dir}
		}
		return types.Intent{Action: types.ActionLook, Target: cleanPhrase(text)}
	}

	if verb == "go" {
		switch rest {
		case "in", "inside":
			return types.Intent{Action: types.ActionMove, Direction: "in"}
		case "out", "outside":
			return types.Intent{Action: types.ActionMove, Direction: "out"}
		}
	}

	if dir := normalizeDirection(rest); dir != "" {
		return types.Intent{Action: types.ActionMove, Direction: dir}
	}
	if dir := normalizeDirection(raw); dir != "" {
		return types.Intent{Action: types.ActionMove, Direction: dir}
	}

	// "tell guard to wait" is a party order; "tell merchant" is talk.
	if verb == "order" {
		if before, after, ok := strings.Cut(rest, " to "); ok {
			return types.Intent{
				Action:    types.ActionPartyOrder,
				Companion: cleanPhrase(before),
				Order:     strings.TrimSpace(after),
			}
		}
		if raw == "tell" {
			return types.Intent{Action: types.ActionTalk, Target: cleanPhrase(rest)}
		}
		return types.Intent{Action: types.ActionPartyOrder, Companion: cleanPhrase(rest)}
	}

	if (verb == "enter" || verb == "exit") && rest != "" {
		return types.Intent{Action: types.ActionMove, Target: cleanPhrase(rest)}
	}
	if verb == "drop" {
		return types.Intent{Action: types.ActionDrop, Target: cleanPhrase(rest)}
	}
	if verb == "exit" {
		return types.Intent{Action: types.ActionMove, Direction: "out"}
	}

	action := actionFor(verb)

	// Prepositional decomposition, first match wins, split on the first
	// occurrence only.
	for _, p := range prepositionSplits {
		before, after, ok := cutEither(rest, p.seps)
		if !ok {
			continue
		}
		in := types.Intent{Action: action}
		switch p.slot {
		case slotContainer:
			in.Object, in.Container = cleanPhrase(before), cleanPhrase(after)
		case slotTarget:
			in.Object, in.Target = cleanPhrase(before), cleanPhrase(after)
		case slotTopic:
			in.Target, in.Topic = cleanPhrase(before), cleanPhrase(after)
		case slotInstrument:
			in.Object, in.Instrument = cleanPhrase(before), cleanPhrase(after)
		}
		return in
	}

	return types.Intent{Action: action, Target: cleanPhrase(rest)}
}

type prepSlot int

const (
	slotContainer prepSlot = iota
	slotTarget
	slotTopic
	slotInstrument
)

// prepositionSplits is ordered by priority: containment beats surface
// placement beats recipient beats topic beats instrument.
var prepositionSplits = []struct {
	seps []string
	slot prepSlot
}{
	{[]string{" in ", " into "}, slotContainer},
	{[]string{" on ", " onto "}, slotTarget},
	{[]string{" to "}, slotTarget},
	{[]string{" about "}, slotTopic},
	{[]string{" with "}, slotInstrument},
}

// scanVerb finds the first verb in words, preferring a two-word phrase
// over a single word at each position. It returns the canonical verb,
// the raw matched text, and everything after the match.
func scanVerb(words []string) (verb, raw, rest string) {
	for i := range words {
		if i+1 < len(words) {
			phrase := words[i] + " " + words[i+1]
			if v := normalizeVerb(phrase); v != "" {
				return v, phrase, strings.Join(words[i+2:], " ")
			}
		}
		if v := normalizeVerb(words[i]); v != "" {
			return v, words[i], strings.Join(words[i+1:], " ")
		}
	}
	return "", "", ""
}

// cutEither splits s on the first separator that occurs in it.
func cutEither(s string, seps []string) (before, after string, ok bool) {
	for _, sep := range seps {
		if b, a, found := strings.Cut(s, sep); found {
			return b, a, true
		}
	}
	return "", "", false
}

// cleanPhrase strips articles and dangling prepositions from a phrase.
func cleanPhrase(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
