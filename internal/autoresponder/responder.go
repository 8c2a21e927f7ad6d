// Package autoresponder answers common listing questions (price, barter,
// availability) on behalf of the adspace owner.
package autoresponder

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"

	"adspace-chat/internal/optional"
)

// Attributes are the listing fields a reply may quote.
type Attributes struct {
	PricePerWeek      optional.Value[float64]
	IsBarterAvailable bool
	InUse             bool
}

// Intent is the kind of question a message asks.
type Intent int

const (
	IntentNone Intent = iota
	IntentAvailability
	IntentPrice
	IntentBarter
)

func (i Intent) String() string {
	switch i {
	case IntentAvailability:
		return "availability"
	case IntentPrice:
		return "price"
	case IntentBarter:
		return "barter"
	default:
		return "none"
	}
}

// DefaultKeywords maps lower-case word prefixes to the intent they signal.
// A keyword only matches at the start of a word, so "cena" does not fire
// inside "scena".
var DefaultKeywords = map[string]Intent{
	"barter":      IntentBarter,
	"wymian":      IntentBarter,
	"exchange":    IntentBarter,
	"trade":       IntentBarter,
	"cena":        IntentPrice,
	"cenę":        IntentPrice,
	"ceny":        IntentPrice,
	"cenie":       IntentPrice,
	"ceną":        IntentPrice,
	"cenach":      IntentPrice,
	"cenami":      IntentPrice,
	"cenow":       IntentPrice,
	"koszt":       IntentPrice,
	"płac":        IntentPrice,
	"zapłac":      IntentPrice,
	"opłac":       IntentPrice,
	"stawk":       IntentPrice,
	"price":       IntentPrice,
	"cost":        IntentPrice,
	"how much":    IntentPrice,
	"dostępn":     IntentAvailability,
	"niedostępn":  IntentAvailability,
	"wolne":       IntentAvailability,
	"wolna":       IntentAvailability,
	"termin":      IntentAvailability,
	"available":   IntentAvailability,
	"unavailable": IntentAvailability,
	"vacant":      IntentAvailability,
}

// Responder is stateless after construction and safe for concurrent use.
type Responder struct {
	matcher  *goahocorasick.Machine
	keywords map[string]Intent
}

// New builds the keyword automaton.
func New(keywords map[string]Intent) (*Responder, error) {
	patterns := make([][]rune, 0, len(keywords))
	normalized := make(map[string]Intent, len(keywords))
	for word, intent := range keywords {
		runes := lowerRunes(word)
		if len(runes) == 0 {
			continue
		}
		key := string(runes)
		if _, dup := normalized[key]; dup {
			continue
		}
		normalized[key] = intent
		patterns = append(patterns, runes)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Responder{matcher: m, keywords: normalized}, nil
}

// Classify returns the highest-priority intent found in text.
func (r *Responder) Classify(text string) Intent {
	runes := lowerRunes(text)
	if len(runes) == 0 {
		return IntentNone
	}

	best := IntentNone
	for _, term := range r.matcher.MultiPatternSearch(runes, false) {
		if !wordStart(runes, term.Pos) {
			continue
		}
		if intent := r.keywords[string(term.Word)]; intent > best {
			best = intent
		}
	}
	return best
}

// Reply returns the canned answer for text, or an absent value when the
// message asks nothing the responder recognizes.
func (r *Responder) Reply(text string, attrs Attributes) optional.Value[string] {
	intent := r.Classify(text)
	if intent == IntentNone {
		return optional.None[string]()
	}
	return optional.Some(render(intent, attrs, languageOf(text)))
}

func wordStart(runes []rune, pos int) bool {
	if pos <= 0 || pos > len(runes) {
		return true
	}
	prev := runes[pos-1]
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
}

func lowerRunes(s string) []rune {
	out := []rune(s)
	for i, c := range out {
		out[i] = unicode.ToLower(c)
	}
	return out
}

func languageOf(text string) language {
	info := whatlanggo.Detect(text)
	if info.Lang == whatlanggo.Eng && info.IsReliable() {
		return english
	}
	return polish
}
