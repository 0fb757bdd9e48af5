package domain

import "fmt"

// Null table keys.
const (
	NullKeyPlain      = "null"
	NullKeyHand       = "null-hand"
	NullKeyOuvert     = "null-ouvert"
	NullKeyHandOuvert = "null-hand-ouvert"
	NullKeyRevolution = "null-revolution"
)

// Rules holds the constants the scoring engine reads but does not decide.
type Rules struct {
	NullBase          map[string]int `json:"nullBase"`
	GrandOuvertBase   int            `json:"grandOuvertBase"`
	DurchmarschBase   int            `json:"durchmarschBase"`
	BockRoundDoubling bool           `json:"bockRoundDoubling"`
}

func DefaultRules() Rules {
	return Rules{
		NullBase: map[string]int{
			NullKeyPlain:      23,
			NullKeyHand:       35,
			NullKeyOuvert:     46,
			NullKeyHandOuvert: 59,
			NullKeyRevolution: 92,
		},
		GrandOuvertBase: 36,
		DurchmarschBase: 120,
	}
}

func (r Rules) Validate() error {
	if r.GrandOuvertBase <= 0 {
		return fmt.Errorf("%w: grand ouvert base must be positive", ErrValidation)
	}
	if r.DurchmarschBase <= 0 {
		return fmt.Errorf("%w: durchmarsch base must be positive", ErrValidation)
	}
	for key, value := range r.NullBase {
		if value <= 0 {
			return fmt.Errorf("%w: null base %q must be positive", ErrValidation, key)
		}
	}

	return nil
}

// Clone returns a copy that does not share the null table.
func (r Rules) Clone() Rules {
	out := r
	if r.NullBase != nil {
		out.NullBase = make(map[string]int, len(r.NullBase))
		for key, value := range r.NullBase {
			out.NullBase[key] = value
		}
	}
	return out
}

// NullKey derives the null table key from the game type and the Hand/Ouvert
// declaration.
func NullKey(g GameType, m Modifiers) string {
	if g == GameNullRevolution {
		return NullKeyRevolution
	}

	switch {
	case m.Hand && m.Ouvert:
		return NullKeyHandOuvert
	case m.Hand:
		return NullKeyHand
	case m.Ouvert:
		return NullKeyOuvert
	default:
		return NullKeyPlain
	}
}
