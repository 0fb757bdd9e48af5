package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxComSem is the longest unbroken matador run: four jacks and the seven
	// remaining trumps of a suit game.
	MaxComSem       = 11
	MaxRamschPoints = 120
	MaxSkatPushed   = 3
)

// Flag names a boolean modifier of a hand. The values double as the field
// names used by JSON consumers.
type Flag string

const (
	FlagHand               Flag = "hand"
	FlagOuvert             Flag = "ouvert"
	FlagSchneider          Flag = "schneider"
	FlagSchneiderAnnounced Flag = "schneiderAnunciado"
	FlagSchwarz            Flag = "schwartz"
	FlagSchwarzAnnounced   Flag = "schwartzAnunciado"
	FlagKontra             Flag = "kontra"
	FlagReh                Flag = "reh"
	FlagBock               Flag = "bock"
	FlagRursch             Flag = "rursch"
	FlagJungfrau           Flag = "jungfrau"
	FlagLost               Flag = "perdeu"
)

// factorFlags lists the flags that add one factor step, in evaluation order.
var factorFlags = []Flag{
	FlagHand,
	FlagOuvert,
	FlagSchneider,
	FlagSchneiderAnnounced,
	FlagSchwarz,
	FlagSchwarzAnnounced,
	FlagKontra,
	FlagReh,
	FlagBock,
	FlagRursch,
	FlagJungfrau,
}

var declaredFlags = append(append([]Flag{}, factorFlags...), FlagLost)

// flagParents maps a flag to the flag it cannot be declared without.
var flagParents = map[Flag]Flag{
	FlagSchneiderAnnounced: FlagSchneider,
	FlagSchwarzAnnounced:   FlagSchwarz,
	FlagReh:                FlagKontra,
	FlagBock:               FlagReh,
	FlagRursch:             FlagBock,
}

var (
	contraChain   = []Flag{FlagKontra, FlagReh, FlagBock, FlagRursch}
	trickFlags    = []Flag{FlagSchneider, FlagSchneiderAnnounced, FlagSchwarz, FlagSchwarzAnnounced}
	declarerFlags = append(append([]Flag{FlagHand, FlagOuvert, FlagLost}, trickFlags...), contraChain...)
	nullFlags     = append([]Flag{FlagHand, FlagOuvert, FlagLost}, contraChain...)
	revoFlags     = append([]Flag{FlagLost}, contraChain...)
	ramschFlags   = []Flag{FlagJungfrau}
)

func applicableFlags(g GameType) map[Flag]struct{} {
	var flags []Flag
	switch {
	case g.UsesComSem():
		flags = declarerFlags
	case g == GameNull:
		flags = nullFlags
	case g == GameNullRevolution:
		flags = revoFlags
	case g == GameRamsch, g == GameDurchmarsch:
		flags = ramschFlags
	}

	set := make(map[Flag]struct{}, len(flags))
	for _, flag := range flags {
		set[flag] = struct{}{}
	}
	return set
}

// Modifiers is the declared outcome of one hand.
type Modifiers struct {
	ComSem             *int   `json:"comSem,omitempty"`
	Hand               bool   `json:"hand"`
	Ouvert             bool   `json:"ouvert"`
	Schneider          bool   `json:"schneider"`
	SchneiderAnnounced bool   `json:"schneiderAnunciado"`
	Schwarz            bool   `json:"schwartz"`
	SchwarzAnnounced   bool   `json:"schwartzAnunciado"`
	Kontra             bool   `json:"kontra"`
	Reh                bool   `json:"reh"`
	Bock               bool   `json:"bock"`
	Rursch             bool   `json:"rursch"`
	Jungfrau           bool   `json:"jungfrau"`
	Lost               bool   `json:"perdeu"`
	RamschPoints       *int   `json:"pontosRamsch,omitempty"`
	SkatPushed         int    `json:"skatPushed"`
	Tie                bool   `json:"houveEmpate"`
	TieWinner          string `json:"tieWinner,omitempty"`
}

func (m Modifiers) Has(flag Flag) bool {
	switch flag {
	case FlagHand:
		return m.Hand
	case FlagOuvert:
		return m.Ouvert
	case FlagSchneider:
		return m.Schneider
	case FlagSchneiderAnnounced:
		return m.SchneiderAnnounced
	case FlagSchwarz:
		return m.Schwarz
	case FlagSchwarzAnnounced:
		return m.SchwarzAnnounced
	case FlagKontra:
		return m.Kontra
	case FlagReh:
		return m.Reh
	case FlagBock:
		return m.Bock
	case FlagRursch:
		return m.Rursch
	case FlagJungfrau:
		return m.Jungfrau
	case FlagLost:
		return m.Lost
	default:
		return false
	}
}

// Flags lists the declared boolean modifiers in evaluation order.
func (m Modifiers) Flags() []Flag {
	var flags []Flag
	for _, flag := range declaredFlags {
		if m.Has(flag) {
			flags = append(flags, flag)
		}
	}
	return flags
}

// Normalized returns a copy that shares no pointers with m.
func (m Modifiers) Normalized() Modifiers {
	out := m
	out.ComSem = copyInt(m.ComSem)
	out.RamschPoints = copyInt(m.RamschPoints)
	out.TieWinner = strings.TrimSpace(m.TieWinner)
	return out
}

// IsHandGame reports whether a loss is scored as a Hand loss.
func (m Modifiers) IsHandGame(g GameType) bool {
	return m.Hand || g == GameGrandHand
}

// Validate checks the modifiers against the game type. Player membership of
// TieWinner is checked by the session.
func (m Modifiers) Validate(g GameType) error {
	if !g.Valid() {
		return fmt.Errorf("%w: unknown game type %q", ErrValidation, g)
	}

	for _, flag := range declaredFlags {
		if !m.Has(flag) {
			continue
		}
		if parent, ok := flagParents[flag]; ok && !m.Has(parent) {
			return fmt.Errorf("%w: %s requires %s", ErrValidation, flag, parent)
		}
	}

	allowed := applicableFlags(g)
	for _, flag := range declaredFlags {
		if !m.Has(flag) {
			continue
		}
		if _, ok := allowed[flag]; !ok {
			return fmt.Errorf("%w: %s does not apply to %s", ErrValidation, flag, g)
		}
	}

	if err := m.validateComSem(g); err != nil {
		return err
	}
	if err := m.validateRamsch(g); err != nil {
		return err
	}

	return nil
}

func (m Modifiers) validateComSem(g GameType) error {
	if !g.UsesComSem() {
		if m.ComSem != nil {
			return fmt.Errorf("%w: comSem does not apply to %s", ErrValidation, g)
		}
		return nil
	}

	if m.ComSem == nil {
		if g.IsGrand() && m.Ouvert {
			return nil
		}
		return fmt.Errorf("%w: comSem is required for %s", ErrValidation, g)
	}
	if *m.ComSem < 0 || *m.ComSem > MaxComSem {
		return fmt.Errorf("%w: comSem must be within 0..%d, got %d", ErrValidation, MaxComSem, *m.ComSem)
	}

	return nil
}

func (m Modifiers) validateRamsch(g GameType) error {
	isRamsch := g == GameRamsch

	if m.RamschPoints != nil && !isRamsch {
		return fmt.Errorf("%w: pontosRamsch does not apply to %s", ErrValidation, g)
	}
	if isRamsch {
		if m.RamschPoints == nil {
			return fmt.Errorf("%w: pontosRamsch is required for ramsch", ErrValidation)
		}
		if *m.RamschPoints < 0 || *m.RamschPoints > MaxRamschPoints {
			return fmt.Errorf("%w: pontosRamsch must be within 0..%d, got %d", ErrValidation, MaxRamschPoints, *m.RamschPoints)
		}
	}

	if m.SkatPushed != 0 {
		if g != GameRamsch && g != GameDurchmarsch {
			return fmt.Errorf("%w: skatPushed does not apply to %s", ErrValidation, g)
		}
		if m.SkatPushed < 0 || m.SkatPushed > MaxSkatPushed {
			return fmt.Errorf("%w: skatPushed must be within 0..%d, got %d", ErrValidation, MaxSkatPushed, m.SkatPushed)
		}
	}

	if m.Tie && !isRamsch {
		return fmt.Errorf("%w: houveEmpate only applies to ramsch", ErrValidation)
	}
	if strings.TrimSpace(m.TieWinner) != "" && !m.Tie {
		return fmt.Errorf("%w: tieWinner requires houveEmpate", ErrValidation)
	}

	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// IntPtr is a convenience for building optional modifier values.
func IntPtr(v int) *int {
	return &v
}
