package domain

import (
	"fmt"
	"strings"
)

type GameType string

const (
	GameDiamonds       GameType = "diamonds"
	GameHearts         GameType = "hearts"
	GameSpades         GameType = "spades"
	GameClubs          GameType = "clubs"
	GameGrand          GameType = "grand"
	GameGrandHand      GameType = "grand-hand"
	GameNull           GameType = "null"
	GameNullRevolution GameType = "null-revolution"
	GameDurchmarsch    GameType = "durchmarsch"
	GameRamsch         GameType = "ramsch"
)

var gameTypeAliases = map[string]GameType{
	"ouros":   GameDiamonds,
	"copas":   GameHearts,
	"espadas": GameSpades,
	"paus":    GameClubs,
}

// ParseGameType accepts the canonical names, spaces instead of hyphens and
// the Portuguese suit names.
func ParseGameType(raw string) (GameType, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.Join(strings.Fields(normalized), "-")
	if alias, ok := gameTypeAliases[normalized]; ok {
		return alias, nil
	}

	gameType := GameType(normalized)
	if !gameType.Valid() {
		return "", fmt.Errorf("%w: unknown game type %q", ErrValidation, raw)
	}

	return gameType, nil
}

func (g GameType) Valid() bool {
	switch g {
	case GameDiamonds, GameHearts, GameSpades, GameClubs,
		GameGrand, GameGrandHand,
		GameNull, GameNullRevolution,
		GameDurchmarsch, GameRamsch:
		return true
	default:
		return false
	}
}

func (g GameType) IsSuit() bool {
	switch g {
	case GameDiamonds, GameHearts, GameSpades, GameClubs:
		return true
	default:
		return false
	}
}

func (g GameType) IsGrand() bool {
	return g == GameGrand || g == GameGrandHand
}

func (g GameType) IsNull() bool {
	return g == GameNull || g == GameNullRevolution
}

// UsesComSem reports whether the base score is derived from the com/sem tier.
func (g GameType) UsesComSem() bool {
	return g.IsSuit() || g.IsGrand()
}

type RoundMode string

const (
	RoundBock   RoundMode = "Bock"
	RoundRamsch RoundMode = "Ramsch"
)

func (m RoundMode) Valid() bool {
	return m == RoundBock || m == RoundRamsch
}

// Suffix is the one-letter marker shown next to a play in the history.
func (m RoundMode) Suffix() string {
	switch m {
	case RoundBock:
		return "B"
	case RoundRamsch:
		return "R"
	default:
		return "?"
	}
}
