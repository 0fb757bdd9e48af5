package domain

import "fmt"

type StepOp string

const (
	StepBase StepOp = "base"
	StepAdd  StepOp = "add"
	StepMul  StepOp = "mul"
)

// Step is one entry of the factor breakdown.
type Step struct {
	Name  string `json:"name"`
	Op    StepOp `json:"op"`
	Value int    `json:"value"`
}

// ScoreResult is the outcome of scoring one hand.
// Points = sign * BaseScore * TotalFactor * RoundMultiplier.
type ScoreResult struct {
	BaseScore       int    `json:"baseScore"`
	TotalFactor     int    `json:"totalFactor"`
	RoundMultiplier int    `json:"roundMultiplier"`
	Points          int    `json:"points"`
	Steps           []Step `json:"steps,omitempty"`
}

// Score computes the signed result of one hand. It has no side effects.
func Score(g GameType, m Modifiers, mode RoundMode, rules Rules) (ScoreResult, error) {
	if !mode.Valid() {
		return ScoreResult{}, fmt.Errorf("%w: unknown round mode %q", ErrValidation, mode)
	}
	if err := m.Validate(g); err != nil {
		return ScoreResult{}, err
	}

	var steps []Step

	base, baseName, err := baseScore(g, m, rules)
	if err != nil {
		return ScoreResult{}, err
	}
	steps = append(steps, Step{Name: baseName, Op: StepBase, Value: base})

	factor := 1
	for _, flag := range factorFlags {
		if !countsAsFactor(g, m, flag) {
			continue
		}
		factor++
		steps = append(steps, Step{Name: string(flag), Op: StepAdd, Value: 1})
	}

	if m.SkatPushed > 0 {
		pushed := 1 << m.SkatPushed
		factor *= pushed
		steps = append(steps, Step{Name: "skatPushed", Op: StepMul, Value: pushed})
	}

	if m.Lost {
		penalty := 2
		if m.IsHandGame(g) {
			penalty = 1
		}
		factor *= penalty
		steps = append(steps, Step{Name: string(FlagLost), Op: StepMul, Value: penalty})
	}

	roundMultiplier := 1
	if rules.BockRoundDoubling && mode == RoundBock && (g.IsSuit() || g.IsGrand()) {
		roundMultiplier = 2
		steps = append(steps, Step{Name: "bockRound", Op: StepMul, Value: roundMultiplier})
	}

	sign := 1
	if m.Lost {
		sign = -1
	}

	return ScoreResult{
		BaseScore:       base,
		TotalFactor:     factor,
		RoundMultiplier: roundMultiplier,
		Points:          sign * base * factor * roundMultiplier,
		Steps:           steps,
	}, nil
}

func baseScore(g GameType, m Modifiers, rules Rules) (int, string, error) {
	switch {
	case g.IsGrand() && m.Ouvert:
		return rules.GrandOuvertBase, "grandOuvert", nil
	case g.UsesComSem():
		return *m.ComSem + 1, "comSem", nil
	case g.IsNull():
		key := NullKey(g, m)
		value, ok := rules.NullBase[key]
		if !ok {
			return 0, "", fmt.Errorf("%w: unrecognized null variant %q", ErrValidation, key)
		}
		return value, key, nil
	case g == GameRamsch:
		return *m.RamschPoints, "pontosRamsch", nil
	case g == GameDurchmarsch:
		return rules.DurchmarschBase, "durchmarsch", nil
	default:
		return 0, "", fmt.Errorf("%w: unknown game type %q", ErrValidation, g)
	}
}

// countsAsFactor reports whether flag adds a factor step for this hand.
// Grand-hand always counts Hand; Ouvert on Grand is already in the base.
func countsAsFactor(g GameType, m Modifiers, flag Flag) bool {
	switch flag {
	case FlagHand:
		return m.IsHandGame(g)
	case FlagOuvert:
		return m.Ouvert && !g.IsGrand()
	default:
		return m.Has(flag)
	}
}
