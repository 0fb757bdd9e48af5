package domain

import (
	"fmt"
	"slices"
)

type DecisionStatus string

const (
	DecisionAwaiting DecisionStatus = "awaiting"
	DecisionAccepted DecisionStatus = "accepted"
	DecisionRejected DecisionStatus = "rejected"
)

// RamschDecision is the group decision on replaying a tied Ramsch round.
// Accepted needs the whole group; one rejecting candidate is enough to
// reject.
type RamschDecision struct {
	Status     DecisionStatus `json:"status"`
	Candidates []string       `json:"candidates"`
	ResolvedBy string         `json:"resolvedBy,omitempty"`
}

func (d *RamschDecision) Awaiting() bool {
	return d != nil && d.Status == DecisionAwaiting
}

func (d *RamschDecision) clone() *RamschDecision {
	if d == nil {
		return nil
	}
	out := *d
	out.Candidates = slices.Clone(d.Candidates)
	return &out
}

// RamschVote is a single call into the decision barrier.
type RamschVote struct {
	Voter       string `json:"voter"`
	Accepts     bool   `json:"accepts"`
	IsGroupVote bool   `json:"isGroupVote"`
}

// RoundState is the part of a session that the round state machine owns.
type RoundState struct {
	DealerIndex int             `json:"dealerIndex"`
	Mode        RoundMode       `json:"roundMode"`
	Decision    *RamschDecision `json:"ramschDecision,omitempty"`
}

func InitialRoundState() RoundState {
	return RoundState{DealerIndex: 0, Mode: RoundBock}
}

func (s RoundState) Clone() RoundState {
	s.Decision = s.Decision.clone()
	return s
}

// roundInput is what the state machine needs to know about a resolved play.
type roundInput struct {
	gameType         GameType
	triggersRamsch   bool
	ramschCandidates []string
}

// allowedInRamschRound lists the game types that may be played while the
// session is in a Ramsch round.
var allowedInRamschRound = map[GameType]struct{}{
	GameRamsch:      {},
	GameDurchmarsch: {},
	GameGrandHand:   {},
}

// checkPlay validates the round-level inputs of a play against the current
// state. players is the seating order.
func (s RoundState) checkPlay(players []string, in roundInput, tie bool) error {
	if s.Mode == RoundRamsch {
		if _, ok := allowedInRamschRound[in.gameType]; !ok {
			return fmt.Errorf("%w: %s cannot be played in a Ramsch round", ErrValidation, in.gameType)
		}
		if in.triggersRamsch {
			return fmt.Errorf("%w: triggersRamsch only applies in a Bock round", ErrValidation)
		}
	}

	if len(in.ramschCandidates) > 0 {
		if s.Mode != RoundRamsch || in.gameType != GameRamsch {
			return fmt.Errorf("%w: ramschCandidates only apply to a ramsch play in a Ramsch round", ErrValidation)
		}
		if !tie {
			return fmt.Errorf("%w: ramschCandidates require houveEmpate", ErrValidation)
		}
		seen := make(map[string]struct{}, len(in.ramschCandidates))
		for _, candidate := range in.ramschCandidates {
			if !slices.Contains(players, candidate) {
				return fmt.Errorf("%w: ramsch candidate %q is not a player", ErrValidation, candidate)
			}
			if _, ok := seen[candidate]; ok {
				return fmt.Errorf("%w: duplicate ramsch candidate %q", ErrValidation, candidate)
			}
			seen[candidate] = struct{}{}
		}
	}

	return nil
}

// advance returns the state after a resolved play.
func (s RoundState) advance(playerCount int, in roundInput) RoundState {
	next := s.Clone()
	next.Decision = nil

	switch s.Mode {
	case RoundBock:
		if in.triggersRamsch {
			next.Mode = RoundRamsch
			return next
		}
		next.DealerIndex = nextDealer(s.DealerIndex, playerCount)
	case RoundRamsch:
		if in.gameType == GameGrandHand {
			return next
		}
		if len(in.ramschCandidates) > 0 {
			next.Decision = &RamschDecision{
				Status:     DecisionAwaiting,
				Candidates: slices.Clone(in.ramschCandidates),
			}
			return next
		}
		next.Mode = RoundBock
		next.DealerIndex = nextDealer(s.DealerIndex, playerCount)
	}

	return next
}

// resolve applies a vote to an awaiting decision.
func (s RoundState) resolve(playerCount int, vote RamschVote) (RoundState, error) {
	if s.Decision == nil {
		return RoundState{}, fmt.Errorf("%w: no ramsch decision pending", ErrNotFound)
	}
	if !s.Decision.Awaiting() {
		return RoundState{}, fmt.Errorf("%w: ramsch decision already %s", ErrConflict, s.Decision.Status)
	}

	next := s.Clone()
	switch {
	case vote.Accepts && vote.IsGroupVote:
		next.Decision.Status = DecisionAccepted
		next.Decision.ResolvedBy = vote.Voter
	case vote.Accepts:
		return RoundState{}, fmt.Errorf("%w: replaying Ramsch needs a group vote", ErrValidation)
	default:
		if !vote.IsGroupVote && !slices.Contains(s.Decision.Candidates, vote.Voter) {
			return RoundState{}, fmt.Errorf("%w: %q is not a ramsch candidate", ErrValidation, vote.Voter)
		}
		next.Decision.Status = DecisionRejected
		next.Decision.ResolvedBy = vote.Voter
		next.Mode = RoundBock
		next.DealerIndex = nextDealer(s.DealerIndex, playerCount)
	}

	return next, nil
}

func nextDealer(index, playerCount int) int {
	if playerCount <= 0 {
		return 0
	}
	return (index + 1) % playerCount
}
