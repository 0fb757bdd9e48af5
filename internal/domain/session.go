package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

const (
	MinPlayers = 3
	MaxPlayers = 4
)

type SessionID string

// Submission is one resolved hand as reported by the table.
type Submission struct {
	ScoringPlayer    string    `json:"scoringPlayer"`
	GameType         GameType  `json:"gameType"`
	Modifiers        Modifiers `json:"modifiers"`
	TriggersRamsch   bool      `json:"triggersRamsch"`
	RamschCandidates []string  `json:"ramschCandidates,omitempty"`
}

func (s Submission) normalized() Submission {
	out := s
	out.ScoringPlayer = strings.TrimSpace(s.ScoringPlayer)
	out.Modifiers = s.Modifiers.Normalized()
	out.RamschCandidates = make([]string, 0, len(s.RamschCandidates))
	for _, candidate := range s.RamschCandidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			out.RamschCandidates = append(out.RamschCandidates, trimmed)
		}
	}
	return out
}

// PlayRecord is an appended play. Result is stored as computed at the time
// and never recomputed.
type PlayRecord struct {
	Sequence         int         `json:"sequence"`
	ScoringPlayer    string      `json:"scoringPlayer"`
	GameType         GameType    `json:"gameType"`
	Modifiers        Modifiers   `json:"modifiers"`
	RoundModeAtPlay  RoundMode   `json:"roundModeAtTimeOfPlay"`
	DealerAtPlay     string      `json:"dealerAtTimeOfPlay"`
	Result           ScoreResult `json:"result"`
	TieWinner        string      `json:"tieWinner,omitempty"`
	TriggersRamsch   bool        `json:"triggersRamsch,omitempty"`
	RamschCandidates []string    `json:"ramschCandidates,omitempty"`
	Prior            RoundState  `json:"prior"`
	RecordedAt       time.Time   `json:"recordedAt"`
}

// Contributions returns the score delta the record applies to each player.
func (r PlayRecord) Contributions() map[string]int {
	deltas := map[string]int{r.ScoringPlayer: r.Result.Points}
	if r.TieWinner != "" {
		deltas[r.TieWinner] += r.Result.Points
	}
	return deltas
}

// GameSession is the aggregate root of one match.
type GameSession struct {
	ID               SessionID         `json:"id"`
	Players          []string          `json:"players"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	Rules            Rules             `json:"rules"`
	DealerIndex      int               `json:"dealerIndex"`
	RoundMode        RoundMode         `json:"roundMode"`
	RamschDecision   *RamschDecision   `json:"ramschDecision,omitempty"`
	CumulativeScores map[string]int    `json:"cumulativeScores"`
	History          []PlayRecord      `json:"history"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func NewSession(id SessionID, players []string, metadata map[string]string, rules Rules, now time.Time) (GameSession, error) {
	if strings.TrimSpace(string(id)) == "" {
		return GameSession{}, fmt.Errorf("%w: session id is required", ErrValidation)
	}

	names, err := normalizePlayers(players)
	if err != nil {
		return GameSession{}, err
	}
	if err := rules.Validate(); err != nil {
		return GameSession{}, err
	}

	round := InitialRoundState()
	session := GameSession{
		ID:        id,
		Players:   names,
		Metadata:  maps.Clone(metadata),
		Rules:     rules.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	session.setRoundState(round)
	session.RecomputeScores()

	return session, nil
}

func normalizePlayers(players []string) ([]string, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: a session needs %d or %d players, got %d", ErrValidation, MinPlayers, MaxPlayers, len(players))
	}

	names := make([]string, 0, len(players))
	seen := make(map[string]struct{}, len(players))
	for _, player := range players {
		name := strings.TrimSpace(player)
		if name == "" {
			return nil, fmt.Errorf("%w: player name is required", ErrValidation)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrValidation, name)
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names, nil
}

func (s GameSession) Dealer() string {
	if s.DealerIndex < 0 || s.DealerIndex >= len(s.Players) {
		return ""
	}
	return s.Players[s.DealerIndex]
}

// SittingOut reports whether player deals and therefore sits out this hand.
func (s GameSession) SittingOut(player string) bool {
	return len(s.Players) == MaxPlayers && player == s.Dealer()
}

// EligiblePlayers lists the players allowed to score the next play.
func (s GameSession) EligiblePlayers() []string {
	eligible := make([]string, 0, len(s.Players))
	for _, player := range s.Players {
		if s.SittingOut(player) {
			continue
		}
		eligible = append(eligible, player)
	}
	return eligible
}

func (s GameSession) RoundState() RoundState {
	return RoundState{
		DealerIndex: s.DealerIndex,
		Mode:        s.RoundMode,
		Decision:    s.RamschDecision.clone(),
	}
}

func (s *GameSession) setRoundState(state RoundState) {
	s.DealerIndex = state.DealerIndex
	s.RoundMode = state.Mode
	s.RamschDecision = state.Decision.clone()
}

// Append scores a submission and records it. On error the session is left
// untouched.
func (s *GameSession) Append(sub Submission, now time.Time) (PlayRecord, error) {
	if s.RamschDecision.Awaiting() {
		return PlayRecord{}, fmt.Errorf("%w: a ramsch decision is pending", ErrConflict)
	}

	sub = sub.normalized()
	if !slices.Contains(s.Players, sub.ScoringPlayer) {
		return PlayRecord{}, fmt.Errorf("%w: %q is not a player of this session", ErrValidation, sub.ScoringPlayer)
	}
	if s.SittingOut(sub.ScoringPlayer) {
		return PlayRecord{}, fmt.Errorf("%w: %q deals and sits out this hand", ErrValidation, sub.ScoringPlayer)
	}
	if err := s.checkTieWinner(sub); err != nil {
		return PlayRecord{}, err
	}

	round := s.RoundState()
	in := roundInput{
		gameType:         sub.GameType,
		triggersRamsch:   sub.TriggersRamsch,
		ramschCandidates: sub.RamschCandidates,
	}
	if err := round.checkPlay(s.Players, in, sub.Modifiers.Tie); err != nil {
		return PlayRecord{}, err
	}

	result, err := Score(sub.GameType, sub.Modifiers, s.RoundMode, s.Rules)
	if err != nil {
		return PlayRecord{}, err
	}

	record := PlayRecord{
		Sequence:         len(s.History) + 1,
		ScoringPlayer:    sub.ScoringPlayer,
		GameType:         sub.GameType,
		Modifiers:        sub.Modifiers,
		RoundModeAtPlay:  s.RoundMode,
		DealerAtPlay:     s.Dealer(),
		Result:           result,
		TieWinner:        sub.Modifiers.TieWinner,
		TriggersRamsch:   sub.TriggersRamsch,
		RamschCandidates: slices.Clone(sub.RamschCandidates),
		Prior:            round,
		RecordedAt:       now,
	}
	if len(record.RamschCandidates) == 0 {
		record.RamschCandidates = nil
	}
	next := round.advance(len(s.Players), in)

	if s.CumulativeScores == nil {
		s.RecomputeScores()
	}
	s.applyContributions(record, 1)
	s.History = append(s.History, record)
	s.setRoundState(next)
	s.UpdatedAt = now

	return record, nil
}

func (s GameSession) checkTieWinner(sub Submission) error {
	winner := sub.Modifiers.TieWinner
	if winner == "" {
		return nil
	}
	if !slices.Contains(s.Players, winner) {
		return fmt.Errorf("%w: tie winner %q is not a player of this session", ErrValidation, winner)
	}
	if winner == sub.ScoringPlayer {
		return fmt.Errorf("%w: tie winner must differ from the scoring player", ErrValidation)
	}
	if s.SittingOut(winner) {
		return fmt.Errorf("%w: tie winner %q deals and sits out this hand", ErrValidation, winner)
	}
	return nil
}

// Undo removes the last play and restores the round state it was played in.
func (s *GameSession) Undo(now time.Time) (PlayRecord, error) {
	if len(s.History) == 0 {
		return PlayRecord{}, fmt.Errorf("%w: no plays to undo", ErrNotFound)
	}

	last := s.History[len(s.History)-1]
	if s.CumulativeScores == nil {
		s.RecomputeScores()
	}
	s.applyContributions(last, -1)
	s.History[len(s.History)-1] = PlayRecord{}
	s.History = s.History[:len(s.History)-1]
	s.setRoundState(last.Prior)
	s.UpdatedAt = now

	return last, nil
}

// ResolveRamschDecision applies a vote to the pending Ramsch decision.
func (s *GameSession) ResolveRamschDecision(vote RamschVote, now time.Time) error {
	vote.Voter = strings.TrimSpace(vote.Voter)

	next, err := s.RoundState().resolve(len(s.Players), vote)
	if err != nil {
		return err
	}

	s.setRoundState(next)
	s.UpdatedAt = now
	return nil
}

func (s *GameSession) applyContributions(record PlayRecord, sign int) {
	for player, delta := range record.Contributions() {
		s.CumulativeScores[player] += sign * delta
	}
}

// RecomputeScores rebuilds the cumulative scores from the history.
func (s *GameSession) RecomputeScores() {
	s.CumulativeScores = ReconstructScores(s.Players, s.History)
}

// ReconstructScores sums the contributions of every record per player.
func ReconstructScores(players []string, history []PlayRecord) map[string]int {
	scores := make(map[string]int, len(players))
	for _, player := range players {
		scores[player] = 0
	}
	for _, record := range history {
		for player, delta := range record.Contributions() {
			scores[player] += delta
		}
	}
	return scores
}

func (s GameSession) Clone() GameSession {
	out := s
	out.Players = slices.Clone(s.Players)
	out.Metadata = maps.Clone(s.Metadata)
	out.Rules = s.Rules.Clone()
	out.RamschDecision = s.RamschDecision.clone()
	out.CumulativeScores = maps.Clone(s.CumulativeScores)
	if s.History != nil {
		out.History = make([]PlayRecord, len(s.History))
		for i, record := range s.History {
			out.History[i] = record.clone()
		}
	}
	return out
}

func (r PlayRecord) clone() PlayRecord {
	out := r
	out.Modifiers = r.Modifiers.Normalized()
	out.Result.Steps = slices.Clone(r.Result.Steps)
	out.RamschCandidates = slices.Clone(r.RamschCandidates)
	out.Prior = r.Prior.Clone()
	return out
}
