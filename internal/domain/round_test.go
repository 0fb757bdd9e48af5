package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundStateAdvance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state RoundState
		in    roundInput
		want  RoundState
	}{
		{
			name:  "bock play rotates dealer",
			state: RoundState{DealerIndex: 0, Mode: RoundBock},
			in:    roundInput{gameType: GameGrand},
			want:  RoundState{DealerIndex: 1, Mode: RoundBock},
		},
		{
			name:  "dealer wraps around",
			state: RoundState{DealerIndex: 2, Mode: RoundBock},
			in:    roundInput{gameType: GameNull},
			want:  RoundState{DealerIndex: 0, Mode: RoundBock},
		},
		{
			name:  "trigger enters ramsch and holds dealer",
			state: RoundState{DealerIndex: 1, Mode: RoundBock},
			in:    roundInput{gameType: GameHearts, triggersRamsch: true},
			want:  RoundState{DealerIndex: 1, Mode: RoundRamsch},
		},
		{
			name:  "ramsch play returns to bock",
			state: RoundState{DealerIndex: 1, Mode: RoundRamsch},
			in:    roundInput{gameType: GameRamsch},
			want:  RoundState{DealerIndex: 2, Mode: RoundBock},
		},
		{
			name:  "durchmarsch returns to bock",
			state: RoundState{DealerIndex: 2, Mode: RoundRamsch},
			in:    roundInput{gameType: GameDurchmarsch},
			want:  RoundState{DealerIndex: 0, Mode: RoundBock},
		},
		{
			name:  "grand-hand bonus keeps ramsch and dealer",
			state: RoundState{DealerIndex: 1, Mode: RoundRamsch},
			in:    roundInput{gameType: GameGrandHand},
			want:  RoundState{DealerIndex: 1, Mode: RoundRamsch},
		},
		{
			name:  "tied ramsch opens a decision",
			state: RoundState{DealerIndex: 1, Mode: RoundRamsch},
			in:    roundInput{gameType: GameRamsch, ramschCandidates: []string{"Ana", "Beto"}},
			want: RoundState{DealerIndex: 1, Mode: RoundRamsch, Decision: &RamschDecision{
				Status:     DecisionAwaiting,
				Candidates: []string{"Ana", "Beto"},
			}},
		},
		{
			name: "next play clears a resolved decision",
			state: RoundState{DealerIndex: 1, Mode: RoundRamsch, Decision: &RamschDecision{
				Status:     DecisionAccepted,
				Candidates: []string{"Ana", "Beto"},
			}},
			in:   roundInput{gameType: GameRamsch},
			want: RoundState{DealerIndex: 2, Mode: RoundBock},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.state.advance(3, tc.in))
		})
	}
}

func TestRoundStateCheckPlay(t *testing.T) {
	t.Parallel()

	players := []string{"Ana", "Beto", "Caio"}
	bock := RoundState{Mode: RoundBock}
	ramsch := RoundState{Mode: RoundRamsch}

	tests := []struct {
		name    string
		state   RoundState
		in      roundInput
		tie     bool
		wantErr string
	}{
		{name: "any game in bock", state: bock, in: roundInput{gameType: GameNullRevolution}},
		{name: "trigger in bock", state: bock, in: roundInput{gameType: GameGrand, triggersRamsch: true}},
		{name: "grand-hand in ramsch", state: ramsch, in: roundInput{gameType: GameGrandHand}},
		{name: "tied ramsch with candidates", state: ramsch, in: roundInput{gameType: GameRamsch, ramschCandidates: []string{"Ana", "Caio"}}, tie: true},
		{name: "suit in ramsch", state: ramsch, in: roundInput{gameType: GameSpades}, wantErr: "cannot be played in a Ramsch round"},
		{name: "trigger in ramsch", state: ramsch, in: roundInput{gameType: GameRamsch, triggersRamsch: true}, wantErr: "triggersRamsch only applies"},
		{name: "candidates in bock", state: bock, in: roundInput{gameType: GameRamsch, ramschCandidates: []string{"Ana"}}, tie: true, wantErr: "ramschCandidates only apply"},
		{name: "candidates on durchmarsch", state: ramsch, in: roundInput{gameType: GameDurchmarsch, ramschCandidates: []string{"Ana"}}, tie: true, wantErr: "ramschCandidates only apply"},
		{name: "candidates without tie", state: ramsch, in: roundInput{gameType: GameRamsch, ramschCandidates: []string{"Ana"}}, wantErr: "require houveEmpate"},
		{name: "unknown candidate", state: ramsch, in: roundInput{gameType: GameRamsch, ramschCandidates: []string{"Zeca"}}, tie: true, wantErr: "is not a player"},
		{name: "duplicate candidate", state: ramsch, in: roundInput{gameType: GameRamsch, ramschCandidates: []string{"Ana", "Ana"}}, tie: true, wantErr: "duplicate ramsch candidate"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.state.checkPlay(players, tc.in, tc.tie)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRoundStateResolve(t *testing.T) {
	t.Parallel()

	awaiting := func() RoundState {
		return RoundState{DealerIndex: 1, Mode: RoundRamsch, Decision: &RamschDecision{
			Status:     DecisionAwaiting,
			Candidates: []string{"Ana", "Beto"},
		}}
	}

	t.Run("group accept replays ramsch with same dealer", func(t *testing.T) {
		t.Parallel()

		next, err := awaiting().resolve(3, RamschVote{Voter: "table", Accepts: true, IsGroupVote: true})
		require.NoError(t, err)
		assert.Equal(t, RoundRamsch, next.Mode)
		assert.Equal(t, 1, next.DealerIndex)
		assert.Equal(t, DecisionAccepted, next.Decision.Status)
		assert.Equal(t, "table", next.Decision.ResolvedBy)
	})

	t.Run("single candidate veto rejects", func(t *testing.T) {
		t.Parallel()

		next, err := awaiting().resolve(3, RamschVote{Voter: "Beto"})
		require.NoError(t, err)
		assert.Equal(t, RoundBock, next.Mode)
		assert.Equal(t, 2, next.DealerIndex)
		assert.Equal(t, DecisionRejected, next.Decision.Status)
		assert.Equal(t, "Beto", next.Decision.ResolvedBy)
	})

	t.Run("group reject", func(t *testing.T) {
		t.Parallel()

		next, err := awaiting().resolve(3, RamschVote{IsGroupVote: true})
		require.NoError(t, err)
		assert.Equal(t, DecisionRejected, next.Decision.Status)
	})

	t.Run("veto from a non candidate", func(t *testing.T) {
		t.Parallel()

		_, err := awaiting().resolve(3, RamschVote{Voter: "Caio"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("individual accept", func(t *testing.T) {
		t.Parallel()

		_, err := awaiting().resolve(3, RamschVote{Voter: "Ana", Accepts: true})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("no decision", func(t *testing.T) {
		t.Parallel()

		_, err := RoundState{Mode: RoundRamsch}.resolve(3, RamschVote{IsGroupVote: true, Accepts: true})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already resolved", func(t *testing.T) {
		t.Parallel()

		next, err := awaiting().resolve(3, RamschVote{IsGroupVote: true, Accepts: true})
		require.NoError(t, err)

		_, err = next.resolve(3, RamschVote{Voter: "Ana"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("does not touch the input state", func(t *testing.T) {
		t.Parallel()

		state := awaiting()
		_, err := state.resolve(3, RamschVote{Voter: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, awaiting(), state)
	})
}
