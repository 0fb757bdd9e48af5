package scoreboard

import (
	"testing"
	"time"

	"github.com/bnema/rauberskat-cli/internal/application"
	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func standingsView(t *testing.T, players []string, submissions ...domain.Submission) application.StandingsView {
	t.Helper()

	session, err := domain.NewSession("s-1", players, map[string]string{"name": "friday"}, domain.DefaultRules(), testNow)
	require.NoError(t, err)
	for i, sub := range submissions {
		_, err := session.Append(sub, testNow.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
	}

	winners, best := session.Winners()
	return application.StandingsView{
		Session:      session,
		Standings:    session.Standings(),
		Winners:      winners,
		WinningScore: best,
	}
}

func TestRenderEmptySession(t *testing.T) {
	output, err := Render(standingsView(t, []string{"Ana", "Beto", "Caio"}), RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Räuberskat: friday (s-1)")
	assert.Contains(t, output, "round: Bock | dealer: Ana | plays: 0")
	assert.Contains(t, output, "No plays recorded yet.")
	assert.Contains(t, output, "[leader, dealer]")
}

func TestRenderStandingsAndHistory(t *testing.T) {
	view := standingsView(t, []string{"Ana", "Beto", "Caio"},
		domain.Submission{ScoringPlayer: "Ana", GameType: domain.GameGrand, Modifiers: domain.Modifiers{ComSem: domain.IntPtr(1), Hand: true}},
		domain.Submission{ScoringPlayer: "Beto", GameType: domain.GameNull, Modifiers: domain.Modifiers{Lost: true}, TriggersRamsch: true},
	)

	output, err := Render(view, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "round: Ramsch | dealer: Beto | plays: 2")
	assert.Contains(t, output, "Points")
	assert.Contains(t, output, "grand com/sem 1 hand")
	assert.Contains(t, output, "+4 B")
	assert.Contains(t, output, "-46 B")
	assert.Contains(t, output, "[leader]")
	assert.Contains(t, output, "[dealer]")
}

func TestRenderHistoryLimitKeepsMostRecentPlays(t *testing.T) {
	view := standingsView(t, []string{"Ana", "Beto", "Caio"},
		domain.Submission{ScoringPlayer: "Ana", GameType: domain.GameDiamonds, Modifiers: domain.Modifiers{ComSem: domain.IntPtr(1)}},
		domain.Submission{ScoringPlayer: "Beto", GameType: domain.GameHearts, Modifiers: domain.Modifiers{ComSem: domain.IntPtr(2)}},
		domain.Submission{ScoringPlayer: "Caio", GameType: domain.GameClubs, Modifiers: domain.Modifiers{ComSem: domain.IntPtr(3)}},
	)

	output, err := Render(view, RenderOptions{HistoryLimit: 1})

	require.NoError(t, err)
	assert.Contains(t, output, "history (last 1 of 3)")
	assert.Contains(t, output, "clubs com/sem 3")
	assert.NotContains(t, output, "diamonds com/sem 1")
}

func TestRenderRamschTieShowsPendingDecisionAndTieWinner(t *testing.T) {
	view := standingsView(t, []string{"Ana", "Beto", "Caio"},
		domain.Submission{ScoringPlayer: "Ana", GameType: domain.GameGrand, Modifiers: domain.Modifiers{ComSem: domain.IntPtr(0)}, TriggersRamsch: true},
		domain.Submission{
			ScoringPlayer:    "Beto",
			GameType:         domain.GameRamsch,
			Modifiers:        domain.Modifiers{RamschPoints: domain.IntPtr(40), Tie: true, TieWinner: "Caio"},
			RamschCandidates: []string{"Beto", "Caio"},
		},
	)

	output, err := Render(view, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "waiting for Beto, Caio")
	assert.Contains(t, output, "Beto + Caio")
	assert.Contains(t, output, "ramsch 40 pts")
	assert.Contains(t, output, "+40 R")
}

func TestRenderSettlement(t *testing.T) {
	view := standingsView(t, []string{"Ana", "Beto", "Caio"},
		domain.Submission{ScoringPlayer: "Ana", GameType: domain.GameDiamonds, Modifiers: domain.Modifiers{ComSem: domain.IntPtr(1)}},
	)
	settlement, err := view.Session.Settle(5)
	require.NoError(t, err)

	output, err := Render(view, RenderOptions{Settlement: &settlement})

	require.NoError(t, err)
	assert.Contains(t, output, "settlement at 0.05 per point")
	assert.Contains(t, output, "winners: Ana (2)")
	assert.Contains(t, output, "pays 0.10 (2 behind)")
	assert.Contains(t, output, "total: 0.20")
}

func TestRenderSettlementWithoutFees(t *testing.T) {
	view := standingsView(t, []string{"Ana", "Beto", "Caio"})
	settlement, err := view.Session.Settle(5)
	require.NoError(t, err)

	output, err := Render(view, RenderOptions{Settlement: &settlement})

	require.NoError(t, err)
	assert.Contains(t, output, "Nobody pays.")
}

func TestFormatCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.00", formatCents(0))
	assert.Equal(t, "0.05", formatCents(5))
	assert.Equal(t, "12.40", formatCents(1240))
	assert.Equal(t, "-1.01", formatCents(-101))
}
