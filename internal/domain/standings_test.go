package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingsAndWinners(t *testing.T) {
	t.Parallel()

	session := newTestSession(t, "Ana", "Beto", "Caio", "Dora")
	session.CumulativeScores = map[string]int{"Ana": 40, "Beto": 40, "Caio": -12, "Dora": 7}

	assert.Equal(t, []Standing{
		{Player: "Ana", Score: 40, Dealer: true, SittingOut: true, Leader: true},
		{Player: "Beto", Score: 40, Leader: true},
		{Player: "Caio", Score: -12},
		{Player: "Dora", Score: 7},
	}, session.Standings())

	winners, best := session.Winners()
	assert.Equal(t, []string{"Ana", "Beto"}, winners)
	assert.Equal(t, 40, best)
}

func TestSettle(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)
	session.CumulativeScores = map[string]int{"Ana": 50, "Beto": 20, "Caio": -10}

	settlement, err := session.Settle(5)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ana"}, settlement.Winners)
	assert.Equal(t, 50, settlement.WinningScore)
	assert.Equal(t, []Fee{
		{Player: "Beto", PointsBehind: 30, Cents: 150},
		{Player: "Caio", PointsBehind: 60, Cents: 300},
	}, settlement.Fees)
	assert.Equal(t, 450, settlement.TotalCents)
}

func TestSettleFreshSessionOwesNothing(t *testing.T) {
	t.Parallel()

	settlement, err := newTestSession(t).Settle(5)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ana", "Beto", "Caio"}, settlement.Winners)
	assert.Empty(t, settlement.Fees)
	assert.Zero(t, settlement.TotalCents)
}

func TestSettleRejectsNegativeRate(t *testing.T) {
	t.Parallel()

	_, err := newTestSession(t).Settle(-1)
	assert.ErrorIs(t, err, ErrValidation)
}
