package domain

import "fmt"

type Standing struct {
	Player     string `json:"player"`
	Score      int    `json:"score"`
	Dealer     bool   `json:"dealer"`
	SittingOut bool   `json:"sittingOut"`
	Leader     bool   `json:"leader"`
}

// Standings lists the players in seat order.
func (s GameSession) Standings() []Standing {
	scores := s.CumulativeScores
	if scores == nil {
		scores = ReconstructScores(s.Players, s.History)
	}

	leaders, _ := winners(s.Players, scores)
	isLeader := make(map[string]bool, len(leaders))
	for _, player := range leaders {
		isLeader[player] = true
	}

	standings := make([]Standing, 0, len(s.Players))
	for _, player := range s.Players {
		standings = append(standings, Standing{
			Player:     player,
			Score:      scores[player],
			Dealer:     player == s.Dealer(),
			SittingOut: s.SittingOut(player),
			Leader:     isLeader[player],
		})
	}
	return standings
}

// Winners returns every player sharing the highest score, in seat order.
func (s GameSession) Winners() ([]string, int) {
	scores := s.CumulativeScores
	if scores == nil {
		scores = ReconstructScores(s.Players, s.History)
	}
	return winners(s.Players, scores)
}

func winners(players []string, scores map[string]int) ([]string, int) {
	if len(players) == 0 {
		return nil, 0
	}

	best := scores[players[0]]
	for _, player := range players[1:] {
		best = max(best, scores[player])
	}

	var out []string
	for _, player := range players {
		if scores[player] == best {
			out = append(out, player)
		}
	}
	return out, best
}

type Fee struct {
	Player       string `json:"player"`
	PointsBehind int    `json:"pointsBehind"`
	Cents        int    `json:"cents"`
}

// Settlement is the end-of-session payout: every player behind the winners
// pays the difference at a fixed rate.
type Settlement struct {
	CentsPerPoint int      `json:"centsPerPoint"`
	Winners       []string `json:"winners"`
	WinningScore  int      `json:"winningScore"`
	Fees          []Fee    `json:"fees"`
	TotalCents    int      `json:"totalCents"`
}

func (s GameSession) Settle(centsPerPoint int) (Settlement, error) {
	if centsPerPoint < 0 {
		return Settlement{}, fmt.Errorf("%w: cents per point must be non-negative, got %d", ErrValidation, centsPerPoint)
	}

	scores := s.CumulativeScores
	if scores == nil {
		scores = ReconstructScores(s.Players, s.History)
	}
	leaders, best := winners(s.Players, scores)

	settlement := Settlement{
		CentsPerPoint: centsPerPoint,
		Winners:       leaders,
		WinningScore:  best,
		Fees:          []Fee{},
	}
	for _, player := range s.Players {
		behind := best - scores[player]
		if behind == 0 {
			continue
		}
		fee := Fee{Player: player, PointsBehind: behind, Cents: behind * centsPerPoint}
		settlement.Fees = append(settlement.Fees, fee)
		settlement.TotalCents += fee.Cents
	}

	return settlement, nil
}
