package application

import "github.com/bnema/rauberskat-cli/internal/domain"

type StandingsView struct {
	Session      domain.GameSession
	Standings    []domain.Standing
	Winners      []string
	WinningScore int
}
