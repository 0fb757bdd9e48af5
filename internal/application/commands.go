package application

import "github.com/bnema/rauberskat-cli/internal/domain"

type CreateSessionCommand struct {
	Players  []string
	Metadata map[string]string
}

type SubmitPlayCommand struct {
	SessionID  domain.SessionID
	Submission domain.Submission
}

type RamschVoteCommand struct {
	SessionID domain.SessionID
	Vote      domain.RamschVote
}
