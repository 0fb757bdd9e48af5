package ports

import (
	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/google/uuid"
)

type IDGenerator interface {
	NewSessionID() domain.SessionID
}

// UUIDGenerator issues random (v4) session ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewSessionID() domain.SessionID {
	return domain.SessionID(uuid.NewString())
}
