package ports

import (
	"context"

	"github.com/bnema/rauberskat-cli/internal/domain"
)

type SessionRepository interface {
	GetByID(ctx context.Context, id domain.SessionID) (domain.GameSession, error)
	List(ctx context.Context) ([]domain.GameSession, error)
	Save(ctx context.Context, session domain.GameSession) error
	Delete(ctx context.Context, id domain.SessionID) error
}
