package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/bnema/rauberskat-cli/internal/ports"
)

var ErrNoSessions = fmt.Errorf("no sessions stored: %w", domain.ErrNotFound)

type Service struct {
	repo   ports.SessionRepository
	clock  ports.Clock
	ids    ports.IDGenerator
	rules  domain.Rules
	logger *slog.Logger

	locksMu sync.Mutex
	locks   map[domain.SessionID]*sync.Mutex
}

func NewService(repo ports.SessionRepository, clock ports.Clock, ids ports.IDGenerator, rules domain.Rules, logger *slog.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}
	if rules.NullBase == nil {
		rules = domain.DefaultRules()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		repo:   repo,
		clock:  clock,
		ids:    ids,
		rules:  rules,
		logger: logger,
		locks:  map[domain.SessionID]*sync.Mutex{},
	}
}

func (s *Service) CreateSession(ctx context.Context, cmd CreateSessionCommand) (domain.GameSession, error) {
	id := s.ids.NewSessionID()
	session, err := domain.NewSession(id, cmd.Players, cmd.Metadata, s.rules, s.clock.Now())
	if err != nil {
		return domain.GameSession{}, err
	}

	unlock := s.lockSession(id)
	defer unlock()

	if err := s.repo.Save(ctx, session); err != nil {
		return domain.GameSession{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("session created", "session", id, "players", strings.Join(session.Players, ","))
	return session, nil
}

func (s *Service) SubmitPlay(ctx context.Context, cmd SubmitPlayCommand) (domain.GameSession, domain.ScoreResult, error) {
	var record domain.PlayRecord
	session, err := s.mutate(ctx, cmd.SessionID, "submit play", func(session *domain.GameSession, now time.Time) error {
		var err error
		record, err = session.Append(cmd.Submission, now)
		return err
	})
	if err != nil {
		return domain.GameSession{}, domain.ScoreResult{}, err
	}

	s.logger.Info("play recorded",
		"session", cmd.SessionID,
		"sequence", record.Sequence,
		"player", record.ScoringPlayer,
		"game", record.GameType,
		"mode", record.RoundModeAtPlay,
		"points", record.Result.Points,
	)
	if session.RamschDecision.Awaiting() {
		s.logger.Info("ramsch decision pending", "session", cmd.SessionID, "candidates", strings.Join(session.RamschDecision.Candidates, ","))
	}

	return session, record.Result, nil
}

func (s *Service) UndoLastPlay(ctx context.Context, id domain.SessionID) (domain.GameSession, domain.PlayRecord, error) {
	var record domain.PlayRecord
	session, err := s.mutate(ctx, id, "undo play", func(session *domain.GameSession, now time.Time) error {
		var err error
		record, err = session.Undo(now)
		return err
	})
	if err != nil {
		return domain.GameSession{}, domain.PlayRecord{}, err
	}

	s.logger.Info("play undone", "session", id, "sequence", record.Sequence, "points", record.Result.Points)
	return session, record, nil
}

func (s *Service) ResolveRamschDecision(ctx context.Context, cmd RamschVoteCommand) (domain.GameSession, error) {
	session, err := s.mutate(ctx, cmd.SessionID, "resolve ramsch decision", func(session *domain.GameSession, now time.Time) error {
		return session.ResolveRamschDecision(cmd.Vote, now)
	})
	if err != nil {
		return domain.GameSession{}, err
	}

	s.logger.Info("ramsch decision resolved",
		"session", cmd.SessionID,
		"status", session.RamschDecision.Status,
		"by", session.RamschDecision.ResolvedBy,
	)
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (domain.GameSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.GameSession{}, fmt.Errorf("load session: %w", err)
	}

	return session, nil
}

func (s *Service) GetStandings(ctx context.Context, id domain.SessionID) (StandingsView, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return StandingsView{}, err
	}

	winners, best := session.Winners()
	return StandingsView{
		Session:      session,
		Standings:    session.Standings(),
		Winners:      winners,
		WinningScore: best,
	}, nil
}

func (s *Service) Settle(ctx context.Context, id domain.SessionID, centsPerPoint int) (domain.Settlement, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return domain.Settlement{}, err
	}

	return session.Settle(centsPerPoint)
}

// ResolveSessionID accepts a full session ID or an unambiguous prefix of one.
// An empty value selects the most recently updated session.
func (s *Service) ResolveSessionID(ctx context.Context, raw string) (domain.SessionID, error) {
	requested := strings.TrimSpace(raw)

	sessions, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list sessions: %w", err)
	}

	if requested == "" {
		if len(sessions) == 0 {
			return "", ErrNoSessions
		}
		latest := sessions[0]
		for _, session := range sessions[1:] {
			if !session.UpdatedAt.Before(latest.UpdatedAt) {
				latest = session
			}
		}
		return latest.ID, nil
	}

	var matches []domain.SessionID
	for _, session := range sessions {
		id := string(session.ID)
		if id == requested {
			return session.ID, nil
		}
		if strings.HasPrefix(id, requested) {
			matches = append(matches, session.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrSessionNotFound, requested)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: session prefix %q matches %d sessions", domain.ErrValidation, requested, len(matches))
	}
}

func (s *Service) DeleteSession(ctx context.Context, id domain.SessionID) error {
	unlock := s.lockSession(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("session deleted", "session", id)
	return nil
}

// mutate runs fn on the stored session under the session lock and saves the
// result. Nothing is saved when fn fails.
func (s *Service) mutate(ctx context.Context, id domain.SessionID, op string, fn func(*domain.GameSession, time.Time) error) (domain.GameSession, error) {
	unlock := s.lockSession(id)
	defer unlock()

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.GameSession{}, fmt.Errorf("load session: %w", err)
	}

	if err := fn(&session, s.clock.Now()); err != nil {
		s.logger.Debug(op+" rejected", "session", id, "error", err)
		return domain.GameSession{}, err
	}

	if err := ctx.Err(); err != nil {
		return domain.GameSession{}, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return domain.GameSession{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

func (s *Service) lockSession(id domain.SessionID) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
