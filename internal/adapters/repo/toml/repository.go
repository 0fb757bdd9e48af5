package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/bnema/rauberskat-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SessionsPathKey    = "sessions.path"
	sessionsFileMode   = 0o600
	sessionsDirMode    = 0o700
	sessionsConfigDir  = ".rauberskat"
	sessionsConfigFile = "sessions.toml"
	tempFilePattern    = ".sessions-*.toml.tmp"
)

type Repository struct {
	sessionsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

// NewRepository stores sessions at the sessions.path key of cfg, or under
// ~/.rauberskat when the key is unset.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	sessionsPath := cfg.GetString(SessionsPathKey)
	if sessionsPath == "" {
		defaultPath, err := DefaultSessionsPath()
		if err != nil {
			return nil, err
		}
		sessionsPath = defaultPath
	}

	sessionsPath, err := normalizeSessionsPath(sessionsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionsPath: sessionsPath, mu: lockForPath(sessionsPath)}, nil
}

func DefaultSessionsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, sessionsConfigDir, sessionsConfigFile), nil
}

func (r *Repository) Path() string {
	return r.sessionsPath
}

func (r *Repository) Save(ctx context.Context, session domain.GameSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(session)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].ID == encoded.ID {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.SessionID) (domain.GameSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameSession{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.GameSession{}, err
	}

	for _, entry := range file.Sessions {
		if entry.ID == string(id) {
			session, err := fromSchema(entry)
			if err != nil {
				return domain.GameSession{}, fmt.Errorf("decode sessions file: %w", err)
			}
			return session, nil
		}
	}

	return domain.GameSession{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.GameSession, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		session, err := fromSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("decode sessions file: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *Repository) Delete(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	index := slices.IndexFunc(file.Sessions, func(entry sessionSchema) bool {
		return entry.ID == string(id)
	})
	if index < 0 {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	file.Sessions = slices.Delete(file.Sessions, index, index+1)

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read sessions file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode sessions file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeSessionsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve sessions path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionsPath), sessionsDirMode); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp sessions file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("write temp sessions file: %w", errors.Join(err, tempFile.Close()))
	}

	if err := tempFile.Chmod(sessionsFileMode); err != nil {
		return fmt.Errorf("chmod temp sessions file: %w", errors.Join(err, tempFile.Close()))
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp sessions file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionsPath); err != nil {
		return fmt.Errorf("replace sessions file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.sessionsPath, sessionsFileMode); err != nil {
		return fmt.Errorf("chmod sessions file: %w", err)
	}

	return nil
}

func toSchema(session domain.GameSession) sessionSchema {
	history := make([]playSchema, 0, len(session.History))
	for _, record := range session.History {
		history = append(history, toPlaySchema(record))
	}
	if len(history) == 0 {
		history = nil
	}

	return sessionSchema{
		ID:       string(session.ID),
		Players:  slices.Clone(session.Players),
		Metadata: session.Metadata,
		Rules: rulesSchema{
			NullBase:          session.Rules.NullBase,
			GrandOuvertBase:   session.Rules.GrandOuvertBase,
			DurchmarschBase:   session.Rules.DurchmarschBase,
			BockRoundDoubling: session.Rules.BockRoundDoubling,
		},
		DealerIndex:    session.DealerIndex,
		RoundMode:      string(session.RoundMode),
		RamschDecision: toDecisionSchema(session.RamschDecision),
		CreatedAt:      formatTime(session.CreatedAt),
		UpdatedAt:      formatTime(session.UpdatedAt),
		History:        history,
	}
}

func fromSchema(entry sessionSchema) (domain.GameSession, error) {
	var history []domain.PlayRecord
	for _, play := range entry.History {
		record, err := fromPlaySchema(play)
		if err != nil {
			return domain.GameSession{}, fmt.Errorf("session %s play %d: %w", entry.ID, play.Sequence, err)
		}
		history = append(history, record)
	}

	createdAt, err := parseTime("created_at", entry.CreatedAt)
	if err != nil {
		return domain.GameSession{}, fmt.Errorf("session %s: %w", entry.ID, err)
	}
	updatedAt, err := parseTime("updated_at", entry.UpdatedAt)
	if err != nil {
		return domain.GameSession{}, fmt.Errorf("session %s: %w", entry.ID, err)
	}

	metadata := entry.Metadata
	if len(metadata) == 0 {
		metadata = nil
	}

	session := domain.GameSession{
		ID:       domain.SessionID(entry.ID),
		Players:  entry.Players,
		Metadata: metadata,
		Rules: domain.Rules{
			NullBase:          entry.Rules.NullBase,
			GrandOuvertBase:   entry.Rules.GrandOuvertBase,
			DurchmarschBase:   entry.Rules.DurchmarschBase,
			BockRoundDoubling: entry.Rules.BockRoundDoubling,
		},
		DealerIndex:    entry.DealerIndex,
		RoundMode:      domain.RoundMode(entry.RoundMode),
		RamschDecision: fromDecisionSchema(entry.RamschDecision),
		History:        history,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	if session.RoundMode == "" {
		session.RoundMode = domain.RoundBock
	}
	session.RecomputeScores()

	return session, nil
}

func toPlaySchema(record domain.PlayRecord) playSchema {
	m := record.Modifiers
	steps := make([]stepSchema, 0, len(record.Result.Steps))
	for _, step := range record.Result.Steps {
		steps = append(steps, stepSchema{Name: step.Name, Op: string(step.Op), Value: step.Value})
	}

	return playSchema{
		Sequence:         record.Sequence,
		ScoringPlayer:    record.ScoringPlayer,
		GameType:         string(record.GameType),
		RoundMode:        string(record.RoundModeAtPlay),
		Dealer:           record.DealerAtPlay,
		TieWinner:        record.TieWinner,
		TriggersRamsch:   record.TriggersRamsch,
		RamschCandidates: record.RamschCandidates,
		RecordedAt:       formatTime(record.RecordedAt),
		Modifiers: modifiersSchema{
			ComSem:             m.ComSem,
			Hand:               m.Hand,
			Ouvert:             m.Ouvert,
			Schneider:          m.Schneider,
			SchneiderAnnounced: m.SchneiderAnnounced,
			Schwarz:            m.Schwarz,
			SchwarzAnnounced:   m.SchwarzAnnounced,
			Kontra:             m.Kontra,
			Reh:                m.Reh,
			Bock:               m.Bock,
			Rursch:             m.Rursch,
			Jungfrau:           m.Jungfrau,
			Lost:               m.Lost,
			RamschPoints:       m.RamschPoints,
			SkatPushed:         m.SkatPushed,
			Tie:                m.Tie,
			TieWinner:          m.TieWinner,
		},
		Result: resultSchema{
			BaseScore:       record.Result.BaseScore,
			TotalFactor:     record.Result.TotalFactor,
			RoundMultiplier: record.Result.RoundMultiplier,
			Points:          record.Result.Points,
			Steps:           steps,
		},
		Prior: roundSchema{
			DealerIndex: record.Prior.DealerIndex,
			Mode:        string(record.Prior.Mode),
			Decision:    toDecisionSchema(record.Prior.Decision),
		},
	}
}

func fromPlaySchema(play playSchema) (domain.PlayRecord, error) {
	recordedAt, err := parseTime("recorded_at", play.RecordedAt)
	if err != nil {
		return domain.PlayRecord{}, err
	}

	m := play.Modifiers
	var steps []domain.Step
	for _, step := range play.Result.Steps {
		steps = append(steps, domain.Step{Name: step.Name, Op: domain.StepOp(step.Op), Value: step.Value})
	}

	return domain.PlayRecord{
		Sequence:         play.Sequence,
		ScoringPlayer:    play.ScoringPlayer,
		GameType:         domain.GameType(play.GameType),
		RoundModeAtPlay:  domain.RoundMode(play.RoundMode),
		DealerAtPlay:     play.Dealer,
		TieWinner:        play.TieWinner,
		TriggersRamsch:   play.TriggersRamsch,
		RamschCandidates: play.RamschCandidates,
		RecordedAt:       recordedAt,
		Modifiers: domain.Modifiers{
			ComSem:             m.ComSem,
			Hand:               m.Hand,
			Ouvert:             m.Ouvert,
			Schneider:          m.Schneider,
			SchneiderAnnounced: m.SchneiderAnnounced,
			Schwarz:            m.Schwarz,
			SchwarzAnnounced:   m.SchwarzAnnounced,
			Kontra:             m.Kontra,
			Reh:                m.Reh,
			Bock:               m.Bock,
			Rursch:             m.Rursch,
			Jungfrau:           m.Jungfrau,
			Lost:               m.Lost,
			RamschPoints:       m.RamschPoints,
			SkatPushed:         m.SkatPushed,
			Tie:                m.Tie,
			TieWinner:          m.TieWinner,
		},
		Result: domain.ScoreResult{
			BaseScore:       play.Result.BaseScore,
			TotalFactor:     play.Result.TotalFactor,
			RoundMultiplier: play.Result.RoundMultiplier,
			Points:          play.Result.Points,
			Steps:           steps,
		},
		Prior: domain.RoundState{
			DealerIndex: play.Prior.DealerIndex,
			Mode:        domain.RoundMode(play.Prior.Mode),
			Decision:    fromDecisionSchema(play.Prior.Decision),
		},
	}, nil
}

func toDecisionSchema(decision *domain.RamschDecision) *decisionSchema {
	if decision == nil {
		return nil
	}

	return &decisionSchema{
		Status:     string(decision.Status),
		Candidates: slices.Clone(decision.Candidates),
		ResolvedBy: decision.ResolvedBy,
	}
}

func fromDecisionSchema(decision *decisionSchema) *domain.RamschDecision {
	if decision == nil {
		return nil
	}

	return &domain.RamschDecision{
		Status:     domain.DecisionStatus(decision.Status),
		Candidates: decision.Candidates,
		ResolvedBy: decision.ResolvedBy,
	}
}

func parseTime(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", field, raw, err)
	}

	return parsed, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
