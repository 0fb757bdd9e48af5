package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// sessionSchema omits cumulative scores; they are rebuilt from the history on
// load.
type sessionSchema struct {
	ID             string            `toml:"id"`
	Players        []string          `toml:"players"`
	Metadata       map[string]string `toml:"metadata,omitempty"`
	Rules          rulesSchema       `toml:"rules"`
	DealerIndex    int               `toml:"dealer_index"`
	RoundMode      string            `toml:"round_mode"`
	RamschDecision *decisionSchema   `toml:"ramsch_decision,omitempty"`
	CreatedAt      string            `toml:"created_at"`
	UpdatedAt      string            `toml:"updated_at"`
	History        []playSchema      `toml:"history,omitempty"`
}

type rulesSchema struct {
	NullBase          map[string]int `toml:"null_base"`
	GrandOuvertBase   int            `toml:"grand_ouvert_base"`
	DurchmarschBase   int            `toml:"durchmarsch_base"`
	BockRoundDoubling bool           `toml:"bock_round_doubling"`
}

type decisionSchema struct {
	Status     string   `toml:"status"`
	Candidates []string `toml:"candidates"`
	ResolvedBy string   `toml:"resolved_by,omitempty"`
}

type roundSchema struct {
	DealerIndex int             `toml:"dealer_index"`
	Mode        string          `toml:"mode"`
	Decision    *decisionSchema `toml:"decision,omitempty"`
}

type playSchema struct {
	Sequence         int             `toml:"sequence"`
	ScoringPlayer    string          `toml:"scoring_player"`
	GameType         string          `toml:"game_type"`
	RoundMode        string          `toml:"round_mode"`
	Dealer           string          `toml:"dealer"`
	TieWinner        string          `toml:"tie_winner,omitempty"`
	TriggersRamsch   bool            `toml:"triggers_ramsch,omitempty"`
	RamschCandidates []string        `toml:"ramsch_candidates,omitempty"`
	RecordedAt       string          `toml:"recorded_at"`
	Modifiers        modifiersSchema `toml:"modifiers"`
	Result           resultSchema    `toml:"result"`
	Prior            roundSchema     `toml:"prior"`
}

type modifiersSchema struct {
	ComSem             *int   `toml:"com_sem,omitempty"`
	Hand               bool   `toml:"hand,omitempty"`
	Ouvert             bool   `toml:"ouvert,omitempty"`
	Schneider          bool   `toml:"schneider,omitempty"`
	SchneiderAnnounced bool   `toml:"schneider_announced,omitempty"`
	Schwarz            bool   `toml:"schwarz,omitempty"`
	SchwarzAnnounced   bool   `toml:"schwarz_announced,omitempty"`
	Kontra             bool   `toml:"kontra,omitempty"`
	Reh                bool   `toml:"reh,omitempty"`
	Bock               bool   `toml:"bock,omitempty"`
	Rursch             bool   `toml:"rursch,omitempty"`
	Jungfrau           bool   `toml:"jungfrau,omitempty"`
	Lost               bool   `toml:"lost,omitempty"`
	RamschPoints       *int   `toml:"ramsch_points,omitempty"`
	SkatPushed         int    `toml:"skat_pushed,omitempty"`
	Tie                bool   `toml:"tie,omitempty"`
	TieWinner          string `toml:"tie_winner,omitempty"`
}

type resultSchema struct {
	BaseScore       int          `toml:"base_score"`
	TotalFactor     int          `toml:"total_factor"`
	RoundMultiplier int          `toml:"round_multiplier"`
	Points          int          `toml:"points"`
	Steps           []stepSchema `toml:"steps,omitempty"`
}

type stepSchema struct {
	Name  string `toml:"name"`
	Op    string `toml:"op"`
	Value int    `toml:"value"`
}
