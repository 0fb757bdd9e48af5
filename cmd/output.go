package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/rauberskat-cli/internal/adapters/render/scoreboard"
	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeScoreboard(cmd *cobra.Command, app *app, id domain.SessionID, opts scoreboard.RenderOptions) error {
	view, err := app.service.GetStandings(cmd.Context(), id)
	if err != nil {
		return err
	}

	rendered, err := app.scoreRenderer(view, opts)
	if err != nil {
		return fmt.Errorf("render scoreboard: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func describeRecord(record domain.PlayRecord) string {
	player := record.ScoringPlayer
	if record.TieWinner != "" {
		player += " + " + record.TieWinner
	}
	return fmt.Sprintf("#%d %s %s %+d %s", record.Sequence, player, record.GameType, record.Result.Points, record.RoundModeAtPlay.Suffix())
}

// describeSteps renders the factor breakdown, e.g. "comSem=2 +hand x2 perdeu".
func describeSteps(steps []domain.Step) string {
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		switch step.Op {
		case domain.StepBase:
			parts = append(parts, fmt.Sprintf("%s=%d", step.Name, step.Value))
		case domain.StepAdd:
			parts = append(parts, "+"+step.Name)
		case domain.StepMul:
			parts = append(parts, fmt.Sprintf("x%d %s", step.Value, step.Name))
		}
	}
	return strings.Join(parts, " ")
}

func describeRound(session domain.GameSession) string {
	line := fmt.Sprintf("next: %s round, dealer %s", session.RoundMode, session.Dealer())
	if session.RamschDecision.Awaiting() {
		line += fmt.Sprintf(" (ramsch tie: %s decide with `rsk ramsch decide`)", strings.Join(session.RamschDecision.Candidates, ", "))
	}
	return line
}
