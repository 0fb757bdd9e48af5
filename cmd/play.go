package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/rauberskat-cli/internal/application"
	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/spf13/cobra"
)

type playFlags struct {
	sessionID      string
	player         string
	game           string
	comSem         int
	ramschPoints   int
	modifiers      domain.Modifiers
	triggersRamsch bool
	candidates     []string
	asJSON         bool
}

func newPlayCmd(app *app) *cobra.Command {
	var flags playFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Record a resolved hand",
		Example: strings.Join([]string{
			"  rsk play --player Ana --game grand --com-sem 1 --hand",
			"  rsk play --player Beto --game null --ouvert --lost --triggers-ramsch",
			"  rsk play --player Caio --game ramsch --ramsch-points 45 --tie --tie-winner Ana --candidate Ana,Caio",
		}, "\n"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := app.service.ResolveSessionID(cmd.Context(), flags.sessionID)
			if err != nil {
				return err
			}

			submission, err := flags.submission(cmd)
			if err != nil {
				return err
			}

			session, result, err := app.service.SubmitPlay(cmd.Context(), application.SubmitPlayCommand{
				SessionID:  id,
				Submission: submission,
			})
			if err != nil {
				return err
			}

			record := session.History[len(session.History)-1]
			if flags.asJSON {
				return writeJSON(cmd, record)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "recorded %s (%s = base %d x %d", describeRecord(record), describeSteps(result.Steps), result.BaseScore, result.TotalFactor); err != nil {
				return err
			}
			if result.RoundMultiplier != 1 {
				if _, err := fmt.Fprintf(out, " x %d", result.RoundMultiplier); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, ")\n%s\n", describeRound(session))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.sessionID, "session", "", "Session ID or prefix (default: most recent session)")
	f.StringVar(&flags.player, "player", "", "Player who scores the hand")
	f.StringVar(&flags.game, "game", "", "Game type (diamonds|hearts|spades|clubs|grand|grand-hand|null|null-revolution|durchmarsch|ramsch)")
	f.IntVar(&flags.comSem, "com-sem", 0, "Com/sem tier for suit and grand games (0-11)")
	f.IntVar(&flags.ramschPoints, "ramsch-points", 0, "Card points taken in a ramsch hand (0..120)")
	f.BoolVar(&flags.modifiers.Hand, "hand", false, "Played from hand")
	f.BoolVar(&flags.modifiers.Ouvert, "ouvert", false, "Played open")
	f.BoolVar(&flags.modifiers.Schneider, "schneider", false, "Schneider")
	f.BoolVar(&flags.modifiers.SchneiderAnnounced, "schneider-announced", false, "Schneider announced")
	f.BoolVar(&flags.modifiers.Schwarz, "schwarz", false, "Schwarz")
	f.BoolVar(&flags.modifiers.SchwarzAnnounced, "schwarz-announced", false, "Schwarz announced")
	f.BoolVar(&flags.modifiers.Kontra, "kontra", false, "Kontra")
	f.BoolVar(&flags.modifiers.Reh, "reh", false, "Reh (needs --kontra)")
	f.BoolVar(&flags.modifiers.Bock, "bock", false, "Bock (needs --reh)")
	f.BoolVar(&flags.modifiers.Rursch, "rursch", false, "Rursch (needs --bock)")
	f.BoolVar(&flags.modifiers.Jungfrau, "jungfrau", false, "Jungfrau")
	f.BoolVar(&flags.modifiers.Lost, "lost", false, "The declarer lost the hand")
	f.IntVar(&flags.modifiers.SkatPushed, "skat-pushed", 0, "Times the skat was pushed (0..3)")
	f.BoolVar(&flags.modifiers.Tie, "tie", false, "The ramsch hand ended in a tie")
	f.StringVar(&flags.modifiers.TieWinner, "tie-winner", "", "Player sharing the tied ramsch points")
	f.BoolVar(&flags.triggersRamsch, "triggers-ramsch", false, "The hand sends the table into a Ramsch round")
	f.StringSliceVar(&flags.candidates, "candidate", nil, "Players who decide on replaying a tied Ramsch round")
	f.BoolVar(&flags.asJSON, "json", false, "Print the recorded play as JSON")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func (f playFlags) submission(cmd *cobra.Command) (domain.Submission, error) {
	gameType, err := domain.ParseGameType(f.game)
	if err != nil {
		return domain.Submission{}, err
	}

	modifiers := f.modifiers
	if cmd.Flags().Changed("com-sem") {
		modifiers.ComSem = domain.IntPtr(f.comSem)
	}
	if cmd.Flags().Changed("ramsch-points") {
		modifiers.RamschPoints = domain.IntPtr(f.ramschPoints)
	}

	return domain.Submission{
		ScoringPlayer:    f.player,
		GameType:         gameType,
		Modifiers:        modifiers,
		TriggersRamsch:   f.triggersRamsch,
		RamschCandidates: f.candidates,
	}, nil
}
