package cmd

import (
	"fmt"

	"github.com/bnema/rauberskat-cli/internal/application"
	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/spf13/cobra"
)

const groupVoter = "table"

func newRamschCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ramsch",
		Short: "Resolve Ramsch round decisions",
	}

	cmd.AddCommand(newRamschDecideCmd(app))

	return cmd
}

func newRamschDecideCmd(app *app) *cobra.Command {
	var sessionID string
	var all bool
	var reject bool
	var voter string

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Accept (whole table) or reject (any candidate) replaying a tied Ramsch round",
		Example: "  rsk ramsch decide --all\n" +
			"  rsk ramsch decide --reject --voter Ana",
		RunE: func(cmd *cobra.Command, _ []string) error {
			vote, err := ramschVote(all, reject, voter)
			if err != nil {
				return err
			}

			id, err := app.service.ResolveSessionID(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			session, err := app.service.ResolveRamschDecision(cmd.Context(), application.RamschVoteCommand{
				SessionID: id,
				Vote:      vote,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ramsch replay %s by %s\n%s\n",
				session.RamschDecision.Status, session.RamschDecision.ResolvedBy, describeRound(session))
			return err
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID or prefix (default: most recent session)")
	cmd.Flags().BoolVar(&all, "all", false, "The whole table votes together")
	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the replay")
	cmd.Flags().StringVar(&voter, "voter", "", "Candidate who rejects the replay")

	return cmd
}

func ramschVote(all, reject bool, voter string) (domain.RamschVote, error) {
	switch {
	case all && voter != "":
		return domain.RamschVote{}, fmt.Errorf("%w: --voter cannot be combined with --all", domain.ErrValidation)
	case all:
		return domain.RamschVote{Voter: groupVoter, Accepts: !reject, IsGroupVote: true}, nil
	case reject && voter == "":
		return domain.RamschVote{}, fmt.Errorf("%w: --reject needs --voter or --all", domain.ErrValidation)
	case reject:
		return domain.RamschVote{Voter: voter, Accepts: false}, nil
	default:
		return domain.RamschVote{}, fmt.Errorf("%w: pass --all to accept or --reject --voter NAME to reject", domain.ErrValidation)
	}
}
