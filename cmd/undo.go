package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUndoCmd(app *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Remove the last recorded play and restore the round before it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := app.service.ResolveSessionID(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			session, record, err := app.service.UndoLastPlay(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "undid %s\n%s\n", describeRecord(record), describeRound(session))
			return err
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID or prefix (default: most recent session)")

	return cmd
}
