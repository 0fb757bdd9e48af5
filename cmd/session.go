package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/rauberskat-cli/internal/adapters/render/scoreboard"
	"github.com/bnema/rauberskat-cli/internal/application"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage scoring sessions",
	}

	cmd.AddCommand(
		newSessionNewCmd(app),
		newSessionShowCmd(app),
		newSessionFinalCmd(app),
		newSessionDeleteCmd(app),
	)

	return cmd
}

func newSessionNewCmd(app *app) *cobra.Command {
	var players []string
	var name string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a session with 3 or 4 players in seating order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var metadata map[string]string
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				metadata = map[string]string{"name": trimmed}
			}

			session, err := app.service.CreateSession(cmd.Context(), application.CreateSessionCommand{
				Players:  players,
				Metadata: metadata,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "session %s created: %s (dealer %s)\n",
				session.ID, strings.Join(session.Players, ", "), session.Dealer())
			return err
		},
	}

	cmd.Flags().StringSliceVar(&players, "players", nil, "Players in seating order, comma separated (first player deals first)")
	cmd.Flags().StringVar(&name, "name", "", "Optional session name")
	_ = cmd.MarkFlagRequired("players")

	return cmd
}

func newSessionShowCmd(app *app) *cobra.Command {
	var sessionID string
	var asJSON bool
	var historyLimit int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show standings and play history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := app.service.ResolveSessionID(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			if asJSON {
				view, err := app.service.GetStandings(cmd.Context(), id)
				if err != nil {
					return err
				}
				return writeJSON(cmd, view)
			}

			return writeScoreboard(cmd, app, id, scoreboard.RenderOptions{HistoryLimit: historyLimit})
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID or prefix (default: most recent session)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")
	cmd.Flags().IntVar(&historyLimit, "history", 0, "Show only the last N plays (0 shows all)")

	return cmd
}

func newSessionFinalCmd(app *app) *cobra.Command {
	var sessionID string
	var centsPerPoint int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "final",
		Short: "Show the final standings and what each player owes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := app.service.ResolveSessionID(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			settlement, err := app.service.Settle(cmd.Context(), id, centsPerPoint)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, settlement)
			}

			return writeScoreboard(cmd, app, id, scoreboard.RenderOptions{Settlement: &settlement})
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID or prefix (default: most recent session)")
	cmd.Flags().IntVar(&centsPerPoint, "cents-per-point", app.settings.CentsPerPoint, "Cents owed per point behind the winner")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func newSessionDeleteCmd(app *app) *cobra.Command {
	var sessionID string
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := app.service.ResolveSessionID(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			if !yes {
				confirmed, err := pterm.DefaultInteractiveConfirm.
					WithDefaultText(fmt.Sprintf("Delete session %s?", id)).
					WithDefaultValue(false).
					Show()
				if err != nil {
					return fmt.Errorf("confirm delete: %w", err)
				}
				if !confirmed {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return err
				}
			}

			if err := app.service.DeleteSession(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "session %s deleted\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID or prefix")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
