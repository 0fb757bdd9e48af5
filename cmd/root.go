package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rsk",
		Short:         "Räuberskat scorekeeper (rsk): score a table, track rounds and settle up",
		Long:          "rsk keeps the score of a Räuberskat table: it scores each hand, rotates the dealer, switches between Bock and Ramsch rounds, and settles the session at the end.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(os.Stderr)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSessionCmd(app),
		newPlayCmd(app),
		newUndoCmd(app),
		newRamschCmd(app),
	)

	return rootCmd
}
