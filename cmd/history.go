package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/screens/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		screen := history.New(e.store.SessionRepo(), e.userID, app.Quit)
		return app.Run(screen, e.learnerName(cmd.Context()))
	},
}
