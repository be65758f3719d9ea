package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adaptiq",
	Short: "Adaptive quiz practice for kids",
	Long: `adaptiq is a terminal quiz app for children preparing for ability tests.
It tracks mastery per skill across five sections and picks questions that
focus on weak spots while keeping strong skills fresh.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHome(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ADAPTIQ_DB and the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides ADAPTIQ_CONFIG)")
	rootCmd.PersistentFlags().String("user", "", "Learner id (overrides ADAPTIQ_USER and the config file)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
