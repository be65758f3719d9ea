package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List sections and their skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		configs := skills.Configs()
		if v, _ := cmd.Flags().GetString("section"); v != "" {
			sec, err := skills.ParseSection(v)
			if err != nil {
				return err
			}
			cfg, _ := skills.Config(sec)
			configs = []skills.SectionConfig{cfg}
		}

		out := cmd.OutOrStdout()
		n := 0
		for _, c := range configs {
			fmt.Fprintf(out, "%s (%s): %d questions, %s\n",
				c.Name, c.Type, c.DefaultQuestionCount, c.DefaultTime)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, s := range c.Skills {
				fmt.Fprintf(out, "  %-28s  %s\n", s.Tag, s.Name)
				n++
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d skills\n", n)
		return nil
	},
}

func init() {
	skillsCmd.Flags().String("section", "", "Show one section (e.g. math, word-relations)")
}
