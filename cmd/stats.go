package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/mastery"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery per skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		level, _ := cmd.Flags().GetString("level")
		all, err := skillsAtLevel(cmd.Context(), e.mastery, e.userID, level)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			if level != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s skills.\n", level)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "No answers recorded yet. Run `adaptiq` to start practising.")
			return nil
		}
		writeStats(cmd.OutOrStdout(), all)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("level", "", "Only show weak, medium or strong skills")
}

// skillsAtLevel lists the learner's skills, optionally only one band.
func skillsAtLevel(ctx context.Context, svc *mastery.Service, userID, level string) ([]*mastery.SkillStats, error) {
	switch mastery.Level(strings.ToLower(level)) {
	case "":
		return svc.AllSkills(ctx, userID)
	case mastery.LevelWeak:
		return svc.WeakSkills(ctx, userID)
	case mastery.LevelMedium:
		return svc.MediumSkills(ctx, userID)
	case mastery.LevelStrong:
		return svc.StrongSkills(ctx, userID)
	default:
		return nil, fmt.Errorf("invalid level %q: must be weak, medium or strong", level)
	}
}

func writeStats(w io.Writer, all []*mastery.SkillStats) {
	fmt.Fprintf(w, "%-22s  %-28s  %5s  %8s  %8s  %8s  %s\n",
		"Section", "Skill", "Score", "Attempts", "Accuracy", "Avg time", "Level")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	counts := map[mastery.Level]int{}
	for _, st := range all {
		level := mastery.Classify(st)
		counts[level]++
		name := skills.Name(st.Skill)
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		score := lipgloss.NewStyle().Foreground(theme.ScoreColor(st.MasteryScore)).
			Render(fmt.Sprintf("%5d", int(math.Round(st.MasteryScore))))
		lvl := lipgloss.NewStyle().Foreground(theme.LevelColor(string(level))).Render(string(level))
		fmt.Fprintf(w, "%-22s  %-28s  %s  %8d  %7.0f%%  %7.0fs  %s\n",
			st.Section.DisplayName(), name, score, st.Attempts, st.Accuracy()*100, st.AvgTimeSec, lvl)
	}

	fmt.Fprintf(w, "\n%d skills: %d weak, %d medium, %d strong\n",
		len(all), counts[mastery.LevelWeak], counts[mastery.LevelMedium], counts[mastery.LevelStrong])
}
