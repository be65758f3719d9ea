package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/skills"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session or exam",
	Long: `Start a session in the terminal UI.

Modes:
  practice   questions from chosen sections with instant feedback
  adaptive   a mix picked from your weak and strong skills
  mini_exam  two sections, timed per section
  full_exam  every section at its exam length and time limit`,
	Example: `  adaptiq practice --mode practice --section math --count 10 --difficulty hard
  adaptiq practice --mode mini_exam
  adaptiq practice --mode full_exam --timer none`,
	RunE: runPractice,
}

func init() {
	addPracticeFlags(practiceCmd)
}

func addPracticeFlags(c *cobra.Command) {
	c.Flags().String("mode", "practice", "Session mode: practice, adaptive, mini_exam or full_exam")
	c.Flags().StringSlice("section", nil, "Section to include (repeatable)")
	c.Flags().Int("count", 0, "Questions per section (0 uses the mode default)")
	c.Flags().String("difficulty", "", "Difficulty: easy, medium, hard or adaptive")
	c.Flags().String("timer", "", "Timer mode: none, per_question or per_section")
	c.Flags().Int("time-limit", 0, "Seconds per section with --timer per_section (0 uses the section default)")
}

func runPractice(cmd *cobra.Command, args []string) error {
	mode, cfg, err := practiceConfig(cmd)
	if err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(newSessionScreen(e, mode, cfg), e.learnerName(cmd.Context()))
}

// practiceConfig builds the session config from flags on top of the
// mode defaults.
func practiceConfig(cmd *cobra.Command) (session.Mode, session.Config, error) {
	modeVal, _ := cmd.Flags().GetString("mode")
	mode, err := session.ParseMode(modeVal)
	if err != nil {
		return "", session.Config{}, err
	}
	cfg := session.DefaultConfig(mode)

	sections, _ := cmd.Flags().GetStringSlice("section")
	if len(sections) > 0 {
		cfg.Sections = nil
		for _, v := range sections {
			sec, err := skills.ParseSection(v)
			if err != nil {
				return "", session.Config{}, err
			}
			cfg.Sections = append(cfg.Sections, sec)
		}
	}

	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		return "", session.Config{}, fmt.Errorf("--count must not be negative")
	}
	if count > 0 {
		cfg.QuestionsPerSection = count
	}

	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		d, err := skills.ParseDifficulty(v)
		if err != nil {
			return "", session.Config{}, err
		}
		cfg.Difficulty = d
	}

	if v, _ := cmd.Flags().GetString("timer"); v != "" {
		tm, err := session.ParseTimerMode(v)
		if err != nil {
			return "", session.Config{}, err
		}
		cfg.TimerMode = tm
	}
	limit, _ := cmd.Flags().GetInt("time-limit")
	if limit < 0 {
		return "", session.Config{}, fmt.Errorf("--time-limit must not be negative")
	}
	if limit > 0 {
		cfg.TimeLimitSec = limit
	}
	return mode, cfg, nil
}
