package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/plan"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate this week's practice plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		recs, err := e.plans.WeeklyPlan(cmd.Context(), e.userID)
		if err != nil {
			return err
		}
		writePlan(cmd.OutOrStdout(), recs)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List active recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		recs, err := e.plans.Active(cmd.Context(), e.userID)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No active recommendations. Run `adaptiq plan` to create one.")
			return nil
		}
		writePlan(cmd.OutOrStdout(), recs)
		return nil
	},
}

var planDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a recommendation as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transitionRecommendation(cmd, args[0], (*plan.Generator).Complete, "completed")
	},
}

var planDismissCmd = &cobra.Command{
	Use:   "dismiss <id>",
	Short: "Dismiss a recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transitionRecommendation(cmd, args[0], (*plan.Generator).Dismiss, "dismissed")
	},
}

func init() {
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDoneCmd)
	planCmd.AddCommand(planDismissCmd)
}

type transitionFunc func(g *plan.Generator, ctx context.Context, userID, id string) error

func transitionRecommendation(cmd *cobra.Command, id string, fn transitionFunc, verb string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := fn(e.plans, cmd.Context(), e.userID, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recommendation %s %s.\n", id, verb)
	return nil
}

// writePlan prints recommendations with the practice plan last.
func writePlan(w io.Writer, recs []plan.Recommendation) {
	var summary []plan.Recommendation
	for _, r := range recs {
		if r.Type == plan.TypePracticePlan {
			summary = append(summary, r)
			continue
		}
		writeRecommendation(w, r)
	}
	for _, r := range summary {
		fmt.Fprintln(w, strings.Repeat("─", 60))
		writeRecommendation(w, r)
	}
}

func writeRecommendation(w io.Writer, r plan.Recommendation) {
	marker, style := "•", theme.Body
	switch r.Type {
	case plan.TypeFocusArea:
		marker, style = "▲", lipgloss.NewStyle().Foreground(theme.Accent)
	case plan.TypeEncouragement:
		marker, style = "★", theme.Correct
	case plan.TypePracticePlan:
		marker, style = "▶", theme.Title
	}
	fmt.Fprintf(w, "%s %s\n", style.Render(marker), style.Render(r.Message))
	fmt.Fprintf(w, "  %s\n", theme.Muted.Render(fmt.Sprintf("%d questions, about %d minutes  [%s]",
		r.SuggestedQuestions, r.SuggestedMinutes, r.ID)))
}
