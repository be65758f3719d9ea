package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all records of the learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete all progress for %q? Type yes to confirm: ", e.userID)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(strings.ToLower(line)) != "yes" {
				return errCancelled
			}
		}

		n, err := e.store.ResetUser(cmd.Context(), e.userID)
		if err != nil {
			return fmt.Errorf("reset learner: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records for %q.\n", n, e.userID)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
