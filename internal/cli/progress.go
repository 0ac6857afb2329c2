package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prbarprep/barprep-go/internal/format"
	"github.com/prbarprep/barprep-go/internal/subjects"
	"github.com/prbarprep/barprep-go/internal/viewmodel"
)

func newProgressCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show study progress aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			vm := viewmodel.NewProgressView(a.client, a.sess, a.logger)
			out := cmd.OutOrStdout()

			if subject != "" {
				if err := vm.SetSubject(cmd.Context(), subject); err != nil {
					return err
				}
				detail, ok := vm.Subject()
				if !ok {
					return fmt.Errorf("no progress recorded for %s", subject)
				}
				fmt.Fprintf(out, "%s\n", subjects.Name(detail.Subject))
				fmt.Fprintf(out, "  MCQs: %d attempted, %d correct, %.1f%% accuracy\n",
					detail.TotalMCQsAttempted, detail.TotalMCQsCorrect, detail.AccuracyPercentage)
				fmt.Fprintf(out, "  Essays: %d submitted", detail.TotalEssaysSubmitted)
				if detail.AverageEssayScore != nil {
					fmt.Fprintf(out, ", average score %s", format.Score(*detail.AverageEssayScore))
				}
				fmt.Fprintf(out, "\n  Last activity: %s\n", format.Date(detail.LastActivity))
				return nil
			}

			if err := vm.Refresh(cmd.Context()); err != nil {
				return err
			}
			overview, ok := vm.Overview()
			if !ok {
				return fmt.Errorf("no progress recorded yet")
			}

			fmt.Fprintf(out, "Overall: %d questions attempted, %.1f%% accuracy\n\n",
				overview.TotalQuestionsAttempted, overview.OverallAccuracy)
			for _, entry := range overview.Subjects {
				fmt.Fprintf(out, "%-28s %4d MCQs  %5.1f%%  %d essays\n",
					subjects.Name(entry.Subject), entry.TotalMCQsAttempted, entry.AccuracyPercentage, entry.TotalEssaysSubmitted)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "limit to one subject code")
	return cmd
}
