package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prbarprep/barprep-go/internal/format"
	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/viewmodel"
)

func newEssayCmd() *cobra.Command {
	var (
		subject     string
		promptIndex int
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "essay",
		Short: "Write an essay and get it graded",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			vm := viewmodel.NewEssayPractice(a.client, a.sess, a.logger)
			if err := vm.SetSubject(cmd.Context(), subject); err != nil {
				return err
			}

			if showHistory {
				printEssayHistory(cmd, vm)
				return nil
			}

			if err := vm.SelectPrompt(promptIndex); err != nil {
				return fmt.Errorf("no prompt at position %d for %s", promptIndex, subject)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, vm.Prompt())
			fmt.Fprintln(out, "\nWrite your essay. End with a single '.' on its own line.")

			draft, err := readDraft(cmd)
			if err != nil {
				return err
			}
			vm.SetDraft(draft)
			fmt.Fprintf(out, "%d words. Submitting for grading...\n", vm.WordCount())

			essay, err := vm.Submit(cmd.Context())
			if err != nil {
				return err
			}
			printGrade(cmd, essay)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject code (see `barprep subjects`)")
	cmd.Flags().IntVar(&promptIndex, "prompt", 0, "prompt position within the subject's prompt list")
	cmd.Flags().BoolVar(&showHistory, "history", false, "list previously submitted essays instead of writing")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func readDraft(cmd *cobra.Command) (string, error) {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), scanner.Err()
}

func printGrade(cmd *cobra.Command, essay models.Essay) {
	out := cmd.OutOrStdout()

	if essay.Grade == nil {
		fmt.Fprintln(out, "Submitted; the grade is not ready yet.")
		return
	}

	grade := essay.Grade
	fmt.Fprintf(out, "\nOverall score: %s (%s)\n", format.Score(grade.OverallScore), format.ScoreBand(grade.OverallScore))
	printComponent(cmd, "Legal analysis", grade.LegalAnalysisScore)
	printComponent(cmd, "Writing quality", grade.WritingQualityScore)
	printComponent(cmd, "Citation accuracy", grade.CitationAccuracyScore)

	if grade.Feedback != "" {
		fmt.Fprintf(out, "\n%s\n", grade.Feedback)
	}
	if len(grade.Citations) > 0 {
		fmt.Fprintln(out, "\nCitations:")
		for _, citation := range grade.Citations {
			fmt.Fprintf(out, "  - %s\n", citation.String())
		}
	}
}

func printComponent(cmd *cobra.Command, name string, score *float64) {
	if score == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", name, format.Score(*score))
}

func printEssayHistory(cmd *cobra.Command, vm *viewmodel.EssayPractice) {
	out := cmd.OutOrStdout()

	total, average, graded := vm.HistorySummary()
	fmt.Fprintf(out, "%d essays, %d graded, average score %s\n\n", total, graded, format.Score(average))
	for _, essay := range vm.History() {
		score := "ungraded"
		if essay.Grade != nil {
			score = format.Score(essay.Grade.OverallScore)
		}
		fmt.Fprintf(out, "#%d  %s  %s\n", essay.ID, format.Date(essay.SubmittedAt), score)
	}
}
