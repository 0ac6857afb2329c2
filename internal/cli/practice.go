package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prbarprep/barprep-go/internal/subjects"
	"github.com/prbarprep/barprep-go/internal/viewmodel"
)

func newPracticeCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Answer multiple-choice questions for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			vm := viewmodel.NewMCQPractice(a.client, a.sess, a.logger)
			defer vm.Close()

			if err := vm.SetSubject(cmd.Context(), subject); err != nil {
				return err
			}
			if vm.State() == viewmodel.StateIdle {
				fmt.Fprintln(cmd.OutOrStdout(), "No questions available yet; generating a batch...")
				if err := vm.Generate(cmd.Context()); err != nil {
					return err
				}
			}

			return runPracticeLoop(cmd, vm)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject code (see `barprep subjects`)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func runPracticeLoop(cmd *cobra.Command, vm *viewmodel.MCQPractice) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintf(out, "Practicing %s. Type an option letter to answer, 'next', 'stats', or 'quit'.\n\n", subjects.Name(vm.Subject()))

	printQuestion(cmd, vm)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "quit", "q":
			return nil
		case "stats":
			printStats(cmd, vm)
		case "next", "n":
			if err := vm.Next(cmd.Context()); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			printQuestion(cmd, vm)
		default:
			if err := answer(cmd, vm, strings.ToUpper(input)); err != nil {
				fmt.Fprintln(out, err)
			}
		}
	}
	return scanner.Err()
}

func answer(cmd *cobra.Command, vm *viewmodel.MCQPractice, label string) error {
	out := cmd.OutOrStdout()

	if err := vm.Select(label); err != nil {
		return err
	}
	result, err := vm.Submit(cmd.Context())
	if err != nil {
		if errors.Is(err, viewmodel.ErrSubmissionInFlight) {
			return errors.New("still grading the previous answer")
		}
		return err
	}

	if result.IsCorrect {
		fmt.Fprintln(out, "Correct.")
	} else {
		fmt.Fprintf(out, "Incorrect. The correct answer is %s.\n", result.CorrectAnswer)
	}
	if result.Explanation != nil && *result.Explanation != "" {
		fmt.Fprintln(out, *result.Explanation)
	}
	printStats(cmd, vm)
	fmt.Fprintln(out, "Type 'next' to continue.")
	return nil
}

func printQuestion(cmd *cobra.Command, vm *viewmodel.MCQPractice) {
	out := cmd.OutOrStdout()

	question, ok := vm.Current()
	if !ok {
		fmt.Fprintln(out, "No question loaded.")
		return
	}
	position, total := vm.Progress()
	fmt.Fprintf(out, "[%d/%d] %s\n", position, total, question.QuestionText)
	for _, option := range question.Options {
		fmt.Fprintf(out, "  %s) %s\n", option.Label, option.Text)
	}
}

func printStats(cmd *cobra.Command, vm *viewmodel.MCQPractice) {
	stats := vm.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Subject stats: %d attempted, %d correct, %.1f%% accuracy\n",
		stats.Attempted, stats.Correct, stats.Accuracy)
}
