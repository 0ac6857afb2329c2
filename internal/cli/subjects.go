package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prbarprep/barprep-go/internal/subjects"
)

func newSubjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List the bar exam subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			codes, err := a.client.Subjects(cmd.Context())
			if err != nil {
				// The catalog is fixed, so an unreachable backend still lists it.
				a.logger.Warn().Err(err).Msg("falling back to the built-in subject catalog")
				codes = subjects.All()
			}

			for _, code := range codes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", code, subjects.Name(code))
			}
			return nil
		},
	}
}
