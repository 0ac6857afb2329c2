package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prbarprep/barprep-go/internal/realtime"
	"github.com/prbarprep/barprep-go/internal/viewmodel"
)

func newChatCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Join the study room for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			transport, err := a.dialTransport(cmd.Context())
			if err != nil {
				return fmt.Errorf("connect realtime backend: %w", err)
			}
			defer transport.Close()

			adapter := realtime.NewAdapter(transport, a.logger)
			vm := viewmodel.NewChatView(a.client, adapter, a.sess, a.logger)
			defer vm.Close()

			if err := vm.OpenSubject(cmd.Context(), subject); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			room, _ := vm.Room()
			fmt.Fprintf(out, "Joined %s. Type a message, or '/quit' to leave.\n\n", room.Name)
			for _, msg := range vm.Messages() {
				fmt.Fprintf(out, "[user %d] %s\n", msg.UserID, msg.Message)
			}

			return runChatLoop(cmd, vm)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject code (see `barprep subjects`)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func runChatLoop(cmd *cobra.Command, vm *viewmodel.ChatView) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	// Incoming pushes interleave with the input prompt; the merged view stays
	// consistent even when rendering is racy.
	shown := len(vm.Messages())

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" {
			return nil
		}
		if line != "" {
			if _, err := vm.Send(cmd.Context(), line); err != nil {
				fmt.Fprintln(out, err)
			}
		}

		for _, msg := range vm.Messages()[shown:] {
			fmt.Fprintf(out, "[user %d] %s\n", msg.UserID, msg.Message)
		}
		shown = len(vm.Messages())
	}
	return scanner.Err()
}
