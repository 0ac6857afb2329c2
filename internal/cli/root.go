package cli

import (
	"context"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/prbarprep/barprep-go/internal/api"
	"github.com/prbarprep/barprep-go/internal/config"
	"github.com/prbarprep/barprep-go/internal/realtime"
	"github.com/prbarprep/barprep-go/internal/session"
)

var userID int64

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "barprep",
		Short:         "Study client for the Puerto Rico bar exam platform",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().Int64Var(&userID, "user", 1, "numeric id of the student account")
	cmd.AddCommand(newSubjectsCmd())
	cmd.AddCommand(newPracticeCmd())
	cmd.AddCommand(newEssayCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newProgressCmd())
	cmd.AddCommand(newMaterialsCmd())
	return cmd
}

// app bundles the shared wiring every subcommand needs: configuration, the
// API client, and the student session.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
	client *api.Client
	sess   session.Session
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())

	opts := []api.Option{api.WithTimeout(cfg.APITimeout)}
	if cfg.AuthToken != "" {
		opts = append(opts, api.WithAuthToken(cfg.AuthToken))
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		client: api.New(cfg.APIBaseURL, validate, logger, opts...),
		sess:   session.Static(userID),
	}, nil
}

// dialTransport connects the configured realtime backend.
func (a *app) dialTransport(ctx context.Context) (realtime.Transport, error) {
	if a.cfg.RealtimeDriver == config.RealtimeDriverWebsocket {
		return realtime.DialWebsocket(ctx, a.cfg.RealtimeURL, a.cfg.RealtimeToken, a.logger)
	}
	return realtime.DialNATS(a.cfg.RealtimeURL, a.cfg.RealtimeToken, a.logger)
}
