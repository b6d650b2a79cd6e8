package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/celerix-dev/ivr-reports/internal/config"
	"github.com/celerix-dev/ivr-reports/internal/dashboard"
	"github.com/celerix-dev/ivr-reports/internal/engine"
	"github.com/celerix-dev/ivr-reports/internal/logger"
	"github.com/celerix-dev/ivr-reports/internal/session"
	"github.com/celerix-dev/ivr-reports/pkg/sdk"
)

var debug bool

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ivrctl",
		Short:         "Query and export IVR interaction reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.Console(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				logger.Console(zerolog.InfoLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newRecordsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// env is what every command runs against. close flushes the session slot.
type env struct {
	cfg   *config.Config
	store *engine.MemStore
	app   *dashboard.App
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}

	store, err := engine.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	client, err := sdk.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("data_dir", cfg.DataDir).
		Strs("slots", store.Keys()).
		Msg("environment ready")
	auth := session.NewAuthState(session.NewStore(store))
	app := dashboard.New(client, auth, dashboard.WithPageSize(cfg.PageSize))
	return &env{cfg: cfg, store: store, app: app}, nil
}

func (e *env) close() {
	e.store.Wait()
}
