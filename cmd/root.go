package cmd

import (
	"errors"
	"io"
	"io/fs"
	"resizer/internal/adapters/api"
	"resizer/internal/adapters/file"
	"resizer/internal/adapters/handler"
	"resizer/internal/adapters/hosting"
	"resizer/internal/adapters/probe"
	"resizer/internal/adapters/sender"
	"resizer/internal/adapters/storage"
	"resizer/internal/config"
	"resizer/internal/core/domain"
	"resizer/internal/core/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds the wired components shared by all commands.
type app struct {
	cfg         config.Config
	sessions    *service.SessionStore
	accounts    *service.AccountService
	notifier    *service.Notifier
	uploads     *service.UploadManager
	transformer *service.Transformer
	jobs        *service.JobRegistry
	presets     *domain.PresetRegistry
}

func newApp(cfg config.Config, notifications io.Writer) *app {
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	sessions := service.NewSessionStore(storage.NewSessionFile(cfg.SessionPath))
	notifier := service.NewNotifier(sender.NewConsoleSink(notifications), cfg.NotifyDelay)

	return &app{
		cfg:         cfg,
		sessions:    sessions,
		accounts:    service.NewAccountService(client, sessions),
		notifier:    notifier,
		uploads:     service.NewUploadManager(hosting.NewUploader(cfg.HostingURL, cfg.HTTPTimeout), notifier, cfg.MaxUploadBytes),
		transformer: service.NewTransformer(client, notifier, file.NewSaver()),
		jobs:        service.NewJobRegistry(client, notifier, nil),
		presets:     domain.NewPresetRegistry(),
	}
}

func (a *app) uploadView() *handler.UploadView {
	read := func(path string) (domain.SourceFile, error) {
		return file.ReadSource(path, a.cfg.MaxUploadBytes)
	}

	return handler.NewUploadView(a.accounts, a.uploads, probe.NewProber(), a.transformer, a.presets, read)
}

func (a *app) dashboardView(out io.Writer) *handler.DashboardView {
	return handler.NewDashboardView(a.accounts, a.jobs, out)
}

func NewRootCmd() *cobra.Command {
	var configFile string
	a := &app{}

	cmd := &cobra.Command{
		Use:   "resizer",
		Short: "Upload images and manage resize jobs",
		Long: `Resizer uploads an image to the hosting service, builds a resize request
from the chosen dimensions, crop, rotation, filter and output format, and
submits it to the resize service.

Past resizes can be listed, inspected and deleted from the jobs dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.SetupLogging("info", cmd.ErrOrStderr())

			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Msg("could not load .env file")
			}

			cfg, err := config.Load(config.New(configFile))
			if err != nil {
				return err
			}

			config.SetupLogging(cfg.LogLevel, cmd.ErrOrStderr())
			*a = *newApp(cfg, cmd.ErrOrStderr())

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.notifier != nil {
				a.notifier.Stop()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.toml or <user config dir>/resizer/config.toml)")

	cmd.AddCommand(newSignupCmd(a))
	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	cmd.AddCommand(newWhoamiCmd(a))
	cmd.AddCommand(newUploadCmd(a))
	cmd.AddCommand(newJobsCmd(a))
	cmd.AddCommand(newPresetsCmd(a))

	return cmd
}
