package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"remindo/internal/config"
	"remindo/internal/logging"
	"remindo/internal/storage"
	"remindo/internal/tracker"
)

// New builds the remindo command tree. Without a subcommand it starts the TUI.
func New() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "remindo",
		Short:         "Terminal task tracker with due-time alerts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.toml (default $REMINDO_CONFIG or the user config dir).")

	addList(cmd, &configPath)
	addVersion(cmd)
	return cmd
}

// env holds everything opened for one invocation.
type env struct {
	cfg     config.Config
	log     *log.Logger
	tracker *tracker.Tracker
	metrics *tracker.Metrics

	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && e.log != nil {
			e.log.Warn("close", "err", err)
		}
	}
}

// open loads config, logging, storage and the tracker. theme maps the
// configured default_theme to a concrete theme.
func open(configPath string, theme func(string) tracker.Theme, opts ...tracker.Option) (*env, error) {
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	e := &env{cfg: cfg}
	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	e.log = logger
	e.closers = append(e.closers, closer)

	slots, err := storage.Open(cfg.Backend, cfg.DBPath, cfg.DataDir)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	e.closers = append(e.closers, slots)

	e.metrics = tracker.NewMetrics()
	opts = append([]tracker.Option{tracker.WithLogger(logger), tracker.WithMetrics(e.metrics)}, opts...)
	def := defaults(cfg, logger, theme(cfg.DefaultTheme))
	tr, err := tracker.Open(tracker.NewStore(slots), def, opts...)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	e.tracker = tr
	logger.Info("opened", "config", configPath, "backend", cfg.Backend, "tasks", len(tr.Tasks()))
	return e, nil
}

// flushMetrics writes the metrics textfile when one is configured.
func (e *env) flushMetrics() {
	if e.cfg.MetricsFile == "" {
		return
	}
	if err := e.metrics.WriteFile(e.cfg.MetricsFile); err != nil {
		e.log.Error("write metrics", "path", e.cfg.MetricsFile, "err", err)
	}
}

// defaults reads the configured filter, falling back to all.
func defaults(cfg config.Config, logger *log.Logger, th tracker.Theme) tracker.Defaults {
	f, err := tracker.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		logger.Warn("unknown default_filter, using all", "value", cfg.DefaultFilter)
		f = tracker.FilterAll
	}
	return tracker.Defaults{Filter: f, Theme: th}
}
