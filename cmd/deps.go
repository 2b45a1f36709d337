package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/config"
	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/llm"
	"github.com/Sablekanishka11/mbti-mirror/internal/logging"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/store"
	"github.com/Sablekanishka11/mbti-mirror/internal/store/postgres"
)

// deps is everything a command needs once configuration is resolved.
type deps struct {
	cfg      config.Config
	dbPath   string
	logger   *slog.Logger
	events   store.EventRepo
	results  *results.Service
	catalog  *profiles.Catalog
	insights *insight.Service
	closers  []func() error
}

type depsOptions struct {
	// logToFile sends logs next to the database instead of stderr, for
	// the terminal UI.
	logToFile bool
	// withInsights builds the LLM provider. Commands that never explain
	// exemplars skip it.
	withInsights bool
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.User = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		if _, err := logging.ParseLevel(v); err != nil {
			return config.Config{}, err
		}
		cfg.LogLevel = v
	}
	return cfg, nil
}

func openDeps(cmd *cobra.Command, opts depsOptions) (*deps, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	// The SQLite path also places the TUI log file.
	if !cfg.UsePostgres() || opts.logToFile {
		if d.dbPath, err = resolveDBPath(cmd); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}

	var logOut io.Writer = cmd.ErrOrStderr()
	if opts.logToFile {
		f, err := logging.OpenFile(d.dbPath)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, f.Close)
		logOut = f
	}
	d.logger = logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: logOut})

	if d.catalog, err = profiles.Default(); err != nil {
		d.Close()
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	var repo results.Repo
	if cfg.UsePostgres() {
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, pg.Close)
		repo, d.events = pg.ResultRepo(), pg.EventRepo()
		d.logger.Debug("using postgres store")
	} else {
		st, err := store.Open(d.dbPath)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.closers = append(d.closers, st.Close)
		repo, d.events = st.ResultRepo(), st.EventRepo()
		d.logger.Debug("using sqlite store", "path", d.dbPath)
	}

	d.results = results.NewService(repo, d.catalog, results.WithLogger(d.logger))

	var provider llm.Provider
	if opts.withInsights {
		p, err := llm.NewProviderFromEnv(ctx, d.events)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			d.logger.Info("no LLM provider configured; insights disabled")
		case err != nil:
			d.logger.Warn("LLM provider unavailable; insights disabled", "err", err)
		default:
			provider = p
		}
	}
	d.insights, err = insight.NewService(provider, insight.Options{
		CacheSize: cfg.InsightCacheSize,
		Logger:    d.logger,
	})
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("insight service: %w", err)
	}
	return d, nil
}

// owner returns the configured user or an error telling how to set one.
func (d *deps) owner() (string, error) {
	if d.cfg.User == "" {
		return "", errors.New("no user: pass --user or set MBTI_USER")
	}
	return d.cfg.User, nil
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && d.logger != nil {
			d.logger.Warn("close", "err", err)
		}
	}
	d.closers = nil
}
