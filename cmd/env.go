package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/config"
	"github.com/abhisek/adaptiq/internal/content"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/logging"
	"github.com/abhisek/adaptiq/internal/mastery"
	"github.com/abhisek/adaptiq/internal/plan"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/store"
)

// env holds everything a command needs to work with one learner.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	userID string

	mastery  *mastery.Service
	pool     *content.Pool
	selector *adaptive.Selector
	plans    *plan.Generator
}

// loadConfig reads the config file named by --config and applies --user.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.Learner.ID = u
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db (highest priority),
// then the config file and ADAPTIQ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}

// openEnv loads config, opens the store and builds the services.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{Mode: cfg.Log.Mode, Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	pool, err := newPool(cmd.Context(), cfg.LLM.ProviderConfig(), logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	e := &env{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		userID:  cfg.Learner.ID,
		mastery: mastery.NewService(st.SkillStatsRepo(), logger),
		pool:    pool,
	}
	e.selector = adaptive.NewSelector(adaptive.Options{Mastery: e.mastery, Source: pool, Logger: logger})
	e.plans = plan.NewGenerator(e.mastery, st.RecommendationRepo(), logger)
	logger.Debug("environment ready", zap.String("db", dbPath), zap.String("user", e.userID))
	return e, nil
}

func (e *env) Close() {
	_ = e.logger.Sync()
	_ = e.store.Close()
}

// newManager builds a session manager for the learner.
func (e *env) newManager() *session.Manager {
	return session.NewManager(e.userID, session.Options{
		Source:   e.pool,
		Selector: e.selector,
		Mastery:  e.mastery,
		Sessions: e.store.SessionRepo(),
		Logger:   e.logger,
	})
}

// learnerName returns the stored display name of the learner.
func (e *env) learnerName(ctx context.Context) string {
	st, err := e.store.SettingsRepo().Get(ctx, e.userID)
	if err == nil && st.LearnerName != "" {
		return st.LearnerName
	}
	return e.cfg.Learner.Name
}

// saveLearnerName stores name in the settings collection and, when the
// config is file-backed, in the config file.
func (e *env) saveLearnerName(ctx context.Context, name string) error {
	st, err := e.store.SettingsRepo().Get(ctx, e.userID)
	if err != nil {
		return err
	}
	st.LearnerName = name
	if err := e.store.SettingsRepo().Save(ctx, st); err != nil {
		return err
	}
	e.cfg.Learner.Name = name
	if e.cfg.Path() == "" {
		return nil
	}
	return e.cfg.Save()
}

// newPool builds the question pool, backed by an LLM when one is
// configured. A provider that cannot be built leaves the procedural
// generators in charge.
func newPool(ctx context.Context, llmCfg llm.Config, logger *zap.Logger) (*content.Pool, error) {
	opts := content.Options{Logger: logger}
	if llmCfg.Enabled() {
		provider, err := llm.NewProvider(ctx, llmCfg, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Using built-in questions only.")
		} else {
			opts.LLM = content.NewLLMGenerator(provider, content.DefaultLLMConfig(), logger)
		}
	}
	pool := content.NewPool(opts)
	if err := pool.Open(); err != nil {
		return nil, fmt.Errorf("open question pool: %w", err)
	}
	return pool, nil
}

// errCancelled is returned when the user declines a confirmation.
var errCancelled = errors.New("cancelled")
