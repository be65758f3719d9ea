package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/router"
	sessionscreen "github.com/abhisek/adaptiq/internal/screens/session"
	"github.com/abhisek/adaptiq/internal/screens/summary"
	"github.com/abhisek/adaptiq/internal/screens/welcome"
	"github.com/abhisek/adaptiq/internal/session"
)

// runHome launches the TUI: name prompt, an adaptive session, then the
// results.
func runHome(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	cfg := session.DefaultConfig(session.ModeAdaptive)
	if err := applySessionDefaults(&cfg, e); err != nil {
		return err
	}

	name := e.learnerName(ctx)
	next := func(string) router.Screen {
		return newSessionScreen(e, session.ModeAdaptive, cfg)
	}
	save := func(n string) error { return e.saveLearnerName(ctx, n) }
	return app.Run(welcome.New(name, save, next), name)
}

// applySessionDefaults applies the config file's session section.
func applySessionDefaults(cfg *session.Config, e *env) error {
	if n := e.cfg.Session.QuestionsPerSection; n > 0 {
		cfg.QuestionsPerSection = n
	}
	if e.cfg.Session.TimerMode != "" {
		tm, err := session.ParseTimerMode(e.cfg.Session.TimerMode)
		if err != nil {
			return err
		}
		cfg.TimerMode = tm
	}
	return nil
}

func newSessionScreen(e *env, mode session.Mode, cfg session.Config) router.Screen {
	return sessionscreen.New(sessionscreen.Options{
		Manager: e.newManager(),
		Mode:    mode,
		Config:  cfg,
		Finish: func(s *session.Session) router.Screen {
			return summary.New(s, app.Quit)
		},
	})
}
