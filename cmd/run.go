package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/app"
	"github.com/abhisek/talenthub/internal/logger"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/rewards"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/builder"
	"github.com/abhisek/talenthub/internal/screens/home"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, args []string) error {
	log, err := logger.NewTUI(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	deps := &screens.Deps{
		Papers: newClient(log),
		Player: cfg.Player,
		Render: renderOptions(),
		Log:    log,
	}
	if wd, err := os.Getwd(); err == nil {
		deps.PDFDir = wd
	}

	st, err := openStore(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Local journal unavailable:", err)
		fmt.Fprintln(os.Stderr, "Attempts will not be saved.")
		log.Warn("open journal failed", zap.Error(err))
	} else {
		defer st.Close()
		deps.Rewards = rewards.NewService(st, log)
	}

	var open []screen.Screen
	if len(args) == 1 {
		c, err := paper.LoadFile(args[0])
		if err != nil {
			return err
		}
		open = append(open, builder.New(deps, c))
	}

	log.Info("starting tui", zap.String("player", deps.Player), zap.String("api", cfg.API.BaseURL))
	return app.Run(deps, home.New(deps), open...)
}

func newClient(log *zap.Logger) *api.Client {
	return api.New(cfg.Client(), api.WithLogger(log))
}

func renderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.DecimalHeuristic = cfg.Render.DecimalHeuristic
	return opts
}
