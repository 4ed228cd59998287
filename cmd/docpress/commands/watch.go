package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before regenerating (default watch.debounce)"`
	Resync   time.Duration `help:"Periodic regeneration interval, 0 keeps watch.resync"`
}

func (c *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := root.open(g, "")
	if err != nil {
		return err
	}
	output, err := filepath.Abs(s.path(s.cfg.Output.ConfigFile))
	if err != nil {
		return err
	}

	snapshot := s.cfg.Snapshot()
	rebuild := func(context.Context) error {
		// Reload so edits to the config file apply without a restart.
		cfg, err := root.loadConfig(g)
		if err != nil {
			return err
		}
		if snap := cfg.Snapshot(); snap != snapshot {
			slog.Info("Configuration changed", slog.String("snapshot", snap[:12]))
			snapshot = snap
		}
		s.cfg = cfg
		sc, err := s.buildSite()
		if err != nil {
			return err
		}
		if err := sc.Validate(); err != nil {
			return err
		}
		err = s.writeSite(sc, "", cfg.Output.Format)
		s.flushMetrics()
		return err
	}

	if err := rebuild(ctx); err != nil {
		slog.Warn("Initial build failed; waiting for changes", logfields.Error(err))
	}

	debounce := c.Debounce
	if debounce <= 0 {
		debounce = s.cfg.Watch.DebounceDuration()
	}
	resync := c.Resync
	if resync <= 0 {
		resync = s.cfg.Watch.ResyncInterval()
	}
	w := &watch.Watcher{
		Root:     s.path(s.cfg.DocRoot()),
		Debounce: debounce,
		Resync:   resync,
		Rebuild:  rebuild,
		Ignore: func(p string) bool {
			abs, err := filepath.Abs(p)
			return err == nil && abs == output
		},
	}
	err = w.Run(ctx)
	slog.Info("Watch stopped")
	return err
}
