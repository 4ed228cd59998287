package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g, "")
	if err != nil {
		return err
	}
	cfg, err := s.buildSite()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pages := cfg.ThemeConfig.Sidebar.Pages()
	docRoot := s.path(s.cfg.DocRoot())
	for _, p := range pages {
		if _, err := os.Stat(filepath.Join(docRoot, filepath.FromSlash(p.Source))); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategorySidebar, "sidebar page missing").
				WithPath(p.Source).
				Build()
		}
	}
	slog.Debug("Check passed", logfields.Count(len(pages)))
	fmt.Fprintf(g.Out, "OK: %d pages, %d nav links\n", len(pages), len(cfg.ThemeConfig.Nav))
	return nil
}
