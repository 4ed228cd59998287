package commands

import (
	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/site"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct {
	Format string `short:"f" help:"Output format (json or yaml)" default:"json"`
}

func (c *SidebarCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g, "")
	if err != nil {
		return err
	}
	format, err := s.format(c.Format)
	if err != nil {
		return err
	}
	cfg, err := s.buildSite()
	if err != nil {
		return err
	}
	if err := site.Encode(g.Out, cfg.ThemeConfig.Sidebar, format); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "encode sidebar").Build()
	}
	return nil
}
