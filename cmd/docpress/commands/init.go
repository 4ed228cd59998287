package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docpress/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := resolve(root.Project, root.Config)
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Wrote %s\n", path)
	return nil
}
