package commands

// SiteCmd implements the 'config' command.
type SiteCmd struct {
	Format      string `short:"f" help:"Output format (json or yaml); defaults to output.format"`
	Out         string `short:"o" help:"Write here instead of output.config_file; - writes to stdout"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this file"`
}

func (c *SiteCmd) Run(g *Global, root *CLI) (err error) {
	s, err := root.open(g, c.MetricsFile)
	if err != nil {
		return err
	}
	defer func() { err = s.finish(err) }()

	format, err := s.format(c.Format)
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
	out := c.Out
	if out != "" && out != stdoutPath {
		out = s.path(out)
	}
	return s.writeSite(cfg, out, format)
}
