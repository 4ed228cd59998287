package commands

import (
	"log/slog"
	"path"
	"path/filepath"
	"time"

	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/gitinfo"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/site"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	Format string `short:"f" help:"Output format (json or yaml)" default:"json"`
}

// Page is one entry of the page manifest.
type Page struct {
	// Path is the page file relative to the document root.
	Path        string     `json:"path" yaml:"path"`
	Title       string     `json:"title" yaml:"title"`
	Link        string     `json:"link" yaml:"link"`
	EditURL     string     `json:"editUrl,omitempty" yaml:"editUrl,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

func (c *PagesCmd) Run(g *Global, root *CLI) error {
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

	var repo *gitinfo.Repo
	if cfg.LastUpdated {
		repo, err = gitinfo.Open(s.root)
		if err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryGit, "open git repository").
				WithPath(s.root).
				Build()
		}
		if !repo.IsRepository() {
			slog.Info("Project is not in a git repository; last-updated times omitted", logfields.Path(s.root))
		}
	}

	manifest, err := buildManifest(cfg, s.cfg.DocRoot(), repo)
	if err != nil {
		return err
	}
	if err := site.Encode(g.Out, manifest, format); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "encode page manifest").Build()
	}
	return nil
}

// buildManifest lists every sidebar page. repo may be nil.
func buildManifest(cfg site.Config, docRoot string, repo *gitinfo.Repo) ([]Page, error) {
	pages := cfg.ThemeConfig.Sidebar.Pages()
	out := make([]Page, 0, len(pages))
	for _, it := range pages {
		p := Page{Path: it.Source, Title: it.Text, Link: it.Link}
		if cfg.ThemeConfig.EditLink != nil {
			p.EditURL = cfg.ThemeConfig.EditLink.URL(it.Source)
		}
		if repo != nil {
			rel := filepath.Join(docRoot, filepath.FromSlash(it.Source))
			when, ok, err := repo.LastUpdated(rel)
			if err != nil {
				return nil, foundationerrors.WrapError(err, foundationerrors.CategoryGit, "read page history").
					WithPath(path.Clean(filepath.ToSlash(rel))).
					Build()
			}
			if ok {
				t := when.UTC()
				p.LastUpdated = &t
			}
		}
		out = append(out, p)
	}
	return out, nil
}
