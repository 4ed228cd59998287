// Package site builds the configuration document a VitePress-compatible
// documentation generator reads at build time.
//
// A Config is assembled once per run from the built-in defaults, the
// overrides of the docpress app config and the generated sidebar. It is a
// plain value: callers that need to change it work on a Clone.
package site

import (
	"io/fs"
	"strings"

	"git.home.luguber.info/inful/docpress/internal/sidebar"
)

// PathPlaceholder is substituted with the page path in edit link patterns.
const PathPlaceholder = ":path"

// Config is the generator configuration. Wire names follow the generator schema.
type Config struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	LastUpdated bool        `json:"lastUpdated" yaml:"lastUpdated"`
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig"`
}

// ThemeConfig holds the default theme options.
type ThemeConfig struct {
	Nav         []NavItem       `json:"nav" yaml:"nav"`
	Sidebar     sidebar.Sidebar `json:"sidebar" yaml:"sidebar"`
	SocialLinks []SocialLink    `json:"socialLinks" yaml:"socialLinks"`
	EditLink    *EditLink       `json:"editLink,omitempty" yaml:"editLink,omitempty"`
	Footer      *Footer         `json:"footer,omitempty" yaml:"footer,omitempty"`
}

// NavItem is one top navigation link.
type NavItem struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// SocialLink is an icon link shown in the navigation bar.
type SocialLink struct {
	Icon string `json:"icon" yaml:"icon"`
	Link string `json:"link" yaml:"link"`
}

// EditLink points readers at the source of a page.
type EditLink struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
}

// URL returns the edit URL for pagePath, a path relative to the document root.
func (e EditLink) URL(pagePath string) string {
	return strings.Replace(e.Pattern, PathPlaceholder, strings.TrimPrefix(pagePath, "/"), 1)
}

// Footer is the text rendered below every page.
type Footer struct {
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Copyright string `json:"copyright,omitempty" yaml:"copyright,omitempty"`
}

// Default returns the stock site configuration around sb.
func Default(sb sidebar.Sidebar) Config {
	return Config{
		Title:       "My Awesome Project",
		Description: "A VitePress Site",
		LastUpdated: true,
		ThemeConfig: ThemeConfig{
			Nav: []NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Examples", Link: "/markdown-examples"},
			},
			Sidebar: sb,
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/vuejs/vitepress"},
			},
			EditLink: &EditLink{
				Pattern: "https://github.com/vuejs/vitepress/edit/main/docs/" + PathPlaceholder,
			},
			Footer: &Footer{
				Message:   "Released under the MIT License.",
				Copyright: "Copyright © 2019-present Evan You",
			},
		},
	}
}

// Overrides replace parts of the default configuration. Zero fields keep the default.
type Overrides struct {
	Title       string       `yaml:"title,omitempty"`
	Description string       `yaml:"description,omitempty"`
	LastUpdated *bool        `yaml:"lastUpdated,omitempty"`
	Nav         []NavItem    `yaml:"nav,omitempty"`
	SocialLinks []SocialLink `yaml:"socialLinks,omitempty"`
	EditLink    *EditLink    `yaml:"editLink,omitempty"`
	Footer      *Footer      `yaml:"footer,omitempty"`
}

// Apply returns a copy of c with the non-zero overrides applied.
func (o Overrides) Apply(c Config) Config {
	out := c.Clone()
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.Description != "" {
		out.Description = o.Description
	}
	if o.LastUpdated != nil {
		out.LastUpdated = *o.LastUpdated
	}
	if len(o.Nav) > 0 {
		out.ThemeConfig.Nav = append([]NavItem(nil), o.Nav...)
	}
	if len(o.SocialLinks) > 0 {
		out.ThemeConfig.SocialLinks = append([]SocialLink(nil), o.SocialLinks...)
	}
	if o.EditLink != nil {
		el := *o.EditLink
		out.ThemeConfig.EditLink = &el
	}
	if o.Footer != nil {
		f := *o.Footer
		out.ThemeConfig.Footer = &f
	}
	return out
}

// Build generates the sidebar from fsys and assembles the configuration.
// Only sidebar generation can fail.
func Build(fsys fs.FS, ov Overrides, opts sidebar.Options) (Config, error) {
	sb, err := sidebar.Generate(fsys, opts)
	if err != nil {
		return Config{}, err
	}
	return ov.Apply(Default(sb)), nil
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.ThemeConfig.Nav = cloneSlice(c.ThemeConfig.Nav)
	out.ThemeConfig.SocialLinks = cloneSlice(c.ThemeConfig.SocialLinks)
	out.ThemeConfig.Sidebar = c.ThemeConfig.Sidebar.Clone()
	if c.ThemeConfig.EditLink != nil {
		el := *c.ThemeConfig.EditLink
		out.ThemeConfig.EditLink = &el
	}
	if c.ThemeConfig.Footer != nil {
		f := *c.ThemeConfig.Footer
		out.ThemeConfig.Footer = &f
	}
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
