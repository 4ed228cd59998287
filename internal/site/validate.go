package site

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docpress/internal/foundation"
)

// Validate checks that c has the shape the generator expects.
func (c Config) Validate() error {
	var r foundation.Result
	foundation.Check(&r, "title", c.Title, foundation.Required)

	for i, n := range c.ThemeConfig.Nav {
		if strings.TrimSpace(n.Text) == "" {
			r.Add(fmt.Sprintf("themeConfig.nav[%d].text", i), "required", "must not be empty")
		}
		if strings.TrimSpace(n.Link) == "" {
			r.Add(fmt.Sprintf("themeConfig.nav[%d].link", i), "required", "must not be empty")
		}
	}
	for i, s := range c.ThemeConfig.SocialLinks {
		if strings.TrimSpace(s.Icon) == "" {
			r.Add(fmt.Sprintf("themeConfig.socialLinks[%d].icon", i), "required", "must not be empty")
		}
		if strings.TrimSpace(s.Link) == "" {
			r.Add(fmt.Sprintf("themeConfig.socialLinks[%d].link", i), "required", "must not be empty")
		}
	}
	if el := c.ThemeConfig.EditLink; el != nil {
		if n := strings.Count(el.Pattern, PathPlaceholder); n != 1 {
			r.Add("themeConfig.editLink.pattern", "placeholder",
				fmt.Sprintf("must contain %s exactly once, found %d", PathPlaceholder, n))
		}
	}
	return r.Err("invalid site config")
}
