package content

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

const markdownExt = ".md"

// FilterMarkdown keeps the Markdown files among paths. include and exclude
// list base file names; ".md" is appended to entries that lack it. An empty
// include list keeps every Markdown file.
func FilterMarkdown(paths []string, include, exclude []string) []string {
	inc := withMarkdownExt(include)
	exc := withMarkdownExt(exclude)

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if filepath.Ext(p) != markdownExt {
			continue
		}
		name := filepath.Base(p)
		if len(inc) > 0 && !slices.Contains(inc, name) {
			continue
		}
		if slices.Contains(exc, name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func withMarkdownExt(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !strings.HasSuffix(n, markdownExt) {
			n += markdownExt
		}
		out = append(out, n)
	}
	return out
}

// ListFiles returns every regular file below dir in lexical order. Entries
// (directories included) whose path does not contain one of the include
// substrings, or contains one of the exclude substrings, are skipped together
// with everything beneath them.
func ListFiles(dir string, include, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		if !pathSelected(p, include, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func pathSelected(p string, include, exclude []string) bool {
	contains := func(s string) bool { return strings.Contains(p, s) }
	if len(include) > 0 && !slices.ContainsFunc(include, contains) {
		return false
	}
	return !slices.ContainsFunc(exclude, contains)
}
