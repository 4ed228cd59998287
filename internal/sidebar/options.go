package sidebar

// Options control how a document tree is turned into a sidebar. Field names
// on the wire follow the camelCase option names documentation generators use.
type Options struct {
	// DocumentRootPath is the directory holding the documentation, relative to
	// the project root. A leading slash is accepted and means the project root.
	DocumentRootPath string `yaml:"documentRootPath,omitempty" json:"documentRootPath,omitempty"`
	// ScanStartPath narrows the scan to a subdirectory of the document root.
	// Links stay relative to the document root.
	ScanStartPath string `yaml:"scanStartPath,omitempty" json:"scanStartPath,omitempty"`
	// BasePath is prefixed to every generated link.
	BasePath string `yaml:"basePath,omitempty" json:"basePath,omitempty"`

	// Collapsed makes groups collapsible; nil leaves them always expanded.
	Collapsed *bool `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	// CollapseDepth collapses groups at this depth and deeper (top level is 1).
	CollapseDepth int `yaml:"collapseDepth,omitempty" json:"collapseDepth,omitempty"`

	UseTitleFromFileHeading     bool `yaml:"useTitleFromFileHeading,omitempty" json:"useTitleFromFileHeading,omitempty"`
	UseTitleFromFrontmatter     bool `yaml:"useTitleFromFrontmatter,omitempty" json:"useTitleFromFrontmatter,omitempty"`
	UseFolderTitleFromIndexFile bool `yaml:"useFolderTitleFromIndexFile,omitempty" json:"useFolderTitleFromIndexFile,omitempty"`
	UseFolderLinkFromIndexFile  bool `yaml:"useFolderLinkFromIndexFile,omitempty" json:"useFolderLinkFromIndexFile,omitempty"`

	IncludeRootIndexFile   bool `yaml:"includeRootIndexFile,omitempty" json:"includeRootIndexFile,omitempty"`
	IncludeFolderIndexFile bool `yaml:"includeFolderIndexFile,omitempty" json:"includeFolderIndexFile,omitempty"`
	IncludeDotFiles        bool `yaml:"includeDotFiles,omitempty" json:"includeDotFiles,omitempty"`
	IncludeEmptyFolder     bool `yaml:"includeEmptyFolder,omitempty" json:"includeEmptyFolder,omitempty"`

	// ExcludeFiles and ExcludeFolders match a base name or a path relative to the document root.
	ExcludeFiles   []string `yaml:"excludeFiles,omitempty" json:"excludeFiles,omitempty"`
	ExcludeFolders []string `yaml:"excludeFolders,omitempty" json:"excludeFolders,omitempty"`
	// ExcludeFilesByFrontmatterFieldName drops pages whose frontmatter sets this field to true.
	ExcludeFilesByFrontmatterFieldName string `yaml:"excludeFilesByFrontmatterFieldName,omitempty" json:"excludeFilesByFrontmatterFieldName,omitempty"`

	HyphenToSpace       bool `yaml:"hyphenToSpace,omitempty" json:"hyphenToSpace,omitempty"`
	UnderscoreToSpace   bool `yaml:"underscoreToSpace,omitempty" json:"underscoreToSpace,omitempty"`
	CapitalizeFirst     bool `yaml:"capitalizeFirst,omitempty" json:"capitalizeFirst,omitempty"`
	CapitalizeEachWords bool `yaml:"capitalizeEachWords,omitempty" json:"capitalizeEachWords,omitempty"`

	// SortMenusByName orders entries by their display text instead of file name.
	SortMenusByName              bool     `yaml:"sortMenusByName,omitempty" json:"sortMenusByName,omitempty"`
	SortMenusOrderByDescending   bool     `yaml:"sortMenusOrderByDescending,omitempty" json:"sortMenusOrderByDescending,omitempty"`
	SortMenusByFrontmatterOrder  bool     `yaml:"sortMenusByFrontmatterOrder,omitempty" json:"sortMenusByFrontmatterOrder,omitempty"`
	FrontmatterOrderDefaultValue int      `yaml:"frontmatterOrderDefaultValue,omitempty" json:"frontmatterOrderDefaultValue,omitempty"`
	ManualSortFileNameByPriority []string `yaml:"manualSortFileNameByPriority,omitempty" json:"manualSortFileNameByPriority,omitempty"`

	RootGroupText      string `yaml:"rootGroupText,omitempty" json:"rootGroupText,omitempty"`
	RootGroupLink      string `yaml:"rootGroupLink,omitempty" json:"rootGroupLink,omitempty"`
	RootGroupCollapsed *bool  `yaml:"rootGroupCollapsed,omitempty" json:"rootGroupCollapsed,omitempty"`
}

// DefaultOptions returns the options the site configuration uses when none are given.
func DefaultOptions() Options {
	return Options{DocumentRootPath: "/docs"}
}

// needsContent reports whether page files must be read to build the tree.
func (o Options) needsContent() bool {
	return o.UseTitleFromFrontmatter ||
		o.UseTitleFromFileHeading ||
		o.SortMenusByFrontmatterOrder ||
		o.ExcludeFilesByFrontmatterFieldName != ""
}
