package values

// Anchor is the directory patterns are resolved against.
type Anchor struct {
	// Root is the canonical directory. For a file base it is the file's
	// parent directory.
	Root string
	// Aliases are other absolute spellings of Root, such as the path as
	// given before symlinks were resolved. Absolute patterns written
	// against an alias are rebased just like patterns written against Root.
	Aliases []string
}

// Prefixes returns Root followed by every alias.
func (a Anchor) Prefixes() []string {
	out := make([]string, 0, 1+len(a.Aliases))
	out = append(out, a.Root)
	for _, alias := range a.Aliases {
		if alias != "" && alias != a.Root {
			out = append(out, alias)
		}
	}
	return out
}

// ResolvedPattern is a glob anchored to a base directory.
type ResolvedPattern struct {
	// Raw is the pattern as written in the profile or on the command line.
	Raw string `json:"raw" yaml:"raw"`
	// Relative is the slash pattern matched against base-relative paths.
	// For an absolute pattern outside the base it is Raw unchanged.
	Relative string `json:"relative" yaml:"relative"`
	// Anchored is the display form: the base joined with Relative, or Raw
	// when the pattern could not be rebased.
	Anchored string `json:"anchored" yaml:"anchored"`
	// Rewritten is set when an absolute pattern was rebased onto the base.
	Rewritten bool `json:"rewritten,omitempty" yaml:"rewritten,omitempty"`
	// Outside is set for an absolute pattern that does not share the base
	// as a prefix.
	Outside bool `json:"outside,omitempty" yaml:"outside,omitempty"`
	// Directory is set for a pattern without glob metacharacters. It
	// matches a file of that name and everything below a directory of
	// that name.
	Directory bool `json:"directory,omitempty" yaml:"directory,omitempty"`
}

// PatternSet holds the resolved include and exclude lists of one run.
type PatternSet struct {
	Root    string            `json:"root" yaml:"root"`
	Include []ResolvedPattern `json:"include" yaml:"include"`
	Exclude []ResolvedPattern `json:"exclude" yaml:"exclude"`
}

// AnchoredInclude returns the display form of every include pattern.
func (s PatternSet) AnchoredInclude() []string {
	return anchored(s.Include)
}

// AnchoredExclude returns the display form of every exclude pattern.
func (s PatternSet) AnchoredExclude() []string {
	return anchored(s.Exclude)
}

func anchored(patterns []ResolvedPattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.Anchored
	}
	return out
}
