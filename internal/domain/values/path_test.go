package values

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeSlash(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/work/repo")

	tests := []struct {
		name   string
		target string
		want   string
		wantOK bool
	}{
		{name: "direct child", target: "/work/repo/a.rs", want: "a.rs", wantOK: true},
		{name: "nested", target: "/work/repo/sub/b.rs", want: "sub/b.rs", wantOK: true},
		{name: "root itself", target: "/work/repo", want: "", wantOK: true},
		{name: "sibling", target: "/work/repo2/a.rs", wantOK: false},
		{name: "parent", target: "/work", wantOK: false},
		{name: "dotdot named file", target: "/work/repo/..foo", want: "..foo", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := RelativeSlash(root, filepath.FromSlash(tt.target))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasPathPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		prefix string
		want   bool
	}{
		{name: "equal", path: "/a/b", prefix: "/a/b", want: true},
		{name: "beneath", path: "/a/b/c/*.go", prefix: "/a/b", want: true},
		{name: "trailing slash prefix", path: "/a/b/c", prefix: "/a/b/", want: true},
		{name: "partial segment", path: "/a/bc/d", prefix: "/a/b", want: false},
		{name: "filesystem root", path: "/anything", prefix: "/", want: true},
		{name: "empty prefix", path: "/a", prefix: "", want: false},
		{name: "unrelated", path: "/x/y", prefix: "/a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HasPathPrefix(tt.path, tt.prefix))
		})
	}
}

func TestNormalizePattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "**/*.rs", NormalizePattern("  **/*.rs  "))
	assert.Equal(t, "src/*.go", NormalizePattern("./src/*.go"))
	assert.Equal(t, "src/*.go", NormalizePattern("././src/*.go"))
	assert.Equal(t, "/abs/*.go", NormalizePattern("/abs/*.go"))
	assert.Equal(t, "", NormalizePattern("   "))
}

func TestJoinPattern(t *testing.T) {
	t.Parallel()

	dir := filepath.FromSlash("/work/repo")
	assert.Equal(t, "/work/repo/**/*.rs", JoinPattern(dir, "**/*.rs"))
	assert.Equal(t, "/work/repo", JoinPattern(dir, ""))
}

func TestAnchor_Prefixes(t *testing.T) {
	t.Parallel()

	a := Anchor{Root: "/private/tmp/x", Aliases: []string{"/tmp/x", "", "/private/tmp/x"}}
	assert.Equal(t, []string{"/private/tmp/x", "/tmp/x"}, a.Prefixes())
}

func TestPatternSet_Anchored(t *testing.T) {
	t.Parallel()

	set := PatternSet{
		Include: []ResolvedPattern{{Anchored: "/r/**/*.rs"}, {Anchored: "/r/*.toml"}},
		Exclude: []ResolvedPattern{{Anchored: "/r/target/**"}},
	}
	assert.Equal(t, []string{"/r/**/*.rs", "/r/*.toml"}, set.AnchoredInclude())
	assert.Equal(t, []string{"/r/target/**"}, set.AnchoredExclude())
	assert.Empty(t, PatternSet{}.AnchoredInclude())
}
