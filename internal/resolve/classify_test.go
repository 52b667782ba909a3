package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-jsresolve/jsresolve/internal/resolve"
)

func TestClassifySpecifier(t *testing.T) {
	tests := []struct {
		name           string
		specifier      string
		parentIsRemote bool
		expected       resolve.SpecifierKind
	}{
		{"empty", "", false, resolve.KindInvalid},
		{"absolute", "/a/b.js", false, resolve.KindAbsolute},
		{"dot-relative", "./a.js", false, resolve.KindRelative},
		{"dotdot-relative", "../a.js", false, resolve.KindRelative},
		{"bare-dot", ".", false, resolve.KindRelative},
		{"bare-dotdot", "..", false, resolve.KindRelative},
		{"private", "#internal", false, resolve.KindPrivate},
		{"private-blocked-when-remote-parent", "#internal", true, resolve.KindInvalid},
		{"url", "https://example.com/a.js", false, resolve.KindURL},
		{"data-url", "data:text/javascript,x", false, resolve.KindURL},
		{"bare-name", "lodash", false, resolve.KindBareName},
		{"scoped-bare-name", "@scope/pkg", false, resolve.KindBareName},
		{"dotfile-bare-name", ".well-known", false, resolve.KindBareName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolve.ClassifySpecifier(tt.specifier, tt.parentIsRemote)
			assert.Equal(t, tt.expected, got, "ClassifySpecifier(%q, %v)", tt.specifier, tt.parentIsRemote)
		})
	}
}

func TestIsPackagePath(t *testing.T) {
	assert.True(t, resolve.IsPackagePath("lodash"))
	assert.True(t, resolve.IsPackagePath("#internal"))
	assert.False(t, resolve.IsPackagePath("./a.js"))
	assert.False(t, resolve.IsPackagePath("/a.js"))
	assert.False(t, resolve.IsPackagePath("https://example.com/a.js"))
}
