package resolve_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
	"github.com/go-jsresolve/jsresolve/internal/logger"
	"github.com/go-jsresolve/jsresolve/internal/pkgjson"
	"github.com/go-jsresolve/jsresolve/internal/realpath"
	"github.com/go-jsresolve/jsresolve/internal/resolve"
)

func newLegacyMainResolver(t *testing.T, files map[string]string) *resolve.Resolver {
	t.Helper()
	memfs := afero.NewMemMapFs()
	for path, contents := range files {
		require.NoError(t, afero.WriteFile(memfs, path, []byte(contents), 0o644))
	}
	prober := fsprobe.New(memfs)
	return &resolve.Resolver{
		Log:      logger.NewLog(logger.LevelWarning),
		FS:       prober,
		Realpath: realpath.New(func(path string) (string, error) { return path, nil }),
		PkgJSON:  pkgjson.NewReader(prober.ReadFile),
	}
}

func TestResolveLegacyMain_ExtensionFallbackWarnsForESM(t *testing.T) {
	r := newLegacyMainResolver(t, map[string]string{
		"/pkg/main.js": "",
	})
	cfg := &pkgjson.Config{PJSONPath: "/pkg/package.json", Main: "./main", Type: "module"}

	url, err := r.ResolveLegacyMain("/pkg", cfg)
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/main.js", url)
	assert.Len(t, r.Log.Done(), 1)
}

func TestResolveLegacyMain_ExtensionFallbackSuppressedForCommonJS(t *testing.T) {
	r := newLegacyMainResolver(t, map[string]string{
		"/pkg/main.js": "",
	})
	cfg := &pkgjson.Config{PJSONPath: "/pkg/package.json", Main: "./main"}

	url, err := r.ResolveLegacyMain("/pkg", cfg)
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/main.js", url)
	assert.Empty(t, r.Log.Done())
}

func TestResolveLegacyMain_ImplicitIndexWarnsForModuleType(t *testing.T) {
	r := newLegacyMainResolver(t, map[string]string{
		"/pkg/index.js": "",
	})
	cfg := &pkgjson.Config{PJSONPath: "/pkg/package.json", Type: "module"}

	url, err := r.ResolveLegacyMain("/pkg", cfg)
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/index.js", url)
	assert.Len(t, r.Log.Done(), 1)
}

func TestResolveLegacyMain_ImplicitIndexSuppressedForCommonJS(t *testing.T) {
	r := newLegacyMainResolver(t, map[string]string{
		"/pkg/index.js": "",
	})
	cfg := &pkgjson.Config{PJSONPath: "/pkg/package.json"}

	url, err := r.ResolveLegacyMain("/pkg", cfg)
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/index.js", url)
	assert.Empty(t, r.Log.Done())
}
