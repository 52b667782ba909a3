package resolve_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-jsresolve/jsresolve/internal/builtins"
	"github.com/go-jsresolve/jsresolve/internal/formatprobe"
	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
	"github.com/go-jsresolve/jsresolve/internal/logger"
	"github.com/go-jsresolve/jsresolve/internal/pkgjson"
	"github.com/go-jsresolve/jsresolve/internal/policy"
	"github.com/go-jsresolve/jsresolve/internal/realpath"
	"github.com/go-jsresolve/jsresolve/internal/resolve"
)

func newTestResolver(t *testing.T, files map[string]string, dirs []string) *resolve.Resolver {
	t.Helper()
	memfs := afero.NewMemMapFs()
	for _, d := range dirs {
		require.NoError(t, memfs.MkdirAll(d, 0o755))
	}
	for path, contents := range files {
		require.NoError(t, afero.WriteFile(memfs, path, []byte(contents), 0o644))
	}

	prober := fsprobe.New(memfs)
	return &resolve.Resolver{
		Options: resolve.Options{
			Conditions: map[string]bool{"node": true, "import": true},
		},
		Log:      logger.NewLog(logger.LevelWarning),
		FS:       prober,
		Realpath: realpath.New(func(path string) (string, error) { return path, nil }),
		PkgJSON:  pkgjson.NewReader(prober.ReadFile),
		Builtins: builtins.IsBuiltin,
		Policy:   policy.New(),
		FormatProbe: func(resolvedURL, pkgType string) string {
			return formatprobe.Detect(resolvedURL, pkgType)
		},
	}
}

func TestResolve_RelativeSpecifier(t *testing.T) {
	r := newTestResolver(t, map[string]string{
		"/pkg/src/index.js": "",
		"/pkg/src/util.js":  "",
	}, nil)

	result, err := r.Resolve("./util.js", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/src/util.js", result.URL)
}

func TestResolve_BuiltinModule(t *testing.T) {
	r := newTestResolver(t, nil, nil)

	result, err := r.Resolve("fs", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.NoError(t, err)
	assert.Equal(t, "node:fs", result.URL)
	assert.Equal(t, "builtin", result.Format)
}

func TestResolve_BarePackageViaExports(t *testing.T) {
	r := newTestResolver(t, map[string]string{
		"/pkg/src/index.js":                  "",
		"/pkg/node_modules/dep/package.json": `{"name":"dep","exports":{".":"./index.js"}}`,
		"/pkg/node_modules/dep/index.js":     "",
	}, nil)

	result, err := r.Resolve("dep", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/node_modules/dep/index.js", result.URL)
}

func TestResolve_BarePackageViaLegacyMain(t *testing.T) {
	r := newTestResolver(t, map[string]string{
		"/pkg/src/index.js":                        "",
		"/pkg/node_modules/legacy/package.json":    `{"name":"legacy","main":"./lib/main.js"}`,
		"/pkg/node_modules/legacy/lib/main.js":     "",
	}, nil)

	result, err := r.Resolve("legacy", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/node_modules/legacy/lib/main.js", result.URL)
}

func TestResolve_BarePackageSubpathExport(t *testing.T) {
	r := newTestResolver(t, map[string]string{
		"/pkg/src/index.js": "",
		"/pkg/node_modules/dep/package.json": `{
			"name": "dep",
			"exports": {
				".": "./index.js",
				"./feature": "./feature.js"
			}
		}`,
		"/pkg/node_modules/dep/index.js":   "",
		"/pkg/node_modules/dep/feature.js": "",
	}, nil)

	result, err := r.Resolve("dep/feature", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/node_modules/dep/feature.js", result.URL)
}

func TestResolve_DirectoryImportRejected(t *testing.T) {
	r := newTestResolver(t, nil, []string{"/pkg/src/sub"})

	_, err := r.Resolve("./sub", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.Error(t, err)
	assert.True(t, resolve.IsKind(err, resolve.KindUnsupportedDirectoryImport))
}

func TestResolve_ModuleNotFound(t *testing.T) {
	r := newTestResolver(t, map[string]string{"/pkg/src/index.js": ""}, nil)

	_, err := r.Resolve("./missing.js", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.Error(t, err)
	assert.True(t, resolve.IsKind(err, resolve.KindModuleNotFound))
}

func TestResolve_PackageNotFound(t *testing.T) {
	r := newTestResolver(t, map[string]string{"/pkg/src/index.js": ""}, nil)

	_, err := r.Resolve("nonexistent-package", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.Error(t, err)
	assert.True(t, resolve.IsKind(err, resolve.KindModuleNotFound))
}

func TestResolve_NetworkImportsDisabledByDefault(t *testing.T) {
	r := newTestResolver(t, nil, nil)

	_, err := r.Resolve("https://example.com/mod.js", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.Error(t, err)
	assert.True(t, resolve.IsKind(err, resolve.KindNetworkImportDisallowed))
}

func TestResolve_RemoteParentCannotReachFileScheme(t *testing.T) {
	r := newTestResolver(t, map[string]string{"/etc/passwd": ""}, nil)

	_, err := r.Resolve("file:///etc/passwd", resolve.Context{ParentURL: "https://example.com/mod.js"})
	require.Error(t, err)
	assert.True(t, resolve.IsKind(err, resolve.KindNetworkImportDisallowed))
}

func TestResolve_PrivateImportsSpecifier(t *testing.T) {
	r := newTestResolver(t, map[string]string{
		"/pkg/src/index.js": "",
		"/pkg/package.json": `{"name":"app","imports":{"#dep":"./vendor/dep.js"}}`,
		"/pkg/vendor/dep.js": "",
	}, nil)

	result, err := r.Resolve("#dep", resolve.Context{ParentURL: "file:///pkg/src/index.js"})
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/vendor/dep.js", result.URL)
}
