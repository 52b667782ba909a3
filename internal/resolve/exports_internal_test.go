package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExportsSugar(t *testing.T) {
	t.Run("string sugar wraps as dot target", func(t *testing.T) {
		got, err := NormalizeExportsSugar(StringValue("./index.js"))
		require.NoError(t, err)
		require.Equal(t, ValMap, got.Kind)
		require.Len(t, got.Map, 1)
		assert.Equal(t, ".", got.Map[0].Key)
		assert.Equal(t, "./index.js", got.Map[0].Value.Str)
	})

	t.Run("condition map sugar wraps as dot target", func(t *testing.T) {
		exports := Value{Kind: ValMap, Map: []Entry{
			{Key: "import", Value: StringValue("./esm.js")},
			{Key: "default", Value: StringValue("./cjs.js")},
		}}
		got, err := NormalizeExportsSugar(exports)
		require.NoError(t, err)
		require.Len(t, got.Map, 1)
		assert.Equal(t, ".", got.Map[0].Key)
		assert.Equal(t, ValMap, got.Map[0].Value.Kind)
	})

	t.Run("subpath map passes through unchanged", func(t *testing.T) {
		exports := Value{Kind: ValMap, Map: []Entry{
			{Key: ".", Value: StringValue("./index.js")},
			{Key: "./feature", Value: StringValue("./feature.js")},
		}}
		got, err := NormalizeExportsSugar(exports)
		require.NoError(t, err)
		assert.Equal(t, exports, got)
	})

	t.Run("null becomes empty map", func(t *testing.T) {
		got, err := NormalizeExportsSugar(NullValue())
		require.NoError(t, err)
		assert.Equal(t, ValMap, got.Kind)
		assert.Empty(t, got.Map)
	})
}

func TestResolveExports_LiteralSubpath(t *testing.T) {
	ctx := testCtx("import")
	pkgURL := mustPkgURL(t)

	exports := Value{Kind: ValMap, Map: []Entry{
		{Key: ".", Value: StringValue("./index.js")},
		{Key: "./feature", Value: StringValue("./feature.js")},
	}}

	result, err := ResolveExports(ctx, pkgURL, "./feature", exports)
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/feature.js", result.URL)
}

func TestResolveExports_PatternSubpath(t *testing.T) {
	ctx := testCtx("import")
	pkgURL := mustPkgURL(t)

	exports := Value{Kind: ValMap, Map: []Entry{
		{Key: "./features/*", Value: StringValue("./dist/features/*.js")},
	}}

	result, err := ResolveExports(ctx, pkgURL, "./features/x", exports)
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/dist/features/x.js", result.URL)
}

func TestResolveExports_UnlistedSubpathIsNotExported(t *testing.T) {
	ctx := testCtx("import")
	pkgURL := mustPkgURL(t)

	exports := Value{Kind: ValMap, Map: []Entry{
		{Key: ".", Value: StringValue("./index.js")},
	}}

	_, err := ResolveExports(ctx, pkgURL, "./secret", exports)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPackageSubpathNotExported))
}

func TestResolveExports_StringSugar(t *testing.T) {
	ctx := testCtx("import")
	pkgURL := mustPkgURL(t)

	result, err := ResolveExports(ctx, pkgURL, ".", StringValue("./index.js"))
	require.NoError(t, err)
	assert.Equal(t, "file:///pkg/index.js", result.URL)
}
