package fsprobe_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
)

func TestProber_Stat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/pkg/index.js", []byte("x"), 0o644))
	require.NoError(t, fs.MkdirAll("/pkg/sub", 0o755))

	p := fsprobe.New(fs)

	kind, err := p.Stat("/pkg/index.js")
	require.NoError(t, err)
	assert.Equal(t, fsprobe.File, kind)

	kind, err = p.Stat("/pkg/sub")
	require.NoError(t, err)
	assert.Equal(t, fsprobe.Directory, kind)

	kind, err = p.Stat("/pkg/missing.js")
	require.NoError(t, err)
	assert.Equal(t, fsprobe.Missing, kind)
}

func TestProber_ReadDir_MissingIsNotAnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := fsprobe.New(fs)

	names, err := p.ReadDir("/does/not/exist")
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestProber_Exists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.js", []byte("x"), 0o644))
	p := fsprobe.New(fs)

	assert.True(t, p.Exists("/a.js"))
	assert.False(t, p.Exists("/b.js"))
}
