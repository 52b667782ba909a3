package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-jsresolve/jsresolve/internal/builtins"
)

func TestIsBuiltin(t *testing.T) {
	assert.True(t, builtins.IsBuiltin("fs"))
	assert.True(t, builtins.IsBuiltin("node:fs"))
	assert.True(t, builtins.IsBuiltin("node:fs/promises"))
	assert.False(t, builtins.IsBuiltin("lodash"))
	assert.False(t, builtins.IsBuiltin("node:not-a-real-module"))
}
