package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModulePathRoundTrip(t *testing.T) {
	p := ParseModulePath("a::b::c")
	assert.Equal(t, ModulePath{"a", "b", "c"}, p)
	assert.Equal(t, "a::b::c", p.String())
}

func TestModulePathNormalizeIdempotent(t *testing.T) {
	p := ModulePath{"a", "", "b"}
	once := Normalize(p)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, ModulePath{"a", "b"}, once)
}

func TestModulePathHasPrefix(t *testing.T) {
	p := ModulePath{"app", "sub", "leaf"}
	assert.True(t, p.HasPrefix(ModulePath{"app", "sub"}))
	assert.False(t, p.HasPrefix(ModulePath{"app", "other"}))
	assert.True(t, p.HasPrefix(ModulePath{}))
}

func TestModulePathJoinDoesNotMutate(t *testing.T) {
	base := ModulePath{"app"}
	joined := base.Join("sub")
	assert.Equal(t, ModulePath{"app"}, base)
	assert.Equal(t, ModulePath{"app", "sub"}, joined)
}
