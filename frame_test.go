package scoped

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingsForTest(n int) ([]*Key[int], []Binding) {
	keys := make([]*Key[int], n)
	bindings := make([]Binding, n)

	for i := range n {
		keys[i] = Declare[int](fmt.Sprintf("k%d", i))
		bindings[i] = keys[i].Bind(i)
	}

	return keys, bindings
}

func TestNewFrameBelowThresholdScansLinearly(t *testing.T) {
	_, bindings := bindingsForTest(frameIndexThreshold - 1)

	f := newFrame(nil, bindings)

	assert.Nil(t, f.index)
}

func TestNewFrameAtThresholdBuildsIndex(t *testing.T) {
	keys, bindings := bindingsForTest(frameIndexThreshold)

	f := newFrame(nil, bindings)

	require.NotNil(t, f.index)
	assert.Len(t, f.index, frameIndexThreshold)

	for i, key := range keys {
		v, ok := f.lookup(key)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestFrameLookupMissesUnboundKey(t *testing.T) {
	_, bindings := bindingsForTest(2)
	other := Declare[int]("other")

	f := newFrame(nil, bindings)

	_, ok := f.lookup(other)
	assert.False(t, ok)
}

func TestFrameDepthCountsFromOutermost(t *testing.T) {
	keys, bindings := bindingsForTest(3)

	outer := newFrame(nil, bindings[:1])
	middle := newFrame(outer, bindings[1:2])
	inner := newFrame(middle, bindings[2:])

	assert.Equal(t, 1, outer.depth)
	assert.Equal(t, 2, middle.depth)
	assert.Equal(t, 3, inner.depth)

	// The chain resolves every level from the innermost frame.
	for i, key := range keys {
		v, ok := lookupChain(inner, key)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestLookupChainNearestFrameWins(t *testing.T) {
	key := Declare[string]("user")

	outer := newFrame(nil, []Binding{key.Bind("outer")})
	inner := newFrame(outer, []Binding{key.Bind("inner")})

	v, ok := lookupChain(inner, key)
	require.True(t, ok)
	assert.Equal(t, "inner", v)

	v, ok = lookupChain(outer, key)
	require.True(t, ok)
	assert.Equal(t, "outer", v)
}

func TestLookupChainEmptyRoot(t *testing.T) {
	key := Declare[int]("count")

	_, ok := lookupChain(nil, key)
	assert.False(t, ok)
}
