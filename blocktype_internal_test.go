package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternCompiledOncePerName(t *testing.T) {
	first := NewBlockType("Cached").pattern()
	second := NewBlockType("Cached").pattern()
	assert.Same(t, first, second)

	other := NewBlockType("Uncached").pattern()
	assert.NotSame(t, first, other)
}
