package weave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockweave/weave"
)

func TestBlockTypeEquality(t *testing.T) {
	t1 := weave.NewBlockType("Topic")
	t2 := weave.NewBlockType("Topic")
	other := weave.NewBlockType("Summary")

	assert.Equal(t, t1, t2)
	assert.True(t, t1 == t2)
	assert.False(t, t1 == other)
	assert.Equal(t, "Topic", t1.Name())
	assert.Equal(t, "Topic", t1.String())
}

func TestBlockTypeAsMapKey(t *testing.T) {
	counts := map[weave.BlockType]int{}
	counts[weave.NewBlockType("Topic")]++
	counts[weave.NewBlockType("Topic")]++
	counts[weave.NewBlockType("Summary")]++

	assert.Equal(t, 2, counts[weave.NewBlockType("Topic")])
	assert.Equal(t, 1, counts[weave.NewBlockType("Summary")])
}

func TestBlockTypeZero(t *testing.T) {
	var zero weave.BlockType
	assert.True(t, zero.IsZero())
	assert.False(t, weave.NewBlockType("Topic").IsZero())
	assert.True(t, weave.NewBlockType("").IsZero())
}

// Independently constructed types sharing a name are interchangeable as
// signature elements: an agent declared with one accepts blocks of the other.
func TestBlockTypeInterchangeableInSignature(t *testing.T) {
	declared := weave.NewBlockType("Topic")
	agent := weave.NewAgent("role", "summary").
		WithInput("topic_block", declared, "example").
		WithOutput("out_block", weave.NewBlockType("Out"), "example")

	supplied := weave.MustBlock(weave.NewBlockType("Topic"), "content")
	_, err := agent.FullPrompt(supplied)
	require.NoError(t, err)
}
