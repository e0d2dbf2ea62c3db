package weave

import "strings"

// Block is an immutable pairing of a [BlockType] and string content. Blocks
// are plain values: they are created by the caller (agent input) or by an
// agent's call (output), and share no mutable state, so they may be passed
// between goroutines freely.
type Block struct {
	blockType BlockType
	content   string
}

// NewBlock creates a block of the given type.
//
// Returns [ErrInvalidType] when bt is the zero BlockType, and
// [ErrFencedContent] when content contains one of the fence markers, which
// would corrupt the wire format and break response parsing down the chain.
func NewBlock(bt BlockType, content string) (Block, error) {
	if bt.IsZero() {
		return Block{}, ErrInvalidType
	}
	if strings.Contains(content, fenceOpen) || strings.Contains(content, fenceClose) {
		return Block{}, ErrFencedContent
	}
	return Block{blockType: bt, content: content}, nil
}

// MustBlock is like [NewBlock] but panics on error. Intended for fixtures and
// tests where the inputs are literals.
func MustBlock(bt BlockType, content string) Block {
	b, err := NewBlock(bt, content)
	if err != nil {
		panic(err)
	}
	return b
}

// Type returns the block's type.
func (b Block) Type() BlockType {
	return b.blockType
}

// Content returns the bare content without the type wrapper.
func (b Block) Content() string {
	return b.content
}

// Is reports whether the block carries the given type. Comparison is by type
// name, so independently constructed BlockTypes sharing a name match.
func (b Block) Is(bt BlockType) bool {
	return b.blockType == bt
}

// Render returns the block in its fenced wire form under the given variable
// name:
//
//	## @Block <TypeName> <name>
//	|---
//	<content>
//	---|
func (b Block) Render(name string) string {
	var sb strings.Builder
	sb.WriteString(blockHeading)
	sb.WriteByte(' ')
	sb.WriteString(b.blockType.name)
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteByte('\n')
	sb.WriteString(fenceOpen)
	sb.WriteByte('\n')
	sb.WriteString(b.content)
	sb.WriteByte('\n')
	sb.WriteString(fenceClose)
	return sb.String()
}

// String renders the block with a placeholder variable name. Variable names
// are owned by agents; a standalone block has none yet.
func (b Block) String() string {
	return b.Render(placeholderName)
}

// ParseBlock recovers a block of the given type from text containing its
// fenced form. The first fenced section whose heading names bt is used; text
// around and between sections is ignored. Returns a [*ResponseParseError]
// when no such section exists.
func ParseBlock(bt BlockType, text string) (Block, error) {
	m := bt.pattern().FindStringSubmatch(text)
	if m == nil {
		return Block{}, &ResponseParseError{Missing: bt, Raw: text}
	}
	// Constructed directly: the content came off the wire, and the lazy match
	// guarantees it holds no closing fence.
	return Block{blockType: bt, content: m[2]}, nil
}
