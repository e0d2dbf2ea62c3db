package weave

import (
	"regexp"
	"sync"
)

// Wire format markers for the fenced block form. These are a stable contract:
// model responses are parsed by locating these exact strings, so changing them
// breaks every agent chain built on this format.
const (
	blockHeading = "## @Block"
	fenceOpen    = "|---"
	fenceClose   = "---|"
)

// placeholderName is rendered in place of a variable name when a block is
// stringified outside of an agent, where no name has been assigned yet.
const placeholderName = "{block_name}"

// BlockType is a named label for a category of text. It is a small immutable
// value with structural equality: two BlockTypes constructed independently
// with the same name compare equal with == and are interchangeable as agent
// signature elements. BlockType is usable as a map key.
//
// Use the registry package when block types are shared across packages and a
// single canonical instance per name is wanted.
type BlockType struct {
	name string
}

// NewBlockType creates a block type with the given name. An empty name yields
// the zero BlockType, which is rejected by [NewBlock] and [NewAgent] wiring.
func NewBlockType(name string) BlockType {
	return BlockType{name: name}
}

// Name returns the type's name.
func (t BlockType) Name() string {
	return t.name
}

// String returns the type's name.
func (t BlockType) String() string {
	return t.name
}

// IsZero reports whether t is the zero BlockType (no name).
func (t BlockType) IsZero() bool {
	return t.name == ""
}

// patterns caches one compiled regexp per type name. Parsing runs once per
// declared output on every model response, and types are long-lived values
// with a small vocabulary per process.
var patterns sync.Map

// pattern returns the regexp matching this type's fenced sections in text.
// Submatch 1 is the variable name, submatch 2 the content between the fences
// (excluding the newline that frames each fence, so render and parse
// round-trip content exactly).
func (t BlockType) pattern() *regexp.Regexp {
	if re, ok := patterns.Load(t.name); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(
		regexp.QuoteMeta(blockHeading) +
			`[ \t]+` + regexp.QuoteMeta(t.name) +
			`[ \t]+(\S+)[ \t]*\n` +
			regexp.QuoteMeta(fenceOpen) +
			`\n(?s:(.*?))\n` +
			regexp.QuoteMeta(fenceClose),
	)
	cached, _ := patterns.LoadOrStore(t.name, re)
	return cached.(*regexp.Regexp)
}
