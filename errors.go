package weave

import (
	"errors"
	"fmt"
)

// Construction errors. These are programmer errors: they are returned at the
// point of misuse and never swallowed or retried.
var (
	// ErrInvalidType is returned when a zero BlockType is used where a real
	// one is required.
	ErrInvalidType = errors.New("block type is the zero value; construct one with NewBlockType")

	// ErrFencedContent is returned when block content contains one of the
	// fence markers of the wire format.
	ErrFencedContent = errors.New("block content must not contain the fence markers " + fenceOpen + " or " + fenceClose)

	// ErrNoModel is returned by Call when neither an explicit model nor a
	// default model is configured on the agent.
	ErrNoModel = errors.New("no model configured: set a default with WithModel or pass one to CallWithModel")
)

// ArityError reports a call with the wrong number of input blocks for the
// agent's declared signature.
type ArityError struct {
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d input blocks, got %d", e.Want, e.Got)
}

// TypeMismatchError reports an input block whose type disagrees with the
// agent's declared input type at the same position.
type TypeMismatchError struct {
	// Position is the zero-based index of the offending block.
	Position int
	Want     BlockType
	Got      BlockType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf(
		"input block %d: expected block type %q, got %q",
		e.Position, e.Want.Name(), e.Got.Name(),
	)
}

// ResponseParseError reports a model response missing the fenced section for
// a declared output block. Raw carries the full response for debugging; the
// call fails whole, no partially parsed blocks are returned.
type ResponseParseError struct {
	// Missing is the output block type whose section was not found.
	Missing BlockType

	// Name is the declared variable name of the missing block, when known.
	Name string

	// Raw is the full model response that failed to parse.
	Raw string
}

func (e *ResponseParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf(
			"response has no fenced section for output block %q of type %q",
			e.Name, e.Missing.Name(),
		)
	}
	return fmt.Sprintf("response has no fenced section for block type %q", e.Missing.Name())
}

// ModelCallError wraps a failure from the model capability. The cause is
// opaque to the core and propagated as-is via Unwrap.
type ModelCallError struct {
	Err error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}

// ValidationError reports an output block rejected by a configured
// [Validator] after a successful parse.
type ValidationError struct {
	// BlockName is the declared variable name of the rejected output block.
	BlockName string

	// Validator is the name of the validator that rejected the block.
	Validator string

	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"output block %q rejected by validator %q: %v",
		e.BlockName, e.Validator, e.Err,
	)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
