package weave

import (
	"context"
	"fmt"
	"strings"
)

// MockContent is the fixed sentinel content of every block returned by
// [Agent.MockCall].
const MockContent = "mock response for testing"

// slot describes one position in an agent's signature: the variable name the
// prompt refers to the block by, the block type expected or produced there,
// and the example content shown in the worked example section. Keeping the
// three together per position makes the name/type/example correspondence
// impossible to violate.
type slot struct {
	name    string
	typ     BlockType
	example string
}

// Agent is a reusable prompt template with a declared input/output block
// signature.
//
// An agent is authored once with [NewAgent] and the With* chain, then invoked
// many times with concrete blocks. Invocations are stateless request/response
// cycles: a call either returns every declared output block or fails whole.
// Once built, an agent is safe for concurrent use; the With* methods are not.
//
//	agent := weave.NewAgent("Expert scientific researcher",
//	    "Creates 5 research questions related to the topic").
//	    WithInput("topic_block", topic, "A topic for research here").
//	    WithOutput("rq_block", questions, "1. RQ1\n2. RQ2").
//	    WithAlgorithm("Analyze topic_block", "Create 5 research questions").
//	    WithModel(m)
//
//	out, err := agent.Call(ctx, weave.MustBlock(topic, "GDPR and speech data"))
type Agent struct {
	role      string
	summary   string
	inputs    []slot
	outputs   []slot
	algorithm []string

	model      Model
	template   *Template
	validators map[string]Validator

	// err holds the first builder misuse. The With* chain cannot return an
	// error without breaking chaining, so the error is recorded here and
	// surfaces on the next FullPrompt, MockCall or Call.
	err error
}

// NewAgent creates an agent with the given persona role and one-line task
// summary. Both appear in the prompt's framing sentence.
func NewAgent(role, summary string) *Agent {
	return &Agent{
		role:     role,
		summary:  summary,
		template: DefaultTemplate(),
	}
}

// WithInput appends an input position to the agent's signature: the variable
// name used in the prompt, the block type accepted there, and the example
// content shown in the worked example. Call order defines positional order.
// A missing name, a zero type or an example containing the fence markers is
// recorded and fails the next FullPrompt, MockCall or Call.
// Returns the agent for chaining.
func (a *Agent) WithInput(name string, bt BlockType, example string) *Agent {
	a.checkSlot("input", len(a.inputs), name, bt, example)
	a.inputs = append(a.inputs, slot{name: name, typ: bt, example: example})
	return a
}

// WithOutput appends an output position to the agent's signature. The agent
// renders this block with the answer placeholder in the prompt and parses a
// block of this type, under this name, out of every model response.
// Misuse is recorded the same way as in [Agent.WithInput].
// Returns the agent for chaining.
func (a *Agent) WithOutput(name string, bt BlockType, example string) *Agent {
	a.checkSlot("output", len(a.outputs), name, bt, example)
	a.outputs = append(a.outputs, slot{name: name, typ: bt, example: example})
	return a
}

// checkSlot records the first slot declaration that would render a corrupt
// prompt. Example content travels inside the worked example's fences, so it
// is held to the same marker rule [NewBlock] enforces on block content.
func (a *Agent) checkSlot(kind string, index int, name string, bt BlockType, example string) {
	if a.err != nil {
		return
	}
	switch {
	case name == "":
		a.err = fmt.Errorf("%s %d has no name", kind, index)
	case bt.IsZero():
		a.err = fmt.Errorf("%s %q: %w", kind, name, ErrInvalidType)
	case strings.Contains(example, fenceOpen) || strings.Contains(example, fenceClose):
		a.err = fmt.Errorf("%s %q example: %w", kind, name, ErrFencedContent)
	}
}

// WithAlgorithm sets the step-by-step instructions rendered as a numbered
// list. Steps are given without numbers; numbering is applied at render time.
// Returns the agent for chaining.
func (a *Agent) WithAlgorithm(steps ...string) *Agent {
	a.algorithm = steps
	return a
}

// WithModel sets the default model used by [Agent.Call] when no explicit
// model is given. Returns the agent for chaining.
func (a *Agent) WithModel(m Model) *Agent {
	a.model = m
	return a
}

// WithTemplate replaces the default prompt template. A template that would
// render malformed prompts is recorded and fails the next FullPrompt,
// MockCall or Call. Returns the agent for chaining.
func (a *Agent) WithTemplate(t *Template) *Agent {
	if a.err == nil {
		if err := t.validate(); err != nil {
			a.err = err
			return a
		}
	}
	a.template = t
	return a
}

// WithOutputValidator registers a validator for the output block with the
// given variable name. The validator runs after response parsing; rejection
// fails the call with a [*ValidationError]. Returns the agent for chaining.
func (a *Agent) WithOutputValidator(blockName string, v Validator) *Agent {
	if a.validators == nil {
		a.validators = make(map[string]Validator)
	}
	a.validators[blockName] = v
	return a
}

// Err reports the first builder misuse recorded by the With* chain, if any.
// FullPrompt, MockCall and Call fail with the same error; checking here lets
// construction sites fail early instead.
func (a *Agent) Err() error {
	return a.err
}

// Role returns the agent's persona role.
func (a *Agent) Role() string { return a.role }

// Summary returns the agent's one-line task description.
func (a *Agent) Summary() string { return a.summary }

// InputTypes returns the declared input block types in positional order.
func (a *Agent) InputTypes() []BlockType { return slotTypes(a.inputs) }

// OutputTypes returns the declared output block types in positional order.
func (a *Agent) OutputTypes() []BlockType { return slotTypes(a.outputs) }

// InputNames returns the declared input variable names in positional order.
func (a *Agent) InputNames() []string { return slotNames(a.inputs) }

// OutputNames returns the declared output variable names in positional order.
func (a *Agent) OutputNames() []string { return slotNames(a.outputs) }

// Algorithm returns the algorithm steps.
func (a *Agent) Algorithm() []string {
	return append([]string(nil), a.algorithm...)
}

func slotTypes(slots []slot) []BlockType {
	types := make([]BlockType, len(slots))
	for i, s := range slots {
		types[i] = s.typ
	}
	return types
}

func slotNames(slots []slot) []string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.name
	}
	return names
}

// validateInputs checks the supplied blocks against the declared signature:
// builder misuse first, then arity, then positional type equality. A mismatch
// is a contract violation, not a warning.
func (a *Agent) validateInputs(inputs []Block) error {
	if a.err != nil {
		return a.err
	}
	if len(inputs) != len(a.inputs) {
		return &ArityError{Want: len(a.inputs), Got: len(inputs)}
	}
	for i, b := range inputs {
		if !b.Is(a.inputs[i].typ) {
			return &TypeMismatchError{
				Position: i,
				Want:     a.inputs[i].typ,
				Got:      b.Type(),
			}
		}
	}
	return nil
}

// FullPrompt assembles the complete prompt for the given input blocks.
//
// The layout is fixed: the role/summary framing, the rendered input blocks,
// the output blocks rendered with the answer placeholder, the worked example
// (example inputs, then example outputs, under the same block headings), the
// algorithm as a numbered list, and the closing instruction. Identical
// arguments always yield byte-identical output.
//
// Fails with [*ArityError] or [*TypeMismatchError] when the inputs disagree
// with the declared signature.
func (a *Agent) FullPrompt(inputs ...Block) (string, error) {
	if err := a.validateInputs(inputs); err != nil {
		return "", err
	}
	return a.renderPrompt(inputs), nil
}

// renderPrompt builds the prompt text. Inputs must already be validated.
func (a *Agent) renderPrompt(inputs []Block) string {
	t := a.template
	sections := make([]string, 0, 8+2*(len(a.inputs)+len(a.outputs)))

	sections = append(sections, fmt.Sprintf(t.Framing, a.role, a.summary))

	sections = append(sections, t.InputHeader)
	for i, s := range a.inputs {
		sections = append(sections, inputs[i].Render(s.name))
	}

	sections = append(sections, t.OutputHeader)
	for _, s := range a.outputs {
		sections = append(sections, Block{blockType: s.typ, content: t.Placeholder}.Render(s.name))
	}

	sections = append(sections, t.ExampleHeader, t.ExampleInputHeader)
	for _, s := range a.inputs {
		sections = append(sections, Block{blockType: s.typ, content: s.example}.Render(s.name))
	}
	sections = append(sections, t.ExampleOutputHeader)
	for _, s := range a.outputs {
		sections = append(sections, Block{blockType: s.typ, content: s.example}.Render(s.name))
	}

	if len(a.algorithm) > 0 {
		var alg strings.Builder
		alg.WriteString(t.AlgorithmHeader)
		alg.WriteString("\n")
		for i, step := range a.algorithm {
			fmt.Fprintf(&alg, "\n%d. %s", i+1, step)
		}
		sections = append(sections, alg.String())
	}

	sections = append(sections, t.Closing)

	return strings.Join(sections, "\n\n") + "\n"
}

// MockCall validates the inputs exactly like a real call, then returns one
// block per declared output with [MockContent] as content. No model is
// involved: the result is deterministic and side-effect free, which makes it
// suitable for testing agent wiring without cost or network access.
func (a *Agent) MockCall(inputs ...Block) ([]Block, error) {
	if err := a.validateInputs(inputs); err != nil {
		return nil, err
	}
	out := make([]Block, 0, len(a.outputs))
	for _, s := range a.outputs {
		out = append(out, Block{blockType: s.typ, content: MockContent})
	}
	return out, nil
}

// Call invokes the agent's default model with the assembled prompt and parses
// the response into the declared output blocks. Fails with [ErrNoModel] when
// no default model is configured.
func (a *Agent) Call(ctx context.Context, inputs ...Block) ([]Block, error) {
	return a.call(ctx, nil, inputs)
}

// CallWithModel is like [Agent.Call] but uses the given model, overriding the
// agent's default. A nil model falls back to the default.
func (a *Agent) CallWithModel(ctx context.Context, m Model, inputs ...Block) ([]Block, error) {
	return a.call(ctx, m, inputs)
}

func (a *Agent) call(ctx context.Context, m Model, inputs []Block) ([]Block, error) {
	if err := a.validateInputs(inputs); err != nil {
		return nil, err
	}

	if m == nil {
		m = a.model
	}
	if m == nil {
		return nil, ErrNoModel
	}

	response, err := m.Complete(ctx, a.renderPrompt(inputs))
	if err != nil {
		return nil, &ModelCallError{Err: err}
	}

	blocks, err := a.parseResponse(response)
	if err != nil {
		return nil, err
	}

	for i, b := range blocks {
		name := a.outputs[i].name
		v, ok := a.validators[name]
		if !ok {
			continue
		}
		if err := v.Validate(b); err != nil {
			return nil, &ValidationError{BlockName: name, Validator: v.Name(), Err: err}
		}
	}

	return blocks, nil
}

// parseResponse extracts one block per declared output from the response
// text, in declared order. When two outputs share a type, they map to the
// first and second fenced section of that type in the response. Sections
// beyond the declared outputs are ignored. Any missing section fails the
// whole parse; no partial results are returned.
func (a *Agent) parseResponse(response string) ([]Block, error) {
	found := make(map[string][][]string, len(a.outputs))
	taken := make(map[string]int, len(a.outputs))

	blocks := make([]Block, 0, len(a.outputs))
	for _, s := range a.outputs {
		matches, ok := found[s.typ.name]
		if !ok {
			matches = s.typ.pattern().FindAllStringSubmatch(response, -1)
			found[s.typ.name] = matches
		}

		i := taken[s.typ.name]
		taken[s.typ.name]++
		if i >= len(matches) {
			return nil, &ResponseParseError{Missing: s.typ, Name: s.name, Raw: response}
		}

		blocks = append(blocks, Block{blockType: s.typ, content: matches[i][2]})
	}
	return blocks, nil
}
