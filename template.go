package weave

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnswerPlaceholder is the literal content rendered inside output blocks in
// the prompt, marking where the model is expected to write its answer.
const AnswerPlaceholder = "ANSWER HERE"

// Template holds the textual skeleton an [Agent] fills in when assembling a
// prompt: the framing sentence, the section headers, the output placeholder
// and the closing instruction. The zero value is not usable; start from
// [DefaultTemplate] or load one with [LoadTemplate].
//
// The section ordering itself is fixed by the agent (framing, input blocks,
// output blocks, worked example, algorithm, closing); a template only swaps
// the surrounding words.
type Template struct {
	// Framing is a fmt format string with two %s verbs, filled with the
	// agent's role and summary in that order.
	Framing string `yaml:"framing"`

	InputHeader         string `yaml:"input_header"`
	OutputHeader        string `yaml:"output_header"`
	ExampleHeader       string `yaml:"example_header"`
	ExampleInputHeader  string `yaml:"example_input_header"`
	ExampleOutputHeader string `yaml:"example_output_header"`
	AlgorithmHeader     string `yaml:"algorithm_header"`

	// Closing instructs the model to reproduce the example's exact format.
	Closing string `yaml:"closing"`

	// Placeholder is rendered as the content of each output block.
	// Defaults to [AnswerPlaceholder].
	Placeholder string `yaml:"placeholder"`
}

// DefaultTemplate returns the built-in template. The returned value may be
// modified freely before handing it to an agent.
func DefaultTemplate() *Template {
	return &Template{
		Framing:             "Assume the role of: %s\nTask: %s",
		InputHeader:         "# Input blocks",
		OutputHeader:        "# Output blocks",
		ExampleHeader:       "# Example",
		ExampleInputHeader:  "Example input:",
		ExampleOutputHeader: "Example output:",
		AlgorithmHeader:     "# Algorithm",
		Closing:             "Answer with every output block, matching the exact format of the example output.",
		Placeholder:         AnswerPlaceholder,
	}
}

// LoadTemplate reads a YAML template from r. Fields absent from the document
// keep their defaults, so a file may override just the framing or just the
// closing instruction. Unknown fields are an error, as is a framing without
// the two %s verbs.
func LoadTemplate(r io.Reader) (*Template, error) {
	t := DefaultTemplate()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode template: %w", err)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTemplateFile reads a YAML template from a UTF-8 file.
func LoadTemplateFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	t, err := LoadTemplate(f)
	if err != nil {
		return nil, fmt.Errorf("template file %s: %w", path, err)
	}
	return t, nil
}

// validate rejects templates that would render malformed prompts. Errors
// surface at load time, never at render time: rendering must stay a pure
// function that cannot fail.
func (t *Template) validate() error {
	if strings.Count(t.Framing, "%s") != 2 {
		return fmt.Errorf("template framing must contain exactly two %%s verbs (role, summary), got %q", t.Framing)
	}
	if t.Placeholder == "" {
		return errors.New("template placeholder must not be empty")
	}
	// The placeholder is rendered inside output block fences, so it is held
	// to the same marker rule as block content.
	if strings.Contains(t.Placeholder, fenceOpen) || strings.Contains(t.Placeholder, fenceClose) {
		return fmt.Errorf("template placeholder: %w", ErrFencedContent)
	}
	if t.Closing == "" {
		return errors.New("template closing instruction must not be empty")
	}
	return nil
}
