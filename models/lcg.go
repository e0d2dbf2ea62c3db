// Package models adapts language model providers to the weave.Model
// capability.
//
// The core never talks to a provider directly; it only knows the single
// string-in, string-out Model interface. This package supplies the adapter
// for LangChainGo, which covers OpenAI, Anthropic, Ollama, Mistral and the
// other providers LangChainGo supports:
//
//	llm, err := openai.New()
//	if err != nil { ... }
//	m := models.NewLCG(llm).WithModelName("gpt-4o-mini")
//
//	agent := weave.NewAgent(role, summary).WithModel(m)
package models

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/blockweave/weave"
)

// LCG wraps a LangChainGo llms.Model and implements weave.Model.
//
// The prompt is sent as a single human message via
// llms.GenerateFromSinglePrompt and the first choice's text is returned.
// Provider failures are returned as-is; the agent wraps them in
// weave.ModelCallError.
type LCG struct {
	model     llms.Model
	modelName string
	options   []llms.CallOption
}

// NewLCG creates an adapter around the given llms.Model.
func NewLCG(model llms.Model) *LCG {
	return &LCG{model: model}
}

// WithModelName sets the name used to annotate errors from this model.
// Returns the adapter for chaining.
func (m *LCG) WithModelName(name string) *LCG {
	m.modelName = name
	return m
}

// WithCallOptions sets LangChainGo call options (temperature, max tokens,
// model selection) applied to every completion. Returns the adapter for
// chaining.
func (m *LCG) WithCallOptions(options ...llms.CallOption) *LCG {
	m.options = options
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCG) Unwrap() llms.Model {
	return m.model
}

// Complete implements weave.Model.
func (m *LCG) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, m.model, prompt, m.options...)
	if err != nil {
		if m.modelName != "" {
			return "", fmt.Errorf("%s: %w", m.modelName, err)
		}
		return "", err
	}
	return out, nil
}

// Compile-time check that LCG implements weave.Model.
var _ weave.Model = (*LCG)(nil)
