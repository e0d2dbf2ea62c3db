package weave

import "context"

// Model is the capability an agent needs from a language model: text in,
// text out, may fail. The core treats it as an opaque blocking call; any
// timeout or retry policy belongs to the implementation, not to the agent.
//
// The models subpackage adapts LangChainGo providers. For anything else,
// implement the interface or wrap a function with [ModelFunc].
type Model interface {
	// Complete sends a prompt and returns the model's textual response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a plain function to the [Model] interface.
//
//	m := weave.ModelFunc(func(ctx context.Context, prompt string) (string, error) {
//	    return myProvider.Generate(ctx, prompt)
//	})
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements [Model].
func (f ModelFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
