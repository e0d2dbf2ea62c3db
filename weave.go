// Package weave provides a lightweight type discipline for text exchanged with
// language models.
//
// The idea is to make chains of LLM calls composable and checkable the way
// typed function calls are. A [BlockType] is a named label for a category of
// text, a [Block] pairs content with one such label, and an [Agent] is a
// reusable prompt template with a declared input/output block signature. An
// agent only accepts blocks whose types match its declared inputs, and the
// blocks it produces carry its declared output types, so the output of one
// agent can feed the next only when the types line up.
//
// # Quick Start
//
//	topic := weave.NewBlockType("Topic")
//	questions := weave.NewBlockType("ResearchQuestions")
//
//	agent := weave.NewAgent(
//	    "Expert scientific researcher",
//	    "Creates 5 research questions related to the topic",
//	).
//	    WithInput("topic_block", topic, "A topic for research here").
//	    WithOutput("rq_block", questions, "1. RQ1\n2. RQ2\n3. RQ3\n4. RQ4\n5. RQ5").
//	    WithAlgorithm(
//	        "Analyze topic_block",
//	        "Create 5 research questions",
//	        "Return the research questions as rq_block",
//	    )
//
//	input := weave.MustBlock(topic, "Eastern religions and technology")
//
//	// Inspect the prompt without calling anything.
//	prompt, err := agent.FullPrompt(input)
//
//	// Test the wiring without a model.
//	blocks, err := agent.MockCall(input)
//
//	// Call a real model. Any Model implementation works; the models
//	// package adapts LangChainGo providers.
//	llm, _ := openai.New()
//	blocks, err = agent.CallWithModel(ctx, models.NewLCG(llm), input)
//
// # Wire Format
//
// Blocks travel to and from the model in a fenced textual form:
//
//	## @Block Topic topic_block
//	|---
//	Eastern religions and technology
//	---|
//
// The heading prefix, field order (type name, then variable name) and the
// fence markers are a stable contract: agents embed blocks in prompts in this
// form and parse model responses back into blocks by locating the same fenced
// sections. See [Block.Render] and [ParseBlock].
//
// # Models
//
// The core treats a model as an opaque string-in, string-out capability, the
// single-method [Model] interface. [ModelFunc] adapts plain functions. The
// models subpackage wraps LangChainGo providers. Failures from the capability
// are wrapped in [*ModelCallError] and surfaced whole; the core never retries.
//
// # Declarative Pipelines
//
// The registry subpackage keeps one canonical [BlockType] per name and loads
// whole pipelines (block types plus agents) from YAML manifests. The schema
// subpackage validates JSON block content against a JSON Schema before an
// agent accepts a model response.
package weave
