// Package research wires a two-step literature research chain used by the
// integration tests and the interactive CLI:
//
//	Topic -> ResearchQuestions -> SearchCriteria
//
// The first agent turns a topic into research questions; the second turns
// the questions into search criteria. The second agent's input type equals
// the first agent's output type, which is what makes the chain composable.
package research

import (
	"context"
	"fmt"

	"github.com/blockweave/weave"
	"github.com/blockweave/weave/registry"
)

// Fixture holds the chain's vocabulary and agents. Agents carry no model;
// pass one to Run.
type Fixture struct {
	Registry *registry.Registry

	Topic             weave.BlockType
	ResearchQuestions weave.BlockType
	SearchCriteria    weave.BlockType

	// TopicToQuestions creates 5 research questions for a topic.
	TopicToQuestions *weave.Agent

	// QuestionsToCriteria establishes search criteria for the questions.
	QuestionsToCriteria *weave.Agent
}

// NewFixture builds the chain.
func NewFixture() *Fixture {
	reg := registry.New()
	topic := reg.Define("Topic")
	questions := reg.Define("ResearchQuestions")
	criteria := reg.Define("SearchCriteria")

	topicToQuestions := weave.NewAgent(
		"Expert scientific researcher",
		"Creates 5 research questions related to the topic",
	).
		WithInput("topic_block", topic, "A topic for research here").
		WithOutput("rq_block", questions, "1. RQ1\n2. RQ2\n3. RQ3\n4. RQ4\n5. RQ5").
		WithAlgorithm(
			"Analyze topic_block",
			"Create 5 research questions",
			"Return the research questions as rq_block",
		)

	questionsToCriteria := weave.NewAgent(
		"Expert scientific researcher",
		"Establishes initial search criteria",
	).
		WithInput(
			"rq_block",
			questions,
			"- How can Automatic Speech Recognition (ASR) comply with the GDPR?\n"+
				"- What privacy preserving ASR technologies exist?",
		).
		WithOutput(
			"criteria_block",
			criteria,
			"- The paper is from 2010 or later.\n"+
				"- The paper mentions GDPR, privacy or regulation together with ASR.",
		).
		WithAlgorithm(
			"Determine the scope of the search criteria for the rq_block",
			"Create a set of search criteria that fits the domain and subject as criteria_block",
		)

	return &Fixture{
		Registry:            reg,
		Topic:               topic,
		ResearchQuestions:   questions,
		SearchCriteria:      criteria,
		TopicToQuestions:    topicToQuestions,
		QuestionsToCriteria: questionsToCriteria,
	}
}

// Run executes the chain against the given model: the topic feeds the first
// agent and its output block feeds the second. Returns the research
// questions and search criteria blocks.
func (f *Fixture) Run(
	ctx context.Context,
	m weave.Model,
	topic string,
) (questions weave.Block, criteria weave.Block, err error) {
	input, err := weave.NewBlock(f.Topic, topic)
	if err != nil {
		return weave.Block{}, weave.Block{}, err
	}

	out, err := f.TopicToQuestions.CallWithModel(ctx, m, input)
	if err != nil {
		return weave.Block{}, weave.Block{}, fmt.Errorf("topic agent: %w", err)
	}
	questions = out[0]

	out, err = f.QuestionsToCriteria.CallWithModel(ctx, m, questions)
	if err != nil {
		return weave.Block{}, weave.Block{}, fmt.Errorf("criteria agent: %w", err)
	}
	criteria = out[0]

	return questions, criteria, nil
}
