package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockweave/weave"
	"github.com/blockweave/weave/internal/tt"
)

const questionsText = `1. How do Eastern religions view technological progress?
2. What role does technology play in contemporary Buddhist practice?
3. How have Hindu communities adopted digital ritual spaces?
4. What ethical frameworks do Eastern religions offer for AI?
5. How does Daoist thought relate to automation?`

const criteriaText = `- The paper is from 2010 or later.
- The paper discusses an Eastern religion together with a technology.
- The paper contributes to at least one research question.`

func TestChain(t *testing.T) {
	f := NewFixture()

	model := tt.NewMockModel().
		AddResponse(
			"Here are the questions.\n\n" +
				weave.MustBlock(f.ResearchQuestions, questionsText).Render("rq_block") + "\n",
		).
		AddResponse(
			weave.MustBlock(f.SearchCriteria, criteriaText).Render("criteria_block") + "\n",
		)

	questions, criteria, err := f.Run(
		context.Background(), model, "Eastern religions and technology",
	)
	require.NoError(t, err)

	assert.True(t, questions.Is(f.ResearchQuestions))
	assert.Equal(t, questionsText, questions.Content())
	assert.True(t, criteria.Is(f.SearchCriteria))
	assert.Equal(t, criteriaText, criteria.Content())

	// The second prompt must embed the first agent's output verbatim.
	require.Equal(t, 2, model.CallCount())
	assert.Contains(t, model.CapturedPrompts[1], questions.Render("rq_block"))
}

func TestChainMockOnly(t *testing.T) {
	f := NewFixture()

	input := weave.MustBlock(f.Topic, "Eastern religions and technology")
	out, err := f.TopicToQuestions.MockCall(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Is(f.ResearchQuestions))
	assert.Equal(t, weave.MockContent, out[0].Content())

	// Mock output is typed, so it feeds the next agent like a real one.
	out, err = f.QuestionsToCriteria.MockCall(out[0])
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Is(f.SearchCriteria))
}

func TestChainStopsOnMalformedResponse(t *testing.T) {
	f := NewFixture()

	model := tt.NewMockModel().
		AddResponse("I refuse to answer in the requested format.")

	_, _, err := f.Run(context.Background(), model, "GDPR and speech data")

	var parseErr *weave.ResponseParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, f.ResearchQuestions, parseErr.Missing)
	assert.Equal(t, "I refuse to answer in the requested format.", parseErr.Raw)
	assert.Equal(t, 1, model.CallCount())
}

func TestChainPropagatesModelFailure(t *testing.T) {
	f := NewFixture()

	cause := errors.New("rate limited")
	model := tt.NewMockModel().AddError(cause)

	_, _, err := f.Run(context.Background(), model, "GDPR and speech data")

	var callErr *weave.ModelCallError
	require.ErrorAs(t, err, &callErr)
	assert.ErrorIs(t, err, cause)
}
