package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockweave/weave"
	"github.com/blockweave/weave/internal/tt"
)

func questionsSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := Compile(Object(map[string]*Property{
		"questions": Array("Research questions", map[string]any{"type": "string"}),
		"count":     Integer("Number of questions").Min(1).Max(10),
	}, "questions"))
	require.NoError(t, err)
	return s
}

func TestCompileInvalidSchema(t *testing.T) {
	_, err := Compile(map[string]any{"type": 123})
	assert.Error(t, err)

	_, err = Compile(nil)
	assert.Error(t, err)
}

func TestValidateBlock(t *testing.T) {
	s := questionsSchema(t)
	bt := weave.NewBlockType("ResearchQuestions")

	tests := []struct {
		name    string
		content string
		wantOK  bool
	}{
		{
			name:    "conforming",
			content: `{"questions": ["How?", "Why?"], "count": 2}`,
			wantOK:  true,
		},
		{
			name:    "optional field absent",
			content: `{"questions": []}`,
			wantOK:  true,
		},
		{
			name:    "missing required field",
			content: `{"count": 2}`,
			wantOK:  false,
		},
		{
			name:    "wrong item type",
			content: `{"questions": [1, 2]}`,
			wantOK:  false,
		},
		{
			name:    "out of range",
			content: `{"questions": ["How?"], "count": 0}`,
			wantOK:  false,
		},
		{
			name:    "not json",
			content: "1. How?\n2. Why?",
			wantOK:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Validate(weave.MustBlock(bt, tc.content))
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSchemaAsOutputValidator(t *testing.T) {
	s := questionsSchema(t)
	topic := weave.NewBlockType("Topic")
	questions := weave.NewBlockType("ResearchQuestions")

	agent := weave.NewAgent("researcher", "produces questions as JSON").
		WithInput("topic_block", topic, "a topic").
		WithOutput("rq_block", questions, `{"questions": ["How?"], "count": 1}`).
		WithOutputValidator("rq_block", s)

	input := weave.MustBlock(topic, "GDPR and speech data")

	good := tt.NewMockModel().AddResponse(
		weave.MustBlock(questions, `{"questions": ["How?", "Why?"], "count": 2}`).Render("rq_block"),
	)
	out, err := agent.CallWithModel(context.Background(), good, input)
	require.NoError(t, err)
	require.Len(t, out, 1)

	bad := tt.NewMockModel().AddResponse(
		weave.MustBlock(questions, "1. How?\n2. Why?").Render("rq_block"),
	)
	_, err = agent.CallWithModel(context.Background(), bad, input)

	var valErr *weave.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "rq_block", valErr.BlockName)
	assert.Equal(t, "schema", valErr.Validator)
}

func TestRaw(t *testing.T) {
	raw := Object(map[string]*Property{
		"status": String("Status").Enum("open", "closed"),
	}, "status")

	s := MustCompile(raw)
	assert.Equal(t, raw, s.Raw())

	props := raw["properties"].(map[string]any)
	status := props["status"].(map[string]any)
	assert.Equal(t, "string", status["type"])
	assert.Equal(t, []any{"open", "closed"}, status["enum"])
	assert.Equal(t, []string{"status"}, raw["required"])
}
