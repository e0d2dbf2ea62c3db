package weave_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockweave/weave"
)

func TestDefaultTemplate(t *testing.T) {
	tmpl := weave.DefaultTemplate()

	assert.Equal(t, "Assume the role of: %s\nTask: %s", tmpl.Framing)
	assert.Equal(t, weave.AnswerPlaceholder, tmpl.Placeholder)
	assert.NotEmpty(t, tmpl.Closing)
}

func TestLoadTemplateOverridesSubset(t *testing.T) {
	doc := `
framing: "You are %s. %s"
closing: "Reply using only the output blocks."
`
	tmpl, err := weave.LoadTemplate(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "You are %s. %s", tmpl.Framing)
	assert.Equal(t, "Reply using only the output blocks.", tmpl.Closing)
	// Untouched fields keep their defaults.
	assert.Equal(t, "# Input blocks", tmpl.InputHeader)
	assert.Equal(t, weave.AnswerPlaceholder, tmpl.Placeholder)
}

func TestLoadTemplateEmptyKeepsDefaults(t *testing.T) {
	tmpl, err := weave.LoadTemplate(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, weave.DefaultTemplate(), tmpl)
}

func TestLoadTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown field", doc: "prologue: hello"},
		{name: "framing missing verbs", doc: `framing: "You are an assistant."`},
		{name: "framing too many verbs", doc: `framing: "%s %s %s"`},
		{name: "empty placeholder", doc: `placeholder: ""`},
		{name: "placeholder with fence marker", doc: `placeholder: "answer after ---|"`},
		{name: "not yaml", doc: ":\n:::"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := weave.LoadTemplate(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`framing: "Act as %s: %s"`), 0o644))

	tmpl, err := weave.LoadTemplateFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Act as %s: %s", tmpl.Framing)

	_, err = weave.LoadTemplateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCustomTemplateInPrompt(t *testing.T) {
	tmpl := weave.DefaultTemplate()
	tmpl.Framing = "You are %s. %s"
	tmpl.Placeholder = "FILL IN YOUR RESPONSE"

	agent := newResearchAgent().WithTemplate(tmpl)

	prompt, err := agent.FullPrompt(topicBlock("some topic"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt,
		"You are Expert scientific researcher. Creates 5 research questions related to the topic"))
	assert.Contains(t, prompt, "FILL IN YOUR RESPONSE")
	assert.NotContains(t, prompt, weave.AnswerPlaceholder)
}
