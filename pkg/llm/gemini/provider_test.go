package gemini

import (
	"testing"

	"mindly-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToContents(t *testing.T) {
	system, contents := toContents([]llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleUser, Content: "how are you"},
	})

	assert.Equal(t, "persona", system)
	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "hello", contents[1].Parts[0].Text)
	assert.Equal(t, genai.RoleUser, contents[2].Role)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), "", "")
	assert.Error(t, err)
}

func TestGenerateConfig(t *testing.T) {
	plain := generateConfig(llm.Apply(llm.Options{Temperature: 0.7}), "")
	assert.Nil(t, plain.ThinkingConfig)
	assert.Nil(t, plain.SystemInstruction)
	assert.Zero(t, plain.MaxOutputTokens)

	metrics := generateConfig(llm.Apply(llm.Options{Temperature: 0.7},
		llm.WithTemperature(0),
		llm.WithMaxTokens(256),
		llm.WithThinkingBudget(0),
	), "rate this")
	require.NotNil(t, metrics.ThinkingConfig)
	require.NotNil(t, metrics.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(0), *metrics.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(256), metrics.MaxOutputTokens)
	assert.Equal(t, float32(0), *metrics.Temperature)
	require.NotNil(t, metrics.SystemInstruction)
	assert.Equal(t, "rate this", metrics.SystemInstruction.Parts[0].Text)
}
