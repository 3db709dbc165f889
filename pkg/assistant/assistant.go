package assistant

import (
	"context"
	"fmt"

	"mindly-be/pkg/llm"
	"mindly-be/pkg/wellness"
)

// Companion produces replies and wellbeing ratings from one LLM backend.
type Companion struct {
	provider         llm.LLMProvider
	replyTemperature float64
	metricsMaxTokens int
}

func NewCompanion(provider llm.LLMProvider) *Companion {
	return &Companion{
		provider:         provider,
		replyTemperature: 0.7,
		metricsMaxTokens: 256,
	}
}

func (c *Companion) GenerateReply(ctx context.Context, message string, history []string, assessmentContext string) (string, error) {
	messages := NewReplyPromptBuilder(message, history, assessmentContext).Build()
	reply, err := c.provider.Chat(ctx, messages, llm.WithTemperature(c.replyTemperature))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return reply, nil
}

func (c *Companion) ExtractMetrics(ctx context.Context, message string, history []string) (wellness.Metrics, error) {
	raw, err := c.provider.Chat(ctx, BuildMetricsPrompt(message, history),
		llm.WithTemperature(0),
		llm.WithMaxTokens(c.metricsMaxTokens),
		llm.WithThinkingBudget(0),
	)
	if err != nil {
		return nil, fmt.Errorf("extract metrics: %w", err)
	}
	return wellness.ParseMetrics(raw)
}
