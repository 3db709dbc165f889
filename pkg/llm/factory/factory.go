package factory

import (
	"context"
	"fmt"

	"mindly-be/pkg/llm"
	"mindly-be/pkg/llm/gemini"
	"mindly-be/pkg/llm/ollama"
)

func NewLLMProvider(ctx context.Context, providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini", "":
		provider, err := gemini.NewGeminiProvider(ctx, apiKey, modelName)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
