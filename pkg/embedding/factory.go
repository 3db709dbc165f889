package embedding

import (
	"context"
	"fmt"
)

func NewEmbeddingProvider(ctx context.Context, providerType, model, baseURL, apiKey string) (EmbeddingProvider, error) {
	switch providerType {
	case "gemini", "":
		return NewGeminiProvider(ctx, apiKey, model)
	case "ollama":
		return NewOllamaProvider(baseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
