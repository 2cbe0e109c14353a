package factory

import (
	"fmt"
	"time"

	"ai-mathteach-be/pkg/llm"
	"ai-mathteach-be/pkg/llm/gemini"
	"ai-mathteach-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, ollamaBaseURL, geminiApiKey string, timeout time.Duration) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName, timeout), nil
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiApiKey, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
