package llm

// GroqProvider is Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string, opts ...Option) *GroqProvider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqProvider{
		OpenAIProvider: newChatProvider("groq", "https://api.groq.com/openai/v1", apiKey, model, opts),
	}
}
