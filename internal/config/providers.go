package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	EnvKey       string
	SignupURL    string
	BaseURL      string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, used for English copy",
		EnvKey:       "GROQ_API_KEY",
		SignupURL:    "https://console.groq.com/keys",
		BaseURL:      "https://api.groq.com/openai/v1",
		Models:       []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant", "llama3-70b-8192"},
		DefaultModel: "llama-3.3-70b-versatile",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, strongest for other languages",
		EnvKey:       "OPENAI_API_KEY",
		SignupURL:    "https://platform.openai.com/api-keys",
		BaseURL:      "https://api.openai.com/v1",
		Models:       []string{"gpt-4o", "gpt-4o-mini"},
		DefaultModel: "gpt-4o",
	},
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google Gemini API",
		EnvKey:       "GEMINI_API_KEY",
		SignupURL:    "https://aistudio.google.com/apikey",
		Models:       []string{"gemini-2.5-flash", "gemini-2.5-pro"},
		DefaultModel: "gemini-2.5-flash",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// ProviderIDs lists the known provider IDs in catalogue order.
func ProviderIDs() []string {
	ids := make([]string, len(Providers))
	for i, p := range Providers {
		ids[i] = p.ID
	}
	return ids
}
