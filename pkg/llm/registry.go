package llm

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ProviderFactory creates a provider from config.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// DefaultProvider is used when nothing else is configured or detected.
const DefaultProvider = "gemini"

// DefaultModels maps provider names to their default models.
var DefaultModels = map[string]string{
	"gemini":    "gemini-2.0-flash-lite",
	"anthropic": "claude-3-5-haiku-20241022",
	"openai":    "gpt-4o-mini",
	"ollama":    "llama3.2",
}

// providerEnvKeys maps provider names to their API key environment variables.
// Providers missing from this map need no key.
var providerEnvKeys = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
}

var registry = map[string]ProviderFactory{}

func init() {
	RegisterProvider("gemini", func(cfg ProviderConfig) (Provider, error) {
		return NewGeminiProvider(cfg)
	})
	RegisterProvider("anthropic", func(cfg ProviderConfig) (Provider, error) {
		return NewAnthropicProvider(cfg)
	})
	RegisterProvider("openai", func(cfg ProviderConfig) (Provider, error) {
		return NewOpenAIProvider(cfg)
	})
	RegisterProvider("ollama", func(cfg ProviderConfig) (Provider, error) {
		return NewOllamaProvider(cfg)
	})
}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: %s)", name, strings.Join(AvailableProviders(), ", "))
	}
	return factory(cfg)
}

// RegisterProvider adds or replaces a provider factory.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// AvailableProviders returns the registered provider names, sorted.
func AvailableProviders() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a provider is registered.
func IsRegistered(name string) bool {
	_, ok := registry[name]
	return ok
}

// DetectProvider picks a provider from the API keys present in the
// environment: GEMINI_API_KEY, then ANTHROPIC_API_KEY, then OPENAI_API_KEY.
// Without any key it falls back to ollama.
func DetectProvider() (provider string, apiKey string) {
	for _, name := range []string{"gemini", "anthropic", "openai"} {
		if key := os.Getenv(providerEnvKeys[name]); key != "" {
			return name, key
		}
	}
	return "ollama", ""
}

// GetDefaultModel returns the default model for a provider.
func GetDefaultModel(provider string) string {
	return DefaultModels[provider]
}

// RequiresAPIKey reports whether the provider cannot work without a key.
func RequiresAPIKey(provider string) bool {
	_, ok := providerEnvKeys[provider]
	return ok
}

// APIKeyEnv returns the environment variable holding the provider's key.
func APIKeyEnv(provider string) string {
	return providerEnvKeys[provider]
}

// APIKeyFromEnv reads the provider's key from its environment variable.
func APIKeyFromEnv(provider string) string {
	if env := providerEnvKeys[provider]; env != "" {
		return os.Getenv(env)
	}
	return ""
}
