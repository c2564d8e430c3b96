package resources

import (
	"context"
	"fmt"
)

// Provider names accepted by NewProvider.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// ProviderConfig configures a model provider.
type ProviderConfig struct {
	Name        string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	// MaxRetries bounds client retries; negative keeps the client default.
	MaxRetries int
}

// NewProvider builds the provider named by cfg.Name.
//
// Postcondition: Returns (nil, nil) for ProviderNone or an empty name.
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch cfg.Name {
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderAnthropic:
		p, err := NewAnthropicProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("resources: unknown provider %q", cfg.Name)
	}
}
