package resources

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider queries Google's Gemini API with a JSON response schema.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiProvider connects a Gemini client.
//
// Precondition: cfg.APIKey must be non-empty.
func NewGeminiProvider(ctx context.Context, cfg ProviderConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model, temperature: cfg.Temperature}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// FindResources implements Provider.
func (p *GeminiProvider) FindResources(ctx context.Context, query string) ([]Resource, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(Prompt(query)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   resourceListSchema,
		Temperature:      genai.Ptr(p.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return Decode(resp.Text())
}

var resourceListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "A concise, descriptive title for the resource.",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A detailed summary of the resource, typically 2-4 sentences long.",
			},
			"category": {
				Type:        genai.TypeString,
				Description: "A relevant category for the resource, e.g., 'Academics', 'Sports', 'Extracurricular'.",
			},
		},
		Required: []string{"title", "summary", "category"},
	},
}
