// Package resources looks up information about the school's resources with a
// generative model and keeps the state shown by the front end.
package resources

import (
	"context"
	"errors"
)

// Resource is one result of a resource query.
type Resource struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// DefaultCategory replaces a blank category.
const DefaultCategory = "General"

// Categories are the quick-search suggestions offered to the user.
var Categories = []string{"Academics", "Sports", "Clubs & Societies", "Alumni", "Facilities"}

// ErrNoProvider is returned when searching without a configured model.
var ErrNoProvider = errors.New("resources: no model provider configured")

// Provider answers a free-text resource query.
type Provider interface {
	// Name identifies the provider in logs, e.g. "gemini".
	Name() string
	FindResources(ctx context.Context, query string) ([]Resource, error)
}
