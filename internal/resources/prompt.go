package resources

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

var promptTemplate = template.Must(template.New("prompt").Parse(
	`The user's original query, possibly in Sinhala, is "R/EMB/ROYAL COLLEGE සම්පත් ප්‍රමාණය", which translates to "Royal College Resource Quantity". Interpret this and any follow-up queries broadly as a request for information about resources available at Royal College, Colombo, Sri Lanka.

Based on the specific user query: "{{.Query}}", find and summarize relevant resources. Provide a list of {{.Min}} to {{.Max}} diverse and informative resources.

Return the response as a JSON array of objects, each with the string fields "title", "summary" and "category". Do not return markdown or any text outside of the JSON array.`))

// Prompt renders the model prompt for query.
func Prompt(query string) string {
	var buf bytes.Buffer
	// The template only interpolates strings and ints; Execute cannot fail.
	_ = promptTemplate.Execute(&buf, struct {
		Query    string
		Min, Max int
	}{Query: query, Min: 5, Max: 8})
	return buf.String()
}

var errNotArray = errors.New("model did not return a JSON array")

// Decode parses a model payload into resources. Entries without a title are
// dropped and a blank category becomes DefaultCategory.
//
// Postcondition: Returns an error unless payload is a JSON array of objects.
func Decode(payload string) ([]Resource, error) {
	payload = stripFence(strings.TrimSpace(payload))
	if !strings.HasPrefix(payload, "[") {
		return nil, errNotArray
	}
	var raw []Resource
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decoding resources: %w", err)
	}
	out := make([]Resource, 0, len(raw))
	for _, r := range raw {
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" {
			continue
		}
		r.Summary = strings.TrimSpace(r.Summary)
		r.Category = strings.TrimSpace(r.Category)
		if r.Category == "" {
			r.Category = DefaultCategory
		}
		out = append(out, r)
	}
	return out, nil
}

// stripFence removes a surrounding ```json ... ``` block.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
