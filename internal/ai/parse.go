package ai

import (
	"encoding/json/v2"
	"regexp"
	"strings"
)

// maxSuggestions caps how many entries a structured search returns.
const maxSuggestions = 3

// Suggestion is one structured search result from the model.
type Suggestion struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description,omitempty"`
	Pages         int      `json:"pages,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Genres        []string `json:"genres,omitempty"`
}

// fencePattern matches a Markdown code fence wrapping the whole payload,
// with an optional language tag. Models sometimes fence JSON even when asked
// for a bare document.
var fencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripFences removes a wrapping Markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// parseSuggestions leniently decodes a model response into suggestions.
// Accepts a JSON array or a single object with a title (coerced to a
// one-element list). Entries missing a title or author are dropped, and at
// most maxSuggestions survive. Unparseable input yields an empty list rather
// than an error: a garbled model response reads as "no matches".
func parseSuggestions(raw string) []Suggestion {
	payload := stripFences(raw)
	if payload == "" {
		return nil
	}

	var list []Suggestion
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		var single Suggestion
		if err := json.Unmarshal([]byte(payload), &single); err != nil || single.Title == "" {
			return nil
		}
		list = []Suggestion{single}
	}

	results := make([]Suggestion, 0, maxSuggestions)
	for _, s := range list {
		if s.Title == "" || s.Author == "" {
			continue
		}
		results = append(results, s)
		if len(results) == maxSuggestions {
			break
		}
	}
	return results
}
