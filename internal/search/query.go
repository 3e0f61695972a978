package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// defaultLimit caps result counts when the caller passes none.
const defaultLimit = 20

// Hit is a single search match.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Author     string            `json:"author,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Result holds matches in score order.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Search runs a free-text query over the collection and returns matches in
// score order.
func (s *Index) Search(ctx context.Context, q string, limit int) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildQuery(q), limit, 0, false)
	searchRequest.Fields = []string{"id", "title", "author"}
	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.AddField("title")
	searchRequest.Highlight.AddField("author")

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  q,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["title"].(string); ok {
			h.Title = t
		}
		if a, ok := hit.Fields["author"].(string); ok {
			h.Author = a
		}
		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string, len(hit.Fragments))
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildQuery matches across title, author, notes, and genres, with the
// title boosted and fuzzy/prefix variants for typo tolerance and
// autocomplete.
func buildQuery(q string) query.Query {
	if q == "" {
		return bleve.NewMatchAllQuery()
	}

	var queries []query.Query

	titleMatch := bleve.NewMatchQuery(q)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	queries = append(queries, titleMatch)

	authorMatch := bleve.NewMatchQuery(q)
	authorMatch.SetField("author")
	authorMatch.SetBoost(2.0)
	queries = append(queries, authorMatch)

	notesMatch := bleve.NewMatchQuery(q)
	notesMatch.SetField("notes")
	queries = append(queries, notesMatch)

	genresMatch := bleve.NewMatchQuery(q)
	genresMatch.SetField("genres")
	queries = append(queries, genresMatch)

	fuzzyQuery := bleve.NewFuzzyQuery(q)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("title")
	fuzzyQuery.SetBoost(0.8)
	queries = append(queries, fuzzyQuery)

	if len(q) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
		prefixQuery.SetField("title")
		prefixQuery.SetBoost(0.5)
		queries = append(queries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(queries...)
}
