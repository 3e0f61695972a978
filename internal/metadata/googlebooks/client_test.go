package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumesFixture = `{
	"totalItems": 3,
	"items": [
		{
			"id": "vol-1",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert", "Someone Else"],
				"publisher": "Chilton Books",
				"publishedDate": "1965-08-01",
				"description": "<p>A <b>desert</b> planet.</p>",
				"pageCount": 412,
				"categories": ["Science Fiction"],
				"language": "en",
				"imageLinks": {
					"smallThumbnail": "http://books.google.com/small.jpg",
					"thumbnail": "http://books.google.com/thumb.jpg"
				},
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "0441013597"},
					{"type": "ISBN_13", "identifier": "9780441013593"}
				]
			}
		},
		{
			"id": "vol-2",
			"volumeInfo": {
				"authors": ["Ghost Writer"]
			}
		},
		{
			"id": "vol-3",
			"volumeInfo": {
				"title": "Untitled Draft"
			}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(nil)
	client.SetBaseURL(server.URL)
	t.Cleanup(client.Close)

	return client
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("maxResults"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(volumesFixture))
	})

	results, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)

	// vol-2 has no title and is dropped; vol-3 survives with empty fields.
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "Dune", first.Title)
	assert.Equal(t, "Frank Herbert", first.Author) // first author only
	assert.Equal(t, "Chilton Books", first.Publisher)
	assert.Equal(t, "1965-08-01", first.PublishedDate)
	assert.Equal(t, 412, first.Pages)
	assert.Equal(t, []string{"Science Fiction"}, first.Genres)
	assert.Equal(t, "English", first.Language)
	assert.Equal(t, "9780441013593", first.ISBN)
	assert.Equal(t, "https://books.google.com/thumb.jpg", first.CoverURL)

	// HTML description converted to markdown.
	assert.NotContains(t, first.Description, "<p>")
	assert.Contains(t, first.Description, "desert")

	second := results[1]
	assert.Equal(t, "Untitled Draft", second.Title)
	assert.Empty(t, second.Author)
	assert.Empty(t, second.CoverURL)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := New(nil)
	defer client.Close()

	_, err := client.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestSearch_NoItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	})

	results, err := client.Search(context.Background(), "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "dune")
	assert.ErrorIs(t, err, ErrServer)
}

func TestSearch_RateLimitedUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), "dune")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCleanDescription_PlainTextUnchanged(t *testing.T) {
	s := "Just a plain description with < 5 symbols."
	assert.Equal(t, s, cleanDescription(s))
	assert.Equal(t, "", cleanDescription(""))
}
