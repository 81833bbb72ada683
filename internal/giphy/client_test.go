package giphy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", nil,
		WithBaseURL(server.URL),
		WithRating("pg"),
		WithLang("en"),
	)
	require.NoError(t, err)
	return client
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/gifs/search", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "funny cat", q.Get("q"))
		assert.Equal(t, "12", q.Get("limit"))
		assert.Equal(t, "24", q.Get("offset"))
		assert.Equal(t, "pg", q.Get("rating"))
		assert.Equal(t, "en", q.Get("lang"))

		resp := SearchResponse{
			Data: []GIFObject{
				{
					ID:    "abc",
					Title: "Cat GIF",
					URL:   "https://giphy.com/gifs/abc",
					Images: Images{
						FixedWidth: &Rendition{URL: "https://media.giphy.com/abc/200w.gif", Width: "200", Height: "113"},
						Original:   &Rendition{URL: "https://media.giphy.com/abc/giphy.gif", Width: "480", Height: "270"},
					},
				},
				{
					ID:     "def",
					Title:  "",
					Images: Images{Downsized: &Rendition{URL: "https://media.giphy.com/def/downsized.gif"}},
				},
			},
			Pagination: Pagination{TotalCount: 30, Count: 2, Offset: 24},
			Meta:       Meta{Status: 200, Msg: "OK"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	page, err := client.Search(context.Background(), domain.SearchQuery{Term: "funny cat", Limit: 12, Offset: 24})
	require.NoError(t, err)

	assert.Equal(t, 30, page.TotalCount)
	assert.Equal(t, 24, page.Offset)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "abc", first.ID)
	assert.Equal(t, "Cat GIF", first.Title)
	assert.Equal(t, "https://media.giphy.com/abc/200w.gif", first.MediaURL)
	assert.Equal(t, "https://media.giphy.com/abc/giphy.gif", first.OriginalURL)
	assert.Equal(t, "https://giphy.com/gifs/abc", first.PageURL)
	assert.Equal(t, 200, first.Width)
	assert.Equal(t, 113, first.Height)

	second := page.Items[1]
	assert.Equal(t, "https://media.giphy.com/def/downsized.gif", second.MediaURL)
	assert.Equal(t, "Untitled", second.DisplayTitle())
	assert.Equal(t, second.MediaURL, second.BestURL())
}

func TestClient_Search_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"meta":{"status":429,"msg":"rate limited"}}`))
	})

	page, err := client.Search(context.Background(), domain.SearchQuery{Term: "cat", Limit: 12})
	assert.Nil(t, page)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
}

func TestClient_Search_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [`))
	})

	_, err := client.Search(context.Background(), domain.SearchQuery{Term: "cat", Limit: 12})
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
}

func TestClient_Search_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := NewClient("test-key", nil, WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = client.Search(context.Background(), domain.SearchQuery{Term: "cat", Limit: 12})
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ", nil)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestMapSearchPage_DropsUnusableRecords(t *testing.T) {
	page := MapSearchPage(&SearchResponse{
		Data: []GIFObject{
			{ID: "", Images: Images{Original: &Rendition{URL: "x"}}},
			{ID: "no-images"},
			{ID: "ok", Images: Images{FixedHeight: &Rendition{URL: "y", Width: "nope"}}},
		},
		Pagination: Pagination{TotalCount: 3},
	})

	require.Len(t, page.Items, 1)
	assert.Equal(t, "ok", page.Items[0].ID)
	assert.Equal(t, 0, page.Items[0].Width)
	assert.Equal(t, 3, page.TotalCount)
}
