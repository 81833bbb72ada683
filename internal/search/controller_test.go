package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageSize = 12

func newTestController() *Controller {
	return NewController(testPageSize, PageStrategy{PageSize: testPageSize}, nil)
}

// gifs builds n results with IDs prefix-<offset+i>
func gifs(prefix string, offset, n int) []domain.Gif {
	out := make([]domain.Gif, n)
	for i := range out {
		id := fmt.Sprintf("%s-%d", prefix, offset+i)
		out[i] = domain.Gif{ID: id, Title: id, MediaURL: "https://media.example/" + id + ".gif"}
	}
	return out
}

func success(req Request, items []domain.Gif, total int) Response {
	return Response{
		Request: req,
		Page:    &domain.SearchPage{Items: items, TotalCount: total, Count: len(items), Offset: req.Offset},
	}
}

func ids(items []domain.Gif) []string {
	out := make([]string, len(items))
	for i, g := range items {
		out[i] = g.ID
	}
	return out
}

func TestController_BlankTermClearsSynchronously(t *testing.T) {
	c := newTestController()

	require.True(t, c.OnTermChange("cat"))
	req, ok := c.Commit("cat")
	require.True(t, ok)
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 100)))
	require.NotEmpty(t, c.State().Items)

	for _, blank := range []string{"", "   ", "\t\n"} {
		assert.False(t, c.OnTermChange(blank), "blank term %q must not schedule a search", blank)

		s := c.State()
		assert.Empty(t, s.Items)
		assert.False(t, s.HasMore)
		assert.False(t, s.Loading)
		assert.Empty(t, s.Err)
		assert.Equal(t, blank, s.Term)
	}

	_, ok = c.Commit("   ")
	assert.False(t, ok)
}

func TestController_CommitRequiresCurrentTerm(t *testing.T) {
	c := newTestController()

	c.OnTermChange("ca")
	c.OnTermChange("cat")

	_, ok := c.Commit("ca")
	assert.False(t, ok, "a superseded term must not be committed")

	req, ok := c.Commit("cat")
	require.True(t, ok)
	assert.Equal(t, "cat", req.Term)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 0, req.Offset)
	assert.Equal(t, testPageSize, req.Limit)
	assert.True(t, c.Loading())
}

func TestController_CommitTrimsTerm(t *testing.T) {
	c := newTestController()
	c.OnTermChange("  cat ")

	req, ok := c.Commit("  cat ")
	require.True(t, ok)
	assert.Equal(t, "cat", req.Term)
}

func TestController_PaginatesUntilTotalReached(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")

	req, ok := c.Commit("cat")
	require.True(t, ok)
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 30)))
	assert.True(t, c.HasMore())

	req, ok = c.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 12, req.Offset)
	require.True(t, c.Apply(success(req, gifs("cat", 12, 12), 30)))
	assert.True(t, c.HasMore())

	req, ok = c.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 24, req.Offset)
	require.True(t, c.Apply(success(req, gifs("cat", 24, 6), 30)))

	s := c.State()
	assert.False(t, s.HasMore, "24 + 12 >= 30")
	assert.Len(t, s.Items, 30)
	assert.Equal(t, "cat-0", s.Items[0].ID)
	assert.Equal(t, "cat-29", s.Items[29].ID)
	assert.Equal(t, Cursor{Page: 3, Offset: 24}, s.Cursor)

	_, ok = c.LoadMore()
	assert.False(t, ok)
}

func TestController_SinglePageHasNoMore(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")

	req, _ := c.Commit("cat")
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 12)))

	assert.False(t, c.HasMore())
	_, ok := c.LoadMore()
	assert.False(t, ok)
}

func TestController_LoadMoreIgnoredWhileLoading(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")

	req, _ := c.Commit("cat")
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 100)))

	_, ok := c.LoadMore()
	require.True(t, ok)

	_, ok = c.LoadMore()
	assert.False(t, ok, "only one load more may be outstanding")
}

func TestController_FailurePreservesList(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")

	req, _ := c.Commit("cat")
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 100)))
	before := c.State().Items

	req, ok := c.LoadMore()
	require.True(t, ok)
	require.True(t, c.Apply(Response{Request: req, Err: fmt.Errorf("%w: boom", domain.ErrSearchFailed)}))

	s := c.State()
	assert.Equal(t, before, s.Items)
	assert.False(t, s.Loading)
	assert.Equal(t, ErrorMessage, s.Err)
	assert.True(t, s.HasMore, "a failed load more can be retried")

	// The next request clears the error
	_, ok = c.LoadMore()
	require.True(t, ok)
	assert.Empty(t, c.State().Err)
}

func TestController_FirstPageFailureKeepsPreviousResults(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")
	req, _ := c.Commit("cat")
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 100)))

	c.OnTermChange("dog")
	req, _ = c.Commit("dog")
	require.True(t, c.Apply(Response{Request: req, Err: errors.New("offline")}))

	s := c.State()
	assert.Equal(t, "cat", s.Committed)
	assert.Len(t, s.Items, 12)
	assert.Equal(t, ErrorMessage, s.Err)

	// The list belongs to "cat" while the input says "dog"
	_, ok := c.LoadMore()
	assert.False(t, ok)
	assert.False(t, s.CanLoadMore())

	// Retyping the committed term makes it continuable again
	c.OnTermChange(" cat ")
	req, ok = c.LoadMore()
	require.True(t, ok)
	assert.Equal(t, "cat", req.Term)
	assert.Equal(t, 2, req.Page)
}

func TestController_EmptyResultsAreNotAnError(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")
	req, _ := c.Commit("cat")
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 100)))

	c.OnTermChange("zzzzqqq")
	req, _ = c.Commit("zzzzqqq")
	require.True(t, c.Apply(success(req, nil, 0)))

	s := c.State()
	assert.Empty(t, s.Items)
	assert.False(t, s.HasMore)
	assert.Empty(t, s.Err)
	assert.False(t, s.Loading)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	c := newTestController()

	c.OnTermChange("cat")
	catReq, ok := c.Commit("cat")
	require.True(t, ok)

	c.OnTermChange("dog")
	dogReq, ok := c.Commit("dog")
	require.True(t, ok)
	assert.Greater(t, dogReq.Seq, catReq.Seq)

	// The stale cat response arrives after dog was committed
	assert.False(t, c.Apply(success(catReq, gifs("cat", 0, 12), 100)))
	s := c.State()
	assert.Empty(t, s.Items)
	assert.True(t, s.Loading, "dog is still outstanding")

	require.True(t, c.Apply(success(dogReq, gifs("dog", 0, 12), 100)))
	s = c.State()
	assert.Equal(t, "dog", s.Committed)
	for _, g := range s.Items {
		assert.Contains(t, g.ID, "dog")
	}

	// A late cat arrival after dog resolved is still ignored
	assert.False(t, c.Apply(success(catReq, gifs("cat", 0, 12), 100)))
	assert.Equal(t, "dog", c.State().Committed)
}

func TestController_ResponseAfterClearIsDiscarded(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")
	req, _ := c.Commit("cat")

	c.OnTermChange("")

	assert.False(t, c.Apply(success(req, gifs("cat", 0, 12), 100)))
	assert.Empty(t, c.State().Items)
	assert.False(t, c.Loading())
}

func TestController_DuplicateIDsReplaceInPlace(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")

	req, _ := c.Commit("cat")
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 100)))

	// The provider shifted by one: page 2 repeats the last item of page 1
	overlap := gifs("cat", 11, 12)
	overlap[0].Title = "updated"

	req, _ = c.LoadMore()
	require.True(t, c.Apply(success(req, overlap, 100)))

	s := c.State()
	assert.Len(t, s.Items, 23)
	assert.Equal(t, "cat-11", s.Items[11].ID)
	assert.Equal(t, "updated", s.Items[11].Title)
	assert.Equal(t, "cat-22", s.Items[22].ID)

	seen := make(map[string]bool)
	for _, id := range ids(s.Items) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestController_HasMoreUsesRequestedPageSize(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")

	// The provider returns fewer items than requested; hasMore still compares
	// against offset + requested page size
	req, _ := c.Commit("cat")
	require.True(t, c.Apply(success(req, gifs("cat", 0, 5), 13)))
	assert.True(t, c.HasMore())

	req, _ = c.LoadMore()
	assert.Equal(t, 12, req.Offset)
	require.True(t, c.Apply(success(req, gifs("cat", 5, 1), 13)))
	assert.False(t, c.HasMore())
}

func TestController_Restore(t *testing.T) {
	c := newTestController()

	req, ok := c.Restore("cat", 3)
	require.True(t, ok)
	assert.Equal(t, "cat", c.State().Term)
	assert.Equal(t, Cursor{Page: 3, Offset: 24}, req.Cursor)

	require.True(t, c.Apply(success(req, gifs("cat", 24, 12), 100)))
	s := c.State()
	assert.Len(t, s.Items, 12)
	assert.Equal(t, 3, s.Cursor.Page)
	assert.True(t, s.HasMore)

	_, ok = c.Restore("  ", 2)
	assert.False(t, ok)
	assert.Empty(t, c.State().Items)

	// A huge page from a link still yields a valid window
	req, ok = c.Restore("cat", 900000000000000000)
	require.True(t, ok)
	assert.GreaterOrEqual(t, req.Offset, 0)
	assert.Equal(t, (req.Page-1)*testPageSize, req.Offset)
}

func TestController_OffsetStrategy(t *testing.T) {
	c := NewController(testPageSize, OffsetStrategy{PageSize: testPageSize}, nil)
	c.OnTermChange("cat")

	req, _ := c.Commit("cat")
	assert.Equal(t, Cursor{Page: 1, Offset: 0}, req.Cursor)
	require.True(t, c.Apply(success(req, gifs("cat", 0, 12), 30)))

	req, _ = c.LoadMore()
	assert.Equal(t, Cursor{Page: 2, Offset: 12}, req.Cursor)
	require.True(t, c.Apply(success(req, gifs("cat", 12, 12), 30)))

	req, _ = c.LoadMore()
	assert.Equal(t, Cursor{Page: 3, Offset: 24}, req.Cursor)
	require.True(t, c.Apply(success(req, gifs("cat", 24, 6), 30)))
	assert.False(t, c.HasMore())
}

type stubClient struct {
	page  *domain.SearchPage
	err   error
	query domain.SearchQuery
}

func (s *stubClient) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchPage, error) {
	s.query = q
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline")
	}
	return s.page, s.err
}

func TestFetch(t *testing.T) {
	c := newTestController()
	c.OnTermChange("cat")
	req, _ := c.Commit("cat")

	client := &stubClient{page: &domain.SearchPage{Items: gifs("cat", 0, 12), TotalCount: 40}}
	resp := Fetch(context.Background(), client, req, 5*time.Second)

	require.NoError(t, resp.Err)
	assert.Equal(t, domain.SearchQuery{Term: "cat", Limit: 12, Offset: 0}, client.query)
	assert.Equal(t, req, resp.Request)
	require.True(t, c.Apply(resp))
	assert.True(t, c.HasMore())

	client.err = domain.ErrSearchFailed
	req, _ = c.LoadMore()
	resp = Fetch(context.Background(), client, req, 5*time.Second)
	assert.ErrorIs(t, resp.Err, domain.ErrSearchFailed)
	assert.Nil(t, resp.Page)
}
