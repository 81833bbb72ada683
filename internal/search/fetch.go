package search

import (
	"context"
	"time"

	"github.com/mmcdole/gifgrid/internal/domain"
)

// Fetch executes req against client and packages the outcome for Apply.
// A positive timeout bounds the request; zero leaves it to the transport.
func Fetch(ctx context.Context, client domain.SearchClient, req Request, timeout time.Duration) Response {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	page, err := client.Search(ctx, req.Query())
	if err != nil {
		return Response{Request: req, Err: err}
	}
	return Response{Request: req, Page: page}
}
