package giphy

import (
	"strconv"

	"github.com/mmcdole/gifgrid/internal/domain"
)

// MapSearchPage converts a search response to a domain search page
func MapSearchPage(resp *SearchResponse) *domain.SearchPage {
	items := make([]domain.Gif, 0, len(resp.Data))
	for _, obj := range resp.Data {
		gif, ok := mapGIF(obj)
		if !ok {
			continue
		}
		items = append(items, gif)
	}
	return &domain.SearchPage{
		Items:      items,
		TotalCount: resp.Pagination.TotalCount,
		Count:      resp.Pagination.Count,
		Offset:     resp.Pagination.Offset,
	}
}

// mapGIF converts a single result record. Records without an ID or any
// usable rendition are dropped.
func mapGIF(obj GIFObject) (domain.Gif, bool) {
	if obj.ID == "" {
		return domain.Gif{}, false
	}

	display := displayRendition(obj.Images)
	if display == nil {
		return domain.Gif{}, false
	}

	gif := domain.Gif{
		ID:       obj.ID,
		Title:    obj.Title,
		MediaURL: display.URL,
		PageURL:  obj.URL,
		Width:    atoi(display.Width),
		Height:   atoi(display.Height),
	}
	if obj.Images.Original != nil {
		gif.OriginalURL = obj.Images.Original.URL
	}
	return gif, true
}

// displayRendition picks the grid-sized rendition, falling back to larger ones
func displayRendition(images Images) *Rendition {
	candidates := []*Rendition{
		images.FixedWidth,
		images.FixedHeight,
		images.FixedWidthSmall,
		images.Downsized,
		images.DownsizedMedium,
		images.Original,
	}
	for _, r := range candidates {
		if r != nil && r.URL != "" {
			return r
		}
	}
	return nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
