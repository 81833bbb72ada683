package giphy

// SearchResponse is the root object of a /v1/gifs/search response
type SearchResponse struct {
	Data       []GIFObject `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Meta       Meta        `json:"meta"`
}

// GIFObject is a single result record
type GIFObject struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Slug     string `json:"slug,omitempty"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Rating   string `json:"rating,omitempty"`
	Username string `json:"username,omitempty"`
	Images   Images `json:"images"`
}

// Images holds the renditions of a GIF. Giphy serves many more; only the
// ones the mapper considers are decoded.
type Images struct {
	FixedWidth      *Rendition `json:"fixed_width,omitempty"`
	FixedHeight     *Rendition `json:"fixed_height,omitempty"`
	FixedWidthSmall *Rendition `json:"fixed_width_small,omitempty"`
	Downsized       *Rendition `json:"downsized,omitempty"`
	DownsizedMedium *Rendition `json:"downsized_medium,omitempty"`
	Original        *Rendition `json:"original,omitempty"`
}

// Rendition is one size of a GIF. Giphy encodes dimensions as strings.
type Rendition struct {
	URL    string `json:"url"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
	Size   string `json:"size,omitempty"`
	MP4    string `json:"mp4,omitempty"`
	WebP   string `json:"webp,omitempty"`
}

// Pagination is the pagination summary of a response
type Pagination struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Offset     int `json:"offset"`
}

// Meta carries the provider status
type Meta struct {
	Status     int    `json:"status"`
	Msg        string `json:"msg"`
	ResponseID string `json:"response_id,omitempty"`
}
