package domain

import "fmt"

// Gif is a single search result as displayed in the grid
type Gif struct {
	ID          string // Provider identifier, unique within a result list
	Title       string // Display title (may be empty)
	MediaURL    string // Display-sized rendition
	OriginalURL string // Full-size rendition
	PageURL     string // Provider page for sharing
	Width       int    // Width of the display rendition in pixels
	Height      int    // Height of the display rendition in pixels
}

// DisplayTitle returns the title, or a placeholder for untitled results
func (g Gif) DisplayTitle() string {
	if g.Title == "" {
		return "Untitled"
	}
	return g.Title
}

// Dimensions returns the rendition size as "WxH", or "" when unknown
func (g Gif) Dimensions() string {
	if g.Width <= 0 || g.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", g.Width, g.Height)
}

// BestURL returns the URL to open or copy, preferring the original rendition
func (g Gif) BestURL() string {
	if g.OriginalURL != "" {
		return g.OriginalURL
	}
	return g.MediaURL
}
