package urlsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSync_RoundTrip(t *testing.T) {
	cases := []struct {
		term string
		page int
	}{
		{"cat", 1},
		{"funny dogs", 3},
		{"a&b=c?d#e", 2},
		{"üñïçødé 🐱", 7},
		{"", 4},
	}

	for _, tc := range cases {
		s := New(NewMemoryLocation(""))
		s.Write(tc.term, tc.page)

		term, page := s.Read()
		assert.Equal(t, tc.term, term)
		assert.Equal(t, tc.page, page)
	}
}

func TestSync_WriteIsIdempotent(t *testing.T) {
	loc := NewMemoryLocation("")
	s := New(loc)

	s.Write("cat", 2)
	first := loc.Href()
	s.Write("cat", 2)
	s.Write("cat", 2)

	assert.Equal(t, first, loc.Href())
	assert.Equal(t, 1, loc.Replacements())
	assert.Equal(t, "gifgrid://search?page=2&q=cat", first)
}

func TestSync_WriteNormalizesPage(t *testing.T) {
	s := New(NewMemoryLocation(""))
	s.Write("cat", 0)

	_, page := s.Read()
	assert.Equal(t, 1, page)
}

func TestSync_ReadTolerant(t *testing.T) {
	cases := map[string]struct {
		href string
		term string
		page int
	}{
		"empty":            {"", "", 1},
		"no params":        {"gifgrid://search", "", 1},
		"missing page":     {"gifgrid://search?q=cat", "cat", 1},
		"non-numeric page": {"gifgrid://search?q=cat&page=two", "cat", 1},
		"zero page":        {"gifgrid://search?q=cat&page=0", "cat", 1},
		"negative page":    {"gifgrid://search?q=cat&page=-3", "cat", 1},
		"bare query":       {"q=dog&page=5", "dog", 5},
		"http link":        {"https://example.com/?q=owl&page=2", "owl", 2},
		"bad escape":       {"gifgrid://search?q=%zz&page=2", "", 2},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			term, page := New(NewMemoryLocation(tc.href)).Read()
			assert.Equal(t, tc.term, term)
			assert.Equal(t, tc.page, page)
		})
	}
}
