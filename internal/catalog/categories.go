package catalog

import "fmt"

// Category is a browsable collection ("popular", "now-playing", ...).
// Slug is the user-facing identifier, Endpoint the API path segment.
type Category struct {
	Slug     string `json:"slug"`
	Endpoint string `json:"endpoint"`
	Title    string `json:"title"`
}

var categories = map[Kind][]Category{
	KindMovie: {
		{Slug: "popular", Endpoint: "popular", Title: "Popular"},
		{Slug: "now-playing", Endpoint: "now_playing", Title: "Now Playing"},
		{Slug: "upcoming", Endpoint: "upcoming", Title: "Upcoming"},
		{Slug: "top-rated", Endpoint: "top_rated", Title: "Top Rated"},
	},
	KindTV: {
		{Slug: "popular", Endpoint: "popular", Title: "Popular"},
		{Slug: "airing-today", Endpoint: "airing_today", Title: "Airing Today"},
		{Slug: "on-the-air", Endpoint: "on_the_air", Title: "On The Air"},
		{Slug: "top-rated", Endpoint: "top_rated", Title: "Top Rated"},
	},
}

// Categories lists the categories available for a kind
func Categories(kind Kind) []Category {
	return append([]Category(nil), categories[kind]...)
}

// LookupCategory resolves a slug (or the raw endpoint name) for a kind
func LookupCategory(kind Kind, slug string) (Category, error) {
	for _, c := range categories[kind] {
		if c.Slug == slug || c.Endpoint == slug {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %s/%s", ErrUnknownCategory, kind, slug)
}

// CuratedGenres is the genre picker shown on the discover view.
var CuratedGenres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 36, Name: "History"},
	{ID: 14, Name: "Fantasy"},
	{ID: 878, Name: "Science Fiction"},
}
