package view

import (
	"github.com/marco/movieDeck/internal/catalog"
)

// SearchHit is one entry of the search dropdown.
type SearchHit struct {
	ID         int          `json:"id"`
	Kind       catalog.Kind `json:"kind"`
	Title      string       `json:"title"`
	YearText   string       `json:"year"`
	RatingText string       `json:"rating"`
	PosterURL  string       `json:"poster_url"`
}

// MapSearchHits keeps movies and shows with a usable title, at most
// MaxSearchResults of them. People and untitled entries are dropped.
func MapSearchHits(raws []catalog.Item, images ImageResolver) []SearchHit {
	hits := []SearchHit{}
	for _, raw := range raws {
		if len(hits) == MaxSearchResults {
			break
		}
		kind, err := catalog.ParseKind(raw.MediaType)
		if err != nil {
			continue
		}
		title := displayTitle(raw)
		if title == "" {
			continue
		}
		date := raw.ReleaseDate
		if date == "" {
			date = raw.FirstAirDate
		}
		hits = append(hits, SearchHit{
			ID:         raw.ID,
			Kind:       kind,
			Title:      title,
			YearText:   ReleaseYear(date),
			RatingText: FormatRating(raw.VoteAverage),
			PosterURL:  images.ImageURL(raw.PosterPath, catalog.SizeThumb),
		})
	}
	return hits
}
