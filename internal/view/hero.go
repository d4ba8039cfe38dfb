package view

import (
	"github.com/marco/movieDeck/internal/catalog"
)

// Hero is the banner of a details page.
type Hero struct {
	Card
	Tagline   string   `json:"tagline"`
	Genres    []string `json:"genres"`
	Runtime   string   `json:"runtime"`
	VoteCount string   `json:"vote_count"`
	Videos    []Video  `json:"videos"`
	Trailer   *Video   `json:"trailer,omitempty"`
}

// MapHero combines details and the video listing into the banner.
func MapHero(d *catalog.Details, videos *catalog.VideoList, kind catalog.Kind, images ImageResolver, msgs Messages) Hero {
	if d == nil {
		d = &catalog.Details{}
	}
	item := MapItem(d.Item, kind)
	h := Hero{
		Card:      item.Card(images),
		Tagline:   d.Tagline,
		Genres:    []string{},
		Runtime:   FormatRuntime(runtimeMinutes(d), msgs),
		VoteCount: FormatCount(d.VoteCount),
		Videos:    MapVideos(videos),
	}
	for _, g := range d.Genres {
		h.Genres = append(h.Genres, g.Name)
	}
	if t, ok := SelectTrailer(h.Videos); ok {
		h.Trailer = &t
	}
	return h
}

// TrendingHero maps the first MaxHeroItems trending entries into cards.
func TrendingHero(page *catalog.Page, kind catalog.Kind, images ImageResolver) []Card {
	if page == nil {
		return []Card{}
	}
	return Cards(MapItems(page.Results, kind, MaxHeroItems), images)
}

// Recommendations maps the first MaxRecommendations entries into cards.
func Recommendations(page *catalog.Page, kind catalog.Kind, images ImageResolver) []Card {
	if page == nil {
		return []Card{}
	}
	return Cards(MapItems(page.Results, kind, MaxRecommendations), images)
}
