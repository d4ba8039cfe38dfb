package view

import (
	"strings"

	"github.com/marco/movieDeck/internal/catalog"
)

// List caps applied by the mappers
const (
	MaxCast            = 10
	MaxRecommendations = 6
	MaxSearchResults   = 5
	MaxHeroItems       = 5
	MaxVideos          = 5
)

// ImageResolver composes image URLs; *catalog.Client implements it.
type ImageResolver interface {
	ImageURL(path string, size catalog.ImageSize) string
}

// Item is a movie or show as held by a view.
type Item struct {
	ID           int
	Kind         catalog.Kind
	Title        string
	PosterPath   string
	BackdropPath string
	VoteAverage  *float64
	ReleaseDate  string
	Overview     string
}

// Card is the display projection of an Item.
type Card struct {
	ID          int          `json:"id"`
	Kind        catalog.Kind `json:"kind"`
	Title       string       `json:"title"`
	Overview    string       `json:"overview"`
	RatingText  string       `json:"rating"`
	YearText    string       `json:"year"`
	PosterURL   string       `json:"poster_url"`
	BackdropURL string       `json:"backdrop_url"`
}

// displayTitle prefers a movie title over a show name
func displayTitle(raw catalog.Item) string {
	if t := strings.TrimSpace(raw.Title); t != "" {
		return t
	}
	return strings.TrimSpace(raw.Name)
}

// MapItem converts a raw list entry. The kind comes from media_type when the
// response is mixed, otherwise from fallback.
func MapItem(raw catalog.Item, fallback catalog.Kind) Item {
	kind := fallback
	if k, err := catalog.ParseKind(raw.MediaType); err == nil {
		kind = k
	}
	date := raw.ReleaseDate
	if date == "" {
		date = raw.FirstAirDate
	}
	return Item{
		ID:           raw.ID,
		Kind:         kind,
		Title:        displayTitle(raw),
		PosterPath:   raw.PosterPath,
		BackdropPath: raw.BackdropPath,
		VoteAverage:  raw.VoteAverage,
		ReleaseDate:  date,
		Overview:     raw.Overview,
	}
}

// MapItems maps up to limit entries (limit <= 0 keeps all). Never returns nil.
func MapItems(raws []catalog.Item, fallback catalog.Kind, limit int) []Item {
	if limit > 0 && len(raws) > limit {
		raws = raws[:limit]
	}
	items := make([]Item, 0, len(raws))
	for _, raw := range raws {
		items = append(items, MapItem(raw, fallback))
	}
	return items
}

// Card renders the item for display.
func (i Item) Card(images ImageResolver) Card {
	return Card{
		ID:          i.ID,
		Kind:        i.Kind,
		Title:       i.Title,
		Overview:    i.Overview,
		RatingText:  FormatRating(i.VoteAverage),
		YearText:    ReleaseYear(i.ReleaseDate),
		PosterURL:   images.ImageURL(i.PosterPath, catalog.SizePoster),
		BackdropURL: images.ImageURL(i.BackdropPath, catalog.SizeOriginal),
	}
}

// Cards renders a list of items.
func Cards(items []Item, images ImageResolver) []Card {
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, it.Card(images))
	}
	return cards
}

// Normalize re-applies the display rules to an already rendered card.
// For any card produced by Item.Card, Normalize returns it unchanged.
func (c Card) Normalize() Card {
	c.Title = strings.TrimSpace(c.Title)
	c.RatingText = NormalizeRatingText(c.RatingText)
	c.YearText = NormalizeYearText(c.YearText)
	if c.PosterURL == "" {
		c.PosterURL = catalog.PlaceholderImage
	}
	if c.BackdropURL == "" {
		c.BackdropURL = catalog.PlaceholderImage
	}
	return c
}
