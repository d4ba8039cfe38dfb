// Package browse holds the typed loaders behind every view and the
// constructors that bind them to view-state controllers.
package browse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marco/movieDeck/internal/catalog"
	"github.com/marco/movieDeck/internal/pagination"
	"github.com/marco/movieDeck/internal/view"
	"github.com/marco/movieDeck/internal/viewstate"
)

// MaxPages is the deepest page the upstream serves for any listing.
const MaxPages = 500

// Catalog is the subset of *catalog.Client the loaders need.
type Catalog interface {
	Details(ctx context.Context, kind catalog.Kind, id int) (*catalog.Details, error)
	Videos(ctx context.Context, kind catalog.Kind, id int) (*catalog.VideoList, error)
	Credits(ctx context.Context, kind catalog.Kind, id int) (*catalog.Credits, error)
	Recommendations(ctx context.Context, kind catalog.Kind, id int, page int) (*catalog.Page, error)
	Keywords(ctx context.Context, kind catalog.Kind, id int) (*catalog.Keywords, error)
	Collection(ctx context.Context, kind catalog.Kind, category string, page int) (*catalog.Page, error)
	DiscoverByGenre(ctx context.Context, kind catalog.Kind, genreID int, page int) (*catalog.Page, error)
	SearchMulti(ctx context.Context, query string, page int) (*catalog.Page, error)
	Trending(ctx context.Context, kind catalog.Kind, window string) (*catalog.Page, error)
	ImageURL(path string, size catalog.ImageSize) string
	Language() string
}

// ItemKey identifies a details page.
type ItemKey struct {
	Kind catalog.Kind
	ID   int
}

func (k ItemKey) String() string { return fmt.Sprintf("%s/%d", k.Kind, k.ID) }

// PageKey identifies one page of a category grid.
type PageKey struct {
	Kind     catalog.Kind
	Category string
	Page     int
}

func (k PageKey) String() string { return fmt.Sprintf("%s/%s?page=%d", k.Kind, k.Category, k.Page) }

// GenreKey identifies one page of a genre grid.
type GenreKey struct {
	Kind    catalog.Kind
	GenreID int
	Page    int
}

func (k GenreKey) String() string { return fmt.Sprintf("%s/genre/%d?page=%d", k.Kind, k.GenreID, k.Page) }

// GridPage is one page of a poster grid with its page controls.
type GridPage struct {
	Title      string            `json:"title"`
	Items      []view.Card       `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Window     pagination.Window `json:"window"`
}

// Service maps catalog responses into view models.
type Service struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewService creates a Service over c.
func NewService(c Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: c, logger: logger}
}

// Messages returns the strings for the catalog's current language.
func (s *Service) Messages() view.Messages {
	return view.MessagesFor(s.catalog.Language())
}

// Hero loads details and videos in parallel and picks the trailer.
func (s *Service) Hero(ctx context.Context, key ItemKey) (view.Hero, error) {
	details, videos, err := viewstate.Join(ctx,
		func(ctx context.Context) (*catalog.Details, error) { return s.catalog.Details(ctx, key.Kind, key.ID) },
		func(ctx context.Context) (*catalog.VideoList, error) { return s.catalog.Videos(ctx, key.Kind, key.ID) },
	)
	if err != nil {
		return view.Hero{}, fmt.Errorf("load hero %s: %w", key, err)
	}
	return view.MapHero(details, videos, key.Kind, s.catalog, s.Messages()), nil
}

// Credits loads cast and crew.
func (s *Service) Credits(ctx context.Context, key ItemKey) (view.Credits, error) {
	credits, err := s.catalog.Credits(ctx, key.Kind, key.ID)
	if err != nil {
		return view.Credits{}, fmt.Errorf("load credits %s: %w", key, err)
	}
	return view.MapCredits(credits, s.catalog), nil
}

// Metadata loads details and keywords in parallel; both must succeed.
func (s *Service) Metadata(ctx context.Context, key ItemKey) (view.Metadata, error) {
	details, keywords, err := viewstate.Join(ctx,
		func(ctx context.Context) (*catalog.Details, error) { return s.catalog.Details(ctx, key.Kind, key.ID) },
		func(ctx context.Context) (*catalog.Keywords, error) { return s.catalog.Keywords(ctx, key.Kind, key.ID) },
	)
	if err != nil {
		return view.Metadata{}, fmt.Errorf("load metadata %s: %w", key, err)
	}
	return view.MapMetadata(details, keywords, s.Messages()), nil
}

// Recommendations loads the first page of recommendations, capped.
func (s *Service) Recommendations(ctx context.Context, key ItemKey) ([]view.Card, error) {
	page, err := s.catalog.Recommendations(ctx, key.Kind, key.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("load recommendations %s: %w", key, err)
	}
	return view.Recommendations(page, key.Kind, s.catalog), nil
}

// Category loads one page of a category grid.
func (s *Service) Category(ctx context.Context, key PageKey) (GridPage, error) {
	cat, err := catalog.LookupCategory(key.Kind, key.Category)
	if err != nil {
		return GridPage{}, err
	}
	page, err := s.catalog.Collection(ctx, key.Kind, cat.Slug, key.Page)
	if err != nil {
		return GridPage{}, fmt.Errorf("load category %s: %w", key, err)
	}
	return s.gridPage(cat.Title, page, key.Kind, key.Page), nil
}

// Genre loads one page of a genre grid.
func (s *Service) Genre(ctx context.Context, key GenreKey) (GridPage, error) {
	page, err := s.catalog.DiscoverByGenre(ctx, key.Kind, key.GenreID, key.Page)
	if err != nil {
		return GridPage{}, fmt.Errorf("load genre %s: %w", key, err)
	}
	title := ""
	for _, g := range catalog.CuratedGenres {
		if g.ID == key.GenreID {
			title = g.Name
			break
		}
	}
	return s.gridPage(title, page, key.Kind, key.Page), nil
}

// Trending loads the hero carousel.
func (s *Service) Trending(ctx context.Context, kind catalog.Kind) ([]view.Card, error) {
	page, err := s.catalog.Trending(ctx, kind, "day")
	if err != nil {
		return nil, fmt.Errorf("load trending %s: %w", kind, err)
	}
	return view.TrendingHero(page, kind, s.catalog), nil
}

// Search runs a free-text search and keeps the displayable hits.
func (s *Service) Search(ctx context.Context, query string) ([]view.SearchHit, error) {
	page, err := s.catalog.SearchMulti(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return view.MapSearchHits(page.Results, s.catalog), nil
}

// Genres returns the curated genre list.
func (s *Service) Genres() []catalog.Genre {
	return catalog.CuratedGenres
}

// gridPage maps a listing page. The total is capped at MaxPages and the
// requested page is used for the window when the response omits it.
func (s *Service) gridPage(title string, page *catalog.Page, kind catalog.Kind, requested int) GridPage {
	current := page.Page
	if current < 1 {
		current = max(1, requested)
	}
	total := min(page.TotalPages, MaxPages)

	window, err := pagination.NewWindow(current, total)
	if err != nil {
		s.logger.Debug("page outside reported total",
			"page", current,
			"total_pages", total,
		)
		window = pagination.Window{Current: current, Total: total, Pages: []int{}}
	}

	return GridPage{
		Title:      title,
		Items:      view.Cards(view.MapItems(page.Results, kind, 0), s.catalog),
		Page:       current,
		TotalPages: total,
		Window:     window,
	}
}
