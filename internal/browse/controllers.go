package browse

import (
	"time"

	"github.com/marco/movieDeck/internal/catalog"
	"github.com/marco/movieDeck/internal/search"
	"github.com/marco/movieDeck/internal/view"
	"github.com/marco/movieDeck/internal/viewstate"
)

// Options apply to every controller built by the Service.
type Options struct {
	Timeout  time.Duration
	Debounce time.Duration
}

func withDefaults[T any](cfg viewstate.Config[T], name, message string, opts Options) viewstate.Config[T] {
	if cfg.Name == "" {
		cfg.Name = name
	}
	if cfg.ErrorMessage == "" {
		cfg.ErrorMessage = message
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = opts.Timeout
	}
	return cfg
}

// HeroController drives the details banner.
func (s *Service) HeroController(opts Options, cfg viewstate.Config[view.Hero]) *viewstate.Controller[ItemKey, view.Hero] {
	return viewstate.New(s.Hero, withDefaults(cfg, "hero", s.Messages().HeroFailed, opts))
}

// CreditsController drives the cast and crew panel.
func (s *Service) CreditsController(opts Options, cfg viewstate.Config[view.Credits]) *viewstate.Controller[ItemKey, view.Credits] {
	return viewstate.New(s.Credits, withDefaults(cfg, "credits", s.Messages().CreditsFailed, opts))
}

// MetadataController drives the metadata side panel.
func (s *Service) MetadataController(opts Options, cfg viewstate.Config[view.Metadata]) *viewstate.Controller[ItemKey, view.Metadata] {
	return viewstate.New(s.Metadata, withDefaults(cfg, "metadata", s.Messages().MetadataFailed, opts))
}

// RecommendationsController drives the recommendations strip.
func (s *Service) RecommendationsController(opts Options, cfg viewstate.Config[[]view.Card]) *viewstate.Controller[ItemKey, []view.Card] {
	return viewstate.New(s.Recommendations, withDefaults(cfg, "recommendations", s.Messages().RecommendationsFailed, opts))
}

// TrendingController drives the hero carousel.
func (s *Service) TrendingController(opts Options, cfg viewstate.Config[[]view.Card]) *viewstate.Controller[catalog.Kind, []view.Card] {
	return viewstate.New(s.Trending, withDefaults(cfg, "trending", s.Messages().GridFailed, opts))
}

// CategoryController drives a category grid.
func (s *Service) CategoryController(opts Options, cfg viewstate.Config[GridPage]) *viewstate.Controller[PageKey, GridPage] {
	return viewstate.New(s.Category, withDefaults(cfg, "grid", s.Messages().GridFailed, opts))
}

// GenreController drives a genre grid.
func (s *Service) GenreController(opts Options, cfg viewstate.Config[GridPage]) *viewstate.Controller[GenreKey, GridPage] {
	return viewstate.New(s.Genre, withDefaults(cfg, "genre", s.Messages().GridFailed, opts))
}

// SearchController drives the debounced search box.
func (s *Service) SearchController(opts Options, onChange func(search.Snapshot)) *search.QueryController {
	return search.NewQueryController(s.Search, search.Config{
		Debounce:     opts.Debounce,
		ErrorMessage: s.Messages().SearchFailed,
		Timeout:      opts.Timeout,
		Logger:       s.logger,
		OnChange:     onChange,
	})
}
