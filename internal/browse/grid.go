package browse

import (
	"fmt"

	"github.com/marco/movieDeck/internal/catalog"
	"github.com/marco/movieDeck/internal/pagination"
	"github.com/marco/movieDeck/internal/viewstate"
)

// gridController is the part of a page-keyed controller a Grid drives.
type gridController interface {
	State() viewstate.State[GridPage]
	Refresh()
	Close()
}

// Grid is a paginated listing: a Pager plus a controller keyed by page.
// Each page change rebinds the controller, so a slow response for an
// earlier page never replaces a later one.
type Grid struct {
	kind     catalog.Kind
	category string // category slug; empty for a genre grid
	genreID  int
	pager    *pagination.Pager
	ctrl     gridController
	bind     func(page int)
}

// NewGrid creates a grid for a category. Call Load to fetch the first page.
func (s *Service) NewGrid(kind catalog.Kind, category string, opts Options, cfg viewstate.Config[GridPage]) (*Grid, error) {
	cat, err := catalog.LookupCategory(kind, category)
	if err != nil {
		return nil, err
	}

	g := &Grid{kind: kind, category: cat.Slug, pager: pagination.NewPager()}
	ctrl := s.CategoryController(opts, g.trackTotal(cfg))
	g.ctrl = ctrl
	g.bind = func(page int) {
		ctrl.Bind(PageKey{Kind: kind, Category: cat.Slug, Page: page})
	}
	return g, nil
}

// NewGenreGrid creates a discover grid for one genre.
func (s *Service) NewGenreGrid(kind catalog.Kind, genreID int, opts Options, cfg viewstate.Config[GridPage]) (*Grid, error) {
	if _, err := catalog.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if genreID <= 0 {
		return nil, fmt.Errorf("invalid genre id %d", genreID)
	}

	g := &Grid{kind: kind, genreID: genreID, pager: pagination.NewPager()}
	ctrl := s.GenreController(opts, g.trackTotal(cfg))
	g.ctrl = ctrl
	g.bind = func(page int) {
		ctrl.Bind(GenreKey{Kind: kind, GenreID: genreID, Page: page})
	}
	return g, nil
}

// trackTotal feeds successful page totals into the pager before the
// caller's own callback runs.
func (g *Grid) trackTotal(cfg viewstate.Config[GridPage]) viewstate.Config[GridPage] {
	userOnChange := cfg.OnChange
	cfg.OnChange = func(st viewstate.State[GridPage]) {
		if st.Status == viewstate.StatusSuccess {
			g.pager.SetTotal(st.Data.TotalPages)
		}
		if userOnChange != nil {
			userOnChange(st)
		}
	}
	return cfg
}

// Load binds the grid to its current page.
func (g *Grid) Load() {
	g.bind(g.pager.Current())
}

// GoTo moves to page and loads it. Out-of-range pages are rejected.
func (g *Grid) GoTo(page int) error {
	if err := g.pager.Go(page); err != nil {
		return err
	}
	g.Load()
	return nil
}

// Next moves one page forward.
func (g *Grid) Next() error { return g.GoTo(g.pager.Current() + 1) }

// Prev moves one page back.
func (g *Grid) Prev() error { return g.GoTo(g.pager.Current() - 1) }

// Retry reloads the current page after a failure.
func (g *Grid) Retry() { g.ctrl.Refresh() }

// State returns the grid's view state.
func (g *Grid) State() viewstate.State[GridPage] { return g.ctrl.State() }

// Window returns the page controls for the current page.
func (g *Grid) Window() pagination.Window { return g.pager.Window() }

// Page returns the current page number.
func (g *Grid) Page() int { return g.pager.Current() }

// Category returns the category slug, or "" for a genre grid.
func (g *Grid) Category() string { return g.category }

// GenreID returns the genre of a genre grid, or 0.
func (g *Grid) GenreID() int { return g.genreID }

// Kind returns the grid's kind.
func (g *Grid) Kind() catalog.Kind { return g.kind }

// Close cancels any in-flight request.
func (g *Grid) Close() { g.ctrl.Close() }
