package tui

import (
	"fmt"
	"strings"

	"github.com/marco/movieDeck/internal/browse"
	"github.com/marco/movieDeck/internal/view"
	"github.com/marco/movieDeck/internal/viewstate"
)

// details is the pane for one selected title. Its four controllers are
// bound to the same item key and rebound whenever the selection moves.
type details struct {
	open     bool
	hero     *viewstate.Controller[browse.ItemKey, view.Hero]
	credits  *viewstate.Controller[browse.ItemKey, view.Credits]
	metadata *viewstate.Controller[browse.ItemKey, view.Metadata]
	recs     *viewstate.Controller[browse.ItemKey, []view.Card]
}

func newDetails(svc *browse.Service, opts browse.Options, m *Model) *details {
	onChange := func() { m.signal() }
	return &details{
		hero: svc.HeroController(opts, viewstate.Config[view.Hero]{
			Logger:   m.logger,
			OnChange: func(viewstate.State[view.Hero]) { onChange() },
		}),
		credits: svc.CreditsController(opts, viewstate.Config[view.Credits]{
			Logger:   m.logger,
			OnChange: func(viewstate.State[view.Credits]) { onChange() },
		}),
		metadata: svc.MetadataController(opts, viewstate.Config[view.Metadata]{
			Logger:   m.logger,
			OnChange: func(viewstate.State[view.Metadata]) { onChange() },
		}),
		recs: svc.RecommendationsController(opts, viewstate.Config[[]view.Card]{
			Logger:   m.logger,
			OnChange: func(viewstate.State[[]view.Card]) { onChange() },
		}),
	}
}

// show opens the pane on key. Binding the key already shown is a no-op.
func (d *details) show(key browse.ItemKey) {
	d.open = true
	d.hero.Bind(key)
	d.credits.Bind(key)
	d.metadata.Bind(key)
	d.recs.Bind(key)
}

func (d *details) hide() { d.open = false }

// retry refreshes only the panels that failed.
func (d *details) retry() {
	if d.hero.State().Status == viewstate.StatusFailed {
		d.hero.Refresh()
	}
	if d.credits.State().Status == viewstate.StatusFailed {
		d.credits.Refresh()
	}
	if d.metadata.State().Status == viewstate.StatusFailed {
		d.metadata.Refresh()
	}
	if d.recs.State().Status == viewstate.StatusFailed {
		d.recs.Refresh()
	}
}

func (d *details) close() {
	d.hero.Close()
	d.credits.Close()
	d.metadata.Close()
	d.recs.Close()
}

// renderSection draws one panel in its loading, failed or loaded form.
// Data kept from the previous selection is not shown while loading.
func renderSection[T any](title, loading string, st viewstate.State[T], body func(T) string) string {
	head := sectionStyle.Render(title)
	switch st.Status {
	case viewstate.StatusIdle:
		return ""
	case viewstate.StatusLoading:
		return head + "\n" + loading
	case viewstate.StatusFailed:
		return head + "\n" + errorStyle.Render(st.Error) + dimStyle.Render("  (r to retry)")
	}
	return head + "\n" + body(st.Data)
}

func (m *Model) renderDetails() string {
	d := m.details
	msgs := m.svc.Messages()
	loading := m.loadingLine()

	sections := []string{
		renderSection("Title", loading, d.hero.State(), renderHero),
		renderSection("Details", loading, d.metadata.State(), renderMetadata),
		renderSection("Cast & Crew", loading, d.credits.State(), func(c view.Credits) string {
			return renderCredits(c, msgs)
		}),
		renderSection("More like this", loading, d.recs.State(), func(cards []view.Card) string {
			if len(cards) == 0 {
				return dimStyle.Render(msgs.NoRecommendations)
			}
			titles := make([]string, 0, len(cards))
			for _, c := range cards {
				titles = append(titles, c.Title)
			}
			return strings.Join(titles, " • ")
		}),
	}
	var parts []string
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return paneStyle.Render(strings.Join(parts, "\n\n"))
}

func renderHero(h view.Hero) string {
	lines := []string{fmt.Sprintf("%s %s %s  %s",
		cardTitleStyle.Render(h.Title),
		dimStyle.Render("("+h.YearText+")"),
		ratingStyle.Render("★ "+h.RatingText),
		dimStyle.Render(h.Runtime+" • "+h.VoteCount+" votes"),
	)}
	if h.Tagline != "" {
		lines = append(lines, dimStyle.Render(h.Tagline))
	}
	if len(h.Genres) > 0 {
		lines = append(lines, strings.Join(h.Genres, ", "))
	}
	if h.Overview != "" {
		lines = append(lines, h.Overview)
	}
	if h.Trailer != nil {
		lines = append(lines, "▶ "+h.Trailer.Name+" "+dimStyle.Render(h.Trailer.URL))
	}
	return strings.Join(lines, "\n")
}

func renderMetadata(md view.Metadata) string {
	lines := []string{
		fmt.Sprintf("Status: %s  Released: %s  Runtime: %s", md.Status, md.ReleaseDate, md.Runtime),
		fmt.Sprintf("Budget: %s  Revenue: %s", md.Budget, md.Revenue),
	}
	if len(md.Keywords) > 0 {
		lines = append(lines, dimStyle.Render(strings.Join(md.Keywords, ", ")))
	}
	return strings.Join(lines, "\n")
}

func renderCredits(c view.Credits, msgs view.Messages) string {
	if len(c.Cast) == 0 && len(c.Crew) == 0 {
		return dimStyle.Render(msgs.NoData)
	}
	var lines []string
	for _, p := range c.Cast {
		line := p.Name
		if p.Character != "" {
			line += dimStyle.Render(" as " + p.Character)
		}
		lines = append(lines, line)
	}
	for _, p := range c.Crew {
		lines = append(lines, dimStyle.Render(p.Job+": ")+p.Name)
	}
	return strings.Join(lines, "\n")
}
