package view

import (
	"strings"

	"github.com/marco/movieDeck/internal/catalog"
)

// Metadata is the side panel of a details page.
type Metadata struct {
	Status           string   `json:"status"`
	ReleaseDate      string   `json:"release_date"`
	Runtime          string   `json:"runtime"`
	Budget           string   `json:"budget"`
	Revenue          string   `json:"revenue"`
	OriginalLanguage string   `json:"original_language"`
	SpokenLanguages  []string `json:"spoken_languages"`
	Keywords         []string `json:"keywords"`
	Homepage         string   `json:"homepage,omitempty"`
}

// runtimeMinutes prefers the movie runtime and falls back to the first
// episode runtime of a show.
func runtimeMinutes(d *catalog.Details) int {
	if d.Runtime > 0 {
		return d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 {
		return d.EpisodeRunTime[0]
	}
	return 0
}

// MapMetadata merges details and keywords into the metadata panel.
// Missing values render as the locale's "no data" text.
func MapMetadata(d *catalog.Details, kw *catalog.Keywords, msgs Messages) Metadata {
	m := Metadata{SpokenLanguages: []string{}, Keywords: []string{}}
	if d == nil {
		d = &catalog.Details{}
	}

	m.Status = orNoData(d.Status, msgs)
	date := d.ReleaseDate
	if date == "" {
		date = d.FirstAirDate
	}
	m.ReleaseDate = FormatDate(date)
	m.Runtime = FormatRuntime(runtimeMinutes(d), msgs)
	m.Budget = FormatMoney(d.Budget, msgs.NoData)
	m.Revenue = FormatMoney(d.Revenue, msgs.NoData)
	m.OriginalLanguage = orNoData(strings.ToUpper(d.OriginalLanguage), msgs)
	m.Homepage = d.Homepage

	for _, l := range d.SpokenLanguages {
		name := l.EnglishName
		if name == "" {
			name = l.Name
		}
		if name != "" {
			m.SpokenLanguages = append(m.SpokenLanguages, name)
		}
	}
	for _, k := range kw.All() {
		if k.Name != "" {
			m.Keywords = append(m.Keywords, k.Name)
		}
	}
	return m
}

func orNoData(s string, msgs Messages) string {
	if strings.TrimSpace(s) == "" {
		return msgs.NoData
	}
	return s
}
