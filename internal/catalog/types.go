package catalog

import "fmt"

// Kind distinguishes movies from TV shows in API paths ("movie", "tv").
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// ParseKind validates a kind path segment
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMovie, KindTV:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Page represents a paginated list response (collections, discover, search, recommendations)
type Page struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Item represents a movie or show as it appears in list responses.
// Movies carry Title/ReleaseDate, shows carry Name/FirstAirDate.
type Item struct {
	ID               int      `json:"id"`
	MediaType        string   `json:"media_type,omitempty"`
	Title            string   `json:"title,omitempty"`
	Name             string   `json:"name,omitempty"`
	Overview         string   `json:"overview"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	ProfilePath      string   `json:"profile_path,omitempty"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	FirstAirDate     string   `json:"first_air_date,omitempty"`
	VoteAverage      *float64 `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	Popularity       float64  `json:"popularity"`
	GenreIDs         []int    `json:"genre_ids,omitempty"`
	OriginalLanguage string   `json:"original_language"`
	Adult            bool     `json:"adult"`
}

// Details represents detailed movie or show information
type Details struct {
	Item
	Tagline         string     `json:"tagline"`
	Runtime         int        `json:"runtime"`
	EpisodeRunTime  []int      `json:"episode_run_time,omitempty"`
	Budget          int64      `json:"budget"`
	Revenue         int64      `json:"revenue"`
	Status          string     `json:"status"`
	Homepage        string     `json:"homepage"`
	IMDbID          string     `json:"imdb_id,omitempty"`
	NumberOfSeasons int        `json:"number_of_seasons,omitempty"`
	Genres          []Genre    `json:"genres"`
	SpokenLanguages []Language `json:"spoken_languages"`
}

// Genre represents a movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Language represents a spoken language
type Language struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// Video represents one entry of the videos listing
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// VideoList is the videos endpoint response
type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Credits represents the credits (cast and crew) response
type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember represents a cast member
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember represents a crew member
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// Keyword is a single keyword tag
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Keywords is the keywords endpoint response.
// Movies return the list under "keywords", shows under "results".
type Keywords struct {
	ID       int       `json:"id"`
	Keywords []Keyword `json:"keywords"`
	Results  []Keyword `json:"results"`
}

// All returns the keyword list regardless of which field carried it.
func (k *Keywords) All() []Keyword {
	if k == nil {
		return nil
	}
	if len(k.Keywords) > 0 {
		return k.Keywords
	}
	return k.Results
}
