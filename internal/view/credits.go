package view

import (
	"fmt"

	"github.com/marco/movieDeck/internal/catalog"
)

// CrewJobs lists the crew roles shown; other jobs are dropped.
var CrewJobs = []string{"Director", "Producer", "Screenplay", "Writer"}

func isShownJob(job string) bool {
	for _, j := range CrewJobs {
		if j == job {
			return true
		}
	}
	return false
}

// CastEntry is one billed cast member.
// Key is unique within a list even when a person appears more than once.
type CastEntry struct {
	Key         string `json:"key"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfileURL  string `json:"profile_url"`
	ProfilePath string `json:"-"`
}

// CrewEntry is one crew credit; the same person may hold several jobs.
type CrewEntry struct {
	Key         string `json:"key"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfileURL  string `json:"profile_url"`
	ProfilePath string `json:"-"`
}

// Credits is the cast and crew view model.
type Credits struct {
	Cast []CastEntry `json:"cast"`
	Crew []CrewEntry `json:"crew"`
}

// CastKey builds the "<id>-<index>" key of a cast entry.
func CastKey(personID, index int) string {
	return fmt.Sprintf("%d-%d", personID, index)
}

// CrewKey builds the "<id>-<job>-<index>" key of a crew entry.
func CrewKey(personID int, job string, index int) string {
	return fmt.Sprintf("%d-%s-%d", personID, job, index)
}

// MapCredits keeps the first MaxCast cast members and the crew whose job is
// in CrewJobs, in upstream order. A nil response maps to empty lists.
func MapCredits(raw *catalog.Credits, images ImageResolver) Credits {
	out := Credits{Cast: []CastEntry{}, Crew: []CrewEntry{}}
	if raw == nil {
		return out
	}

	cast := raw.Cast
	if len(cast) > MaxCast {
		cast = cast[:MaxCast]
	}
	for i, m := range cast {
		out.Cast = append(out.Cast, CastEntry{
			Key:         CastKey(m.ID, i),
			ID:          m.ID,
			Name:        m.Name,
			Character:   m.Character,
			ProfilePath: m.ProfilePath,
			ProfileURL:  images.ImageURL(m.ProfilePath, catalog.SizeProfile),
		})
	}

	for _, m := range raw.Crew {
		if !isShownJob(m.Job) {
			continue
		}
		out.Crew = append(out.Crew, CrewEntry{
			Key:         CrewKey(m.ID, m.Job, len(out.Crew)),
			ID:          m.ID,
			Name:        m.Name,
			Job:         m.Job,
			Department:  m.Department,
			ProfilePath: m.ProfilePath,
			ProfileURL:  images.ImageURL(m.ProfilePath, catalog.SizeProfile),
		})
	}
	return out
}
