package view

import (
	"strings"

	"github.com/marco/movieDeck/internal/catalog"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// Video is a playable clip hosted on YouTube.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// MapVideos keeps YouTube entries only, at most MaxVideos of them.
func MapVideos(raw *catalog.VideoList) []Video {
	videos := []Video{}
	if raw == nil {
		return videos
	}
	for _, v := range raw.Results {
		if len(videos) == MaxVideos {
			break
		}
		if !strings.EqualFold(v.Site, "YouTube") || v.Key == "" {
			continue
		}
		videos = append(videos, Video{
			Key:  v.Key,
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
			URL:  youtubeWatchURL + v.Key,
		})
	}
	return videos
}

// SelectTrailer returns the first video typed "trailer" (any case),
// falling back to the first video. ok is false for an empty list.
func SelectTrailer(videos []Video) (Video, bool) {
	for _, v := range videos {
		if strings.EqualFold(v.Type, "trailer") {
			return v, true
		}
	}
	if len(videos) > 0 {
		return videos[0], true
	}
	return Video{}, false
}
