package catalog

import "strings"

// ImageSize is the size token inserted between the image base URL and the path.
type ImageSize string

const (
	SizeThumb    ImageSize = "w92"
	SizeProfile  ImageSize = "w185"
	SizePoster   ImageSize = "w500"
	SizeBackdrop ImageSize = "w1280"
	SizeOriginal ImageSize = "original"
)

// PlaceholderImage is substituted when the upstream path is null.
const PlaceholderImage = "/placeholder-movie.jpg"

// ImageURL composes base, size and path. An empty path yields the placeholder.
func ImageURL(base string, path string, size ImageSize) string {
	if path == "" {
		return PlaceholderImage
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + string(size) + path
}
