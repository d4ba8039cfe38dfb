package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// noLanguage asks Get to omit the language parameter; video and keyword
// listings are filtered by it upstream and come back empty for most locales.
func noLanguage() url.Values {
	return url.Values{"language": {""}}
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func itemPath(kind Kind, id int, suffix string) (string, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return "", err
	}
	if id <= 0 {
		return "", fmt.Errorf("invalid %s id %d", kind, id)
	}
	return fmt.Sprintf("/%s/%d%s", kind, id, suffix), nil
}

// Details fetches detailed information about a movie or show
func (c *Client) Details(ctx context.Context, kind Kind, id int) (*Details, error) {
	path, err := itemPath(kind, id, "")
	if err != nil {
		return nil, err
	}
	var details Details
	if err := c.Get(ctx, path, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Videos fetches the trailer/video listing
func (c *Client) Videos(ctx context.Context, kind Kind, id int) (*VideoList, error) {
	path, err := itemPath(kind, id, "/videos")
	if err != nil {
		return nil, err
	}
	var videos VideoList
	if err := c.Get(ctx, path, noLanguage(), &videos); err != nil {
		return nil, err
	}
	return &videos, nil
}

// Credits fetches cast and crew information
func (c *Client) Credits(ctx context.Context, kind Kind, id int) (*Credits, error) {
	path, err := itemPath(kind, id, "/credits")
	if err != nil {
		return nil, err
	}
	var credits Credits
	if err := c.Get(ctx, path, nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// Recommendations fetches items recommended for an item
func (c *Client) Recommendations(ctx context.Context, kind Kind, id int, page int) (*Page, error) {
	path, err := itemPath(kind, id, "/recommendations")
	if err != nil {
		return nil, err
	}
	var result Page
	if err := c.Get(ctx, path, pageParams(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Keywords fetches the keyword tags of an item
func (c *Client) Keywords(ctx context.Context, kind Kind, id int) (*Keywords, error) {
	path, err := itemPath(kind, id, "/keywords")
	if err != nil {
		return nil, err
	}
	var keywords Keywords
	if err := c.Get(ctx, path, noLanguage(), &keywords); err != nil {
		return nil, err
	}
	return &keywords, nil
}

// Collection fetches one page of a category collection (popular, top-rated, ...)
func (c *Client) Collection(ctx context.Context, kind Kind, category string, page int) (*Page, error) {
	cat, err := LookupCategory(kind, category)
	if err != nil {
		return nil, err
	}
	var result Page
	if err := c.Get(ctx, fmt.Sprintf("/%s/%s", kind, cat.Endpoint), pageParams(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DiscoverByGenre fetches one page of items tagged with a genre
func (c *Client) DiscoverByGenre(ctx context.Context, kind Kind, genreID int, page int) (*Page, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if genreID <= 0 {
		return nil, fmt.Errorf("invalid genre id %d", genreID)
	}
	params := pageParams(page)
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")

	var result Page
	if err := c.Get(ctx, "/discover/"+string(kind), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchMulti searches movies, shows and people with free text
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Page{Page: 1}, nil
	}
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var result Page
	if err := c.Get(ctx, "/search/multi", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Trending fetches trending items for a time window ("day" or "week")
func (c *Client) Trending(ctx context.Context, kind Kind, window string) (*Page, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if window != "week" {
		window = "day"
	}
	var result Page
	if err := c.Get(ctx, fmt.Sprintf("/trending/%s/%s", kind, window), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
