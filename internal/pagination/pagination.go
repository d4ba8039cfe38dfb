// Package pagination computes the visible page-number window of a paged grid
// and tracks the current page.
package pagination

import (
	"errors"
	"fmt"
)

// Spread is how many neighbours are shown on each side of the current page.
const Spread = 2

// ErrOutOfRange is returned for a page outside 1..total.
var ErrOutOfRange = errors.New("page out of range")

// Window describes the page controls to render.
// Pages holds the contiguous run around Current; the first and last page
// buttons and the ellipses sit outside it.
type Window struct {
	Current          int   `json:"current"`
	Total            int   `json:"total"`
	Pages            []int `json:"pages"`
	ShowFirst        bool  `json:"show_first"`
	LeadingEllipsis  bool  `json:"leading_ellipsis"`
	TrailingEllipsis bool  `json:"trailing_ellipsis"`
	ShowLast         bool  `json:"show_last"`
}

// NewWindow computes the window for current within 1..total.
// A total of zero yields an empty window for page 1.
func NewWindow(current, total int) (Window, error) {
	if total < 0 {
		return Window{}, fmt.Errorf("%w: total %d", ErrOutOfRange, total)
	}
	if total == 0 {
		if current != 1 {
			return Window{}, fmt.Errorf("%w: page %d of 0", ErrOutOfRange, current)
		}
		return Window{Current: 1, Pages: []int{}}, nil
	}
	if current < 1 || current > total {
		return Window{}, fmt.Errorf("%w: page %d of %d", ErrOutOfRange, current, total)
	}

	start := max(1, current-Spread)
	end := min(total, current+Spread)

	w := Window{
		Current:          current,
		Total:            total,
		Pages:            make([]int, 0, end-start+1),
		ShowFirst:        start > 1,
		LeadingEllipsis:  start > 2,
		TrailingEllipsis: end < total-1,
		ShowLast:         end < total,
	}
	for p := start; p <= end; p++ {
		w.Pages = append(w.Pages, p)
	}
	return w, nil
}

// Labels renders the window as button labels, "..." marking an ellipsis.
func (w Window) Labels() []string {
	var labels []string
	if w.ShowFirst {
		labels = append(labels, "1")
	}
	if w.LeadingEllipsis {
		labels = append(labels, "...")
	}
	for _, p := range w.Pages {
		labels = append(labels, fmt.Sprint(p))
	}
	if w.TrailingEllipsis {
		labels = append(labels, "...")
	}
	if w.ShowLast {
		labels = append(labels, fmt.Sprint(w.Total))
	}
	return labels
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool { return w.Current > 1 }

// HasNext reports whether a next page exists.
func (w Window) HasNext() bool { return w.Current < w.Total }
