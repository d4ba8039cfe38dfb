package pagination

import (
	"fmt"
	"sync"
)

// Pager tracks the current page of a grid. Navigation outside 1..total is
// rejected and leaves the current page unchanged.
type Pager struct {
	mu      sync.Mutex
	current int
	total   int
}

// NewPager starts on page 1 with an unknown total (treated as zero).
func NewPager() *Pager {
	return &Pager{current: 1}
}

// Current returns the current page.
func (p *Pager) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Total returns the last known total page count.
func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// SetTotal records the total reported by the latest response.
// The current page is clamped into the new range.
func (p *Pager) SetTotal(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if total < 0 {
		total = 0
	}
	p.total = total
	if p.current > total {
		p.current = max(1, total)
	}
}

// Go moves to page. It returns ErrOutOfRange without moving when page is
// outside 1..total (page 1 is always valid).
func (p *Pager) Go(page int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if page < 1 || (page > p.total && page != 1) {
		return fmt.Errorf("%w: page %d of %d", ErrOutOfRange, page, p.total)
	}
	p.current = page
	return nil
}

// Next moves one page forward.
func (p *Pager) Next() error {
	return p.Go(p.Current() + 1)
}

// Prev moves one page back.
func (p *Pager) Prev() error {
	return p.Go(p.Current() - 1)
}

// Window computes the controls for the current position.
func (p *Pager) Window() Window {
	p.mu.Lock()
	cur, total := p.current, p.total
	p.mu.Unlock()
	w, err := NewWindow(cur, total)
	if err != nil {
		return Window{Current: cur, Total: total, Pages: []int{}}
	}
	return w
}
