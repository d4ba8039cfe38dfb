package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit         key.Binding
	search       key.Binding
	dismiss      key.Binding
	submit       key.Binding
	up           key.Binding
	down         key.Binding
	open         key.Binding
	back         key.Binding
	nextPage     key.Binding
	prevPage     key.Binding
	firstPage    key.Binding
	lastPage     key.Binding
	nextCategory key.Binding
	prevCategory key.Binding
	toggleKind   key.Binding
	retry        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		dismiss:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close search")),
		submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open top hit")),
		up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:         key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "close details")),
		nextPage:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
		prevPage:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev page")),
		firstPage:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first page")),
		lastPage:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last page")),
		nextCategory: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		prevCategory: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		toggleKind:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "movies/tv")),
		retry:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	}
}

func (k keyMap) help(details bool) []key.Binding {
	if details {
		return []key.Binding{k.up, k.down, k.back, k.retry, k.quit}
	}
	return []key.Binding{k.search, k.up, k.down, k.open, k.prevPage, k.nextPage, k.nextCategory, k.toggleKind, k.retry, k.quit}
}
