package route

// History is the navigation stack behind the gate's one integration
// point. User navigation pushes; guard redirects replace the top entry
// so back-navigation can never land on a forbidden screen.
type History struct {
	entries []Path
}

// NewHistory creates a history positioned at start
func NewHistory(start Path) *History {
	return &History{entries: []Path{start}}
}

// Current returns the path on top of the stack
func (h *History) Current() Path {
	return h.entries[len(h.entries)-1]
}

// Push records a user-initiated navigation
func (h *History) Push(path Path) {
	if path == h.Current() {
		return
	}
	h.entries = append(h.entries, path)
}

// Replace swaps the top entry without growing the stack
func (h *History) Replace(path Path) {
	h.entries[len(h.entries)-1] = path
}

// Back pops to the previous entry. It reports false when already at
// the bottom of the stack.
func (h *History) Back() (Path, bool) {
	if len(h.entries) <= 1 {
		return h.Current(), false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.Current(), true
}

// Len returns the stack depth
func (h *History) Len() int {
	return len(h.entries)
}
