package nav

// History models the browser history stack for URL-bearing screens. Entries
// are raw query strings ("" is the home URL with no parameters). Pushing
// while somewhere in the middle of the stack drops the forward entries,
// exactly like a browser.
type History struct {
	entries []string
	pos     int
}

// NewHistory starts a history at the given query string.
func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Current returns the query string of the active entry.
func (h *History) Current() string {
	return h.entries[h.pos]
}

// Push appends a new entry and makes it current. Pushing the current entry
// again is a no-op, matching history.pushState of an identical URL being
// pointless to re-resolve.
func (h *History) Push(query string) {
	if h.entries[h.pos] == query {
		return
	}
	h.entries = append(h.entries[:h.pos+1], query)
	h.pos = len(h.entries) - 1
}

// Back moves one entry backward. Reports false at the oldest entry.
func (h *History) Back() (string, bool) {
	if h.pos == 0 {
		return h.Current(), false
	}
	h.pos--
	return h.Current(), true
}

// Forward moves one entry forward. Reports false at the newest entry.
func (h *History) Forward() (string, bool) {
	if h.pos == len(h.entries)-1 {
		return h.Current(), false
	}
	h.pos++
	return h.Current(), true
}
