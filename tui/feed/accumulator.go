package feed

import "github.com/skypointsocial/skypoint/domain"

// Accumulator merges server pages into one ordered sequence with unique ids.
// Page 1 replaces the sequence; later pages append posts not already present.
type Accumulator struct {
	posts   []domain.Post
	page    int
	hasMore bool
	loaded  bool
}

// Apply merges one server page.
func (a *Accumulator) Apply(page int, posts []domain.Post, hasMore bool) {
	if page <= 1 {
		a.posts = nil
		page = 1
	}
	a.posts = appendUnique(a.posts, posts)
	a.page = page
	a.hasMore = hasMore
	a.loaded = true
}

// Replace swaps in a sequence already merged through page, as produced by a
// refetch of every loaded page.
func (a *Accumulator) Replace(page int, posts []domain.Post, hasMore bool) {
	a.posts = appendUnique(nil, posts)
	if page < 1 {
		page = 1
	}
	a.page = page
	a.hasMore = hasMore
	a.loaded = true
}

// Prepend inserts p at the front unless its id is already present.
func (a *Accumulator) Prepend(p domain.Post) bool {
	if a.index(p.ID) >= 0 {
		return false
	}
	a.posts = append([]domain.Post{p}, a.posts...)
	return true
}

// Update applies fn to the post with id, reporting whether it was found.
func (a *Accumulator) Update(id string, fn func(*domain.Post)) bool {
	i := a.index(id)
	if i < 0 {
		return false
	}
	fn(&a.posts[i])
	return true
}

// Get returns the post with id.
func (a *Accumulator) Get(id string) (domain.Post, bool) {
	i := a.index(id)
	if i < 0 {
		return domain.Post{}, false
	}
	return a.posts[i], true
}

// Reset returns the accumulator to its initial state: page 1, no posts.
func (a *Accumulator) Reset() { *a = Accumulator{} }

func (a *Accumulator) Posts() []domain.Post { return a.posts }
func (a *Accumulator) Len() int             { return len(a.posts) }
func (a *Accumulator) Page() int            { return max(a.page, 1) }
func (a *Accumulator) NextPage() int        { return a.page + 1 }
func (a *Accumulator) HasMore() bool        { return a.hasMore }
func (a *Accumulator) Loaded() bool         { return a.loaded }

func (a *Accumulator) index(id string) int {
	for i, p := range a.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// appendUnique appends incoming posts whose ids are not yet in dst, keeping
// server order.
func appendUnique(dst, incoming []domain.Post) []domain.Post {
	seen := make(map[string]struct{}, len(dst)+len(incoming))
	for _, p := range dst {
		seen[p.ID] = struct{}{}
	}
	for _, p := range incoming {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		dst = append(dst, p)
	}
	return dst
}
