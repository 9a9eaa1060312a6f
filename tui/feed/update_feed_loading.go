package feed

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) startFeedRefresh() (Model, tea.Cmd) {
	m.feed.reqSeq++
	m.feed.loading = true
	m.feed.loadingMore = false
	m.feed.err = nil
	m.feed.notice = ""
	return m, tea.Batch(m.spinner.Tick, m.fetchFeedPage(1, m.feed.reqSeq))
}

// loadMoreFeed requests the next page unless one is already in flight or the
// server reported no more pages.
func (m Model) loadMoreFeed() (Model, tea.Cmd) {
	if m.feed.loading || m.feed.loadingMore || !m.feed.posts.HasMore() {
		return m, nil
	}
	m.feed.reqSeq++
	m.feed.loadingMore = true
	return m, m.fetchFeedPage(m.feed.posts.NextPage(), m.feed.reqSeq)
}

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if msg.ReqSeq != m.feed.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.currentFeedQueryKey() {
			return m, nil
		}
		anchorID := m.selectedFeedID()
		before := m.feed.posts.Len()
		if msg.Replace {
			m.feed.posts.Replace(msg.Page, msg.Posts, msg.HasMore)
		} else {
			m.feed.posts.Apply(msg.Page, msg.Posts, msg.HasMore)
		}
		m.reapplyPendingVotes()
		if p, ok := m.feed.posts.Get(m.detail.post.ID); ok {
			m.detail.post = p
		}
		m.feed.loading = false
		m.feed.loadingMore = false
		m.feed.err = nil
		m.feed.notice = ""

		if msg.Page > 1 && (!m.feed.posts.HasMore() || m.feed.posts.Len() == before) {
			m.feed.notice = "You're all caught up."
		}

		if msg.Page <= 1 && !msg.Replace {
			m.feed.cursor = 0
			m.feed.startIndex = 0
		} else if anchorID != "" {
			m.setFeedCursorByID(anchorID)
		}
		m.clampFeedCursor()
		m.ensureFeedCursorVisible()
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.feed.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.currentFeedQueryKey() {
			return m, nil
		}
		m.feed.loading = false
		m.feed.loadingMore = false
		m.feed.err = msg.Err
		m.logger.Warn("feed fetch failed", slog.Int("page", msg.Page), slog.String("error", msg.Err.Error()))
		return m, nil
	}

	return m, nil
}

func (m Model) selectedFeedID() string {
	posts := m.feed.posts.Posts()
	if m.feed.cursor >= 0 && m.feed.cursor < len(posts) {
		return posts[m.feed.cursor].ID
	}
	return ""
}

func (m *Model) setFeedCursorByID(id string) {
	for i, p := range m.feed.posts.Posts() {
		if p.ID == id {
			m.feed.cursor = i
			return
		}
	}
}

func (m *Model) clampFeedCursor() {
	n := m.feed.posts.Len()
	if m.feed.cursor >= n {
		m.feed.cursor = n - 1
	}
	if m.feed.cursor < 0 {
		m.feed.cursor = 0
	}
}

// visibleCount is how many post boxes fit on screen.
func (m Model) visibleCount() int {
	if m.height <= 0 {
		return 5
	}
	return max((m.height-reservedHeight)/postBoxHeight, 1)
}

func (m *Model) ensureFeedCursorVisible() {
	visible := m.visibleCount()
	if m.feed.cursor < m.feed.startIndex {
		m.feed.startIndex = m.feed.cursor
	}
	if m.feed.cursor >= m.feed.startIndex+visible {
		m.feed.startIndex = m.feed.cursor - visible + 1
	}
	if m.feed.startIndex < 0 {
		m.feed.startIndex = 0
	}
}

// nearEnd reports whether the cursor is close enough to the bottom of the
// loaded list to prefetch the next page.
func nearEnd(cursor, total int) bool {
	return total > 0 && cursor >= total-prefetchTrigger
}
