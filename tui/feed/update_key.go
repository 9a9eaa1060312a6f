package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/domain"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHints {
		if key.Matches(msg, m.keys.ToggleHints) || key.Matches(msg, m.keys.Back) || msg.String() == "enter" {
			m.showHints = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = true
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.pop()
		return m, nil
	case key.Matches(msg, m.keys.Upvote):
		return m.vote(domain.Upvote)
	case key.Matches(msg, m.keys.Downvote):
		return m.vote(domain.Downvote)
	case key.Matches(msg, m.keys.MyProfile):
		if !m.authenticated() {
			return m, requireLogin
		}
		return m.openProfile(m.session.CurrentUser().ID)
	}

	switch m.active() {
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewProfile:
		return m.handleProfileKey(msg)
	}
	return m.handleFeedKey(msg)
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.startFeedRefresh()
	case key.Matches(msg, m.keys.Up):
		if m.feed.cursor > 0 {
			m.feed.cursor--
		}
		m.ensureFeedCursorVisible()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.feed.cursor < m.feed.posts.Len()-1 {
			m.feed.cursor++
		}
		m.ensureFeedCursorVisible()
		if nearEnd(m.feed.cursor, m.feed.posts.Len()) {
			return m.loadMoreFeed()
		}
		return m, nil
	case key.Matches(msg, m.keys.LoadMore):
		return m.loadMoreFeed()
	case key.Matches(msg, m.keys.Open):
		if post, ok := m.SelectedPost(); ok {
			return m.openDetail(post)
		}
	case key.Matches(msg, m.keys.Author):
		if post, ok := m.SelectedPost(); ok {
			return m.openProfile(post.Author.ID)
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.refetchComments()
	case key.Matches(msg, m.keys.Up):
		if m.detail.cursor > -1 {
			m.detail.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.detail.cursor < len(m.detail.rows)-1 {
			m.detail.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Comment):
		if !m.authenticated() {
			return m, requireLogin
		}
		return m, m.composeComment(true)
	case key.Matches(msg, m.keys.CommentEditor):
		if !m.authenticated() {
			return m, requireLogin
		}
		return m, m.composeComment(false)
	case key.Matches(msg, m.keys.Author):
		if m.detail.cursor >= 0 && m.detail.cursor < len(m.detail.rows) {
			return m.openProfile(m.detail.rows[m.detail.cursor].comment.Author.ID)
		}
		return m.openProfile(m.detail.post.Author.ID)
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.profile.cursor > 0 {
			m.profile.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.profile.cursor < m.profile.posts.Len()-1 {
			m.profile.cursor++
		}
		if nearEnd(m.profile.cursor, m.profile.posts.Len()) {
			return m.loadMoreProfilePosts()
		}
		return m, nil
	case key.Matches(msg, m.keys.LoadMore):
		return m.loadMoreProfilePosts()
	case key.Matches(msg, m.keys.Follow):
		return m.toggleFollowSelected()
	case key.Matches(msg, m.keys.Open):
		if post, ok := m.SelectedPost(); ok {
			return m.openDetail(post)
		}
	case key.Matches(msg, m.keys.Refresh):
		id := m.profile.userID
		m.profile.postsSeq++
		cmds := []tea.Cmd{
			m.fetchProfileUser(id, m.profile.reqSeq),
			m.refetchProfilePosts(id, m.profile.posts.Page(), m.profile.postsSeq),
		}
		if !m.profile.own && m.authenticated() {
			cmds = append(cmds, m.fetchFollowStatus(id, m.profile.reqSeq))
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}
