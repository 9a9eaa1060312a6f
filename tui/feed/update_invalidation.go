package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/app"
)

// handleInvalidation refetches whatever the open views show that the
// mutation made stale. The feed reloads every page it has loaded so the
// list does not shrink under the cursor.
func (m Model) handleInvalidation(msg InvalidatedMsg) (Model, tea.Cmd) {
	tags := msg.Invalidation.Tags
	var cmds []tea.Cmd

	if m.feed.posts.Loaded() && app.AnyMatch(tags, app.FeedTags()) {
		m.feed.reqSeq++
		m.feed.loadingMore = false
		cmds = append(cmds, m.refetchFeed(m.feed.posts.Page(), m.feed.reqSeq))
	}

	if m.inStack(viewDetail) && m.detail.post.ID != "" && app.AnyMatch(tags, app.CommentsTags(m.detail.post.ID)) {
		var cmd tea.Cmd
		m, cmd = m.refetchComments()
		cmds = append(cmds, cmd)
	}

	if m.inStack(viewProfile) && m.profile.userID != "" {
		id := m.profile.userID
		if app.AnyMatch(tags, app.UserTags(id)) {
			cmds = append(cmds, m.fetchProfileUser(id, m.profile.reqSeq))
		}
		if m.profile.posts.Loaded() && app.AnyMatch(tags, app.UserPostsTags(id)) {
			m.profile.postsSeq++
			m.profile.loadingMore = false
			cmds = append(cmds, m.refetchProfilePosts(id, m.profile.posts.Page(), m.profile.postsSeq))
		}
		if !m.profile.own && m.authenticated() && app.AnyMatch(tags, app.FollowStatusTags(id)) {
			cmds = append(cmds, m.fetchFollowStatus(id, m.profile.reqSeq))
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) inStack(v view) bool {
	for _, s := range m.stack {
		if s == v {
			return true
		}
	}
	return false
}
