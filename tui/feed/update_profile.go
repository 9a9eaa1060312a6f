package feed

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/domain"
)

// openProfile shows userID's profile and loads the user, their first page of
// posts and, for other users, whether the caller follows them.
func (m Model) openProfile(userID string) (Model, tea.Cmd) {
	if userID == "" {
		return m, nil
	}
	own := m.session != nil && m.session.CurrentUser().ID == userID
	m.profile = profileState{
		userID:   userID,
		own:      own,
		loading:  true,
		reqSeq:   m.profile.reqSeq + 1,
		postsSeq: m.profile.postsSeq + 1,
	}
	m.push(viewProfile)

	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.fetchProfileUser(userID, m.profile.reqSeq),
		m.fetchProfilePosts(userID, 1, m.profile.postsSeq),
	}
	if !own && m.authenticated() {
		cmds = append(cmds, m.fetchFollowStatus(userID, m.profile.reqSeq))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) loadMoreProfilePosts() (Model, tea.Cmd) {
	if m.profile.loading || m.profile.loadingMore || !m.profile.posts.HasMore() {
		return m, nil
	}
	m.profile.postsSeq++
	m.profile.loadingMore = true
	return m, m.fetchProfilePosts(m.profile.userID, m.profile.posts.NextPage(), m.profile.postsSeq)
}

func (m Model) handleProfileMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProfileUserLoadedMsg:
		if msg.ReqSeq != m.profile.reqSeq || msg.UserID != m.profile.userID {
			return m, nil
		}
		if msg.Err != nil {
			m.profile.err = msg.Err
			m.profile.loading = false
			return m, nil
		}
		m.profile.user = msg.User
		m.profile.userLoaded = true
		m.profile.err = nil
		return m, nil

	case ProfilePostsLoadedMsg:
		if msg.ReqSeq != m.profile.postsSeq || msg.UserID != m.profile.userID {
			return m, nil
		}
		m.profile.loading = false
		m.profile.loadingMore = false
		if msg.Err != nil {
			m.profile.err = msg.Err
			return m, nil
		}
		if msg.Replace {
			m.profile.posts.Replace(msg.Page, msg.Posts, len(msg.Posts) >= msg.Page*profilePageSize)
		} else {
			m.profile.posts.Apply(msg.Page, msg.Posts, len(msg.Posts) == profilePageSize)
		}
		m.reapplyPendingVotes()
		if m.profile.cursor >= m.profile.posts.Len() {
			m.profile.cursor = max(m.profile.posts.Len()-1, 0)
		}
		return m, nil

	case FollowStatusLoadedMsg:
		if msg.ReqSeq != m.profile.reqSeq || msg.UserID != m.profile.userID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("follow status fetch failed", slog.String("user_id", msg.UserID), slog.String("error", msg.Err.Error()))
			return m, nil
		}
		m.profile.following = msg.Following
		m.profile.followKnown = true
		return m, nil

	case FollowResultMsg:
		if msg.UserID != m.profile.userID {
			return m, nil
		}
		m.profile.followPending = false
		if msg.Err != nil {
			m.logger.Warn("follow toggle failed", slog.String("user_id", msg.UserID), slog.String("error", msg.Err.Error()))
			return m, banner(domain.ErrorMessage(msg.Err, "Failed to update follow status. Please try again."))
		}
		// The server decides the new state. Status reads issued before the
		// toggle landed are dropped by the sequence bump.
		m.profile.reqSeq++
		return m, tea.Batch(
			m.fetchFollowStatus(m.profile.userID, m.profile.reqSeq),
			m.fetchProfileUser(m.profile.userID, m.profile.reqSeq),
		)
	}
	return m, nil
}

// toggleFollowSelected follows or unfollows the open profile's user.
func (m Model) toggleFollowSelected() (Model, tea.Cmd) {
	if m.profile.own || m.profile.userID == "" || m.profile.followPending {
		return m, nil
	}
	if !m.authenticated() {
		return m, requireLogin
	}
	m.profile.followPending = true
	return m, m.toggleFollow(m.profile.userID)
}

func (m Model) authenticated() bool {
	return m.session != nil && m.session.Authenticated()
}

func requireLogin() tea.Msg { return RequireLoginMsg{} }
