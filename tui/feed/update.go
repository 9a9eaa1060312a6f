package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureFeedCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RefreshMsg:
		return m.startFeedRefresh()
	}

	if r, ok := msg.(resultMsg); ok && r.epoch() != m.epoch {
		return m, nil
	}

	switch msg.(type) {
	case PostsLoadedMsg, PostsErrorMsg:
		return m.handleFeedLoadingMsg(msg)
	case CommentsLoadedMsg, CommentsErrorMsg:
		return m.handleDetailMsg(msg)
	case ProfileUserLoadedMsg, ProfilePostsLoadedMsg, FollowStatusLoadedMsg, FollowResultMsg:
		return m.handleProfileMsg(msg)
	case VoteResultMsg, PostCreatedMsg:
		return m.handleOptimisticMsg(msg)
	case InvalidatedMsg:
		return m.handleInvalidation(msg.(InvalidatedMsg))
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	return m, nil
}
