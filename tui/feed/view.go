package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skypointsocial/skypoint/tui/common"
)

// View renders the active feed view.
func (m Model) View() string {
	switch m.active() {
	case viewDetail:
		return m.renderDetailView()
	case viewProfile:
		return m.renderProfileView()
	}

	var b strings.Builder
	title := common.AppTitleStyle.Render("☁ SkyPoint")
	tagline := common.TaglineStyle.Render("<your feed>")
	b.WriteString(title + tagline + "\n\n")

	posts := m.feed.posts.Posts()
	switch {
	case m.feed.loading && len(posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.feed.err != nil && len(posts) == 0:
		b.WriteString(common.ErrorStyle.Render("  " + feedErrorText(m.feed.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(posts) == 0:
		b.WriteString("  No posts yet. Press p to write the first one.\n")
	default:
		b.WriteString(m.renderPostList())
	}

	b.WriteString("\n")
	switch {
	case m.feed.loading:
		b.WriteString(fmt.Sprintf("  %s Refreshing...\n", m.spinner.View()))
	case m.feed.loadingMore:
		b.WriteString(fmt.Sprintf("  %s Loading more...\n", m.spinner.View()))
	case m.feed.err != nil && len(posts) > 0:
		b.WriteString(common.ErrorStyle.Render("  "+feedErrorText(m.feed.err)) + "\n")
	case m.feed.notice != "":
		b.WriteString(common.MetadataStyle.Render("  "+m.feed.notice) + "\n")
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderPostList() string {
	posts := m.feed.posts.Posts()
	visible := m.visibleCount()
	start := min(max(m.feed.startIndex, 0), len(posts)-1)
	end := min(start+visible, len(posts))

	var list strings.Builder
	for i := start; i < end; i++ {
		list.WriteString(m.renderPostBox(posts[i], i == m.feed.cursor))
		list.WriteString("\n")
	}
	listString := strings.TrimSuffix(list.String(), "\n")
	if len(posts) <= visible {
		return listString
	}

	listHeight := lipgloss.Height(listString)
	thumbHeight := max(visible*listHeight/len(posts), 1)
	thumbStart := start * listHeight / len(posts)
	if thumbStart+thumbHeight > listHeight {
		thumbStart = listHeight - thumbHeight
	}
	var bar strings.Builder
	for j := 0; j < listHeight; j++ {
		color := lipgloss.Color("#333333")
		if j >= thumbStart && j < thumbStart+thumbHeight {
			color = lipgloss.Color("#1976D2")
		}
		bar.WriteString(lipgloss.NewStyle().Foreground(color).Render("┃"))
		if j < listHeight-1 {
			bar.WriteString("\n")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, listString,
		lipgloss.NewStyle().MarginLeft(4).Render(bar.String()))
}

func feedErrorText(err error) string {
	return "Error: " + err.Error()
}

func (m Model) helpView() string {
	k := m.keys
	if m.showHints {
		lines := []string{
			common.HelpLine(k.Up, k.Down, k.Open, k.Back, k.Refresh, k.LoadMore),
			common.HelpLine(k.Upvote, k.Downvote, k.NewEditor, k.NewInline),
			common.HelpLine(k.Comment, k.CommentEditor, k.Author, k.MyProfile, k.Follow),
			common.HelpLine(k.Logout, k.Quit, k.ToggleHints),
		}
		return common.StatusBarStyle.Render(strings.Join(lines, "\n"))
	}
	var line string
	switch m.active() {
	case viewDetail:
		line = common.HelpLine(k.Up, k.Down, k.Upvote, k.Downvote, k.Comment, k.Back, k.ToggleHints)
	case viewProfile:
		line = common.HelpLine(k.Up, k.Down, k.Open, k.Follow, k.LoadMore, k.Back, k.ToggleHints)
	default:
		line = common.HelpLine(k.Up, k.Down, k.Open, k.Upvote, k.Downvote, k.NewEditor, k.Refresh, k.ToggleHints, k.Quit)
	}
	return common.StatusBarStyle.Render(line)
}
