package feed

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/tui/common"
)

// now is swapped in tests.
var now = time.Now

const maxNameWidth = 32

func truncateToLines(text string, width, n int) string {
	if width < 12 {
		width = 12
	}
	// Render with width to handle both explicit newlines and wrapping.
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= n {
		return wrapped
	}
	return strings.Join(lines[:n], "\n") + "..."
}

func wrapText(text string, width int) string {
	if width < 12 {
		width = 12
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func authorStyleFor(username string, isOwn bool) lipgloss.Style {
	if isOwn {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6DA95"))
	}
	palette := []string{
		"#7DC4E4", "#8BD5CA", "#F5A97F", "#C6A0F6", "#EBA0AC",
		"#F9E2AF", "#89B4FA", "#F38BA8", "#94E2D5",
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(username))))
	idx := int(h.Sum32() % uint32(len(palette)))
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(palette[idx]))
}

func (m Model) isOwn(u domain.User) bool {
	return m.session != nil && u.ID != "" && m.session.CurrentUser().ID == u.ID
}

func (m Model) renderAuthor(u domain.User) string {
	own := m.isOwn(u)
	name := common.TruncateText(u.DisplayName(), maxNameWidth)
	out := authorStyleFor(u.Handle(), own).Render(name) +
		" " + common.HandleStyle.Render("@"+u.Handle())
	if own {
		out += common.OwnBadgeStyle.Render("(you)")
	}
	return out
}

// renderVoteLine shows the score with the caller's own vote highlighted.
func renderVoteLine(p domain.Post) string {
	up := common.MetadataStyle.Render("▲")
	down := common.MetadataStyle.Render("▼")
	switch p.Vote {
	case domain.VoteUp:
		up = common.UpvoteActiveStyle.Render("▲")
	case domain.VoteDown:
		down = common.DownvoteActiveStyle.Render("▼")
	}
	comments := common.MetadataStyle.Render(
		fmt.Sprintf("💬 %s", common.Plural(p.CommentCount, "comment")))
	return fmt.Sprintf("%s %s %s   %s", up, common.MetadataStyle.Render(common.FormatCount(p.Score)), down, comments)
}

func (m Model) contentWidth() int {
	w := m.width - 10
	if w > maxContentWidth {
		w = maxContentWidth
	}
	return max(w, 20)
}

// renderPostBox renders a post preview for a list.
func (m Model) renderPostBox(p domain.Post, selected bool) string {
	header := m.renderAuthor(p.Author) + "  " +
		common.TimestampStyle.Render(common.TimeAgo(p.TimeAgo, p.CreatedAt, now()))
	body := common.ContentStyle.Render(truncateToLines(p.Content, m.contentWidth(), previewLineCount))
	content := header + "\n" + body + "\n" + renderVoteLine(p)
	if selected {
		return common.SelectedStyle.Render(content)
	}
	return common.UnselectedStyle.Render(content)
}

func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
