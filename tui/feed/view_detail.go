package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/tui/common"
)

const commentIndent = 2

func (m Model) renderDetailView() string {
	var b strings.Builder
	p := m.detail.post

	b.WriteString(common.AppTitleStyle.Render("Post") + "\n\n")

	header := m.renderAuthor(p.Author) + "  " +
		common.TimestampStyle.Render(common.TimeAgo(p.TimeAgo, p.CreatedAt, now()))
	post := header + "\n" +
		common.ContentStyle.Render(wrapText(p.Content, m.contentWidth())) + "\n" +
		renderVoteLine(p)
	if m.detail.cursor == -1 {
		post = common.SelectedStyle.Render(post)
	} else {
		post = common.UnselectedStyle.Render(post)
	}
	b.WriteString(post + "\n\n")

	count := domain.CountComments(m.detail.comments)
	b.WriteString(common.LabelStyle.Render("  "+common.Plural(count, "comment")) + "\n")

	switch {
	case m.detail.loading && len(m.detail.rows) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading comments...\n", m.spinner.View()))
	case m.detail.err != nil:
		b.WriteString(common.ErrorStyle.Render("  Failed to load comments: "+m.detail.err.Error()) + "\n")
	case len(m.detail.rows) == 0:
		b.WriteString(common.MetadataStyle.Render("  No comments yet. Press c to start the conversation.") + "\n")
	default:
		b.WriteString(m.renderCommentRows())
	}

	b.WriteString("\n" + m.helpView())
	return b.String()
}

// renderCommentRows draws the flattened tree, keeping the selected row on
// screen.
func (m Model) renderCommentRows() string {
	rows := m.detail.rows
	budget := len(rows)
	if m.height > 0 {
		budget = max((m.height-reservedHeight-postBoxHeight)/3, 1)
	}
	start := 0
	if m.detail.cursor >= budget {
		start = m.detail.cursor - budget + 1
	}
	end := min(start+budget, len(rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderComment(rows[i], i == m.detail.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// commentStamp keeps nested rows narrow: the server's relative time when it
// sent one, else a compact "2h" style distance.
func commentStamp(c domain.Comment, at time.Time) string {
	if s := strings.TrimSpace(c.TimeAgo); s != "" {
		return s
	}
	return common.ShortTime(c.CreatedAt, at)
}

func (m Model) renderComment(row commentRow, selected bool) string {
	c := row.comment
	indent := strings.Repeat(" ", row.depth*commentIndent)
	guide := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("│ ")
	if row.depth == 0 {
		guide = ""
	}
	header := m.renderAuthor(c.Author) + "  " +
		common.TimestampStyle.Render(commentStamp(c, now()))
	width := max(m.contentWidth()-row.depth*commentIndent, 12)
	body := common.ContentStyle.Render(wrapText(c.Content, width))

	var lines []string
	for _, ln := range strings.Split(header+"\n"+body, "\n") {
		lines = append(lines, "  "+indent+guide+ln)
	}
	out := strings.Join(lines, "\n")
	if selected {
		return common.CursorStyle.Render("▌") + strings.TrimPrefix(out, " ")
	}
	return out
}
