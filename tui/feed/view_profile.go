package feed

import (
	"fmt"
	"strings"

	"github.com/skypointsocial/skypoint/tui/common"
)

func (m Model) renderProfileView() string {
	var b strings.Builder
	u := m.profile.user

	b.WriteString(common.AppTitleStyle.Render("Profile") + "\n\n")

	switch {
	case !m.profile.userLoaded && m.profile.err != nil:
		b.WriteString(common.ErrorStyle.Render("  Failed to load profile: "+m.profile.err.Error()) + "\n")
		b.WriteString("\n" + m.helpView())
		return b.String()
	case !m.profile.userLoaded:
		b.WriteString(fmt.Sprintf("  %s Loading profile...\n", m.spinner.View()))
		b.WriteString("\n" + m.helpView())
		return b.String()
	}

	name := m.renderAuthor(u)
	b.WriteString("  " + name + m.followBadge() + "\n")
	stats := fmt.Sprintf("%s · %s · %s",
		common.Plural(u.FollowerCount, "follower"),
		fmt.Sprintf("%s following", common.FormatCount(u.FollowingCount)),
		common.Plural(max(u.PostCount, m.profile.posts.Len()), "post"))
	b.WriteString("  " + common.MetadataStyle.Render(stats) + "\n")
	if !u.CreatedAt.IsZero() {
		b.WriteString("  " + common.TimestampStyle.Render("Joined "+u.CreatedAt.Local().Format("January 2006")) + "\n")
	}
	if u.Email != "" {
		b.WriteString("  " + common.HandleStyle.Render(u.Email) + "\n")
	}
	avatar := u.Avatar
	if avatar == "" {
		avatar = common.GenerateAvatarURL(u.DisplayName())
	}
	b.WriteString("  " + common.MetadataStyle.Render(avatar) + "\n\n")

	posts := m.profile.posts.Posts()
	switch {
	case m.profile.loading && len(posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.profile.err != nil && len(posts) == 0:
		b.WriteString(common.ErrorStyle.Render("  Failed to load posts: "+m.profile.err.Error()) + "\n")
	case len(posts) == 0:
		b.WriteString(common.MetadataStyle.Render("  No posts yet.") + "\n")
	default:
		visible := max(m.visibleCount()-1, 1)
		start := 0
		if m.profile.cursor >= visible {
			start = m.profile.cursor - visible + 1
		}
		end := min(start+visible, len(posts))
		for i := start; i < end; i++ {
			b.WriteString(m.renderPostBox(posts[i], i == m.profile.cursor) + "\n")
		}
	}
	if m.profile.loadingMore {
		b.WriteString(fmt.Sprintf("  %s Loading more...\n", m.spinner.View()))
	}

	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) followBadge() string {
	switch {
	case m.profile.own:
		return ""
	case m.profile.followPending:
		return common.MetadataStyle.Render("  (updating...)")
	case !m.profile.followKnown:
		return ""
	case m.profile.following:
		return common.SuccessStyle.Render("  ✓ Following")
	}
	return common.MetadataStyle.Render("  Not following · f to follow")
}
