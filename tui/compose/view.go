package compose

import (
	"fmt"
	"strings"

	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("☁ SkyPoint"))
		b.WriteString("  " + m.context + "\n\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n")

		if m.errMsg != "" {
			b.WriteString("\n" + common.ErrorStyle.Render("  "+m.errMsg) + "\n")
		}

		hint := "  ctrl+d: submit • esc: cancel"
		if m.target == TargetPost {
			hint += fmt.Sprintf(" • %d/%d", Length(m.textarea.Value()), domain.MaxPostLength)
		}
		b.WriteString(common.StatusBarStyle.Render(hint))
		return b.String()
	}
	return ""
}
