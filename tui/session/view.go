package session

import (
	"strings"

	"github.com/skypointsocial/skypoint/tui/common"
)

var modeTitles = map[Mode]string{
	ModeLogin:    "Sign in",
	ModeRegister: "Create account",
	ModeOAuth:    "Sign in with Google",
}

// View renders the active form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("☁ SkyPoint"))
	b.WriteString(common.TaglineStyle.Render("Social, in your terminal"))
	b.WriteString("\n\n")

	var form strings.Builder
	form.WriteString(common.LabelStyle.Render(modeTitles[m.mode]) + "\n\n")
	if m.banner != "" {
		form.WriteString(common.BannerStyle.Render(m.banner) + "\n\n")
	}
	for i, f := range m.fields {
		label := f.label
		if i == m.focus {
			label = common.CursorStyle.Render(label)
		} else {
			label = common.LabelStyle.Render(label)
		}
		form.WriteString(label + "\n")
		form.WriteString(f.input.View() + "\n")
		if msg := m.fieldErrs[f.key]; msg != "" {
			form.WriteString(common.ErrorStyle.Render("  "+msg) + "\n")
		}
		form.WriteString("\n")
	}
	if m.submitting {
		form.WriteString(m.spinner.View() + " Signing in...\n")
	}
	b.WriteString(common.DialogStyle.Render(strings.TrimRight(form.String(), "\n")))

	hints := []string{common.HelpLine(m.keys.Next, m.keys.Submit)}
	if m.mode == ModeLogin {
		hints = append(hints, common.HelpLine(m.keys.Register, m.keys.OAuth))
	} else {
		hints = append(hints, common.HelpLine(m.keys.Back))
	}
	hints = append(hints, "ctrl+c: quit")
	b.WriteString("\n" + common.StatusBarStyle.Render("  "+strings.Join(hints, " • ")))
	return b.String()
}
