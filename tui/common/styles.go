package common

import "github.com/charmbracelet/lipgloss"

const (
	accentColor = lipgloss.Color("#1976D2")
	mutedColor  = lipgloss.Color("#6E738D")
	errorColor  = lipgloss.Color("#ED8796")
	okColor     = lipgloss.Color("#A6DA95")
)

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Padding(1, 2, 0, 1)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true).
			MarginLeft(1)

	// AuthorStyle styles author display names.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// HandleStyle styles @handles next to display names.
	HandleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// OwnBadgeStyle highlights posts that belong to the user.
	OwnBadgeStyle = lipgloss.NewStyle().
			Foreground(okColor).
			Bold(true).
			MarginLeft(1)

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// ContentStyle styles post and comment text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// MetadataStyle styles counters under a post.
	MetadataStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// UpvoteActiveStyle marks the caller's upvote.
	UpvoteActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F5A97F")).
				Bold(true)

	// DownvoteActiveStyle marks the caller's downvote.
	DownvoteActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8AADF4")).
				Bold(true)

	// SelectedStyle highlights the currently selected post.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	// UnselectedStyle gives unselected posts a subtle border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// CursorStyle marks the selected line in flat lists such as comment trees.
	CursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(1, 0, 0, 0)

	// BannerStyle styles the dismissible error banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E2030")).
			Background(errorColor).
			Padding(0, 1)

	// DialogStyle frames modal dialogs and forms.
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	// LabelStyle styles form field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B8C0E0")).
			Bold(true)

	// ConfirmStyle styles confirmation prompts.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(okColor).
			Bold(true)
)
