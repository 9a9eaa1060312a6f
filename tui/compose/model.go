package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"

	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// Target is what the composed text becomes.
type Target int

const (
	TargetPost Target = iota
	TargetComment
)

// --- Messages ---

// DoneMsg is sent when composing is complete (submit, cancel or failure).
type DoneMsg struct {
	Target   Target
	Content  string // Empty if cancelled
	PostID   string // Comment target post
	ParentID string // Reply target comment, empty for top-level comments
	Err      error
}

// Cancelled reports whether the user backed out without submitting.
func (m DoneMsg) Cancelled() bool { return m.Err == nil && m.Content == "" }

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode     mode
	target   Target
	editor   *editor.EnvEditor
	textarea textarea.Model // Only used in inline mode
	postID   string
	parentID string
	context  string // Shown above the input, e.g. "Replying to @ann"
	status   string
	errMsg   string
}

// NewPost creates a compose model for a new post.
func NewPost(ed *editor.EnvEditor, inline bool) Model {
	m := Model{target: TargetPost, editor: ed, context: "New post"}
	return m.withMode(inline, "What's on your mind?")
}

// NewComment creates a compose model for a comment on postID. A non-empty
// parentID makes it a reply to that comment.
func NewComment(ed *editor.EnvEditor, postID, parentID, context string, inline bool) Model {
	m := Model{
		target:   TargetComment,
		editor:   ed,
		postID:   postID,
		parentID: parentID,
		context:  context,
	}
	return m.withMode(inline, "Write a comment...")
}

func (m Model) withMode(inline bool, placeholder string) Model {
	if !inline {
		m.mode = editorMode
		m.status = "Opening editor..."
		return m
	}
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 0 // Graphemes are counted on submit instead.
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.Focus()
	m.mode = inlineMode
	m.textarea = ta
	return m
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.ExecProcess to
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	if m.editor == nil {
		return done(m.result("", errors.New("no editor configured")))
	}
	cmd, tmpPath, err := m.editor.Cmd("", m.context)
	if err != nil {
		return done(m.result("", fmt.Errorf("preparing editor: %w", err)))
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(m.result("", fmt.Errorf("editor: %w", msg.err)))
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(m.result("", err))
		}
		if content == "" {
			return m, done(m.result("", nil)) // Cancel
		}
		if err := m.validate(content); err != nil {
			return m, done(m.result("", err))
		}
		return m, done(m.result(content, nil))

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(m.result("", nil)) // Cancel.

		case "ctrl+d", "ctrl+s":
			content := strings.TrimSpace(m.textarea.Value())
			if err := m.validate(content); err != nil {
				m.errMsg = ValidationMessage(err)
				return m, nil
			}
			return m, done(m.result(content, nil))
		}

		m.errMsg = ""
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) validate(content string) error {
	if m.target == TargetPost {
		return ValidatePost(content)
	}
	if strings.TrimSpace(content) == "" {
		return domain.ErrEmptyComment
	}
	return nil
}

func (m Model) result(content string, err error) DoneMsg {
	return DoneMsg{
		Target:   m.target,
		Content:  content,
		PostID:   m.postID,
		ParentID: m.parentID,
		Err:      err,
	}
}

// Length counts content the way the post limit does: trimmed grapheme clusters.
func Length(content string) int {
	return uniseg.GraphemeClusterCount(strings.TrimSpace(content))
}

// ValidatePost checks post content before any network call.
func ValidatePost(content string) error {
	n := Length(content)
	switch {
	case n == 0:
		return domain.ErrEmptyPost
	case n > domain.MaxPostLength:
		return domain.ErrPostTooLong
	}
	return nil
}

// ValidationMessage returns the user-facing text for a compose validation
// error, or "" for any other error.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyPost):
		return "Post content cannot be empty"
	case errors.Is(err, domain.ErrPostTooLong):
		return fmt.Sprintf("Post content cannot exceed %d characters", domain.MaxPostLength)
	case errors.Is(err, domain.ErrEmptyComment):
		return "Comment cannot be empty"
	}
	return ""
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
