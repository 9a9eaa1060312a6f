package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $VISUAL or $EDITOR
// (fallback: "vi"). It does NOT run the editor itself; callers use
// tea.ExecProcess with the returned *exec.Cmd so Bubble Tea suspends raw
// terminal mode.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const (
	instructionOpen   = "<!--"
	instructionMarker = "-->"
)

func instructionComment(context string) string {
	var b strings.Builder
	b.WriteString(instructionOpen + "\nSkyPoint: ")
	if context == "" {
		b.WriteString("write your text below.")
	} else {
		// Usernames are user-controlled; a marker inside one would end the
		// comment early. "---->" collapses one step per pass.
		for strings.Contains(context, instructionMarker) {
			context = strings.ReplaceAll(context, instructionMarker, "->")
		}
		b.WriteString(context)
	}
	b.WriteString("\n\n- SAVE and EXIT to submit (e.g., :wq in vi).\n")
	b.WriteString("- Emptying the file cancels.\n")
	b.WriteString("- Posts are limited to 280 characters.\n")
	b.WriteString(instructionMarker + "\n\n")
	return b.String()
}

// Cmd prepares an *exec.Cmd for the editor and a temp file path. The file
// holds an instruction comment naming context (e.g. "Replying to @ann")
// followed by content.
func (e *EnvEditor) Cmd(content, context string) (*exec.Cmd, string, error) {
	editorCmd := strings.TrimSpace(os.Getenv("VISUAL"))
	if editorCmd == "" {
		editorCmd = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editorCmd == "" {
		editorCmd = "vi"
	}

	tmpFile, err := os.CreateTemp("", "skypoint-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructionComment(context) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	// Editors configured with flags ("code --wait") need splitting.
	fields := strings.Fields(editorCmd)
	args := append(fields[1:], tmpPath)
	return exec.Command(fields[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction comment, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if rest, ok := strings.CutPrefix(content, instructionOpen); ok {
		if _, body, found := strings.Cut(rest, instructionMarker); found {
			content = body
		}
	}
	return strings.TrimSpace(content), nil
}
