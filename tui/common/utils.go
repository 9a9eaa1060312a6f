package common

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

const avatarBase = "https://ui-avatars.com/api/"

// GenerateAvatarURL returns a generated avatar for name: its uppercased first
// character, or "?" when name is empty.
func GenerateAvatarURL(name string) string {
	initial := "?"
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name)); r != utf8.RuneError {
		initial = url.QueryEscape(string(unicode.ToUpper(r)))
	}
	return avatarBase + "?name=" + initial + "&background=1976d2&color=fff&size=128"
}

// TruncateText shortens s to at most max display cells, ending with "...".
func TruncateText(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= max {
		return s
	}
	return ansi.Truncate(s, max, "...")
}

// TimeAgo prefers the server-rendered relative time and falls back to a
// humanized createdAt.
func TimeAgo(serverTimeAgo string, createdAt, now time.Time) string {
	if s := strings.TrimSpace(serverTimeAgo); s != "" {
		return s
	}
	if createdAt.IsZero() {
		return ""
	}
	return humanize.RelTime(createdAt, now, "ago", "from now")
}

// ShortTime renders the distance from t to now compactly: "1m", "2h", "3d",
// "4mo", "5y". Anything under a minute reads "1m".
func ShortTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	if d < 0 {
		d = -d
	}
	const day = 24 * time.Hour
	switch {
	case d < 2*time.Minute:
		return "1m"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m"
	case d < day:
		return strconv.Itoa(int(d/time.Hour)) + "h"
	case d < 30*day:
		return strconv.Itoa(int(d/day)) + "d"
	case d < 365*day:
		return strconv.Itoa(int(d/(30*day))) + "mo"
	default:
		return strconv.Itoa(int(d/(365*day))) + "y"
	}
}

// FormatCount renders counters with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Plural returns "1 thing" or "N things".
func Plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}
