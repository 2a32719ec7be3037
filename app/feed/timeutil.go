package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Seconds is a parsed episode duration. Valid is false when the source
// string held neither an H:MM:SS triple nor a plain integer.
type Seconds struct {
	Value int64
	Valid bool
}

// DateKey is the unpadded UTC "YYYY-M-D" form of a publish date, used as
// half of the persisted dedup key.
type DateKey struct {
	Value string
	Valid bool
}

func (d DateKey) String() string {
	if !d.Valid {
		return "Invalid Date"
	}
	return d.Value
}

const securePrefix = "https://"
const insecurePrefix = "http://"

// ParseDurationSeconds reads "H:MM:SS" or a plain integer. Each number is
// its leading digit run, so "1:30" reads as 1 and "12.5" as 12.
func ParseDurationSeconds(s string) Seconds {
	s = strings.TrimSpace(s)

	parts := strings.Split(s, ":")
	if len(parts) >= 3 && parts[0] != "" && parts[1] != "" && parts[2] != "" {
		hours, okH := leadingInt(parts[0])
		minutes, okM := leadingInt(parts[1])
		seconds, okS := leadingInt(parts[2])
		if !okH || !okM || !okS {
			return Seconds{}
		}
		return nonNegative(hours*3600 + minutes*60 + seconds)
	}

	value, ok := leadingInt(s)
	if !ok {
		return Seconds{}
	}
	return nonNegative(value)
}

// leadingInt parses an optional sign and the digits that follow it,
// ignoring anything after the first non-digit.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)

	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	value, err := strconv.ParseInt(sign+s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func nonNegative(v int64) Seconds {
	if v < 0 {
		return Seconds{}
	}
	return Seconds{Value: v, Valid: true}
}

// ExtractBasename returns the last path segment of p up to its first dot.
func ExtractBasename(p string) string {
	if p == "" {
		return ""
	}
	segments := strings.Split(p, "/")
	name := segments[len(segments)-1]
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// ExtractExtension returns everything after the last dot in p, or p itself
// when it has no dot.
func ExtractExtension(p string) string {
	if i := strings.LastIndex(p, "."); i >= 0 {
		return p[i+1:]
	}
	return p
}

func ParsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty publish date")
	}

	t, err := dateparse.ParseIn(numericZone(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse publish date %q: %w", s, err)
	}
	return t, nil
}

// RFC 822 zone names. Go only knows the offset of a zone name that matches
// the local zone and reads any other as UTC.
var rfc822Zones = map[string]string{
	"UT":  "+0000",
	"GMT": "+0000",
	"EST": "-0500",
	"EDT": "-0400",
	"CST": "-0600",
	"CDT": "-0500",
	"MST": "-0700",
	"MDT": "-0600",
	"PST": "-0800",
	"PDT": "-0700",
}

// numericZone replaces a trailing RFC 822 zone name with its offset.
func numericZone(s string) string {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return s
	}
	if offset, ok := rfc822Zones[s[i+1:]]; ok {
		return s[:i+1] + offset
	}
	return s
}

func FormatUTCDate(s string) DateKey {
	t, err := ParsePubDate(s)
	if err != nil {
		return DateKey{}
	}
	return formatDateKey(t)
}

func formatDateKey(t time.Time) DateKey {
	t = t.UTC()
	return DateKey{
		Value: fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day()),
		Valid: true,
	}
}

// UpgradeScheme rewrites a leading "http://" to "https://". Anything else,
// including URLs that mention http:// later on, is returned unchanged.
func UpgradeScheme(u string) string {
	if rest, ok := strings.CutPrefix(u, insecurePrefix); ok {
		return securePrefix + rest
	}
	return u
}
