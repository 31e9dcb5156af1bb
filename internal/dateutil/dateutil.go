// Package dateutil formats post dates for display.
//
// Display formats use the tokens YYYY, YY, MMMM, MMM, MM, M, DD and D.
// Text inside brackets is copied verbatim, so "[Posted] MMM D" renders as
// "Posted Mar 5". Anything else outside brackets is kept as is.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date")
)

// MaxDateFormatLength bounds a display format.
const MaxDateFormatLength = 50

// DefaultDisplayFormat is used when no display format is configured.
const DefaultDisplayFormat = "MMMM D, YYYY"

// isoLayout is the layout of dates stored in post front matter.
const isoLayout = "2006-01-02"

// DatePresets are named shortcuts accepted wherever a format is.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokens is ordered so that a longer token wins over its prefix.
var tokens = strings.NewReplacer(
	"YYYY", "2006",
	"MMMM", "January",
	"MMM", "Jan",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"M", "1",
	"D", "2",
)

// segment is either literal text or a Go time layout fragment.
type segment struct {
	text   string
	layout bool
}

// Layout is a compiled display format. The zero value is not usable.
type Layout struct {
	segments []segment
}

// Compile parses a display format or preset name.
// An empty format selects DefaultDisplayFormat.
func Compile(format string) (*Layout, error) {
	if format == "" {
		format = DefaultDisplayFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	if len(format) > MaxDateFormatLength {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	l := &Layout{}
	for rest := format; rest != ""; {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			l.segments = append(l.segments, tokenSegments(rest)...)
			break
		}
		l.segments = append(l.segments, tokenSegments(rest[:open])...)
		closing := strings.IndexByte(rest[open:], ']')
		if closing < 0 {
			return nil, fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, format)
		}
		if closing > 1 {
			l.segments = append(l.segments, segment{text: rest[open+1 : open+closing]})
		}
		rest = rest[open+closing+1:]
	}
	return l, nil
}

// tokenSegments splits unbracketed text into token runs and the literal
// characters between them, so literal letters never reach time.Format.
func tokenSegments(s string) []segment {
	var out []segment
	for s != "" {
		i := strings.IndexAny(s, "YMD")
		if i < 0 {
			return append(out, segment{text: s})
		}
		if i > 0 {
			out = append(out, segment{text: s[:i]})
		}
		j := i
		for j < len(s) && strings.IndexByte("YMD", s[j]) >= 0 {
			j++
		}
		out = append(out, segment{text: tokens.Replace(s[i:j]), layout: true})
		s = s[j:]
	}
	return out
}

// Format renders t.
func (l *Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, seg := range l.segments {
		if seg.layout {
			b.WriteString(t.Format(seg.text))
		} else {
			b.WriteString(seg.text)
		}
	}
	return b.String()
}

// FormatDate renders a YYYY-MM-DD post date. An empty date yields "".
func (l *Layout) FormatDate(date string) (string, error) {
	if date == "" {
		return "", nil
	}
	t, err := time.Parse(isoLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return l.Format(t), nil
}

// FormatDate renders a YYYY-MM-DD post date with format, which may be a
// preset name or a token string.
func FormatDate(date, format string) (string, error) {
	l, err := Compile(format)
	if err != nil {
		return "", err
	}
	return l.FormatDate(date)
}
