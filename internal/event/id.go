package event

import (
	"crypto/rand"
	"strings"
)

const (
	idMaxLen      = 60
	idSuffixLen   = 4
	suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateID derives a registry key from planner, event name and date:
// lowercase slug, runs of non-alphanumerics collapsed to single
// hyphens, plus a short random suffix so two identical bookings never
// collide. Result is capped at 60 characters.
func GenerateID(planner, eventName, eventDate string) string {
	slug := slugify(planner + "-" + eventName + "-" + eventDate)
	id := slug + "-" + randSuffix(idSuffixLen)
	if slug == "" {
		id = randSuffix(idSuffixLen)
	}
	if len(id) > idMaxLen {
		id = id[:idMaxLen]
	}
	return id
}

func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // swallows leading separators
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func randSuffix(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i, c := range buf {
		buf[i] = suffixCharset[int(c)%len(suffixCharset)]
	}
	return string(buf)
}
