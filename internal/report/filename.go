package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const safeTopicMaxLen = 40

// safeTopic reduces a topic to a filesystem-safe slug: only alphanumerics,
// spaces, dashes and underscores survive, spaces become underscores, and
// the result is truncated.
func safeTopic(topic string) string {
	var sb strings.Builder
	for _, r := range topic {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	s := strings.TrimRight(sb.String(), " ")
	s = strings.ReplaceAll(s, " ", "_")
	if len(s) > safeTopicMaxLen {
		s = s[:safeTopicMaxLen]
	}
	return s
}

// exportBasename builds "<prefix>_<safe topic>_<unix ts>".
func exportBasename(prefix, topic string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d", prefix, safeTopic(topic), now.Unix())
}
