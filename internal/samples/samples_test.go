package samples

import (
	"strings"
	"testing"
)

func TestForTopic(t *testing.T) {
	cases := []struct {
		topic string
		want  string
	}{
		{"The impact of AI on climate change research", "# AI Applications in Climate Change"},
		{"Climate adaptation strategies", "# AI Applications in Climate Change"},
		{"Quantum computing applications in cryptography", "# Quantum Computing"},
		{"Sustainable energy solutions", "# Quantum Computing"},
	}
	for _, tc := range cases {
		got := ForTopic(tc.topic)
		if !strings.HasPrefix(strings.TrimSpace(got), tc.want) {
			t.Errorf("ForTopic(%q) report does not start with %q", tc.topic, tc.want)
		}
	}
}

func TestReportsAreMarkdown(t *testing.T) {
	for _, topic := range []string{"ai", "quantum"} {
		report := ForTopic(topic)
		if !strings.Contains(report, "\n## ") {
			t.Errorf("report for %q has no section headings", topic)
		}
		if len(report) < 1000 {
			t.Errorf("report for %q suspiciously short: %d chars", topic, len(report))
		}
	}
}
