package researcher

import (
	"fmt"
	"strings"
)

const briefSystem = `You are a research planner. Given a topic, write a focused research brief: what question is being answered, what aspects matter, and what a complete answer looks like. Keep it under 200 words. Respond with the brief only.`

const supervisorSystem = `You are a research supervisor. You direct web research on a topic by proposing concrete research directions.

Given the brief and the notes gathered so far, either:
- propose up to %d new research directions, one per line, each a specific searchable question, or
- reply with exactly RESEARCH_COMPLETE if the notes already cover the brief.

Respond with the directions or RESEARCH_COMPLETE only, no commentary.`

const unitSystem = `You are a research analyst. Summarize what the search results below establish about the research question. Record concrete facts, figures and named sources. If the results are irrelevant, say so briefly. Respond with the notes only.`

const compressSystem = `You are an editor. Condense the research notes below, preserving every distinct fact, figure, named source and disagreement. Remove repetition and filler. Respond with the condensed notes only.`

const reportSystem = `You are a research writer. Using the brief and notes below, write a thorough, well-structured markdown report: a title, an executive summary, thematic sections with headings, and a conclusion. Cite sources inline by name or URL where the notes identify them. Respond with the report only.`

func briefPrompt(topic string) string {
	return fmt.Sprintf("Topic: %s", topic)
}

func supervisorPrompt(brief string, notes []string) string {
	var sb strings.Builder
	sb.WriteString("Research brief:\n")
	sb.WriteString(brief)
	sb.WriteString("\n\nNotes gathered so far:\n")
	if len(notes) == 0 {
		sb.WriteString("(none yet)\n")
	}
	for i, n := range notes {
		sb.WriteString(fmt.Sprintf("--- note %d ---\n%s\n", i+1, n))
	}
	return sb.String()
}

func unitPrompt(direction, results string) string {
	return fmt.Sprintf("Research question: %s\n\n%s", direction, results)
}

func compressPrompt(notes []string) string {
	var sb strings.Builder
	sb.WriteString("Research notes:\n\n")
	for i, n := range notes {
		sb.WriteString(fmt.Sprintf("--- note %d ---\n%s\n\n", i+1, n))
	}
	return sb.String()
}

func reportPrompt(topic, brief string, notes []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic: %s\n\nResearch brief:\n%s\n\nResearch notes:\n\n", topic, brief))
	for i, n := range notes {
		sb.WriteString(fmt.Sprintf("--- note %d ---\n%s\n\n", i+1, n))
	}
	return sb.String()
}

const researchComplete = "RESEARCH_COMPLETE"

// parseDirections splits a supervisor response into individual research
// directions, stripping list markers. An empty slice means the supervisor
// declared research complete or returned nothing usable.
func parseDirections(response string, max int) []string {
	if strings.Contains(response, researchComplete) {
		return nil
	}

	var directions []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789.) ")
		if line == "" {
			continue
		}
		directions = append(directions, line)
		if len(directions) >= max {
			break
		}
	}
	return directions
}
