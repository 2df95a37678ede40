package usecase

import (
	"regexp"
	"strings"
)

// Model replies occasionally leak internal handoff markers emitted by
// upstream prompt templates. They are stripped before the reply leaves
// the pipeline.
var (
	handoffRe    = regexp.MustCompile(`(?i)\btransfer(?:red)?_to_[a-z_]+\b`)
	whitespaceRe = regexp.MustCompile(`[ \t]{2,}`)
)

func sanitizeReply(text string) string {
	text = handoffRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
