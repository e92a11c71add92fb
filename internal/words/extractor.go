// Package words implements the tag detection and word extraction applied
// to incoming group messages.
package words

import (
	"regexp"
	"strings"
)

// DefaultTag is the marker a message must start with to be collected.
const DefaultTag = "#WordsToLearn"

// Extractor detects the collection tag in message text and extracts the
// candidate word lines that follow it.
type Extractor struct {
	tag     string
	lowTag  string
	startRe *regexp.Regexp
}

// NewExtractor creates an Extractor for the given tag. An empty tag falls
// back to DefaultTag.
func NewExtractor(tag string) *Extractor {
	if tag == "" {
		tag = DefaultTag
	}
	return &Extractor{
		tag:     tag,
		lowTag:  strings.ToLower(tag),
		startRe: regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(tag) + `\b`),
	}
}

// Tag returns the marker this extractor matches.
func (e *Extractor) Tag() string {
	return e.tag
}

// Extract returns the word lines of a tagged message, in their original
// order, or nil if the message is not a tagged word list.
//
// A message matches only when it begins with the tag (case-insensitive,
// ignoring leading whitespace). Every line containing the tag enables
// collection and is itself discarded; each later non-empty trimmed line
// becomes a word. No further validation is applied to the lines.
func (e *Extractor) Extract(text string) []string {
	if text == "" || !e.startRe.MatchString(text) {
		return nil
	}

	var collected []string
	collecting := false
	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		if strings.Contains(strings.ToLower(clean), e.lowTag) {
			collecting = true
			continue
		}
		if collecting {
			collected = append(collected, clean)
		}
	}

	return collected
}
