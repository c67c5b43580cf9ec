package seoedit

import (
	"regexp"
	"strings"
)

// Readability levels assigned by ReadabilityLevel.
const (
	ReadabilityEasy      = "easy"
	ReadabilityModerate  = "moderate"
	ReadabilityDifficult = "difficult"
)

var sentenceDelimiter = regexp.MustCompile(`[.!?]+`)

// Metrics holds the scalar scores derived from page content.
//
// The readability score is a heuristic proxy (sentences per hundred words),
// not a standard readability formula.
type Metrics struct {
	WordCount        int
	ReadabilityScore float64
	ReadabilityLevel string
}

// ComputeMetrics scores content. Words are whitespace-delimited tokens and
// sentences are the segments left after splitting on runs of '.', '!' or
// '?', a trailing empty segment included. The score is 0 for empty content.
func ComputeMetrics(content string) Metrics {
	words := len(strings.Fields(content))

	var score float64
	if words > 0 {
		sentences := len(sentenceDelimiter.Split(content, -1))
		score = float64(sentences) / float64(words) * 100
	}

	return Metrics{
		WordCount:        words,
		ReadabilityScore: score,
		ReadabilityLevel: ReadabilityLevel(score),
	}
}

// ReadabilityLevel buckets a readability score.
func ReadabilityLevel(score float64) string {
	switch {
	case score > 30:
		return ReadabilityEasy
	case score > 15:
		return ReadabilityModerate
	default:
		return ReadabilityDifficult
	}
}

// Apply copies the metrics onto s.
func (m Metrics) Apply(s *SiteData) {
	s.WordCount = m.WordCount
	s.ReadabilityScore = m.ReadabilityScore
	s.ReadabilityLevel = m.ReadabilityLevel
}
