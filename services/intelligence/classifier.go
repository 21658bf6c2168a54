package intelligence

import (
	"math"
	"strings"
)

// PatternClassifier scores every intent by counting regex hits in the message.
type PatternClassifier struct {
	extractor *Extractor
}

// NewPatternClassifier returns the default classifier. Entities come from extractor.
func NewPatternClassifier(extractor *Extractor) *PatternClassifier {
	if extractor == nil {
		extractor = NewExtractor()
	}
	return &PatternClassifier{extractor: extractor}
}

// Extractor exposes the entity extractor so the catalog can be reloaded.
func (c *PatternClassifier) Extractor() *Extractor {
	return c.extractor
}

// Classify picks the intent with the strictly highest hit count. A zero score yields
// IntentUnknown.
func (c *PatternClassifier) Classify(text string) Classification {
	scores := scoreIntents(strings.ToLower(text))

	best, bestScore := IntentUnknown, 0
	for _, intent := range IntentOrder {
		if score := scores[intent]; score > bestScore {
			best, bestScore = intent, score
		}
	}

	return Classification{
		Intent:     best,
		Confidence: confidenceFor(bestScore),
		Entities:   c.extractor.Extract(text),
	}
}

// scoreIntents returns the regex hit count of every intent in lower.
func scoreIntents(lower string) map[Intent]int {
	scores := make(map[Intent]int, len(intentRules))
	for _, rule := range intentRules {
		for _, re := range rule.patterns {
			scores[rule.intent] += len(re.FindAllStringIndex(lower, -1))
		}
	}
	return scores
}

func confidenceFor(score int) float64 {
	if score <= 0 {
		return UnknownConfidence
	}
	return math.Min(float64(score)*ConfidencePerHit, MaxConfidence)
}
