package intelligence

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"greengarden/models"
)

// EntityKind names a type of extracted span.
type EntityKind string

const (
	EntityDate           EntityKind = "date"
	EntityProcessedDate  EntityKind = "processed_date"
	EntityTime           EntityKind = "time"
	EntityNumber         EntityKind = "number"
	EntityPhone          EntityKind = "phone"
	EntityEmail          EntityKind = "email"
	EntityName           EntityKind = "name"
	EntityFoodItem       EntityKind = "food_item"
	EntitySpecialRequest EntityKind = "special_request"
)

// Entities maps a kind to its distinct matches in first-seen order.
// Kinds without matches are absent.
type Entities map[EntityKind][]string

// First returns the first value extracted for kind.
func (e Entities) First(kind EntityKind) (string, bool) {
	values := e[kind]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Has reports whether at least one value was extracted for kind.
func (e Entities) Has(kind EntityKind) bool {
	return len(e[kind]) > 0
}

// Customer collects the name, phone and email entities into a CustomerInfo.
func (e Entities) Customer() models.CustomerInfo {
	var info models.CustomerInfo
	info.Name, _ = e.First(EntityName)
	info.Phone, _ = e.First(EntityPhone)
	info.Email, _ = e.First(EntityEmail)
	return info
}

var foodStopWords = map[string]bool{"with": true, "and": true, "the": true}

// Extractor pulls typed entities out of free text. Food item patterns are rebuilt
// from the catalog through SetCatalog.
type Extractor struct {
	mu           sync.RWMutex
	foodPatterns []*regexp.Regexp
	now          func() time.Time
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithClock sets the anchor used to resolve relative dates.
func WithClock(now func() time.Time) ExtractorOption {
	return func(x *Extractor) { x.now = now }
}

// NewExtractor returns an Extractor with no catalog loaded.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	x := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// SetCatalog replaces the food item patterns. Every item contributes a whole-word
// pattern for its full name and, for multi-word names, one per significant word.
func (x *Extractor) SetCatalog(items []models.MenuItem) {
	var patterns []*regexp.Regexp
	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if name == "" {
			continue
		}
		patterns = append(patterns, wholeWord(name))

		parts := strings.Fields(name)
		if len(parts) < 2 {
			continue
		}
		for _, part := range parts {
			if len(part) > 3 && !foodStopWords[part] {
				patterns = append(patterns, wholeWord(part))
			}
		}
	}

	x.mu.Lock()
	x.foodPatterns = patterns
	x.mu.Unlock()
}

func wholeWord(s string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s) + `\b`)
}

// Extract returns every entity found in text. Matching is case-insensitive; values are
// lower-cased except for names and special requests, which keep the guest's spelling.
func (x *Extractor) Extract(text string) Entities {
	entities := make(Entities)

	for _, ce := range compiledEntities {
		values := collect(text, ce.patterns, ce.group, ce.keepCase)
		if ce.kind == EntityName {
			values = trimNames(values)
		}
		if len(values) > 0 {
			entities[ce.kind] = values
		}
	}

	x.mu.RLock()
	food := x.foodPatterns
	x.mu.RUnlock()
	if values := collect(text, food, 0, false); len(values) > 0 {
		entities[EntityFoodItem] = values
	}

	if dates, ok := entities[EntityDate]; ok {
		today := x.now()
		processed := make([]string, 0, len(dates))
		for _, raw := range dates {
			processed = append(processed, ResolveDate(raw, today))
		}
		entities[EntityProcessedDate] = processed
	}

	return entities
}

// nameTails are words the name pattern can swallow after a one-word name.
var nameTails = map[string]bool{
	"and": true, "my": true, "phone": true, "email": true, "at": true,
	"from": true, "here": true, "calling": true, "number": true, "or": true,
}

func trimNames(values []string) []string {
	out := values[:0]
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if first, last, ok := strings.Cut(v, " "); ok && nameTails[strings.ToLower(last)] {
			v = first
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func collect(text string, patterns []*regexp.Regexp, group int, keepCase bool) []string {
	var values []string
	seen := make(map[string]bool)
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if group >= len(m) {
				continue
			}
			v := strings.TrimSpace(m[group])
			if !keepCase {
				v = strings.ToLower(v)
			}
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
