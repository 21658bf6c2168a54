// File: services/menu/matcher.go
package menu

import (
	"math"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"greengarden/models"
)

// Match confidences for each stage of the cascade.
const (
	ExactConfidence      = 1.0
	NormalizedConfidence = 0.9
	LooseConfidence      = 0.7
	KeywordThreshold     = 0.2
)

var (
	wordRe           = regexp.MustCompile(`\b\w+\b`)
	quantityFirstRe  = regexp.MustCompile(`(\d+)\s+([a-zA-Z\s]+)`)
	quantityLastRe   = regexp.MustCompile(`([a-zA-Z\s]+)\s+(\d+)`)
	keywordStopWords = map[string]bool{"with": true, "and": true, "the": true}
)

// Matcher resolves free text to catalog items. The catalog is fixed for the
// matcher's lifetime; build a new Matcher to reload it.
type Matcher struct {
	items   []models.MenuItem
	names   []string // lower-cased, parallel to items
	keyword map[string][]int // significant word -> indexes into items

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithRand sets the random source used for suggestions.
func WithRand(r *rand.Rand) Option {
	return func(m *Matcher) { m.rng = r }
}

// NewMatcher indexes catalog.
func NewMatcher(catalog []models.MenuItem, opts ...Option) *Matcher {
	m := &Matcher{
		keyword: make(map[string][]int),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(m)
	}

	seenNames := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		name := strings.ToLower(item.Name)
		if seenNames[name] {
			continue
		}
		seenNames[name] = true

		idx := len(m.items)
		m.items = append(m.items, item)
		m.names = append(m.names, name)

		for _, w := range strings.Fields(name) {
			if len(w) > 3 && !keywordStopWords[w] {
				m.keyword[w] = append(m.keyword[w], idx)
			}
		}
	}
	return m
}

// Catalog returns the indexed items in catalog order.
func (m *Matcher) Catalog() []models.MenuItem {
	out := make([]models.MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

// IdentifyItems runs the matching cascade over text and then applies any quantities
// written next to the matched names. Each stage runs only when the previous one
// matched nothing.
func (m *Matcher) IdentifyItems(text string) []models.OrderItem {
	msg := strings.ToLower(text)
	found := &matchSet{index: make(map[int]int)}

	m.matchExact(msg, found)
	if found.empty() {
		m.matchNormalized(msg, found)
	}
	if found.empty() {
		m.matchLoose(msg, found)
	}
	if found.empty() {
		m.matchKeywords(msg, found)
	}
	if found.empty() {
		return nil
	}

	m.applyQuantities(msg, found)
	return found.items
}

func (m *Matcher) matchExact(msg string, found *matchSet) {
	for i, name := range m.names {
		if strings.Contains(msg, name) {
			found.put(m.items[i], ExactConfidence)
		}
	}
}

func (m *Matcher) matchNormalized(msg string, found *matchSet) {
	cleanMsg := clean(msg)
	if strings.TrimSpace(cleanMsg) == "" {
		return
	}
	for i, name := range m.names {
		cleanName := clean(name)
		if strings.TrimSpace(cleanName) == "" {
			continue
		}
		if strings.Contains(cleanMsg, cleanName) || strings.Contains(cleanName, cleanMsg) {
			found.put(m.items[i], NormalizedConfidence)
			return
		}
	}
}

func (m *Matcher) matchLoose(msg string, found *matchSet) {
	for _, w := range uniqueWords(msg) {
		if utf8.RuneCountInString(w) < 4 {
			continue
		}
		for i, name := range m.names {
			if strings.Contains(name, w) {
				found.put(m.items[i], LooseConfidence)
				break
			}
		}
	}
}

func (m *Matcher) matchKeywords(msg string, found *matchSet) {
	words := uniqueWords(msg)
	msgWords := make(map[string]bool, len(words))
	for _, w := range words {
		msgWords[w] = true
	}

	for _, w := range words {
		for _, idx := range m.keyword[w] {
			item := m.items[idx]
			if found.has(item.ID) {
				continue
			}
			itemWords := uniqueWords(m.names[idx])
			if len(itemWords) == 0 {
				continue
			}
			shared := 0
			for _, iw := range itemWords {
				if msgWords[iw] {
					shared++
				}
			}
			confidence := float64(shared) / float64(len(itemWords))
			if confidence > KeywordThreshold {
				found.put(item, confidence)
			}
		}
	}
}

// applyQuantities scans "<n> <words>" and "<words> <n>" spans. A span sets the
// quantity of the first matched item whose name overlaps it in either direction.
func (m *Matcher) applyQuantities(msg string, found *matchSet) {
	for _, re := range []*regexp.Regexp{quantityFirstRe, quantityLastRe} {
		for _, sub := range re.FindAllStringSubmatch(msg, -1) {
			qtyText, span := sub[1], sub[2]
			if re == quantityLastRe {
				qtyText, span = sub[2], sub[1]
			}
			qty, err := strconv.Atoi(qtyText)
			if err != nil || qty <= 0 || strings.TrimSpace(span) == "" {
				continue
			}
			for i := range found.items {
				name := strings.ToLower(found.items[i].Name)
				if strings.Contains(name, span) || strings.Contains(span, name) {
					found.items[i].Quantity = qty
					break
				}
			}
		}
	}
}

// Total is the order value rounded to cents.
func (m *Matcher) Total(items []models.OrderItem) float64 {
	return Total(items)
}

// Total is the sum of price times quantity rounded to two decimals. Line values are
// summed in ascending order so the result does not depend on item order.
func Total(items []models.OrderItem) float64 {
	lines := make([]float64, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.Price*float64(it.Quantity))
	}
	sort.Float64s(lines)

	var sum float64
	for _, v := range lines {
		sum += v
	}
	return math.Round(sum*100) / 100
}

// Suggest returns up to max items. Items whose names contain one of the keywords
// come first, in keyword then catalog order; the rest is a random sample.
func (m *Matcher) Suggest(keywords []string, max int) []models.MenuItem {
	if max <= 0 || len(m.items) == 0 {
		return nil
	}

	picked := make([]models.MenuItem, 0, max)
	taken := make(map[int]bool)

outer:
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for i, name := range m.names {
			if len(picked) >= max {
				break outer
			}
			if strings.Contains(name, kw) && !taken[i] {
				taken[i] = true
				picked = append(picked, m.items[i])
			}
		}
	}

	if len(picked) < max {
		var rest []int
		for i := range m.items {
			if !taken[i] {
				rest = append(rest, i)
			}
		}
		for _, i := range m.sample(rest, max-len(picked)) {
			picked = append(picked, m.items[i])
		}
	}
	return picked
}

func (m *Matcher) sample(idx []int, n int) []int {
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]int, len(idx))
	copy(out, idx)

	m.mu.Lock()
	m.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	m.mu.Unlock()
	return out[:n]
}

// matchSet keeps matched items unique by id in insertion order.
type matchSet struct {
	items []models.OrderItem
	index map[int]int
}

func (s *matchSet) empty() bool { return len(s.items) == 0 }

func (s *matchSet) has(id int) bool {
	_, ok := s.index[id]
	return ok
}

func (s *matchSet) put(item models.MenuItem, confidence float64) {
	line := models.OrderItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   1,
		Confidence: confidence,
	}
	if i, ok := s.index[item.ID]; ok {
		s.items[i] = line
		return
	}
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, line)
}

func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func uniqueWords(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, w := range wordRe.FindAllString(s, -1) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}
