package matcher

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// MinScore is the lowest score a record needs before its answer is used
const MinScore = 3

// Keyword weights
const (
	substringWeight = 2
	exactWeight     = 3
	partialWeight   = 1
	questionWeight  = 1
	categoryWeight  = 2
)

// categoryTriggers maps the category tags that carry a scoring boost to their trigger pattern
var categoryTriggers = map[string]*regexp.Regexp{
	"fees_tuition":     regexp.MustCompile(`(fee|cost|price|tuition|money|payment)`),
	"admission":        regexp.MustCompile(`(admission|apply|requirement|gpa|eligibility)`),
	"programs_courses": regexp.MustCompile(`(program|course|degree|cse|bba|engineering)`),
	"contact_location": regexp.MustCompile(`(contact|phone|email|address|location)`),
}

// Result is the answer chosen for one question
type Result struct {
	Answer     string
	Score      int
	Category   string
	Method     types.Method
	Confidence float64
	Intent     Intent
}

// Matcher scores questions against knowledge base records
type Matcher struct {
	clock func() time.Time
}

// Option configures a Matcher
type Option func(*Matcher)

// WithClock replaces the clock used by the time shortcut
func WithClock(clock func() time.Time) Option {
	return func(m *Matcher) {
		m.clock = clock
	}
}

// New creates a Matcher
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Respond answers a raw question: intent shortcuts first, then the best
// scoring record, then the canned fallback.
func (m *Matcher) Respond(query string, records []types.FaqRecord) Result {
	input := Normalize(query)

	if intent, text := m.DetectIntent(input); intent != IntentNone {
		return Result{Answer: text, Method: types.MethodIntent, Confidence: 1, Intent: intent}
	}

	return m.Match(input, records)
}

// Match scores normalized input against records, skipping the intent shortcuts
func (m *Matcher) Match(input string, records []types.FaqRecord) Result {
	tokens := Tokens(input)

	bestScore := 0
	var best *types.FaqRecord
	for i := range records {
		score := scoreTokens(input, tokens, records[i])
		if score > bestScore {
			bestScore = score
			best = &records[i]
		}
	}

	if best != nil && bestScore >= MinScore {
		return Result{
			Answer:     best.Answer,
			Score:      bestScore,
			Category:   best.PrimaryCategory(),
			Method:     types.MethodKeywordMatch,
			Confidence: confidence(bestScore),
		}
	}

	hint := ""
	if best != nil {
		hint = best.PrimaryCategory()
	}
	return Result{
		Answer:   Fallback(input),
		Score:    bestScore,
		Category: hint,
		Method:   types.MethodFallback,
	}
}

// Score computes the match score of normalized input against one record
func Score(input string, record types.FaqRecord) int {
	return scoreTokens(input, Tokens(input), record)
}

func scoreTokens(input string, tokens []string, record types.FaqRecord) int {
	score := 0

	for _, kw := range record.Keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(input, kw) {
			score += substringWeight
		}
		for _, tok := range tokens {
			if tok == kw {
				score += exactWeight
			} else if containsEither(tok, kw) {
				score += partialWeight
			}
		}
	}

	questionTokens := Tokens(strings.ToLower(record.Question))
	for _, tok := range tokens {
		if len([]rune(tok)) > 3 && slices.Contains(questionTokens, tok) {
			score += questionWeight
		}
	}

	for _, category := range record.Categories {
		if trigger, ok := categoryTriggers[category]; ok && trigger.MatchString(input) {
			score += categoryWeight
		}
	}

	return score
}

func confidence(score int) float64 {
	c := float64(score) / 10
	if c > 1 {
		return 1
	}
	return c
}
