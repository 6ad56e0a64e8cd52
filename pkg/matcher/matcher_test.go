package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/valentinpelus/faqbot/pkg/knowledge"
	"github.com/valentinpelus/faqbot/pkg/types"
)

const cseAnswer = "The tuition fee for the BSc in Computer Science and Engineering (CSE) program is BDT 70,000 per semester."

func TestRespondIntents(t *testing.T) {
	fixed := time.Date(2025, 3, 4, 14, 5, 6, 0, time.UTC)
	m := New(WithClock(func() time.Time { return fixed }))

	tests := []struct {
		input  string
		intent Intent
		want   string
	}{
		{input: "Hello", intent: IntentGreeting, want: GreetingText},
		{input: "  good morning, bot", intent: IntentGreeting, want: GreetingText},
		{input: "hey what is the CSE fee?", intent: IntentGreeting, want: GreetingText},
		{input: "so, how are you?", intent: IntentWellBeing, want: WellBeingText},
		{input: "what time is it", intent: IntentTime, want: "The current time is 3/4/2025, 2:05:06 PM."},
		{input: "ok thanks", intent: IntentFarewell, want: ClosingText},
		{input: "Goodbye!", intent: IntentFarewell, want: ClosingText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			for _, records := range [][]types.FaqRecord{nil, knowledge.Defaults()} {
				res := m.Respond(tt.input, records)
				assert.Equal(t, tt.want, res.Answer)
				assert.Equal(t, tt.intent, res.Intent)
				assert.Equal(t, types.MethodIntent, res.Method)
				assert.Equal(t, 1.0, res.Confidence)
			}
		})
	}
}

func TestRespondKeywordMatch(t *testing.T) {
	m := New()

	res := m.Respond("What is the tuition fee for CSE?", knowledge.Defaults())
	assert.Equal(t, cseAnswer, res.Answer)
	assert.Equal(t, types.MethodKeywordMatch, res.Method)
	assert.Equal(t, "fees_tuition", res.Category)
	assert.GreaterOrEqual(t, res.Score, MinScore)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestRespondFallback(t *testing.T) {
	m := New()
	records := knowledge.Defaults()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "gibberish", input: "asdkfjasldkf", want: GenericFallbackText},
		{name: "scholarship", input: "scholarship?", want: cannedAnswers[4].text},
		{name: "empty kb fee", input: "fee", want: cannedAnswers[0].text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := records
			if tt.name == "empty kb fee" {
				kb = nil
			}
			res := m.Respond(tt.input, kb)
			assert.Equal(t, tt.want, res.Answer)
			assert.Equal(t, types.MethodFallback, res.Method)
			assert.NotEmpty(t, res.Answer)
			assert.Zero(t, res.Confidence)
		})
	}
}

func TestRespondTieGoesToFirstRecord(t *testing.T) {
	records := []types.FaqRecord{
		{Question: "first", Answer: "one", Keywords: []string{"hostel"}},
		{Question: "second", Answer: "two", Keywords: []string{"hostel"}},
	}
	res := New().Respond("hostel", records)
	assert.Equal(t, "one", res.Answer)
	assert.Equal(t, "general", res.Category)
}

func TestScoreMonotonic(t *testing.T) {
	record := types.FaqRecord{
		Question: "Tuition for the CSE program",
		Keywords: []string{"fee", "tuition", "cse"},
	}

	inputs := []string{
		"hello",
		"fee",
		"fee tuition",
		"fee tuition cse",
		"fee tuition cse fees",
	}

	prev := -1
	for _, in := range inputs {
		score := Score(in, record)
		assert.GreaterOrEqual(t, score, prev, in)
		prev = score
	}
}

func TestScoreComponents(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		record types.FaqRecord
		want   int
	}{
		{
			name:   "substring and exact token",
			input:  "fee",
			record: types.FaqRecord{Keywords: []string{"fee"}},
			want:   substringWeight + exactWeight,
		},
		{
			name:   "partial token",
			input:  "fees",
			record: types.FaqRecord{Keywords: []string{"fee"}},
			want:   substringWeight + partialWeight,
		},
		{
			name:   "question token",
			input:  "hostel",
			record: types.FaqRecord{Question: "Is there a hostel"},
			want:   questionWeight,
		},
		{
			name:   "short question token ignored",
			input:  "is",
			record: types.FaqRecord{Question: "Is there a hostel"},
			want:   0,
		},
		{
			name:   "category trigger",
			input:  "payment",
			record: types.FaqRecord{Categories: []string{"fees_tuition", "facilities"}},
			want:   categoryWeight,
		},
		{
			name:   "keywords are case insensitive",
			input:  "bba",
			record: types.FaqRecord{Keywords: []string{"BBA", ""}},
			want:   substringWeight + exactWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.input, tt.record))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "what is the fee?", Normalize("  What is the FEE?  "))
	// fullwidth letters fold to ASCII
	assert.Equal(t, "cse", Normalize("ＣＳＥ"))
}
