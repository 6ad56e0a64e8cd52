package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valentinpelus/faqbot/pkg/knowledge"
	"github.com/valentinpelus/faqbot/pkg/types"
)

func TestAlternative(t *testing.T) {
	records := knowledge.Defaults()
	bbaAnswer := records[2].Answer

	t.Run("next best record", func(t *testing.T) {
		answer, source := Alternative("What is the tuition fee for CSE?", []string{cseAnswer}, records)
		assert.Equal(t, bbaAnswer, answer)
		assert.Equal(t, types.SourceAlternativeSearch, source)
	})

	t.Run("never returns the disliked answer", func(t *testing.T) {
		for _, r := range records {
			answer, _ := Alternative(r.Question, []string{r.Answer}, records)
			assert.NotEqual(t, r.Answer, answer)
		}
	})

	t.Run("empty knowledge base apologizes", func(t *testing.T) {
		answer, source := Alternative("fee", []string{"anything"}, nil)
		assert.Equal(t, ApologyText, answer)
		assert.Equal(t, types.SourceFallback, source)
	})

	t.Run("no overlap apologizes", func(t *testing.T) {
		answer, source := Alternative("zzzz qqqq", []string{GenericFallbackText}, records)
		assert.Equal(t, ApologyText, answer)
		assert.Equal(t, types.SourceFallback, source)
	})

	t.Run("disliked apology gets the menu", func(t *testing.T) {
		answer, source := Alternative("zzzz qqqq", []string{ApologyText}, records)
		assert.Equal(t, GenericFallbackText, answer)
		assert.Equal(t, types.SourceFallback, source)
	})

	t.Run("every record excluded", func(t *testing.T) {
		same := []types.FaqRecord{
			{Question: "fee", Answer: "x", Keywords: []string{"fee"}},
			{Question: "fee again", Answer: "x", Keywords: []string{"fee"}},
		}
		answer, _ := Alternative("fee", []string{"x"}, same)
		assert.Equal(t, ApologyText, answer)
	})
	t.Run("every disliked answer stays excluded", func(t *testing.T) {
		question := "What is the tuition fee for CSE?"
		answer, source := Alternative(question, []string{cseAnswer, bbaAnswer}, records)
		assert.NotEqual(t, cseAnswer, answer)
		assert.NotEqual(t, bbaAnswer, answer)
		assert.Equal(t, types.SourceAlternativeSearch, source)
	})

	t.Run("apology and menu both disliked", func(t *testing.T) {
		answer, _ := Alternative("zzzz qqqq", []string{ApologyText, GenericFallbackText}, records)
		assert.Equal(t, GenericFallbackText, answer)
	})
}
