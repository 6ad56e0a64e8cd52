package matcher

import (
	"strings"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// ApologyText is the follow-up given when no other record relates to the question
const ApologyText = "I apologize that my previous response wasn't helpful. For the most accurate and detailed information about Green University of Bangladesh, I recommend visiting our official website at https://www.green.edu.bd/ or contacting our student services directly. They can provide you with personalized assistance for your specific inquiry."

// Alternative weights, in tenths of a point so ties compare exactly.
const (
	altKeywordWeight  = 10
	altQuestionWeight = 5
	altPartialWeight  = 3
)

// Alternative finds another answer for a question whose answers were disliked.
// Records carrying any excluded answer are skipped, so the result is never one
// of them unless every canned reply has been excluded too.
func Alternative(question string, excluded []string, records []types.FaqRecord) (string, types.ImprovementSource) {
	input := Normalize(question)
	inputWords := spaceWords(input)

	skip := make(map[string]struct{}, len(excluded))
	for _, answer := range excluded {
		skip[answer] = struct{}{}
	}

	bestScore := 0
	bestAnswer := ""
	for _, record := range records {
		if _, ok := skip[record.Answer]; ok {
			continue
		}
		if score := alternativeScore(input, inputWords, record); score > bestScore {
			bestScore = score
			bestAnswer = record.Answer
		}
	}

	if bestScore > 0 {
		return bestAnswer, types.SourceAlternativeSearch
	}
	if _, ok := skip[ApologyText]; !ok {
		return ApologyText, types.SourceFallback
	}
	return GenericFallbackText, types.SourceFallback
}

func alternativeScore(input string, inputWords []string, record types.FaqRecord) int {
	score := 0

	keywords := make([]string, 0, len(record.Keywords))
	for _, kw := range record.Keywords {
		if kw = strings.ToLower(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	for _, kw := range keywords {
		if strings.Contains(input, kw) {
			score += altKeywordWeight
		}
	}

	for _, w := range spaceWords(strings.ToLower(record.Question)) {
		if strings.Contains(input, w) {
			score += altQuestionWeight
		}
	}

	for _, w := range inputWords {
		for _, kw := range keywords {
			if containsEither(w, kw) {
				score += altPartialWeight
			}
		}
	}

	return score
}
