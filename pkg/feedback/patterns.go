package feedback

import "strings"

var questionPrefixes = []struct {
	prefix  string
	pattern string
}{
	{"what", "what_question"},
	{"how", "how_question"},
	{"when", "when_question"},
	{"where", "where_question"},
	{"why", "why_question"},
	{"who", "who_question"},
}

var contentKeywords = []string{
	"fee", "cost", "price", "tuition", "admission", "program", "course",
	"department", "faculty", "student", "university", "college", "degree",
	"semester", "credit", "requirement", "eligibility", "application",
}

// ExtractPatterns tags a normalized question with its question type and the domain words it mentions
func ExtractPatterns(question string) []string {
	patterns := []string{}

	for _, p := range questionPrefixes {
		if strings.HasPrefix(question, p.prefix) {
			patterns = append(patterns, p.pattern)
		}
	}
	if strings.Contains(question, "?") {
		patterns = append(patterns, "general_question")
	}

	for _, kw := range contentKeywords {
		if strings.Contains(question, kw) {
			patterns = append(patterns, "contains_"+kw)
		}
	}

	return patterns
}
