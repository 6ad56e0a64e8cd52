package remote

import (
	"fmt"
	"os"
	"strings"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// NoAnswerMarker is what the model replies when the records do not cover the question
const NoAnswerMarker = "NO_ANSWER"

// DefaultPromptTemplate is the default prompt template
// Variables available: {KNOWLEDGE}, {QUESTION}, {NO_ANSWER}
const DefaultPromptTemplate = `You answer questions from visitors of the Green University of Bangladesh website.
Use ONLY the FAQ entries below. Keep the answer to one or two sentences and copy figures exactly.
If the entries do not answer the question, reply with exactly {NO_ANSWER} and nothing else.

FAQ entries:
{KNOWLEDGE}
Question: {QUESTION}

Answer:`

// GetPromptTemplate returns the prompt template from env var or default
func GetPromptTemplate() string {
	if customPrompt := os.Getenv("REMOTE_CHAT_PROMPT_TEMPLATE"); customPrompt != "" {
		return customPrompt
	}
	return DefaultPromptTemplate
}

// BuildPrompt renders the question and the knowledge base records into the prompt
func BuildPrompt(records []types.FaqRecord, question string) string {
	var knowledge strings.Builder
	for i, r := range records {
		knowledge.WriteString(fmt.Sprintf("%d. Q: %s\n   A: %s\n", i+1, r.Question, r.Answer))
	}

	return strings.NewReplacer(
		"{KNOWLEDGE}", knowledge.String(),
		"{QUESTION}", question,
		"{NO_ANSWER}", NoAnswerMarker,
	).Replace(GetPromptTemplate())
}
