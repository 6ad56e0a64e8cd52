package types

import (
	"fmt"
	"time"
)

// Verdict is a user's binary judgment on a shown answer
type Verdict string

const (
	VerdictLike    Verdict = "like"
	VerdictDislike Verdict = "dislike"
)

// Valid reports whether v is one of the known verdicts
func (v Verdict) Valid() bool {
	return v == VerdictLike || v == VerdictDislike
}

// ParseVerdict converts user input into a Verdict
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(s)
	if !v.Valid() {
		return "", fmt.Errorf("feedback must be either %q or %q, got %q", VerdictLike, VerdictDislike, s)
	}
	return v, nil
}

// FeedbackEvent represents one click of a feedback control.
// Field names match the documents exported by earlier versions of the bot.
type FeedbackEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	UserQuestion string    `json:"userQuestion"`
	BotAnswer    string    `json:"botAnswer"`
	Verdict      Verdict   `json:"feedback"`
	SessionID    string    `json:"sessionId"`
}

// ResponseFeedback is a single verdict on an answer given to a question
type ResponseFeedback struct {
	Answer    string    `json:"answer"`
	Verdict   Verdict   `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// QuestionFeedback aggregates all feedback for one normalized question
type QuestionFeedback struct {
	Likes      int                `json:"likes"`
	Dislikes   int                `json:"dislikes"`
	Responses  []ResponseFeedback `json:"responses"`
	BestAnswer *string            `json:"bestAnswer"`
	Patterns   []string           `json:"patterns,omitempty"`
}

// NetPositive reports whether the question has more likes than dislikes
func (q *QuestionFeedback) NetPositive() bool {
	return q.Likes > q.Dislikes
}

// PatternScore counts verdicts for one lexical pattern tag
type PatternScore struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// ImprovementSource tells where an improved answer came from
type ImprovementSource string

const (
	SourceAlternativeSearch ImprovementSource = "alternative_search"
	SourceFallback          ImprovementSource = "fallback"
)

// ImprovementEntry records a replacement answer produced after a dislike
type ImprovementEntry struct {
	OriginalAnswer string            `json:"originalAnswer"`
	ImprovedAnswer string            `json:"improvedAnswer"`
	Source         ImprovementSource `json:"source"`
	Timestamp      time.Time         `json:"timestamp"`
}

// FeedbackStats summarizes the feedback ledger
type FeedbackStats struct {
	TotalFeedback     int     `json:"totalFeedback"`
	Likes             int     `json:"likes"`
	Dislikes          int     `json:"dislikes"`
	SatisfactionRate  float64 `json:"satisfactionRate"`
	UniqueQuestions   int     `json:"uniqueQuestions"`
	ImprovedResponses int     `json:"improvedResponses"`
	BlockedAnswers    int     `json:"blockedAnswers"`
}

// QuestionSummary is a question with its verdict counts, used in analysis reports
type QuestionSummary struct {
	Question string `json:"question"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// FeedbackAnalysis is the report shown to staff reviewing the bot
type FeedbackAnalysis struct {
	Stats       FeedbackStats     `json:"stats"`
	TopLiked    []QuestionSummary `json:"topLiked"`
	TopDisliked []QuestionSummary `json:"topDisliked"`
	Insights    []string          `json:"insights"`
}
