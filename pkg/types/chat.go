package types

// Method tags how an answer was produced
type Method string

const (
	MethodIntent          Method = "intent"
	MethodOverride        Method = "override"
	MethodRemote          Method = "remote"
	MethodKeywordMatch    Method = "keyword_match"
	MethodFallback        Method = "fallback"
	MethodValidationError Method = "validation_error"
)

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned for every chat turn
type ChatResponse struct {
	TurnID          string  `json:"turn_id,omitempty"`
	Answer          string  `json:"answer"`
	Method          Method  `json:"method"`
	Confidence      float64 `json:"confidence"`
	Category        string  `json:"category,omitempty"`
	Score           int     `json:"score,omitempty"`
	FeedbackEnabled bool    `json:"feedback_enabled"`
}

// FeedbackRequest is the body of POST /api/feedback.
// Either TurnID or both Question and Answer must be set.
type FeedbackRequest struct {
	TurnID   string `json:"turn_id" validate:"omitempty,uuid"`
	Question string `json:"question" validate:"required_without=TurnID"`
	Answer   string `json:"answer" validate:"required_without=TurnID"`
	Feedback string `json:"feedback" validate:"required,oneof=like dislike"`
}

// FeedbackResponse reports the outcome of recording a verdict
type FeedbackResponse struct {
	Status          string `json:"status"`
	FollowUp        string `json:"follow_up,omitempty"`
	FollowUpSource  string `json:"follow_up_source,omitempty"`
	FollowUpTurnID  string `json:"follow_up_turn_id,omitempty"`
	MirrorStatus    string `json:"mirror_status,omitempty"`
	BlockedAnswers  int    `json:"blocked_answers,omitempty"`
	BlockedKeywords int    `json:"blocked_keywords,omitempty"`
}
