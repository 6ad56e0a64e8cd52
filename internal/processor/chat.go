package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/valentinpelus/faqbot/pkg/feedback"
	"github.com/valentinpelus/faqbot/pkg/knowledge"
	"github.com/valentinpelus/faqbot/pkg/matcher"
	"github.com/valentinpelus/faqbot/pkg/mirror"
	"github.com/valentinpelus/faqbot/pkg/remote"
	"github.com/valentinpelus/faqbot/pkg/types"
)

// EmptyMessageText answers a blank chat message
const EmptyMessageText = "Please provide a question."

// Mirror status values reported with feedback
const (
	MirrorOK     = "ok"
	MirrorFailed = "failed"
)

// ErrUnknownTurn is returned when feedback cites a turn that expired or never existed
var ErrUnknownTurn = errors.New("unknown or expired turn")

// Turn is an answered question waiting for a verdict
type Turn struct {
	Question string
	Answer   string
	Method   types.Method
	At       time.Time
}

// ChatProcessor runs the answer pipeline and routes feedback
type ChatProcessor struct {
	kb            *knowledge.KnowledgeBase
	store         *feedback.Store
	matcher       *matcher.Matcher
	remote        remote.Provider
	remoteTimeout time.Duration
	mirror        mirror.Mirror
	mirrorTimeout time.Duration
	turns         *cache.Cache
	logger        *zap.Logger
}

// Option configures a ChatProcessor
type Option func(*ChatProcessor)

// WithRemote enables the remote chat attempt before local matching
func WithRemote(provider remote.Provider, timeout time.Duration) Option {
	return func(p *ChatProcessor) {
		p.remote = provider
		p.remoteTimeout = timeout
	}
}

// WithMirror forwards every verdict to a collector, giving up after timeout
func WithMirror(m mirror.Mirror, timeout time.Duration) Option {
	return func(p *ChatProcessor) {
		p.mirror = m
		p.mirrorTimeout = timeout
	}
}

// WithMatcher replaces the default matcher
func WithMatcher(m *matcher.Matcher) Option {
	return func(p *ChatProcessor) {
		p.matcher = m
	}
}

// WithTurnTTL sets how long turns stay addressable by id
func WithTurnTTL(ttl time.Duration) Option {
	return func(p *ChatProcessor) {
		p.turns = cache.New(ttl, 10*time.Minute)
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *ChatProcessor) {
		p.logger = logger
	}
}

// NewChatProcessor creates a new chat processor
func NewChatProcessor(kb *knowledge.KnowledgeBase, store *feedback.Store, opts ...Option) *ChatProcessor {
	p := &ChatProcessor{
		kb:            kb,
		store:         store,
		matcher:       matcher.New(),
		remoteTimeout: 3 * time.Second,
		mirrorTimeout: 3 * time.Second,
		turns:         cache.New(24*time.Hour, 10*time.Minute),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("processor")
	return p
}

// Chat answers one message. It always produces a response.
func (p *ChatProcessor) Chat(ctx context.Context, message string) types.ChatResponse {
	if strings.TrimSpace(message) == "" {
		return types.ChatResponse{Answer: EmptyMessageText, Method: types.MethodValidationError}
	}

	input := matcher.Normalize(message)

	if intent, text := p.matcher.DetectIntent(input); intent != matcher.IntentNone {
		p.logger.Debug("Intent shortcut", zap.String("intent", string(intent)))
		return types.ChatResponse{Answer: text, Method: types.MethodIntent, Confidence: 1}
	}

	if answer, ok := p.store.LookupOverride(message); ok {
		p.logger.Debug("Answering from feedback override", zap.String("question", input))
		return p.remember(message, types.ChatResponse{
			Answer:     answer,
			Method:     types.MethodOverride,
			Confidence: 1,
		})
	}

	if p.remote != nil {
		outcome := remote.Attempt(ctx, p.remote, p.remoteTimeout, message)
		if !outcome.UseLocal {
			return p.remember(message, types.ChatResponse{
				Answer:     outcome.Reply.Answer,
				Method:     types.MethodRemote,
				Confidence: outcome.Reply.Confidence,
			})
		}
		p.logger.Info("Remote chat unavailable, answering locally",
			zap.String("provider", p.remote.Name()),
			zap.String("reason", outcome.Reason))
	}

	result := p.matcher.Match(input, p.kb.Records())
	return p.remember(message, types.ChatResponse{
		Answer:     result.Answer,
		Method:     result.Method,
		Confidence: result.Confidence,
		Category:   result.Category,
		Score:      result.Score,
	})
}

// remember stores the turn so feedback can cite it by id
func (p *ChatProcessor) remember(question string, resp types.ChatResponse) types.ChatResponse {
	resp.TurnID = uuid.NewString()
	resp.FeedbackEnabled = true
	p.turns.Set(resp.TurnID, &Turn{
		Question: question,
		Answer:   resp.Answer,
		Method:   resp.Method,
		At:       time.Now(),
	}, cache.DefaultExpiration)
	return resp
}

// Turn returns a remembered turn
func (p *ChatProcessor) Turn(id string) (*Turn, bool) {
	v, ok := p.turns.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Turn), true
}

// Feedback records a verdict on an answer, cited by turn id or given in full.
// A dislike returns the follow-up answer. Mirror failures never undo the local record.
func (p *ChatProcessor) Feedback(ctx context.Context, req types.FeedbackRequest) (*types.FeedbackResponse, error) {
	verdict, err := types.ParseVerdict(req.Feedback)
	if err != nil {
		return nil, err
	}

	question, answer := req.Question, req.Answer
	if req.TurnID != "" {
		turn, ok := p.Turn(req.TurnID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTurn, req.TurnID)
		}
		question, answer = turn.Question, turn.Answer
	}
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, errors.New("question and answer are required")
	}

	outcome := p.store.Record(ctx, question, answer, verdict)
	resp := &types.FeedbackResponse{
		Status:         "recorded",
		FollowUp:       outcome.FollowUp,
		FollowUpSource: string(outcome.Source),
	}
	if outcome.FollowUp != "" {
		// the follow-up can be rated like any other answer
		followUp := p.remember(question, types.ChatResponse{
			Answer:     outcome.FollowUp,
			Method:     types.MethodOverride,
			Confidence: 1,
		})
		resp.FollowUpTurnID = followUp.TurnID
	}

	if p.mirror != nil {
		counters, err := p.submitMirror(ctx, mirror.Submission{Question: question, Answer: answer, Verdict: verdict})
		if err != nil {
			p.logger.Warn("Feedback mirror failed", zap.String("mirror", p.mirror.Name()), zap.Error(err))
			resp.MirrorStatus = MirrorFailed
		} else {
			resp.MirrorStatus = MirrorOK
			if counters != nil {
				resp.BlockedAnswers = counters.BlockedAnswers
				resp.BlockedKeywords = counters.BlockedKeywords
			}
		}
	}

	p.logger.Info("Feedback recorded",
		zap.String("verdict", string(verdict)),
		zap.String("question", matcher.Normalize(question)),
		zap.Bool("follow_up", outcome.FollowUp != ""))
	return resp, nil
}

func (p *ChatProcessor) submitMirror(ctx context.Context, sub mirror.Submission) (*mirror.Counters, error) {
	if p.mirrorTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.mirrorTimeout)
		defer cancel()
	}
	return p.mirror.Submit(ctx, sub)
}

// Stats returns the aggregate feedback counters
func (p *ChatProcessor) Stats() types.FeedbackStats {
	return p.store.Stats()
}

// Analysis returns the feedback report
func (p *ChatProcessor) Analysis() types.FeedbackAnalysis {
	return p.store.Analysis()
}

// Export snapshots the feedback ledger
func (p *ChatProcessor) Export() (*feedback.Document, error) {
	return p.store.Export()
}

// Import merges an exported document and returns the number of sessions added
func (p *ChatProcessor) Import(ctx context.Context, data []byte) (int, error) {
	n, err := p.store.Import(ctx, data)
	if err != nil {
		return 0, err
	}
	p.logger.Info("Feedback imported", zap.Int("sessions", n))
	return n, nil
}

// KnowledgeStatus describes the record set after a refresh
type KnowledgeStatus struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
}

// RefreshKnowledge reloads the knowledge base from its configured source.
// On failure the current records stay active and the error is returned.
func (p *ChatProcessor) RefreshKnowledge(ctx context.Context) (KnowledgeStatus, error) {
	err := p.kb.Refresh(ctx)
	status := KnowledgeStatus{Source: p.kb.SourceName(), Records: p.kb.Len()}
	return status, err
}
