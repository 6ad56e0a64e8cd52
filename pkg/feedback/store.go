package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valentinpelus/faqbot/pkg/matcher"
	"github.com/valentinpelus/faqbot/pkg/types"
)

// RecordSource provides the current knowledge base records
type RecordSource interface {
	Records() []types.FaqRecord
}

// Outcome is the result of recording a verdict
type Outcome struct {
	FollowUp string                  // replacement answer after a dislike, empty on like
	Source   types.ImprovementSource // where FollowUp came from
}

// Store owns the feedback ledger and its derived aggregates.
// All mutations and the save that follows them happen under one lock.
type Store struct {
	mu      sync.RWMutex
	backend BlobStore
	kb      RecordSource
	doc     *Document
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. Call Load to read the persisted blob.
func NewStore(backend BlobStore, kb RecordSource, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		kb:      kb,
		doc:     newDocument(),
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("feedback")
	return s
}

// Load replaces the in-memory ledger with the persisted one.
// A missing blob starts fresh; corrupt fields are repaired to empty defaults.
func (s *Store) Load(ctx context.Context) {
	data, err := s.backend.Read(ctx)
	if err != nil && !errors.Is(err, ErrBlobNotFound) {
		s.logger.Warn("Could not read feedback, starting fresh",
			zap.String("backend", s.backend.Name()), zap.Error(err))
	}

	doc, repaired := repairDocument(data)
	if len(repaired) > 0 {
		s.logger.Warn("Repaired corrupt feedback fields", zap.Strings("fields", repaired))
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	if len(doc.Sessions) > 0 {
		likes, dislikes := countVerdicts(doc.Sessions)
		s.logger.Info("Loaded feedback",
			zap.Int("entries", len(doc.Sessions)),
			zap.Int("likes", likes),
			zap.Int("dislikes", dislikes))
	}
}

// Save persists the ledger. Failures are logged, never returned.
func (s *Store) Save(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.save(ctx)
}

// caller holds s.mu
func (s *Store) save(ctx context.Context) {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		s.logger.Error("Failed to marshal feedback", zap.Error(err))
		return
	}
	if err := s.backend.Write(ctx, data); err != nil {
		s.logger.Error("Failed to save feedback", zap.String("backend", s.backend.Name()), zap.Error(err))
	}
}

// Record stores a verdict on an answer. A dislike searches for a different
// answer, remembers it as the improved response, and returns it as FollowUp.
func (s *Store) Record(ctx context.Context, question, answer string, verdict types.Verdict) Outcome {
	key := matcher.Normalize(question)
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Sessions = append(s.doc.Sessions, types.FeedbackEvent{
		Timestamp:    now,
		UserQuestion: question,
		BotAnswer:    answer,
		Verdict:      verdict,
		SessionID:    "session_" + uuid.NewString(),
	})

	patterns := ExtractPatterns(key)
	for _, p := range patterns {
		score, ok := s.doc.PatternScores.Get(p)
		if !ok {
			score = &types.PatternScore{}
			s.doc.PatternScores.Set(p, score)
		}
		if verdict == types.VerdictLike {
			score.Likes++
		} else {
			score.Dislikes++
		}
	}

	qf, ok := s.doc.QuestionFeedback.Get(key)
	if !ok {
		qf = &types.QuestionFeedback{Responses: []types.ResponseFeedback{}, Patterns: patterns}
		s.doc.QuestionFeedback.Set(key, qf)
	}
	qf.Responses = append(qf.Responses, types.ResponseFeedback{Answer: answer, Verdict: verdict, Timestamp: now})

	var outcome Outcome
	if verdict == types.VerdictLike {
		qf.Likes++
		best := answer
		qf.BestAnswer = &best
	} else {
		qf.Dislikes++

		var records []types.FaqRecord
		if s.kb != nil {
			records = s.kb.Records()
		}
		followUp, source := matcher.Alternative(question, dislikedAnswers(qf.Responses), records)
		entries, _ := s.doc.ImprovedResponses.Get(key)
		s.doc.ImprovedResponses.Set(key, append(entries, types.ImprovementEntry{
			OriginalAnswer: answer,
			ImprovedAnswer: followUp,
			Source:         source,
			Timestamp:      now,
		}))
		outcome = Outcome{FollowUp: followUp, Source: source}
	}

	s.logger.Debug("Recorded feedback",
		zap.String("question", key),
		zap.String("verdict", string(verdict)),
		zap.Strings("patterns", patterns))

	s.save(ctx)
	return outcome
}

func dislikedAnswers(responses []types.ResponseFeedback) []string {
	var out []string
	for _, r := range responses {
		if r.Verdict == types.VerdictDislike {
			out = append(out, r.Answer)
		}
	}
	return out
}

// LookupOverride returns a remembered answer for a question: the latest
// improved response, then a net-liked best answer for the same question,
// then the best answer of the first similar net-liked question.
func (s *Store) LookupOverride(question string) (string, bool) {
	key := matcher.Normalize(question)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if entries, ok := s.doc.ImprovedResponses.Get(key); ok && len(entries) > 0 {
		return entries[len(entries)-1].ImprovedAnswer, true
	}

	if qf, ok := s.doc.QuestionFeedback.Get(key); ok && qf.NetPositive() && qf.BestAnswer != nil {
		return *qf.BestAnswer, true
	}

	inputWords := matcher.SpaceWords(key)
	if len(inputWords) == 0 {
		return "", false
	}

	var found string
	s.doc.QuestionFeedback.Each(func(stored string, qf *types.QuestionFeedback) bool {
		if similarity(inputWords, stored) == 0 || qf.BestAnswer == nil || !qf.NetPositive() {
			return true
		}
		found = *qf.BestAnswer
		return false
	})
	return found, found != ""
}

// similarity counts pairs of input word and stored word where one contains the other
func similarity(inputWords []string, stored string) int {
	n := 0
	for _, sw := range strings.Split(stored, " ") {
		if sw == "" {
			continue
		}
		for _, iw := range inputWords {
			if strings.Contains(iw, sw) || strings.Contains(sw, iw) {
				n++
			}
		}
	}
	return n
}

func countVerdicts(events []types.FeedbackEvent) (likes, dislikes int) {
	for _, ev := range events {
		switch ev.Verdict {
		case types.VerdictLike:
			likes++
		case types.VerdictDislike:
			dislikes++
		}
	}
	return likes, dislikes
}
