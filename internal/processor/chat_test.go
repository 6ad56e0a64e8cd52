package processor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentinpelus/faqbot/pkg/feedback"
	"github.com/valentinpelus/faqbot/pkg/knowledge"
	"github.com/valentinpelus/faqbot/pkg/matcher"
	"github.com/valentinpelus/faqbot/pkg/mirror"
	"github.com/valentinpelus/faqbot/pkg/remote"
	"github.com/valentinpelus/faqbot/pkg/types"
)

const (
	cseQuestion = "What is the tuition fee for CSE?"
	cseAnswer   = "The tuition fee for the BSc in Computer Science and Engineering (CSE) program is BDT 70,000 per semester."
	bbaAnswer   = "The total tuition fee for the Bachelor of Business Administration (BBA) program is BDT 60,000 per semester."
)

type fakeProvider struct {
	reply *remote.Reply
	err   error
	calls int
}

func (f *fakeProvider) Ask(ctx context.Context, message string) (*remote.Reply, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

type fakeMirror struct {
	counters *mirror.Counters
	err      error
	got      []mirror.Submission
}

func (f *fakeMirror) Submit(ctx context.Context, sub mirror.Submission) (*mirror.Counters, error) {
	f.got = append(f.got, sub)
	return f.counters, f.err
}

func (f *fakeMirror) Name() string { return "fake" }

func newTestProcessor(t *testing.T, opts ...Option) (*ChatProcessor, *feedback.Store) {
	t.Helper()
	kb := knowledge.NewKnowledgeBase(nil, 0, nil)
	store := feedback.NewStore(feedback.NewMemoryBlobStore(nil), kb)
	store.Load(context.Background())
	return NewChatProcessor(kb, store, opts...), store
}

func TestChatPipeline(t *testing.T) {
	p, _ := newTestProcessor(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		message  string
		method   types.Method
		answer   string
		withTurn bool
	}{
		{name: "empty", message: "   ", method: types.MethodValidationError, answer: EmptyMessageText},
		{name: "greeting", message: "Hello there", method: types.MethodIntent, answer: matcher.GreetingText},
		{name: "keyword match", message: cseQuestion, method: types.MethodKeywordMatch, answer: cseAnswer, withTurn: true},
		{name: "gibberish", message: "zzqx", method: types.MethodFallback, answer: matcher.GenericFallbackText, withTurn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := p.Chat(ctx, tt.message)
			assert.Equal(t, tt.method, resp.Method)
			assert.Equal(t, tt.answer, resp.Answer)
			assert.Equal(t, tt.withTurn, resp.FeedbackEnabled)
			if tt.withTurn {
				turn, ok := p.Turn(resp.TurnID)
				require.True(t, ok)
				assert.Equal(t, tt.message, turn.Question)
				assert.Equal(t, tt.answer, turn.Answer)
			} else {
				assert.Empty(t, resp.TurnID)
			}
		})
	}
}

func TestDislikeByTurnChangesNextAnswer(t *testing.T) {
	p, store := newTestProcessor(t)
	ctx := context.Background()

	first := p.Chat(ctx, cseQuestion)
	require.Equal(t, cseAnswer, first.Answer)

	resp, err := p.Feedback(ctx, types.FeedbackRequest{TurnID: first.TurnID, Feedback: "dislike"})
	require.NoError(t, err)
	assert.Equal(t, "recorded", resp.Status)
	assert.Equal(t, bbaAnswer, resp.FollowUp)
	assert.Equal(t, string(types.SourceAlternativeSearch), resp.FollowUpSource)
	assert.Empty(t, resp.MirrorStatus)

	second := p.Chat(ctx, cseQuestion)
	assert.Equal(t, types.MethodOverride, second.Method)
	assert.NotEqual(t, first.Answer, second.Answer)
	assert.Equal(t, 1, store.Stats().Dislikes)
}

func TestFeedbackWithQuestionAndAnswer(t *testing.T) {
	p, store := newTestProcessor(t)
	ctx := context.Background()

	for range 2 {
		resp, err := p.Feedback(ctx, types.FeedbackRequest{Question: cseQuestion, Answer: cseAnswer, Feedback: "like"})
		require.NoError(t, err)
		assert.Empty(t, resp.FollowUp)
	}

	qf, ok := store.Question(cseQuestion)
	require.True(t, ok)
	assert.Equal(t, 2, qf.Likes)
	require.NotNil(t, qf.BestAnswer)
	assert.Equal(t, cseAnswer, *qf.BestAnswer)
}

func TestFeedbackErrors(t *testing.T) {
	p, store := newTestProcessor(t)
	ctx := context.Background()

	_, err := p.Feedback(ctx, types.FeedbackRequest{TurnID: "5b0f9c3e-4b7d-4a55-9a43-9f4f6f0c1a11", Feedback: "like"})
	assert.ErrorIs(t, err, ErrUnknownTurn)

	_, err = p.Feedback(ctx, types.FeedbackRequest{Question: "q", Answer: "a", Feedback: "meh"})
	assert.Error(t, err)

	_, err = p.Feedback(ctx, types.FeedbackRequest{Question: " ", Answer: "a", Feedback: "like"})
	assert.Error(t, err)

	assert.Equal(t, 0, store.Stats().TotalFeedback)
}

func TestRemoteAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("remote answers", func(t *testing.T) {
		provider := &fakeProvider{reply: &remote.Reply{Answer: "From the service", Confidence: 0.9}}
		p, _ := newTestProcessor(t, WithRemote(provider, time.Second))

		resp := p.Chat(ctx, cseQuestion)
		assert.Equal(t, types.MethodRemote, resp.Method)
		assert.Equal(t, "From the service", resp.Answer)
		assert.InDelta(t, 0.9, resp.Confidence, 1e-9)
		assert.True(t, resp.FeedbackEnabled)
	})

	t.Run("remote failure falls back to local", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("connection refused")}
		p, _ := newTestProcessor(t, WithRemote(provider, time.Second))

		resp := p.Chat(ctx, cseQuestion)
		assert.Equal(t, types.MethodKeywordMatch, resp.Method)
		assert.Equal(t, cseAnswer, resp.Answer)
		assert.Equal(t, 1, provider.calls)
	})

	t.Run("intents and overrides skip the remote", func(t *testing.T) {
		provider := &fakeProvider{reply: &remote.Reply{Answer: "From the service"}}
		p, _ := newTestProcessor(t, WithRemote(provider, time.Second))

		_, err := p.Feedback(ctx, types.FeedbackRequest{Question: cseQuestion, Answer: cseAnswer, Feedback: "like"})
		require.NoError(t, err)

		assert.Equal(t, types.MethodIntent, p.Chat(ctx, "good morning").Method)
		resp := p.Chat(ctx, cseQuestion)
		assert.Equal(t, types.MethodOverride, resp.Method)
		assert.Equal(t, cseAnswer, resp.Answer)
		assert.Zero(t, provider.calls)
	})
}

func TestMirror(t *testing.T) {
	ctx := context.Background()

	t.Run("counters are reported", func(t *testing.T) {
		m := &fakeMirror{counters: &mirror.Counters{BlockedAnswers: 4, BlockedKeywords: 2}}
		p, _ := newTestProcessor(t, WithMirror(m, time.Second))

		resp, err := p.Feedback(ctx, types.FeedbackRequest{Question: cseQuestion, Answer: cseAnswer, Feedback: "dislike"})
		require.NoError(t, err)
		assert.Equal(t, MirrorOK, resp.MirrorStatus)
		assert.Equal(t, 4, resp.BlockedAnswers)
		assert.Equal(t, 2, resp.BlockedKeywords)
		require.Len(t, m.got, 1)
		assert.Equal(t, types.VerdictDislike, m.got[0].Verdict)
	})

	t.Run("failure keeps the local record", func(t *testing.T) {
		m := &fakeMirror{err: errors.New("collector down")}
		p, store := newTestProcessor(t, WithMirror(m, time.Second))

		resp, err := p.Feedback(ctx, types.FeedbackRequest{Question: cseQuestion, Answer: cseAnswer, Feedback: "dislike"})
		require.NoError(t, err)
		assert.Equal(t, MirrorFailed, resp.MirrorStatus)
		assert.NotEmpty(t, resp.FollowUp)
		assert.Equal(t, 1, store.Stats().Dislikes)
	})
}

func TestMirrorTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(ts.Close)
	t.Cleanup(func() { close(release) })

	p, store := newTestProcessor(t, WithMirror(mirror.NewHTTPMirror(ts.URL), 50*time.Millisecond))

	start := time.Now()
	resp, err := p.Feedback(context.Background(), types.FeedbackRequest{Question: cseQuestion, Answer: cseAnswer, Feedback: "like"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, MirrorFailed, resp.MirrorStatus)
	assert.Equal(t, 1, store.Stats().Likes)
}

func TestFollowUpCanBeRated(t *testing.T) {
	p, store := newTestProcessor(t)
	ctx := context.Background()

	first := p.Chat(ctx, cseQuestion)
	resp, err := p.Feedback(ctx, types.FeedbackRequest{TurnID: first.TurnID, Feedback: "dislike"})
	require.NoError(t, err)
	require.Equal(t, bbaAnswer, resp.FollowUp)
	require.NotEmpty(t, resp.FollowUpTurnID)
	assert.NotEqual(t, first.TurnID, resp.FollowUpTurnID)

	turn, ok := p.Turn(resp.FollowUpTurnID)
	require.True(t, ok)
	assert.Equal(t, cseQuestion, turn.Question)
	assert.Equal(t, bbaAnswer, turn.Answer)

	again, err := p.Feedback(ctx, types.FeedbackRequest{TurnID: resp.FollowUpTurnID, Feedback: "dislike"})
	require.NoError(t, err)
	assert.NotEqual(t, cseAnswer, again.FollowUp)
	assert.NotEqual(t, bbaAnswer, again.FollowUp)
	assert.NotEmpty(t, again.FollowUpTurnID)

	qf, ok := store.Question(cseQuestion)
	require.True(t, ok)
	assert.Equal(t, 2, qf.Dislikes)
	assert.Equal(t, bbaAnswer, qf.Responses[1].Answer)

	liked, err := p.Feedback(ctx, types.FeedbackRequest{TurnID: again.FollowUpTurnID, Feedback: "like"})
	require.NoError(t, err)
	assert.Empty(t, liked.FollowUpTurnID)
}

func TestTurnExpiry(t *testing.T) {
	p, _ := newTestProcessor(t, WithTurnTTL(20*time.Millisecond))

	resp := p.Chat(context.Background(), cseQuestion)
	_, ok := p.Turn(resp.TurnID)
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = p.Turn(resp.TurnID)
	assert.False(t, ok)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestProcessor(t)
	_, err := src.Feedback(ctx, types.FeedbackRequest{Question: cseQuestion, Answer: cseAnswer, Feedback: "like"})
	require.NoError(t, err)

	doc, err := src.Export()
	require.NoError(t, err)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	dst, _ := newTestProcessor(t)
	n, err := dst.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, src.Stats(), dst.Stats())

	_, err = dst.Import(ctx, []byte(`{"sessions": {}}`))
	assert.ErrorIs(t, err, feedback.ErrInvalidImport)
}

func TestRefreshKnowledgeWithoutSource(t *testing.T) {
	p, _ := newTestProcessor(t)

	status, err := p.RefreshKnowledge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "built-in", status.Source)
	assert.Equal(t, len(knowledge.Defaults()), status.Records)
}
