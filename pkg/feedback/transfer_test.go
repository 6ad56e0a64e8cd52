package feedback

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentinpelus/faqbot/pkg/types"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t, nil)
	ctx := context.Background()
	s.Record(ctx, cseQuestion, cseAnswer, types.VerdictLike)
	s.Record(ctx, "Where is the campus?", "Somewhere", types.VerdictDislike)
	s.Record(ctx, "how much is the admission fee", "BDT 20,000", types.VerdictLike)
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	src := seedStore(t)

	exported, err := src.Export()
	require.NoError(t, err)
	require.NotNil(t, exported.ExportedAt)
	require.NotNil(t, exported.Statistics)
	assert.Equal(t, ExportStatistics{
		TotalFeedback:     3,
		Likes:             2,
		Dislikes:          1,
		UniqueQuestions:   3,
		ImprovedResponses: 1,
	}, *exported.Statistics)

	data, err := json.Marshal(exported)
	require.NoError(t, err)

	dst := newTestStore(t, nil)
	n, err := dst.Import(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	reexported, err := dst.Export()
	require.NoError(t, err)
	assert.Equal(t, exported.Sessions, reexported.Sessions)
	assertSameJSON(t, exported.QuestionFeedback, reexported.QuestionFeedback)
	assertSameJSON(t, exported.PatternScores, reexported.PatternScores)
	assertSameJSON(t, exported.ImprovedResponses, reexported.ImprovedResponses)
}

func assertSameJSON(t *testing.T, want, got any) {
	t.Helper()
	a, err := json.Marshal(want)
	require.NoError(t, err)
	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestImportIsAdditive(t *testing.T) {
	s := seedStore(t)

	n, err := s.Import(context.Background(), []byte(`{
		"sessions": [{"timestamp":"2024-05-01T10:00:00Z","userQuestion":"new","botAnswer":"x","feedback":"like","sessionId":"session_9"}],
		"questionFeedback": {"what is the tuition fee for cse?": {"likes": 9, "dislikes": 0, "responses": [], "bestAnswer": "imported"}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats := s.Stats()
	assert.Equal(t, 4, stats.TotalFeedback)
	assert.Equal(t, 3, stats.UniqueQuestions)

	got, ok := s.LookupOverride(cseQuestion)
	require.True(t, ok)
	assert.Equal(t, "imported", got)
}

func TestImportAcceptsWrappedDocument(t *testing.T) {
	s := newTestStore(t, nil)

	n, err := s.Import(context.Background(), []byte(`{
		"timestamp": "2024-05-01T10:00:00Z",
		"statistics": {"totalFeedback": 1},
		"feedbackData": {
			"sessions": [{"timestamp":"2024-05-01T10:00:00Z","userQuestion":"q","botAnswer":"a","feedback":"dislike","sessionId":"session_1"}],
			"questionFeedback": {}, "patternScores": {}, "improvedResponses": {}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Stats().Dislikes)
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `nope`},
		{name: "array", data: `[]`},
		{name: "no sessions", data: `{"questionFeedback": {"q": {"likes": 1}}}`},
		{name: "sessions is a string", data: `{"sessions": "many", "questionFeedback": {"q": {"likes": 1}}}`},
		{name: "sessions is null", data: `{"sessions": null}`},
		{name: "wrapped without sessions", data: `{"feedbackData": {"questionFeedback": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seedStore(t)
			before, err := s.Export()
			require.NoError(t, err)

			_, err = s.Import(context.Background(), []byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidImport)

			after, err := s.Export()
			require.NoError(t, err)
			assert.Equal(t, before.Sessions, after.Sessions)
			assertSameJSON(t, before.QuestionFeedback, after.QuestionFeedback)
		})
	}
}
