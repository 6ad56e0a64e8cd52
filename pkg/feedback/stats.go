package feedback

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/valentinpelus/faqbot/pkg/matcher"
	"github.com/valentinpelus/faqbot/pkg/types"
)

const (
	topQuestions = 5
	topPatterns  = 3
)

// Stats summarizes the ledger
func (s *Store) Stats() types.FeedbackStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	base := s.exportStatistics()
	return types.FeedbackStats{
		TotalFeedback:     base.TotalFeedback,
		Likes:             base.Likes,
		Dislikes:          base.Dislikes,
		SatisfactionRate:  percent(base.Likes, base.TotalFeedback),
		UniqueQuestions:   base.UniqueQuestions,
		ImprovedResponses: base.ImprovedResponses,
		BlockedAnswers:    s.blockedAnswers(),
	}
}

// Question returns a copy of the aggregate for one question
func (s *Store) Question(question string) (types.QuestionFeedback, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qf, ok := s.doc.QuestionFeedback.Get(matcher.Normalize(question))
	if !ok {
		return types.QuestionFeedback{}, false
	}
	out := *qf
	out.Responses = append([]types.ResponseFeedback(nil), qf.Responses...)
	return out, true
}

// Analysis builds the staff report: most liked and disliked questions and pattern insights
func (s *Store) Analysis() types.FeedbackAnalysis {
	stats := s.Stats()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var liked, disliked []types.QuestionSummary
	s.doc.QuestionFeedback.Each(func(q string, qf *types.QuestionFeedback) bool {
		summary := types.QuestionSummary{Question: q, Likes: qf.Likes, Dislikes: qf.Dislikes}
		if qf.Likes > 0 {
			liked = append(liked, summary)
		}
		if qf.Dislikes > 0 {
			disliked = append(disliked, summary)
		}
		return true
	})
	sort.SliceStable(liked, func(i, j int) bool { return liked[i].Likes > liked[j].Likes })
	sort.SliceStable(disliked, func(i, j int) bool { return disliked[i].Dislikes > disliked[j].Dislikes })

	return types.FeedbackAnalysis{
		Stats:       stats,
		TopLiked:    head(liked, topQuestions),
		TopDisliked: head(disliked, topQuestions),
		Insights:    s.patternInsights(),
	}
}

// caller holds s.mu
func (s *Store) patternInsights() []string {
	insights := []string{}
	if s.doc.PatternScores.Len() == 0 {
		return insights
	}

	type scored struct {
		pattern string
		net     int
	}
	var successful, challenging []scored
	totalLikes, totalDislikes := 0, 0

	s.doc.PatternScores.Each(func(p string, score *types.PatternScore) bool {
		totalLikes += score.Likes
		totalDislikes += score.Dislikes
		switch {
		case score.Likes > score.Dislikes:
			successful = append(successful, scored{p, score.Likes - score.Dislikes})
		case score.Dislikes > score.Likes:
			challenging = append(challenging, scored{p, score.Dislikes - score.Likes})
		}
		return true
	})

	names := func(list []scored) string {
		sort.SliceStable(list, func(i, j int) bool { return list[i].net > list[j].net })
		quoted := make([]string, 0, topPatterns)
		for _, sc := range head(list, topPatterns) {
			quoted = append(quoted, fmt.Sprintf("%q", sc.pattern))
		}
		return strings.Join(quoted, ", ")
	}

	if len(successful) > 0 {
		insights = append(insights, "Most successful topic patterns: "+names(successful))
	}
	if len(challenging) > 0 {
		insights = append(insights, "Most challenging topics: "+names(challenging))
	}

	if total := totalLikes + totalDislikes; total > 0 {
		rate := percent(totalLikes, total)
		if rate > 70 {
			insights = append(insights, fmt.Sprintf("High overall satisfaction rate: %.1f%%", rate))
		} else if rate < 50 {
			insights = append(insights, fmt.Sprintf("Low satisfaction rate detected: %.1f%% - consider improving responses", rate))
		}
	}

	return insights
}

// caller holds s.mu
func (s *Store) blockedAnswers() int {
	seen := map[string]struct{}{}
	for _, ev := range s.doc.Sessions {
		if ev.Verdict == types.VerdictDislike {
			seen[ev.BotAnswer] = struct{}{}
		}
	}
	return len(seen)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

func head[T any](list []T, n int) []T {
	if len(list) > n {
		return list[:n]
	}
	if list == nil {
		return []T{}
	}
	return list
}
