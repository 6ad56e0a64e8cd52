package feedback

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// Document is the persisted feedback blob. Exported documents also carry
// ExportedAt and Statistics; stored blobs leave them out.
type Document struct {
	ExportedAt        *time.Time                            `json:"exportedAt,omitempty"`
	Statistics        *ExportStatistics                     `json:"statistics,omitempty"`
	Sessions          []types.FeedbackEvent                 `json:"sessions"`
	QuestionFeedback  *OrderedMap[*types.QuestionFeedback]  `json:"questionFeedback"`
	PatternScores     *OrderedMap[*types.PatternScore]      `json:"patternScores"`
	ImprovedResponses *OrderedMap[[]types.ImprovementEntry] `json:"improvedResponses"`
}

// ExportStatistics is the summary block written at the top of an export
type ExportStatistics struct {
	TotalFeedback     int `json:"totalFeedback"`
	Likes             int `json:"likes"`
	Dislikes          int `json:"dislikes"`
	UniqueQuestions   int `json:"uniqueQuestions"`
	ImprovedResponses int `json:"improvedResponses"`
}

func newDocument() *Document {
	return &Document{
		Sessions:          []types.FeedbackEvent{},
		QuestionFeedback:  NewOrderedMap[*types.QuestionFeedback](),
		PatternScores:     NewOrderedMap[*types.PatternScore](),
		ImprovedResponses: NewOrderedMap[[]types.ImprovementEntry](),
	}
}

// repairDocument decodes a stored blob, replacing anything missing or
// wrong-typed with its empty default. It never fails; the returned list
// names the fields that had to be repaired.
func repairDocument(data []byte) (*Document, []string) {
	doc := newDocument()
	var repaired []string

	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return doc, []string{"document"}
	}

	if raw, ok := fields["sessions"]; ok {
		sessions, ok := repairSessions(raw)
		if !ok {
			repaired = append(repaired, "sessions")
		}
		doc.Sessions = sessions
	}

	if raw, ok := fields["questionFeedback"]; ok {
		if err := walkObject(raw, func(key string, entry json.RawMessage) error {
			doc.QuestionFeedback.Set(key, repairQuestionFeedback(entry))
			return nil
		}); err != nil {
			doc.QuestionFeedback = NewOrderedMap[*types.QuestionFeedback]()
			repaired = append(repaired, "questionFeedback")
		}
	}

	if raw, ok := fields["patternScores"]; ok {
		if err := walkObject(raw, func(key string, entry json.RawMessage) error {
			doc.PatternScores.Set(key, repairPatternScore(entry))
			return nil
		}); err != nil {
			doc.PatternScores = NewOrderedMap[*types.PatternScore]()
			repaired = append(repaired, "patternScores")
		}
	}

	if raw, ok := fields["improvedResponses"]; ok {
		if err := walkObject(raw, func(key string, entry json.RawMessage) error {
			if entries, ok := repairImprovements(entry); ok {
				doc.ImprovedResponses.Set(key, entries)
			}
			return nil
		}); err != nil {
			doc.ImprovedResponses = NewOrderedMap[[]types.ImprovementEntry]()
			repaired = append(repaired, "improvedResponses")
		}
	}

	return doc, repaired
}

// repairSessions keeps every well-formed event of a JSON array.
// ok is false when raw is not an array at all.
func repairSessions(raw json.RawMessage) ([]types.FeedbackEvent, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []types.FeedbackEvent{}, false
	}

	sessions := make([]types.FeedbackEvent, 0, len(items))
	for _, item := range items {
		var ev types.FeedbackEvent
		if err := json.Unmarshal(item, &ev); err != nil || !ev.Verdict.Valid() {
			continue
		}
		sessions = append(sessions, ev)
	}
	return sessions, true
}

func repairQuestionFeedback(raw json.RawMessage) *types.QuestionFeedback {
	qf := &types.QuestionFeedback{Responses: []types.ResponseFeedback{}}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return qf
	}

	qf.Likes = decodeOr(fields["likes"], 0)
	qf.Dislikes = decodeOr(fields["dislikes"], 0)
	qf.Patterns = decodeOr[[]string](fields["patterns"], nil)
	if best := decodeOr(fields["bestAnswer"], ""); best != "" {
		qf.BestAnswer = &best
	}

	var items []json.RawMessage
	if err := json.Unmarshal(fields["responses"], &items); err == nil {
		for _, item := range items {
			var r types.ResponseFeedback
			if err := json.Unmarshal(item, &r); err == nil {
				qf.Responses = append(qf.Responses, r)
			}
		}
	}

	return qf
}

func repairPatternScore(raw json.RawMessage) *types.PatternScore {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &types.PatternScore{}
	}
	return &types.PatternScore{
		Likes:    decodeOr(fields["likes"], 0),
		Dislikes: decodeOr(fields["dislikes"], 0),
	}
}

func repairImprovements(raw json.RawMessage) ([]types.ImprovementEntry, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}

	entries := make([]types.ImprovementEntry, 0, len(items))
	for _, item := range items {
		var e struct {
			types.ImprovementEntry
			Type string `json:"type"`
		}
		if err := json.Unmarshal(item, &e); err != nil || e.ImprovedAnswer == "" {
			continue
		}
		e.Source = repairSource(e.Source, e.Type)
		entries = append(entries, e.ImprovementEntry)
	}
	return entries, len(entries) > 0
}

// repairSource maps the source labels written by older exports onto the
// two kinds the store produces. kind is the legacy "type" field, if any.
func repairSource(source types.ImprovementSource, kind string) types.ImprovementSource {
	switch source {
	case types.SourceAlternativeSearch, types.SourceFallback:
		return source
	case "automated_search":
		return types.SourceAlternativeSearch
	case "automated_fallback":
		return types.SourceFallback
	}
	switch kind {
	case "alternative_search":
		return types.SourceAlternativeSearch
	case "fallback_message", "fallback":
		return types.SourceFallback
	}
	return source
}

// decodeOr decodes raw into a T, or returns fallback when raw is absent or of another type
func decodeOr[T any](raw json.RawMessage, fallback T) T {
	if len(raw) == 0 {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}
