package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidImport is returned when an import document has no sessions array
var ErrInvalidImport = errors.New("invalid feedback data format")

// Export returns a copy of the full ledger with summary statistics
func (s *Store) Export() (*Document, error) {
	s.mu.RLock()
	data, err := json.Marshal(s.doc)
	stats := s.exportStatistics()
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feedback: %w", err)
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to copy feedback: %w", err)
	}

	exportedAt := s.now().UTC()
	doc.ExportedAt = &exportedAt
	doc.Statistics = &stats
	return doc, nil
}

// Import merges an exported document into the ledger: sessions are appended
// and map entries from the document overwrite existing ones. Nothing is merged
// unless the document has a sessions array. Documents wrapped in a
// feedbackData object are accepted too. It returns the number of sessions added.
func (s *Store) Import(ctx context.Context, data []byte) (int, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return 0, fmt.Errorf("%w: not a JSON object", ErrInvalidImport)
	}

	if _, ok := fields["sessions"]; !ok {
		if wrapped, ok := fields["feedbackData"]; ok {
			data = wrapped
			fields = map[string]json.RawMessage{}
			if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
				return 0, fmt.Errorf("%w: feedbackData is not an object", ErrInvalidImport)
			}
		}
	}

	var sessions []json.RawMessage
	if err := json.Unmarshal(fields["sessions"], &sessions); err != nil || sessions == nil {
		return 0, fmt.Errorf("%w: sessions must be an array", ErrInvalidImport)
	}

	incoming, repaired := repairDocument(data)
	if len(repaired) > 0 {
		s.logger.Warn("Imported document had corrupt fields", zap.Strings("fields", repaired))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Sessions = append(s.doc.Sessions, incoming.Sessions...)
	s.doc.QuestionFeedback.Merge(incoming.QuestionFeedback)
	s.doc.PatternScores.Merge(incoming.PatternScores)
	s.doc.ImprovedResponses.Merge(incoming.ImprovedResponses)

	s.logger.Info("Imported feedback",
		zap.Int("sessions", len(incoming.Sessions)),
		zap.Int("questions", incoming.QuestionFeedback.Len()))

	s.save(ctx)
	return len(incoming.Sessions), nil
}

// caller holds s.mu
func (s *Store) exportStatistics() ExportStatistics {
	likes, dislikes := countVerdicts(s.doc.Sessions)
	return ExportStatistics{
		TotalFeedback:     len(s.doc.Sessions),
		Likes:             likes,
		Dislikes:          dislikes,
		UniqueQuestions:   s.doc.QuestionFeedback.Len(),
		ImprovedResponses: s.doc.ImprovedResponses.Len(),
	}
}
