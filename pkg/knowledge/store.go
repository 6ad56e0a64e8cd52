package knowledge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// KnowledgeBase holds the FAQ records the bot answers from.
// The record set is swapped wholesale; callers get a snapshot.
type KnowledgeBase struct {
	mu           sync.RWMutex
	records      []types.FaqRecord
	source       Source
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewKnowledgeBase creates a knowledge base seeded with the built-in records.
// source may be nil, in which case Refresh is a no-op.
func NewKnowledgeBase(source Source, fetchTimeout time.Duration, logger *zap.Logger) *KnowledgeBase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetchTimeout == 0 {
		fetchTimeout = 5 * time.Second
	}
	return &KnowledgeBase{
		records:      Defaults(),
		source:       source,
		fetchTimeout: fetchTimeout,
		logger:       logger.Named("knowledge"),
	}
}

// Records returns the current record set
func (kb *KnowledgeBase) Records() []types.FaqRecord {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.records
}

// Len returns the number of records
func (kb *KnowledgeBase) Len() int {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return len(kb.records)
}

// Replace swaps in a new record set after validating it
func (kb *KnowledgeBase) Replace(records []types.FaqRecord) error {
	if err := validateRecords(records); err != nil {
		return err
	}

	copied := make([]types.FaqRecord, len(records))
	copy(copied, records)

	kb.mu.Lock()
	kb.records = copied
	kb.mu.Unlock()
	return nil
}

// Refresh fetches the configured document and replaces the record set.
// On any failure the current records stay in place and the error is returned for reporting.
func (kb *KnowledgeBase) Refresh(ctx context.Context) error {
	if kb.source == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, kb.fetchTimeout)
	defer cancel()

	records, err := kb.source.Fetch(ctx)
	if err != nil {
		kb.logger.Warn("Knowledge refresh failed, keeping current records",
			zap.String("source", kb.source.Name()),
			zap.Int("records", kb.Len()),
			zap.Error(err))
		return fmt.Errorf("failed to refresh from %s: %w", kb.source.Name(), err)
	}

	if err := kb.Replace(records); err != nil {
		kb.logger.Warn("Knowledge document rejected", zap.String("source", kb.source.Name()), zap.Error(err))
		return fmt.Errorf("failed to refresh from %s: %w", kb.source.Name(), err)
	}

	kb.logger.Info("Knowledge base refreshed",
		zap.String("source", kb.source.Name()),
		zap.Int("records", len(records)))
	return nil
}

// SourceName describes where refreshes come from
func (kb *KnowledgeBase) SourceName() string {
	if kb.source == nil {
		return "built-in"
	}
	return kb.source.Name()
}
