package mirror

import (
	"context"
	"fmt"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// Mirror forwards feedback submissions to a remote collector
type Mirror interface {
	Submit(ctx context.Context, sub Submission) (*Counters, error)
	Name() string
}

// Submission is one verdict as sent to the collector
type Submission struct {
	Question string        `json:"question"`
	Answer   string        `json:"answer"`
	Verdict  types.Verdict `json:"feedback"`
}

// Counters are the collector's aggregates, shown to users for information only
type Counters struct {
	BlockedAnswers  int `json:"blocked_answers"`
	BlockedKeywords int `json:"blocked_keywords"`
}

// Config selects the mirror backend
type Config struct {
	Kind              string // "none", "http", "postgres", "slack"
	URL               string
	DatabaseURL       string
	SlackWebhookURL   string
	SlackDislikesOnly bool
}

// New creates the configured mirror. It returns nil when mirroring is disabled.
func New(ctx context.Context, cfg Config) (Mirror, error) {
	switch cfg.Kind {
	case "", "none":
		return nil, nil
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("FEEDBACK_MIRROR_URL is required for the http mirror")
		}
		return NewHTTPMirror(cfg.URL), nil
	case "postgres":
		m, err := NewPostgresMirror(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "slack":
		if cfg.SlackWebhookURL == "" {
			return nil, fmt.Errorf("SLACK_WEBHOOK_URL is required for the slack mirror")
		}
		return NewSlackMirror(cfg.SlackWebhookURL, cfg.SlackDislikesOnly), nil
	default:
		return nil, fmt.Errorf("unknown feedback mirror: %s (supported: none, http, postgres, slack)", cfg.Kind)
	}
}
