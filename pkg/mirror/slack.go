package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// SlackMirror posts each verdict to a Slack incoming webhook so staff can
// review disliked answers. Slack keeps no aggregates, so counters are zero.
type SlackMirror struct {
	webhookURL   string
	dislikesOnly bool
	client       *http.Client
}

// NewSlackMirror creates a mirror for the webhook. With dislikesOnly set, likes are not posted.
func NewSlackMirror(webhookURL string, dislikesOnly bool) *SlackMirror {
	return &SlackMirror{
		webhookURL:   webhookURL,
		dislikesOnly: dislikesOnly,
		client:       &http.Client{},
	}
}

// Name returns the mirror name
func (m *SlackMirror) Name() string {
	return "Slack webhook"
}

// Slack Block Kit message
// Reference: https://api.slack.com/messaging/webhooks
type slackMessage struct {
	Text   string       `json:"text,omitempty"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

type slackBlock struct {
	Type   string            `json:"type"`
	Text   *slackTextObject  `json:"text,omitempty"`
	Fields []slackTextObject `json:"fields,omitempty"`
}

type slackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Submit posts the verdict to the channel
func (m *SlackMirror) Submit(ctx context.Context, sub Submission) (*Counters, error) {
	if m.dislikesOnly && sub.Verdict != types.VerdictDislike {
		return &Counters{}, nil
	}

	jsonData, err := json.Marshal(buildSlackMessage(sub))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send to Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Slack API returned status %d: %s", resp.StatusCode, string(body))
	}

	return &Counters{}, nil
}

func buildSlackMessage(sub Submission) slackMessage {
	title := "👍 Answer liked"
	if sub.Verdict == types.VerdictDislike {
		title = "👎 Answer disliked"
	}

	return slackMessage{
		Text: title + ": " + sub.Question,
		Blocks: []slackBlock{
			{
				Type: "header",
				Text: &slackTextObject{Type: "plain_text", Text: title},
			},
			{
				Type: "section",
				Fields: []slackTextObject{
					{Type: "mrkdwn", Text: fmt.Sprintf("*Question:*\n%s", truncateForSlack(sub.Question, 1000))},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Answer:*\n%s", truncateForSlack(sub.Answer, 1000))},
				},
			},
		},
	}
}

func truncateForSlack(text string, maxLen int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen-3]) + "..."
}
