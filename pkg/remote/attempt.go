package remote

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Outcome is the result of one remote attempt: either a reply, or UseLocal
// with the reason the local matcher has to answer instead.
type Outcome struct {
	Reply    *Reply
	UseLocal bool
	Reason   string
}

// Attempt asks the provider once, bounded by timeout. It never returns an
// error: every failure, including a nil provider, resolves to UseLocal.
func Attempt(ctx context.Context, provider Provider, timeout time.Duration, message string) Outcome {
	if provider == nil {
		return Outcome{UseLocal: true, Reason: ErrNotConfigured.Error()}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reply, err := provider.Ask(ctx, message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Outcome{UseLocal: true, Reason: "timeout"}
		}
		return Outcome{UseLocal: true, Reason: err.Error()}
	}
	if reply == nil || strings.TrimSpace(reply.Answer) == "" {
		return Outcome{UseLocal: true, Reason: ErrNoAnswer.Error()}
	}

	return Outcome{Reply: reply}
}
