package chat

import (
	"context"
	_ "embed"
	"time"
)

//go:embed offline_answer.md
var offlineAnswer string

// OfflineGateway answers every message with fixed Termux help, after Delay.
type OfflineGateway struct {
	Delay time.Duration
}

// Send implements Gateway.
func (g OfflineGateway) Send(ctx context.Context, _ []Turn, _ string) (string, error) {
	if g.Delay > 0 {
		t := time.NewTimer(g.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	return offlineAnswer, nil
}
