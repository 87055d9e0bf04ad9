package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/edirooss/streamforge/internal/chat"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started by opencensus init, linked in through genai
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type fakeGateway struct {
	text  string
	err   error
	block chan struct{} // when set, Send waits for close or ctx
	calls int
	mu    sync.Mutex
}

func (g *fakeGateway) Send(ctx context.Context, history []chat.Turn, message string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.text, g.err
}

func TestChatSend(t *testing.T) {
	svc := NewChatService(nil, &fakeGateway{text: "use **-re**"}, time.Second)
	got, err := svc.Send(context.Background(), "ws", []chat.Turn{chat.Welcome()}, "how to throttle?")
	if err != nil {
		t.Fatal(err)
	}
	if got.Error || got.Turn.Role != chat.RoleModel || got.Turn.Text != "use **-re**" {
		t.Fatalf("unexpected reply %+v", got)
	}
	if !strings.Contains(got.HTML, "<strong>-re</strong>") {
		t.Fatalf("html not rendered: %q", got.HTML)
	}
}

func TestChatGatewayFailureBecomesNotice(t *testing.T) {
	for _, err := range []error{chat.ErrNetwork, errors.New("401 unauthorized")} {
		svc := NewChatService(nil, &fakeGateway{err: err}, time.Second)
		got, sendErr := svc.Send(context.Background(), "ws", nil, "hi")
		if sendErr != nil {
			t.Fatalf("unexpected error %v", sendErr)
		}
		if !got.Error || got.Turn.Text != chat.FailureText {
			t.Fatalf("unexpected reply %+v", got)
		}
	}
}

func TestChatTimeoutBecomesNotice(t *testing.T) {
	svc := NewChatService(nil, &fakeGateway{block: make(chan struct{})}, 20*time.Millisecond)
	got, err := svc.Send(context.Background(), "ws", nil, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Error {
		t.Fatal("timeout should produce the failure notice")
	}
}

func TestChatCallerCancel(t *testing.T) {
	svc := NewChatService(nil, &fakeGateway{block: make(chan struct{})}, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Send(ctx, "ws", nil, "hi"); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	gw := &fakeGateway{text: "x"}
	svc := NewChatService(nil, gw, time.Second)
	if _, err := svc.Send(context.Background(), "ws", nil, "  "); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatal("gateway called for empty message")
	}
}

func TestChatOneRequestPerWorkspace(t *testing.T) {
	gw := &fakeGateway{text: "ok", block: make(chan struct{})}
	svc := NewChatService(nil, gw, time.Minute)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(context.Background(), "ws", nil, "first")
		done <- err
	}()

	// wait until the first request holds the slot
	deadline := time.Now().Add(time.Second)
	for {
		gw.mu.Lock()
		n := gw.calls
		gw.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first request never reached the gateway")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := svc.Send(context.Background(), "ws", nil, "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("want ErrBusy, got %v", err)
	}

	close(gw.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	// other workspaces and later requests are unaffected
	if _, err := svc.Send(context.Background(), "other", nil, "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Send(context.Background(), "ws", nil, "third"); err != nil {
		t.Fatal(err)
	}
}

func TestWelcome(t *testing.T) {
	w := NewChatService(nil, chat.OfflineGateway{}, 0).Welcome()
	if w.Turn.Text != chat.WelcomeText || w.Error {
		t.Fatalf("unexpected welcome %+v", w)
	}
}
