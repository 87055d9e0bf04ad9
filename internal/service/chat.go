package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edirooss/streamforge/internal/chat"
)

// ChatReply is the model turn answering one message.
type ChatReply struct {
	Turn  chat.Turn `json:"turn"`
	HTML  string    `json:"html"`  // sanitized rendering of Turn.Text
	Error bool      `json:"error"` // Turn.Text is the failure notice
}

// ChatService forwards conversations to a chat.Gateway, at most one request
// in flight per workspace.
type ChatService struct {
	log     *zap.Logger
	gw      chat.Gateway
	timeout time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewChatService(log *zap.Logger, gw chat.Gateway, timeout time.Duration) *ChatService {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &ChatService{
		log:      log.Named("chat-service"),
		gw:       gw,
		timeout:  timeout,
		inflight: make(map[string]struct{}),
	}
}

// Welcome returns the conversation opener.
func (s *ChatService) Welcome() ChatReply { return reply(chat.Welcome(), false) }

// Send asks the gateway. A gateway failure is not an error: it becomes a
// model turn holding chat.FailureText. Errors are reserved for ErrBusy,
// ErrInvalid and the caller's own cancellation.
func (s *ChatService) Send(ctx context.Context, workspace string, history []chat.Turn, message string) (ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return ChatReply{}, fmt.Errorf("%w: message is required", ErrInvalid)
	}
	if !s.acquire(workspace) {
		return ChatReply{}, ErrBusy
	}
	defer s.release(workspace)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.gw.Send(callCtx, history, message)
	if err != nil {
		if ctx.Err() != nil {
			return ChatReply{}, ctx.Err()
		}
		if !errors.Is(err, chat.ErrNetwork) {
			err = fmt.Errorf("%w: %w", chat.ErrNetwork, err)
		}
		s.log.Warn("chat failed",
			zap.String("workspace", workspace),
			zap.Int("history", len(history)),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return reply(chat.Turn{Role: chat.RoleModel, Text: chat.FailureText}, true), nil
	}

	s.log.Debug("chat answered",
		zap.String("workspace", workspace),
		zap.Int("history", len(history)),
		zap.Duration("latency", time.Since(start)),
	)
	return reply(chat.Turn{Role: chat.RoleModel, Text: text}, false), nil
}

func (s *ChatService) acquire(workspace string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[workspace]; busy {
		return false
	}
	s.inflight[workspace] = struct{}{}
	return true
}

func (s *ChatService) release(workspace string) {
	s.mu.Lock()
	delete(s.inflight, workspace)
	s.mu.Unlock()
}

func reply(t chat.Turn, failed bool) ChatReply {
	return ChatReply{Turn: t, HTML: chat.RenderHTML(t.Text), Error: failed}
}
