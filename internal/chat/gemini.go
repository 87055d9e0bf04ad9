package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiConfig configures a GeminiGateway.
type GeminiConfig struct {
	APIKey            string
	Model             string // defaults to DefaultModel
	SystemInstruction string // defaults to DefaultSystemInstruction
	BaseURL           string // optional API base override
	HTTPClient        *http.Client
}

// GeminiGateway talks to the Gemini API through the genai SDK.
type GeminiGateway struct {
	log    *zap.Logger
	client *genai.Client
	model  string
	system string
}

// NewGeminiGateway builds the gateway. It fails only on an obviously
// unusable configuration; a bad key surfaces later as ErrNetwork.
func NewGeminiGateway(ctx context.Context, log *zap.Logger, cfg GeminiConfig) (*GeminiGateway, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SystemInstruction == "" {
		cfg.SystemInstruction = DefaultSystemInstruction
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
		HTTPClient:  httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	return &GeminiGateway{
		log:    log.Named("gemini"),
		client: client,
		model:  cfg.Model,
		system: cfg.SystemInstruction,
	}, nil
}

// Send implements Gateway.
func (g *GeminiGateway) Send(ctx context.Context, history []Turn, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(history, message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.system, genai.RoleUser),
	})
	if err != nil {
		g.log.Warn("generate content failed", zap.String("model", g.model), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		g.log.Warn("empty response", zap.String("model", g.model))
		return "", fmt.Errorf("%w: empty response", ErrNetwork)
	}
	return text, nil
}

// toContents maps history plus the new message to genai contents.
// Unknown roles are sent as user turns.
func toContents(history []Turn, message string) []*genai.Content {
	out := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(t.Text, role))
	}
	return append(out, genai.NewContentFromText(message, genai.RoleUser))
}
