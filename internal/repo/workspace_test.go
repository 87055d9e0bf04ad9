package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/edirooss/streamforge/internal/domain/settings"
	"github.com/edirooss/streamforge/pkg/forge"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), 0, nil)
	t.Cleanup(func() { client.Close() })
	return NewRepository(nil, client)
}

func TestWorkspaceConfig(t *testing.T) {
	r := testRepository(t)
	ctx := context.Background()
	ws := uuid.NewString()
	t.Cleanup(func() { r.Client.Del(ctx, configKey(ws), settingsKey(ws)) })

	if _, err := r.Workspaces.GetConfig(ctx, ws); !errors.Is(err, ErrNotSaved) {
		t.Fatalf("want ErrNotSaved, got %v", err)
	}

	cfg := forge.DefaultConfig()
	cfg.TelegramStreamKey = "k\nEOF"
	if err := r.Workspaces.PutConfig(ctx, ws, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := r.Workspaces.GetConfig(ctx, ws)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("config round trip (-want +got):\n%s", diff)
	}
}

func TestWorkspaceSettings(t *testing.T) {
	r := testRepository(t)
	ctx := context.Background()
	ws := uuid.NewString()
	t.Cleanup(func() { r.Client.Del(ctx, settingsKey(ws)) })

	want := settings.BotSettings{Token: "1:x", OwnerID: "42"}
	if err := r.Workspaces.PutSettings(ctx, ws, want); err != nil {
		t.Fatal(err)
	}
	got, err := r.Workspaces.GetSettings(ctx, ws)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings round trip (-want +got):\n%s", diff)
	}
}
