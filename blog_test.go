package blog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func TestNewWiresModule(t *testing.T) {
	dir := t.TempDir()
	content := "---\ntitle: Wired\ndate: 2025-01-17\n---\n\nBody."
	if err := os.WriteFile(filepath.Join(dir, "wired.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}

	cfg := DefaultConfig()
	cfg.PostsDir = dir

	module, err := New(cfg, WithLoggerProvider(noopProvider{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if module.Server() == nil {
		t.Fatal("expected server to be wired")
	}

	list, err := module.Posts().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "wired" {
		t.Fatalf("unexpected posts %#v", list)
	}

	if got := len(module.Warnings()); got != 2 {
		t.Fatalf("expected default-credential warnings, got %d", got)
	}
}

func TestNewRejectsMissingPostsDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PostsDir = filepath.Join(t.TempDir(), "does-not-exist")

	if _, err := New(cfg, WithLoggerProvider(noopProvider{})); err == nil {
		t.Fatal("expected missing posts directory to fail construction")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password = ""

	if _, err := New(cfg); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}
