package gocvsource

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/harview/pkg/ports"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := New().Open(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, ports.ErrSourceOpen) {
		t.Errorf("expected ErrSourceOpen, got %v", err)
	}
}
