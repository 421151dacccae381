package gocvnet

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoad_MissingModel(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "resnet-34_kinetics.onnx"), Options{})
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}
