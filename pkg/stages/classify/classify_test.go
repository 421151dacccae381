package classify

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/harview/pkg/adapters/logger"
	"github.com/user/harview/pkg/mocks"
	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/tensor"
	"github.com/user/harview/pkg/vocabulary"
)

func clip(n int) []image.Image {
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = mocks.Solid(550, 400, color.RGBA{R: 120, G: 80, B: 40, A: 255})
	}
	return frames
}

func newVocab(t *testing.T, labels ...string) *vocabulary.Vocabulary {
	t.Helper()
	v, err := vocabulary.New(labels)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		name   string
		scores []float32
		want   int
	}{
		{"empty", nil, -1},
		{"single", []float32{0.3}, 0},
		{"last", []float32{0.1, 0.2, 0.9}, 2},
		{"tie picks first", []float32{0.5, 0.9, 0.9, 0.1}, 1},
		{"negative", []float32{-3, -1, -2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Argmax(tt.scores); got != tt.want {
				t.Errorf("Argmax(%v) = %d, want %d", tt.scores, got, tt.want)
			}
		})
	}
}

func TestStage_Execute(t *testing.T) {
	net := &mocks.Inferencer{Scores: []float32{0.1, 0.7, 0.2}}
	stage := NewStage(net, newVocab(t, "abseiling", "running on treadmill", "yoga"), tensor.DefaultBlobParams(), logger.NewNoop())

	pred, err := stage.Execute(context.Background(), pipeline.ClassifyInput{Frames: clip(16)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pred.Label != "running on treadmill" || pred.Index != 1 {
		t.Errorf("unexpected prediction %+v", pred)
	}

	if net.CallCount() != 1 {
		t.Fatalf("expected 1 forward call, got %d", net.CallCount())
	}
	shape := net.Calls[0].Shape
	want := []int{1, 3, 16, 112, 112}
	for i := range want {
		if shape[i] != want[i] {
			t.Fatalf("batch shape = %v, want %v", shape, want)
		}
	}
}

func TestStage_Deterministic(t *testing.T) {
	// Scores are a pure function of the batch contents.
	net := &mocks.Inferencer{
		ForwardFunc: func(ctx context.Context, batch tensor.Tensor) ([]float32, error) {
			var sum float32
			for _, v := range batch.Data {
				sum += v
			}
			if sum > 0 {
				return []float32{0, 1, 0}, nil
			}
			return []float32{1, 0, 0}, nil
		},
	}
	stage := NewStage(net, newVocab(t, "a", "b", "c"), tensor.DefaultBlobParams(), logger.NewNoop())
	frames := clip(16)

	first, err := stage.Execute(context.Background(), pipeline.ClassifyInput{Frames: frames})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := stage.Execute(context.Background(), pipeline.ClassifyInput{Frames: frames})
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Errorf("call %d: %+v differs from %+v", i, again, first)
		}
	}
}

func TestStage_ScoreCountMismatch(t *testing.T) {
	net := &mocks.Inferencer{Scores: []float32{0.1, 0.9}}
	stage := NewStage(net, newVocab(t, "a", "b", "c"), tensor.DefaultBlobParams(), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ClassifyInput{Frames: clip(2)})
	if !errors.Is(err, ErrScoreCount) {
		t.Errorf("expected ErrScoreCount, got %v", err)
	}
}

func TestStage_EmptyScores(t *testing.T) {
	net := &mocks.Inferencer{}
	stage := NewStage(net, newVocab(t, "a"), tensor.DefaultBlobParams(), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ClassifyInput{Frames: clip(1)})
	if !errors.Is(err, ErrNoScores) {
		t.Errorf("expected ErrNoScores, got %v", err)
	}
}

func TestStage_ForwardError(t *testing.T) {
	boom := errors.New("boom")
	net := &mocks.Inferencer{
		ForwardFunc: func(ctx context.Context, batch tensor.Tensor) ([]float32, error) {
			return nil, boom
		},
	}
	stage := NewStage(net, newVocab(t, "a"), tensor.DefaultBlobParams(), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ClassifyInput{Frames: clip(1)})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped forward error, got %v", err)
	}
}

func TestStage_NoFrames(t *testing.T) {
	net := &mocks.Inferencer{Scores: []float32{1}}
	stage := NewStage(net, newVocab(t, "a"), tensor.DefaultBlobParams(), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ClassifyInput{})
	if !errors.Is(err, tensor.ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
	if net.CallCount() != 0 {
		t.Error("network must not run without frames")
	}
}
