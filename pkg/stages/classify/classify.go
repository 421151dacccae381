// Package classify implements the activity classification stage.
package classify

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/ports"
	"github.com/user/harview/pkg/tensor"
	"github.com/user/harview/pkg/vocabulary"
)

var (
	// ErrNoScores is returned when the network produces an empty output.
	ErrNoScores = errors.New("classify: network returned no scores")

	// ErrScoreCount is returned when the output length differs from the vocabulary size.
	ErrScoreCount = errors.New("classify: score count does not match vocabulary")
)

// Stage turns a window of frames into a Prediction.
type Stage struct {
	net    ports.Inferencer
	vocab  *vocabulary.Vocabulary
	params tensor.BlobParams
	logger ports.Logger
}

// NewStage creates a classify stage.
func NewStage(net ports.Inferencer, vocab *vocabulary.Vocabulary, params tensor.BlobParams, logger ports.Logger) *Stage {
	return &Stage{
		net:    net,
		vocab:  vocab,
		params: params,
		logger: logger.WithComponent("classify"),
	}
}

// Execute builds the batch, runs the network and picks the best label.
func (s *Stage) Execute(ctx context.Context, input pipeline.ClassifyInput) (pipeline.Prediction, error) {
	batch, err := tensor.FromClip(input.Frames, s.params)
	if err != nil {
		return pipeline.Prediction{}, fmt.Errorf("build batch: %w", err)
	}

	scores, err := s.net.Forward(ctx, batch)
	if err != nil {
		return pipeline.Prediction{}, fmt.Errorf("forward pass: %w", err)
	}
	if len(scores) == 0 {
		return pipeline.Prediction{}, ErrNoScores
	}
	if len(scores) != s.vocab.Len() {
		return pipeline.Prediction{}, fmt.Errorf("%w: %d scores, %d labels", ErrScoreCount, len(scores), s.vocab.Len())
	}

	best := Argmax(scores)
	label, err := s.vocab.Label(best)
	if err != nil {
		return pipeline.Prediction{}, err
	}

	s.logger.Debug("Predicted %s (index %d, score %.3f)", label, best, scores[best])
	return pipeline.Prediction{Label: label, Index: best, Score: scores[best]}, nil
}

// Argmax returns the index of the largest score. The first index wins ties.
// It returns -1 for an empty slice.
func Argmax(scores []float32) int {
	if len(scores) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}
