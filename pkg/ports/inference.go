package ports

import (
	"context"

	"github.com/user/harview/pkg/tensor"
)

// Inferencer runs a forward pass of a pretrained network.
type Inferencer interface {
	// Forward feeds batch to the network and returns its raw output scores.
	Forward(ctx context.Context, batch tensor.Tensor) ([]float32, error)

	// Close releases the network.
	Close() error
}
