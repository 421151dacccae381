// Package gocvnet runs ONNX networks with the OpenCV DNN module.
package gocvnet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/user/harview/pkg/ports"
	"github.com/user/harview/pkg/tensor"
)

var (
	// ErrModelNotFound is returned when the model file does not exist.
	ErrModelNotFound = errors.New("gocvnet: model not found")

	// ErrModelLoad is returned when OpenCV cannot parse the model.
	ErrModelLoad = errors.New("gocvnet: cannot load model")
)

// Options selects the DNN backend.
type Options struct {
	CUDA bool
}

// Net implements ports.Inferencer.
type Net struct {
	mu  sync.Mutex
	net gocv.Net
}

// Load reads an ONNX model.
func Load(path string, opts Options) (*Net, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}

	net := gocv.ReadNet(path, "")
	if net.Empty() {
		net.Close()
		return nil, fmt.Errorf("%w: %s", ErrModelLoad, path)
	}

	if opts.CUDA {
		net.SetPreferableBackend(gocv.NetBackendCUDA)
		net.SetPreferableTarget(gocv.NetTargetCUDA)
	} else {
		net.SetPreferableBackend(gocv.NetBackendDefault)
		net.SetPreferableTarget(gocv.NetTargetCPU)
	}

	return &Net{net: net}, nil
}

// Forward copies batch into an N-dimensional float Mat and runs the network.
func (n *Net) Forward(ctx context.Context, batch tensor.Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if batch.Len() != len(batch.Data) {
		return nil, fmt.Errorf("%w: shape %v holds %d values, data has %d", tensor.ErrBadSize, batch.Shape, batch.Len(), len(batch.Data))
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	blob := gocv.NewMatWithSizes(batch.Shape, gocv.MatTypeCV32F)
	defer blob.Close()

	dst, err := blob.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("blob data: %w", err)
	}
	copy(dst, batch.Data)

	n.net.SetInput(blob, "")
	out := n.net.Forward("")
	defer out.Close()

	if out.Empty() {
		return nil, errors.New("gocvnet: empty network output")
	}

	raw, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("output data: %w", err)
	}
	scores := make([]float32, len(raw))
	copy(scores, raw)
	return scores, nil
}

// Close releases the network.
func (n *Net) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.net.Close()
}

var _ ports.Inferencer = (*Net)(nil)
