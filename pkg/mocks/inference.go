package mocks

import (
	"context"
	"sync"

	"github.com/user/harview/pkg/ports"
	"github.com/user/harview/pkg/tensor"
)

// Inferencer is a mock implementation of ports.Inferencer.
type Inferencer struct {
	mu sync.Mutex

	ForwardFunc func(ctx context.Context, batch tensor.Tensor) ([]float32, error)
	Scores      []float32

	Calls  []ForwardCall
	Closed bool
}

// ForwardCall records a call to Forward.
type ForwardCall struct {
	Shape []int
}

func (m *Inferencer) Forward(ctx context.Context, batch tensor.Tensor) ([]float32, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, ForwardCall{Shape: append([]int(nil), batch.Shape...)})
	m.mu.Unlock()

	if m.ForwardFunc != nil {
		return m.ForwardFunc(ctx, batch)
	}
	out := make([]float32, len(m.Scores))
	copy(out, m.Scores)
	return out, nil
}

func (m *Inferencer) Close() error {
	m.Closed = true
	return nil
}

// CallCount returns the number of Forward calls.
func (m *Inferencer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.Inferencer = (*Inferencer)(nil)
