package mocks

import (
	"context"
	"sync"

	"github.com/user/harview/pkg/ports"
)

// Translator is a mock implementation of ports.Translator.
type Translator struct {
	mu sync.Mutex

	TranslateFunc func(ctx context.Context, text, target string) (string, error)

	Calls []TranslateCall
}

// TranslateCall records a call to Translate.
type TranslateCall struct {
	Text   string
	Target string
}

func (m *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, TranslateCall{Text: text, Target: target})
	m.mu.Unlock()

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, target)
	}
	return "[" + target + "] " + text, nil
}

// CallCount returns the number of Translate calls.
func (m *Translator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.Translator = (*Translator)(nil)
