// Package translate implements the label translation stage.
package translate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/ports"
)

// ErrEmptyTranslation is reported when a backend answers with blank text.
var ErrEmptyTranslation = errors.New("translate: empty translation")

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 3 * time.Second

// Stage localizes labels. It never fails: any backend problem is logged
// and the original label is returned.
type Stage struct {
	translator ports.Translator
	timeout    time.Duration
	logger     ports.Logger
}

// NewStage creates a translate stage. A zero timeout disables the bound.
// translator may be nil, in which case every translation falls back.
func NewStage(translator ports.Translator, timeout time.Duration, logger ports.Logger) *Stage {
	return &Stage{
		translator: translator,
		timeout:    timeout,
		logger:     logger.WithComponent("translate"),
	}
}

// Execute returns the label in the requested language.
func (s *Stage) Execute(ctx context.Context, input pipeline.TranslateInput) (pipeline.TranslateResult, error) {
	if !input.Language.NeedsTranslation() {
		return pipeline.TranslateResult{Text: input.Label}, nil
	}

	text, err := s.translate(ctx, input)
	if err != nil {
		s.logger.Warn("Translation of %q to %s failed, showing original: %s", input.Label, input.Language, err)
		return pipeline.TranslateResult{Text: input.Label, Fallback: true}, nil
	}

	return pipeline.TranslateResult{Text: text}, nil
}

func (s *Stage) translate(ctx context.Context, input pipeline.TranslateInput) (string, error) {
	if s.translator == nil {
		return "", errors.New("translate: no backend configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.translator.Translate(ctx, input.Label, input.Language.Code())
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyTranslation
	}
	return text, nil
}
