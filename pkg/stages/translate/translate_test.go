package translate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/mocks"
	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/ports"
)

func TestStage_EnglishIsIdentity(t *testing.T) {
	backend := &mocks.Translator{}
	stage := NewStage(backend, time.Second, mocks.NewLogger())

	for _, label := range []string{"", "abseiling", "playing guitar", "ಓಟ", "  spaced  "} {
		res, err := stage.Execute(context.Background(), pipeline.TranslateInput{Label: label, Language: language.English})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Text != label || res.Fallback {
			t.Errorf("English translation of %q = %+v", label, res)
		}
	}

	if backend.CallCount() != 0 {
		t.Errorf("backend must not be called for English, got %d calls", backend.CallCount())
	}
}

func TestStage_Kannada(t *testing.T) {
	backend := &mocks.Translator{
		TranslateFunc: func(ctx context.Context, text, target string) (string, error) {
			return "ಯೋಗ", nil
		},
	}
	stage := NewStage(backend, time.Second, mocks.NewLogger())

	res, err := stage.Execute(context.Background(), pipeline.TranslateInput{Label: "yoga", Language: language.Kannada})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "ಯೋಗ" || res.Fallback {
		t.Errorf("unexpected result %+v", res)
	}
	if backend.Calls[0].Target != "kn" {
		t.Errorf("expected target kn, got %q", backend.Calls[0].Target)
	}
}

func TestStage_BackendErrorFallsBack(t *testing.T) {
	backend := &mocks.Translator{
		TranslateFunc: func(ctx context.Context, text, target string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	log := mocks.NewLogger()
	stage := NewStage(backend, time.Second, log)

	res, err := stage.Execute(context.Background(), pipeline.TranslateInput{Label: "yoga", Language: language.Kannada})
	if err != nil {
		t.Fatalf("translation failure must not surface as an error: %v", err)
	}
	if res.Text != "yoga" || !res.Fallback {
		t.Errorf("expected fallback to original label, got %+v", res)
	}
	if len(log.Entries(ports.LevelWarn)) != 1 {
		t.Errorf("expected one warning, got %v", log.Entries(ports.LevelWarn))
	}
}

func TestStage_EmptyTranslationFallsBack(t *testing.T) {
	backend := &mocks.Translator{
		TranslateFunc: func(ctx context.Context, text, target string) (string, error) {
			return "   ", nil
		},
	}
	stage := NewStage(backend, time.Second, mocks.NewLogger())

	res, _ := stage.Execute(context.Background(), pipeline.TranslateInput{Label: "yoga", Language: language.Kannada})
	if res.Text != "yoga" || !res.Fallback {
		t.Errorf("expected fallback, got %+v", res)
	}
}

func TestStage_TimeoutBoundsSlowBackend(t *testing.T) {
	backend := &mocks.Translator{
		TranslateFunc: func(ctx context.Context, text, target string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	stage := NewStage(backend, 20*time.Millisecond, mocks.NewLogger())

	start := time.Now()
	res, _ := stage.Execute(context.Background(), pipeline.TranslateInput{Label: "yoga", Language: language.Kannada})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("slow backend stalled the stage for %v", elapsed)
	}
	if res.Text != "yoga" || !res.Fallback {
		t.Errorf("expected fallback after timeout, got %+v", res)
	}
}

func TestStage_NilBackendFallsBack(t *testing.T) {
	stage := NewStage(nil, 0, mocks.NewLogger())

	res, err := stage.Execute(context.Background(), pipeline.TranslateInput{Label: "yoga", Language: language.Kannada})
	if err != nil || res.Text != "yoga" || !res.Fallback {
		t.Errorf("unexpected result %+v, %v", res, err)
	}
}
