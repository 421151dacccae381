package orchestrator_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/harview/pkg/adapters/filesink"
	"github.com/user/harview/pkg/adapters/ggrenderer"
	"github.com/user/harview/pkg/adapters/headless"
	"github.com/user/harview/pkg/adapters/logger"
	"github.com/user/harview/pkg/adapters/multisink"
	"github.com/user/harview/pkg/adapters/webtranslate"
	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/mocks"
	"github.com/user/harview/pkg/orchestrator"
	"github.com/user/harview/pkg/stages/classify"
	"github.com/user/harview/pkg/stages/overlay"
	"github.com/user/harview/pkg/stages/translate"
	"github.com/user/harview/pkg/tensor"
	"github.com/user/harview/pkg/translator"
	"github.com/user/harview/pkg/vocabulary"
)

// TestRun_RealAdapters drives the loop with the real renderer, translator
// client, headless display and PNG sink; only decoding and inference are faked.
func TestRun_RealAdapters(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "kn", r.URL.Query().Get("tl"))
		w.Write([]byte(`[[["ಯೋಗ","yoga",null,null,1]],null,"en"]`))
	}))
	defer server.Close()

	client := webtranslate.New()
	client.BaseURL = server.URL
	cache := translator.NewCache(client)

	vocab, err := vocabulary.New([]string{"abseiling", "yoga", "surfing water"})
	require.NoError(t, err)

	log := logger.NewNoop()
	renderer := ggrenderer.New()
	net := &mocks.Inferencer{Scores: []float32{0.1, 0.7, 0.2}}
	display := headless.New()
	fs := mocks.NewFileSystem()
	frames := filesink.New("frames", fs, renderer)

	orch := orchestrator.New(
		&mocks.SourceOpener{Source: mocks.NewFrameSource(20, 320, 240)},
		nil,
		orchestrator.Stages{
			Classify:  classify.NewStage(net, vocab, tensor.DefaultBlobParams(), log),
			Translate: translate.NewStage(cache, translate.DefaultTimeout, log),
			Overlay:   overlay.NewStage(renderer, log),
		},
		renderer,
		display,
		multisink.New(frames),
		log,
	)

	cfg := orchestrator.DefaultConfig()
	cfg.VideoPath = "clip.mp4"
	cfg.Language = language.Kannada

	result, err := orch.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, orchestrator.ExitExhausted, result.Exit)
	assert.Equal(t, 20, result.FramesRead)
	assert.Equal(t, 5, result.Inferences)
	assert.Equal(t, 5, display.Shown())
	assert.Equal(t, 5, frames.Written())
	assert.Len(t, fs.Paths(), 5)

	// The built-in face has no Kannada glyphs, so the English label is drawn.
	assert.Equal(t, 0, result.TranslationFallbacks)
	assert.Equal(t, 5, result.OverlayFallbacks)
	assert.Equal(t, "yoga", result.LastText)

	hits, misses := cache.Stats()
	assert.Equal(t, 4, hits)
	assert.Equal(t, 1, misses)
	assert.EqualValues(t, 1, requests.Load())

	last := display.Last()
	require.NotNil(t, last)
	assert.Equal(t, 550, last.Bounds().Dx())
	assert.Equal(t, 400, last.Bounds().Dy())
}
