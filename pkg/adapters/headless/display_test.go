package headless

import (
	"image"
	"testing"
	"time"

	"github.com/user/harview/pkg/ports"
)

func TestDisplay(t *testing.T) {
	d := New()

	if d.Last() != nil {
		t.Error("expected no frame before Show")
	}

	frame := image.NewRGBA(image.Rect(0, 0, 550, 400))
	for i := 0; i < 3; i++ {
		if err := d.Show(frame); err != nil {
			t.Fatalf("Show failed: %v", err)
		}
	}

	if d.Shown() != 3 {
		t.Errorf("expected 3 frames shown, got %d", d.Shown())
	}
	if d.Last() != frame {
		t.Error("expected last frame to be kept")
	}
	if key := d.PollKey(time.Millisecond); key != ports.NoKey {
		t.Errorf("expected NoKey, got %d", key)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
