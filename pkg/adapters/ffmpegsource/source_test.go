package ffmpegsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/user/harview/pkg/ports"
)

func TestArgs(t *testing.T) {
	args := Args("clip.mp4", 550, 400)

	want := []string{"-i", "clip.mp4"}
	if i := slices.Index(args, "-i"); i < 0 || !slices.Equal(args[i:i+2], want) {
		t.Errorf("missing input in %v", args)
	}
	if i := slices.Index(args, "-s"); i < 0 || args[i+1] != "550x400" {
		t.Errorf("missing size in %v", args)
	}
	if i := slices.Index(args, "-pix_fmt"); i < 0 || args[i+1] != "rgb24" {
		t.Errorf("missing pixel format in %v", args)
	}
	if args[len(args)-1] != "pipe:1" {
		t.Errorf("expected stdout output, got %v", args)
	}
}

func TestOpen_RejectsCamera(t *testing.T) {
	o := New(550, 400, 25)

	for _, path := range []string{"", "0", "3"} {
		if _, err := o.Open(context.Background(), path); !errors.Is(err, ports.ErrSourceOpen) {
			t.Errorf("Open(%q): expected ErrSourceOpen, got %v", path, err)
		}
	}
}

func TestOpen_MissingFile(t *testing.T) {
	o := New(550, 400, 25)

	_, err := o.Open(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, ports.ErrSourceOpen) {
		t.Errorf("expected ErrSourceOpen, got %v", err)
	}
}

func TestSource_ReadsFramesUntilShortRead(t *testing.T) {
	// Two full 2x1 frames followed by a truncated one.
	data := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 10, 20, 30,
		1, 2,
	}
	s := &Source{
		info:   ports.SourceInfo{Camera: -1, Width: 2, Height: 1, FPS: 10},
		stdout: io.NopCloser(bytes.NewReader(data)),
		frame:  make([]byte, 2*1*3),
	}

	f0, err := s.Next(context.Background())
	if err != nil {
		t.Fatalf("frame 0: %v", err)
	}
	if r, g, b, _ := f0.Image.At(0, 0).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("frame 0 pixel 0 not red")
	}

	f1, err := s.Next(context.Background())
	if err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if f1.Index != 1 || f1.TimestampMs != 100 {
		t.Errorf("unexpected frame 1 index %d ts %d", f1.Index, f1.TimestampMs)
	}
	if r, g, b, _ := f1.Image.At(1, 0).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("frame 1 pixel 1 = %d,%d,%d", r>>8, g>>8, b>>8)
	}

	if _, err := s.Next(context.Background()); err != io.EOF {
		t.Errorf("expected io.EOF on short read, got %v", err)
	}
	if _, err := s.Next(context.Background()); err != io.EOF {
		t.Errorf("expected io.EOF after end, got %v", err)
	}
}

func TestSource_StderrWhileReading(t *testing.T) {
	pr, pw := io.Pipe()
	s := &Source{
		info:   ports.SourceInfo{Camera: -1, Width: 1, Height: 1},
		stdout: pr,
		frame:  make([]byte, 3),
	}

	// Next blocks on the pipe while holding the source lock.
	read := make(chan error, 1)
	go func() {
		_, err := s.Next(context.Background())
		read <- err
	}()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Fprintf(&s.stderr, "warning %d\n", i)
		}()
	}

	got := make(chan string, 1)
	go func() {
		wg.Wait()
		got <- s.Stderr()
	}()

	select {
	case out := <-got:
		if n := strings.Count(out, "warning"); n != 10 {
			t.Errorf("expected 10 stderr lines, got %d in %q", n, out)
		}
	case <-time.After(time.Second):
		t.Fatal("Stderr blocked while a frame was being read")
	}

	pw.Write([]byte{1, 2, 3})
	if err := <-read; err != nil {
		t.Errorf("Next: %v", err)
	}
}
