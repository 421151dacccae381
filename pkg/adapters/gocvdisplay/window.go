// Package gocvdisplay shows frames in an OpenCV HighGUI window.
package gocvdisplay

import (
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"

	"github.com/user/harview/pkg/ports"
)

// Window implements ports.Display. The native window is created on the
// first Show, so a session that never displays a frame opens nothing.
// All HighGUI calls are made from one dedicated OS thread.
type Window struct {
	title  string
	win    *gocv.Window
	thread *thread
}

// New creates a display titled title.
func New(title string) *Window {
	return &Window{title: title, thread: newThread()}
}

// Show converts img to a Mat and presents it.
func (w *Window) Show(img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()

	if !w.thread.run(func() {
		if w.win == nil {
			w.win = gocv.NewWindow(w.title)
		}
		w.win.IMShow(mat)
	}) {
		return fmt.Errorf("show frame: display closed")
	}
	return nil
}

// PollKey pumps the window event loop for at least 1ms.
func (w *Window) PollKey(wait time.Duration) int {
	ms := int(wait / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	key := -1
	w.thread.run(func() {
		if w.win != nil {
			key = w.win.WaitKey(ms)
		}
	})
	return KeyCode(key)
}

// KeyCode maps a WaitKey result to a ports key code.
func KeyCode(key int) int {
	if key < 0 {
		return ports.NoKey
	}
	return key & 0xff
}

// Close destroys the window if one was created and stops the display thread.
func (w *Window) Close() error {
	var err error
	w.thread.run(func() {
		if w.win != nil {
			err = w.win.Close()
			w.win = nil
		}
	})
	w.thread.stop()
	return err
}

var _ ports.Display = (*Window)(nil)
