// Package multisink fans annotated frames out to several sinks.
package multisink

import (
	"errors"
	"image"

	"github.com/user/harview/pkg/ports"
)

// Sink forwards to every enabled child sink.
type Sink struct {
	sinks []ports.FrameSink
}

// New combines sinks, dropping disabled ones.
func New(sinks ...ports.FrameSink) *Sink {
	s := &Sink{}
	for _, sink := range sinks {
		if sink != nil && sink.Enabled() {
			s.sinks = append(s.sinks, sink)
		}
	}
	return s
}

// Enabled reports whether any child sink is enabled.
func (s *Sink) Enabled() bool {
	return len(s.sinks) > 0
}

// Begin starts every sink. On failure the sinks already started are closed.
func (s *Sink) Begin(width, height int, fps float64) error {
	for i, sink := range s.sinks {
		if err := sink.Begin(width, height, fps); err != nil {
			for _, started := range s.sinks[:i] {
				started.Close()
			}
			return err
		}
	}
	return nil
}

// WriteFrame writes to every sink and joins the errors.
func (s *Sink) WriteFrame(index int, img image.Image) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.WriteFrame(index, img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink and joins the errors.
func (s *Sink) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ ports.FrameSink = (*Sink)(nil)
