package console

import (
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/profile"
	"github.com/arthur-debert/tinta/pkg/segment"
)

// Backend encodes segments for one kind of output device. Backends keep
// style state between segments of a single Write, so one backend must
// not be shared by concurrent writers.
type Backend interface {
	Write(w io.Writer, segs []segment.Segment) error
}

// PlainBackend writes text only. Styles and controls are dropped.
type PlainBackend struct{}

func (PlainBackend) Write(w io.Writer, segs []segment.Segment) error {
	var b strings.Builder
	for _, s := range segs {
		if !s.IsControl() {
			b.WriteString(s.Text)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, errors.ErrBackendWrite, "writing plain output")
	}
	return nil
}

// RecordBackend keeps every segment it is given and writes nothing
type RecordBackend struct {
	mu   sync.Mutex
	segs []segment.Segment
}

func (r *RecordBackend) Write(_ io.Writer, segs []segment.Segment) error {
	r.mu.Lock()
	r.segs = append(r.segs, segs...)
	r.mu.Unlock()
	return nil
}

// Segments returns a copy of what was recorded
func (r *RecordBackend) Segments() []segment.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]segment.Segment(nil), r.segs...)
}

// Reset drops the recording
func (r *RecordBackend) Reset() {
	r.mu.Lock()
	r.segs = nil
	r.mu.Unlock()
}

// SelectBackend picks the backend for a profile. A legacy console without
// a usable LegacyTerm falls back to plain text.
func SelectBackend(p profile.Profile, w io.Writer, term LegacyTerm) Backend {
	logger := log()
	switch {
	case p.Legacy:
		if term == nil {
			t, err := NewWin32Term(w)
			if err != nil {
				logger.Debug().Err(err).Msg("legacy console unavailable, writing plain text")
				return PlainBackend{}
			}
			term = t
		}
		return NewLegacyBackend(term, p.ColorSystem)
	case p.ANSI:
		return NewANSIBackend(p.ColorSystem, p.Links)
	}
	return PlainBackend{}
}
