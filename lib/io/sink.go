package iolib

import (
	"github.com/pkg/errors"
)

var (
	ErrNonPositiveCapacity = errors.New("sink capacity must be at least 1")
	ErrSinkOpen            = errors.New("cannot read a sink that is not closed")
	ErrSinkClosed          = errors.New("write to closed sink")
)

// Sink is an append-only buffer which accumulates written bytes into one contiguous slice.
// The written bytes are only readable after [Sink.Close].
type Sink struct {
	buf    []byte
	next   int
	closed bool
}

func NewSink(capacity int) (*Sink, error) {
	if capacity < 1 {
		return nil, errors.Wrapf(ErrNonPositiveCapacity, "got %d", capacity)
	}

	return &Sink{buf: make([]byte, capacity)}, nil
}

func (s *Sink) Write(p []byte) (n int, err error) {
	if s.closed {
		return 0, ErrSinkClosed
	}

	if len(s.buf)-s.next < len(p) {
		s.grow(len(p))
	}

	n = copy(s.buf[s.next:], p)
	s.next += n

	return n, nil
}

// grow reallocates to max(cap+needed, cap*2) and keeps the written prefix.
func (s *Sink) grow(needed int) {
	size := max(len(s.buf)+needed, len(s.buf)*2)

	buf := make([]byte, size)
	copy(buf, s.buf[:s.next])
	s.buf = buf
}

func (s *Sink) Close() error {
	if s.closed {
		return nil
	}

	s.buf = s.buf[:s.next:s.next]
	s.closed = true

	return nil
}

// Written returns exactly the written bytes.
func (s *Sink) Written() ([]byte, error) {
	if !s.closed {
		return nil, ErrSinkOpen
	}
	return s.buf, nil
}

func (s *Sink) Len() int { return s.next }

func (s *Sink) Cap() int { return cap(s.buf) }
