// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package framer reads sentinel-terminated messages out of a byte stream.
//
// Semantics and design:
//   - One message per ReadMessage call: the returned slice is exactly one
//     message, sentinel included, never a partial or concatenated frame.
//   - Length policing happens in-stream, not after a full message is read:
//     a caller-supplied ceiling (raised to a configurable floor, since a
//     recharge sub-dialogue may pre-empt any read with its own short
//     messages) bounds how many bytes a single message may occupy before
//     the sentinel must have appeared.
//   - The Reader owns an internal buffer of bytes already pulled from the
//     underlying io.Reader but not yet consumed into a message; this buffer
//     persists across ReadMessage calls so a client that trickles bytes in
//     one at a time observes identical behavior to one that sends whole
//     messages at once.
package framer

import "io"

// Reader reads one sentinel-terminated message at a time from an
// underlying io.Reader.
type Reader struct {
	r    io.Reader
	opts Options
	buf  []byte // bytes already read from r, not yet consumed into a message
}

// NewReader returns a Reader that frames messages read from r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &Reader{r: r, opts: o}
}

// ceiling returns the effective ceiling for a read whose caller-supplied
// maximum is maxLen: raised to the configured floor.
func (fr *Reader) ceiling(maxLen int) int {
	if maxLen < fr.opts.MinCeiling {
		return fr.opts.MinCeiling
	}
	return maxLen
}

// fill requests one more chunk from the underlying reader and appends
// whatever bytes it yields to the internal buffer.
func (fr *Reader) fill() error {
	chunk := make([]byte, fr.opts.ChunkSize)
	n, err := fr.r.Read(chunk)
	if n > 0 {
		fr.buf = append(fr.buf, chunk[:n]...)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		// Guard against readers that violate the io.Reader contract by
		// returning (0, nil) on a non-empty buffer.
		return io.ErrNoProgress
	}
	return nil
}

// nextByte returns the next unconsumed byte, refilling the internal buffer
// from the underlying reader as needed.
func (fr *Reader) nextByte() (byte, error) {
	for len(fr.buf) == 0 {
		if err := fr.fill(); err != nil {
			return 0, err
		}
	}
	b := fr.buf[0]
	fr.buf = fr.buf[1:]
	return b, nil
}

// ReadMessage returns exactly one sentinel-terminated message, sentinel
// included. maxLen is the caller's natural ceiling for this message kind;
// it is raised to the Reader's configured floor before being enforced,
// since a recharge sub-dialogue may pre-empt this read.
//
// If the underlying reader fails (EOF, deadline exceeded, or any other
// I/O error) before the sentinel appears, that error is returned unchanged
// — callers treat it as a silent, wire-response-free failure. If the
// message reaches its ceiling without ending in the sentinel, ErrNoSentinel
// is returned: a syntax failure, not an I/O failure.
func (fr *Reader) ReadMessage(maxLen int) ([]byte, error) {
	if fr.r == nil {
		return nil, ErrInvalidArgument
	}
	ceiling := fr.ceiling(maxLen)
	msg := make([]byte, 0, ceiling)
	for {
		b, err := fr.nextByte()
		if err != nil {
			return nil, err
		}
		msg = append(msg, b)
		n := len(msg)
		if n >= 2 && msg[n-2] == fr.opts.Sentinel[0] && msg[n-1] == fr.opts.Sentinel[1] {
			return msg, nil
		}
		if n == ceiling {
			return nil, ErrNoSentinel
		}
	}
}
