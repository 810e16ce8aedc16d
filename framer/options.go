// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framer

// Options configures a Reader.
type Options struct {
	// Sentinel is the two-byte terminator every message ends in.
	Sentinel [2]byte

	// MinCeiling is the floor every caller-supplied ceiling is raised to
	// before length-policing a read. The protocol's recharge sub-dialogue
	// may pre-empt any read, so no ceiling may be tighter than the
	// recharge messages' own ceiling.
	MinCeiling int

	// ChunkSize is how many bytes the Reader asks the underlying io.Reader
	// for at a time when its internal buffer runs dry.
	ChunkSize int
}

var defaultOptions = Options{
	Sentinel:   [2]byte{0x07, 0x08},
	MinCeiling: 12,
	ChunkSize:  1024,
}

// Option configures a Reader at construction time.
type Option func(*Options)

// WithSentinel overrides the default two-byte terminator.
func WithSentinel(sentinel [2]byte) Option {
	return func(o *Options) { o.Sentinel = sentinel }
}

// WithMinCeiling overrides the floor every read ceiling is raised to.
func WithMinCeiling(n int) Option {
	return func(o *Options) { o.MinCeiling = n }
}

// WithChunkSize overrides how many bytes are requested per underlying read.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}
