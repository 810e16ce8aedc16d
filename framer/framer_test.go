package framer

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMessage_Success(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("hello\x07\x08next")))
	msg, err := r.ReadMessage(20)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\x07\x08"), msg)
}

func TestReadMessage_OneByteAtATimeMatchesWholeMessage(t *testing.T) {
	payload := []byte("Mnau!\x07\x08")
	pr, pw := io.Pipe()
	go func() {
		for _, b := range payload {
			_, _ = pw.Write([]byte{b})
		}
		_ = pw.Close()
	}()
	r := NewReader(pr)
	msg, err := r.ReadMessage(20)
	require.NoError(t, err)
	assert.Equal(t, payload, msg)
}

func TestReadMessage_CeilingExactlyAtSentinelSucceeds(t *testing.T) {
	// 18-byte username content + 2-byte sentinel = 20, the ceiling.
	content := bytes.Repeat([]byte("a"), 18)
	wire := append(content, 0x07, 0x08)
	r := NewReader(bytes.NewReader(wire))
	msg, err := r.ReadMessage(20)
	require.NoError(t, err)
	assert.Equal(t, wire, msg)
}

func TestReadMessage_OverCeilingFailsSyntaxAtCap(t *testing.T) {
	// 19-byte username content + 2-byte sentinel = 21 > ceiling(20).
	content := bytes.Repeat([]byte("a"), 19)
	wire := append(content, 0x07, 0x08)
	r := NewReader(bytes.NewReader(wire))
	_, err := r.ReadMessage(20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSentinel))
}

func TestReadMessage_CeilingRaisedToFloorForShortMessages(t *testing.T) {
	// KEY_ID ceiling is 5, but the recharge floor (12) must still apply so
	// a recharge message isn't truncated mid-read.
	wire := []byte("RECHARGING\x07\x08")
	r := NewReader(bytes.NewReader(wire))
	msg, err := r.ReadMessage(5)
	require.NoError(t, err)
	assert.Equal(t, wire, msg)
}

func TestReadMessage_EOFBeforeSentinelPropagates(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("abc")))
	_, err := r.ReadMessage(20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.False(t, errors.Is(err, ErrNoSentinel))
}

func TestReadMessage_BufferPersistsAcrossCalls(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("one\x07\x08two\x07\x08")))
	first, err := r.ReadMessage(20)
	require.NoError(t, err)
	assert.Equal(t, []byte("one\x07\x08"), first)

	second, err := r.ReadMessage(20)
	require.NoError(t, err)
	assert.Equal(t, []byte("two\x07\x08"), second)
}

func TestReadMessage_NilReader(t *testing.T) {
	r := &Reader{}
	_, err := r.ReadMessage(20)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
