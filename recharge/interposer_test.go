package recharge

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/originctl/framer"
	"code.hybscloud.com/originctl/protoerr"
)

func pipePair(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	c1, c2 := net.Pipe()
	t.Cleanup(func() { _ = c1.Close(); _ = c2.Close() })
	return c1, c2
}

func TestReadMessage_TransparentRechargePair(t *testing.T) {
	server, client := pipePair(t)
	fr := framer.NewReader(server)
	interp := New(server, fr)

	go func() {
		_, _ = client.Write([]byte("RECHARGING\x07\x08"))
		time.Sleep(10 * time.Millisecond)
		_, _ = client.Write([]byte("FULL POWER\x07\x08"))
		time.Sleep(10 * time.Millisecond)
		_, _ = client.Write([]byte("4543\x07\x08"))
	}()

	msg, err := interp.ReadMessage(7)
	require.NoError(t, err)
	assert.Equal(t, []byte("4543\x07\x08"), msg)
	assert.False(t, interp.Recharging())
}

func TestReadMessage_FullPowerWithoutRechargingIsLogicError(t *testing.T) {
	server, client := pipePair(t)
	fr := framer.NewReader(server)
	interp := New(server, fr)

	go func() { _, _ = client.Write([]byte("FULL POWER\x07\x08")) }()

	_, err := interp.ReadMessage(12)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.Logic, pe.Class)
}

func TestReadMessage_RechargingFollowedByWrongMessageIsLogicError(t *testing.T) {
	server, client := pipePair(t)
	fr := framer.NewReader(server)
	interp := New(server, fr)

	go func() {
		_, _ = client.Write([]byte("RECHARGING\x07\x08"))
		time.Sleep(10 * time.Millisecond)
		_, _ = client.Write([]byte("4543\x07\x08"))
	}()

	_, err := interp.ReadMessage(7)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.Logic, pe.Class)
}

func TestReadMessage_ChainedRecharge(t *testing.T) {
	server, client := pipePair(t)
	fr := framer.NewReader(server)
	interp := New(server, fr)

	go func() {
		_, _ = client.Write([]byte("RECHARGING\x07\x08"))
		time.Sleep(5 * time.Millisecond)
		_, _ = client.Write([]byte("FULL POWER\x07\x08"))
		time.Sleep(5 * time.Millisecond)
		_, _ = client.Write([]byte("RECHARGING\x07\x08"))
		time.Sleep(5 * time.Millisecond)
		_, _ = client.Write([]byte("FULL POWER\x07\x08"))
		time.Sleep(5 * time.Millisecond)
		_, _ = client.Write([]byte("0\x07\x08"))
	}()

	msg, err := interp.ReadMessage(5)
	require.NoError(t, err)
	assert.Equal(t, []byte("0\x07\x08"), msg)
}
