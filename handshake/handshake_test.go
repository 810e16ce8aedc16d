package handshake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/originctl/protoerr"
	"code.hybscloud.com/originctl/wire"
)

// fakeSession is an in-memory stand-in for session.Session: a queue of
// incoming client messages and a record of outgoing server ones.
type fakeSession struct {
	in  [][]byte
	out [][]byte
}

func (f *fakeSession) ReadMessage(maxLen int) ([]byte, error) {
	if len(f.in) == 0 {
		return nil, errors.New("fakeSession: no more queued messages")
	}
	msg := f.in[0]
	f.in = f.in[1:]
	return msg, nil
}

func (f *fakeSession) WriteMessage(b []byte) error {
	f.out = append(f.out, append([]byte{}, b...))
	return nil
}

func msg(s string) []byte { return append([]byte(s), wire.Sentinel[0], wire.Sentinel[1]) }

func TestPerform_SuccessfulLogin(t *testing.T) {
	f := &fakeSession{in: [][]byte{
		msg("Mnau!"), // username
		msg("1"),      // key id
		msg("4543"),   // client confirmation
	}}

	rob, err := Perform(f)
	require.NoError(t, err)
	assert.Equal(t, "Mnau!", rob.Username)
	assert.Equal(t, 1, rob.KeyID)

	require.Len(t, f.out, 3)
	assert.Equal(t, wire.KeyRequest, f.out[0])
	assert.Equal(t, msg("7285"), f.out[1])
	assert.Equal(t, wire.OK, f.out[2])
}

func TestPerform_KeyOutOfRange(t *testing.T) {
	f := &fakeSession{in: [][]byte{msg("bob"), msg("7")}}
	_, err := Perform(f)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.KeyOutOfRange, pe.Class)
}

func TestPerform_NegativeKeyIDIsSyntax(t *testing.T) {
	f := &fakeSession{in: [][]byte{msg("bob"), msg("-1")}}
	_, err := Perform(f)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.Syntax, pe.Class)
}

func TestPerform_LoginFailed(t *testing.T) {
	f := &fakeSession{in: [][]byte{msg("bob"), msg("0"), msg("1")}}
	_, err := Perform(f)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.LoginFailed, pe.Class)
}

func TestPerform_ConfirmationTooManyDigitsIsSyntax(t *testing.T) {
	f := &fakeSession{in: [][]byte{msg("bob"), msg("0"), msg("100000")}}
	_, err := Perform(f)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.Syntax, pe.Class)
}

func TestPerform_ConfirmationAtFiveDigitsIsAccepted(t *testing.T) {
	// Not a matching confirmation, but it must reach the login-failed
	// check rather than being rejected as a syntax error.
	f := &fakeSession{in: [][]byte{msg("bob"), msg("0"), msg("99999")}}
	_, err := Perform(f)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.LoginFailed, pe.Class)
}

// TestPerform_ConfirmationAbove65535DoesNotWrapToMatch guards against
// comparing the confirmation mod 65536: for username "bob" at key 0 the
// expected client confirmation is 11357, so a client sending 76893
// (11357 + 65536) must still fail login, never wrap around and match.
func TestPerform_ConfirmationAbove65535DoesNotWrapToMatch(t *testing.T) {
	f := &fakeSession{in: [][]byte{msg("bob"), msg("0"), msg("76893")}}
	_, err := Perform(f)
	require.Error(t, err)
	var pe *protoerr.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, protoerr.LoginFailed, pe.Class)
}
