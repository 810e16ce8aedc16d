package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandsCarrySentinel(t *testing.T) {
	cmds := [][]byte{Move, TurnLeft, TurnRight, PickUp, Logout, KeyRequest, OK,
		LoginFailed, SyntaxError, LogicError, KeyOutRange, ClientRecharging, ClientFullPower}
	for _, c := range cmds {
		if !bytes.HasSuffix(c, Sentinel[:]) {
			t.Fatalf("command %q does not end in sentinel", c)
		}
	}
}

func TestCeilingsIncludeSentinel(t *testing.T) {
	assert.Equal(t, 20, CeilingUsername)
	assert.Equal(t, 5, CeilingKeyID)
	assert.Equal(t, 7, CeilingConfirmation)
	assert.Equal(t, 12, CeilingOK)
	assert.Equal(t, 12, CeilingRecharging)
	assert.Equal(t, 12, CeilingFullPower)
	assert.Equal(t, 100, CeilingMessage)
}
