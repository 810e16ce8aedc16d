// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package recharge wraps a framer.Reader with the transparent
// RECHARGING/FULL_POWER sub-dialogue: a message pre-empting interlude that
// may appear between any two protocol reads, during which the connection's
// read deadline is raised.
//
// State machine:
//
//	IDLE --(recv RECHARGING)--> CHARGING  [deadline := chargingDeadline]
//	CHARGING --(recv FULL_POWER)--> IDLE  [deadline := normalDeadline]
//	CHARGING --(recv anything else)--> LOGIC_FAIL
//	IDLE --(recv FULL_POWER)--> LOGIC_FAIL
package recharge

import (
	"bytes"
	"net"
	"time"

	"code.hybscloud.com/originctl/framer"
	"code.hybscloud.com/originctl/protoerr"
	"code.hybscloud.com/originctl/wire"
)

const (
	defaultNormalDeadline   = 1 * time.Second
	defaultChargingDeadline = 5 * time.Second
)

// Option configures an Interposer's deadlines at construction.
type Option func(*Interposer)

// WithNormalDeadline overrides the read deadline applied outside a
// recharge interlude. The default is 1 second.
func WithNormalDeadline(d time.Duration) Option {
	return func(i *Interposer) { i.normalDeadline = d }
}

// WithChargingDeadline overrides the read deadline applied while a
// recharge interlude is open. The default is 5 seconds.
func WithChargingDeadline(d time.Duration) Option {
	return func(i *Interposer) { i.chargingDeadline = d }
}

// Interposer reads messages through a framer.Reader, transparently
// absorbing the recharge sub-dialogue and adjusting conn's read deadline.
type Interposer struct {
	conn       net.Conn
	fr         *framer.Reader
	recharging bool

	normalDeadline   time.Duration
	chargingDeadline time.Duration
}

// New returns an Interposer reading framed messages via fr, adjusting
// conn's read deadline around the recharge sub-dialogue. The normal
// deadline is armed immediately.
func New(conn net.Conn, fr *framer.Reader, opts ...Option) *Interposer {
	i := &Interposer{
		conn:             conn,
		fr:               fr,
		normalDeadline:   defaultNormalDeadline,
		chargingDeadline: defaultChargingDeadline,
	}
	for _, opt := range opts {
		opt(i)
	}
	_ = conn.SetReadDeadline(time.Now().Add(i.normalDeadline))
	return i
}

// Recharging reports whether a CLIENT_RECHARGING has been observed with no
// matching CLIENT_FULL_POWER yet seen.
func (i *Interposer) Recharging() bool { return i.recharging }

// ReadMessage returns the next message that is not part of the recharge
// sub-dialogue, with maxLen as its caller-supplied ceiling. Framer-level
// errors (ErrNoSentinel, I/O failures) propagate unchanged; a violation of
// the recharge ordering rule is returned as a *protoerr.Error of class
// Logic.
func (i *Interposer) ReadMessage(maxLen int) ([]byte, error) {
	msg, err := i.fr.ReadMessage(maxLen)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(msg, wire.ClientFullPower) {
		if !i.recharging {
			return nil, protoerr.NewLogic("CLIENT_FULL_POWER received without a prior CLIENT_RECHARGING")
		}
		// Reached only if a caller asks to read at the point a FULL_POWER
		// is itself expected as the top-level message, which the protocol
		// never does; treat it like any other out-of-place FULL_POWER.
		return nil, protoerr.NewLogic("CLIENT_FULL_POWER received outside a recharge interlude")
	}

	if bytes.Equal(msg, wire.ClientRecharging) {
		i.recharging = true
		_ = i.conn.SetReadDeadline(time.Now().Add(i.chargingDeadline))

		next, err := i.fr.ReadMessage(wire.CeilingFullPower)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(next, wire.ClientFullPower) {
			return nil, protoerr.NewLogic("expected CLIENT_FULL_POWER after CLIENT_RECHARGING")
		}

		i.recharging = false
		_ = i.conn.SetReadDeadline(time.Now().Add(i.normalDeadline))

		// The recharge pair is fully transparent: resume the original read
		// with the caller's original ceiling. A malicious client may chain
		// another RECHARGING immediately; this recursion is bounded only
		// by the deadline and the length cap, per design.
		return i.ReadMessage(maxLen)
	}

	_ = i.conn.SetReadDeadline(time.Now().Add(i.normalDeadline))
	return msg, nil
}
