// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire is the single source of truth for the on-wire vocabulary of
// the origin-seeking robot pilot protocol: the message sentinel, the exact
// server command byte-strings, and the per-message-kind length ceilings
// client messages are policed against.
package wire

// Sentinel terminates every message, in both directions.
var Sentinel = [2]byte{0x07, 0x08}

// Server commands. Every byte-string already carries its trailing sentinel.
var (
	Move        = []byte("102 MOVE\x07\x08")
	TurnLeft    = []byte("103 TURN LEFT\x07\x08")
	TurnRight   = []byte("104 TURN RIGHT\x07\x08")
	PickUp      = []byte("105 GET MESSAGE\x07\x08")
	Logout      = []byte("106 LOGOUT\x07\x08")
	KeyRequest  = []byte("107 KEY REQUEST\x07\x08")
	OK          = []byte("200 OK\x07\x08")
	LoginFailed = []byte("300 LOGIN FAILED\x07\x08")
	SyntaxError = []byte("301 SYNTAX ERROR\x07\x08")
	LogicError  = []byte("302 LOGIC ERROR\x07\x08")
	KeyOutRange = []byte("303 KEY OUT OF RANGE\x07\x08")
)

// Client message ceilings, in bytes, including the trailing sentinel.
const (
	CeilingUsername     = 20
	CeilingKeyID         = 5
	CeilingConfirmation = 7
	CeilingOK           = 12
	CeilingRecharging   = 12
	CeilingFullPower    = 12
	CeilingMessage      = 100
)

// Exact client messages of the recharge sub-dialogue, sentinel included.
var (
	ClientRecharging = []byte("RECHARGING\x07\x08")
	ClientFullPower  = []byte("FULL POWER\x07\x08")
)

// MaxUsernameLen is the maximum username content length (CeilingUsername
// minus the two-byte sentinel).
const MaxUsernameLen = CeilingUsername - 2

// MaxConfirmationDigits is the maximum digit count of a client confirmation
// value (CeilingConfirmation minus the sentinel).
const MaxConfirmationDigits = CeilingConfirmation - 2
