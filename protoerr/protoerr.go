// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package protoerr defines the protocol's typed failure classes and their
// total mapping to wire responses. Four classes are wire-visible; a fifth,
// Timeout, is silent — the session closes without a response.
package protoerr

import "fmt"

// Class identifies a protocol failure category.
type Class int

const (
	// LoginFailed means the client's confirmation value did not match.
	LoginFailed Class = iota
	// Syntax means a missing sentinel, an over-ceiling message, a
	// non-numeric value where one was required, or a malformed CLIENT_OK.
	Syntax
	// Logic means a CLIENT_FULL_POWER arrived without a prior
	// CLIENT_RECHARGING, or some other message interrupted a recharge
	// interlude.
	Logic
	// KeyOutOfRange means the key-id parsed as a number outside 0..4.
	KeyOutOfRange
	// Timeout means a read exceeded its deadline, or the connection
	// closed, before a complete message arrived. It carries no wire
	// response.
	Timeout
)

func (c Class) String() string {
	switch c {
	case LoginFailed:
		return "login-failed"
	case Syntax:
		return "syntax"
	case Logic:
		return "logic"
	case KeyOutOfRange:
		return "key-out-of-range"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a typed protocol failure. It is terminal: the session that
// produces one always closes the connection, emitting at most one wire
// response first.
type Error struct {
	Class Class
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("protoerr: %s: %s", e.Class, e.Msg)
}

// NewLoginFailed returns a login-failed Error.
func NewLoginFailed(msg string) error { return &Error{Class: LoginFailed, Msg: msg} }

// NewSyntax returns a syntax Error.
func NewSyntax(msg string) error { return &Error{Class: Syntax, Msg: msg} }

// NewLogic returns a logic Error.
func NewLogic(msg string) error { return &Error{Class: Logic, Msg: msg} }

// NewKeyOutOfRange returns a key-out-of-range Error.
func NewKeyOutOfRange(msg string) error { return &Error{Class: KeyOutOfRange, Msg: msg} }

// NewTimeout returns a Timeout Error: silent, no wire response.
func NewTimeout(msg string) error { return &Error{Class: Timeout, Msg: msg} }

// Response returns the wire response for e's class and whether one should
// be sent at all (false for Timeout, which closes silently).
func (e *Error) Response() ([]byte, bool) {
	return responseFor(e.Class)
}
