// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protoerr

import (
	"errors"
	"net"

	pkgerrors "github.com/pkg/errors"

	"code.hybscloud.com/originctl/wire"
)

// responseFor is the total mapping from a failure class to its wire
// response. Timeout carries no response.
func responseFor(c Class) ([]byte, bool) {
	switch c {
	case LoginFailed:
		return wire.LoginFailed, true
	case Syntax:
		return wire.SyntaxError, true
	case Logic:
		return wire.LogicError, true
	case KeyOutOfRange:
		return wire.KeyOutRange, true
	case Timeout:
		return nil, false
	default:
		return nil, false
	}
}

// Report emits the wire response for err, if any, then returns. It never
// writes more than one response and never closes conn — the caller owns
// the connection's lifecycle and is expected to close it right after.
//
// err need not be a *Error: any other error (a write failure, a context
// cancellation) is treated the same as Timeout — closed silently.
func Report(conn net.Conn, err error) error {
	var pe *Error
	if !errors.As(err, &pe) {
		return nil
	}
	resp, ok := pe.Response()
	if !ok {
		return nil
	}
	if _, werr := conn.Write(resp); werr != nil {
		return pkgerrors.Wrap(werr, "protoerr: writing failure response")
	}
	return nil
}
