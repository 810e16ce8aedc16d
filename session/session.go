// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session wires the framer, the recharge interposer, and a
// connection's Robot together into the per-connection Handle entry point.
// A Session exclusively owns its connection's read buffer and Robot; the
// only state shared across Sessions is auth.Table, which is read-only.
package session

import (
	"errors"
	"net"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/originctl/framer"
	"code.hybscloud.com/originctl/handshake"
	"code.hybscloud.com/originctl/navigate"
	"code.hybscloud.com/originctl/protoerr"
	"code.hybscloud.com/originctl/recharge"
)

// Timeouts configures the read deadlines applied by a Session's recharge
// interposer. A zero value selects the interposer's own defaults.
type Timeouts struct {
	Normal   time.Duration
	Recharge time.Duration
}

// Session is the per-connection handle passed to the handshake and
// navigator. It translates the framer's and recharge interposer's raw
// errors into the protocol's typed failure classes.
type Session struct {
	conn net.Conn
	rc   *recharge.Interposer
	log  *zap.Logger
}

// New returns a Session reading framed, recharge-transparent messages from
// conn, and arms the normal read deadline.
func New(conn net.Conn, log *zap.Logger, t Timeouts) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	fr := framer.NewReader(conn)

	var opts []recharge.Option
	if t.Normal > 0 {
		opts = append(opts, recharge.WithNormalDeadline(t.Normal))
	}
	if t.Recharge > 0 {
		opts = append(opts, recharge.WithChargingDeadline(t.Recharge))
	}
	return &Session{conn: conn, rc: recharge.New(conn, fr, opts...), log: log}
}

// Conn returns the underlying connection.
func (s *Session) Conn() net.Conn { return s.conn }

// Logger returns the session's logger.
func (s *Session) Logger() *zap.Logger { return s.log }

// ReadMessage reads the next protocol message, recharge sub-dialogue
// absorbed transparently, with maxLen as the natural ceiling for this
// message kind. Any failure is returned as a *protoerr.Error: framer
// length-ceiling violations become Syntax, and any other read failure
// (deadline exceeded, EOF, connection reset) becomes Timeout.
func (s *Session) ReadMessage(maxLen int) ([]byte, error) {
	msg, err := s.rc.ReadMessage(maxLen)
	if err == nil {
		return msg, nil
	}

	var pe *protoerr.Error
	if errors.As(err, &pe) {
		return nil, err
	}
	if errors.Is(err, framer.ErrNoSentinel) {
		return nil, protoerr.NewSyntax(err.Error())
	}
	return nil, protoerr.NewTimeout(err.Error())
}

// WriteMessage writes b, a complete sentinel-terminated message, to the
// connection. A write failure aborts the session without further wire
// activity, so the caller is expected to close the connection on error.
func (s *Session) WriteMessage(b []byte) error {
	_, err := s.conn.Write(b)
	return err
}

// Handle runs the full per-connection protocol: handshake, then
// navigation, on conn. It never panics and never calls os.Exit — the
// caller's accept loop is unaffected by how this session ends. The
// connection is not closed by Handle; the caller owns that.
func Handle(conn net.Conn, log *zap.Logger, t Timeouts) error {
	sess := New(conn, log, t)

	rob, err := handshake.Perform(sess)
	if err != nil {
		sess.log.Info("handshake failed", zap.Error(err))
		if rerr := protoerr.Report(conn, err); rerr != nil {
			sess.log.Warn("failed to report handshake error", zap.Error(rerr))
		}
		return err
	}
	sess.log.Info("handshake complete", zap.String("username", rob.Username), zap.Int("key_id", rob.KeyID))

	if err := navigate.Run(sess, rob); err != nil {
		sess.log.Info("navigation failed", zap.Error(err))
		if rerr := protoerr.Report(conn, err); rerr != nil {
			sess.log.Warn("failed to report navigation error", zap.Error(rerr))
		}
		return err
	}
	sess.log.Info("navigation complete", zap.Int("x", rob.Pos.X), zap.Int("y", rob.Pos.Y))
	return nil
}
