// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package handshake drives the fixed authentication sequence: username,
// key-request, key-id, server-confirmation, client-confirmation, OK. It
// produces an authenticated robot.Robot or a typed protoerr.Error.
package handshake

import (
	"strconv"

	"code.hybscloud.com/originctl/auth"
	"code.hybscloud.com/originctl/protoerr"
	"code.hybscloud.com/originctl/robot"
	"code.hybscloud.com/originctl/wire"
)

// reader is the subset of session.Session the handshake needs. Expressed
// as an interface so the sequence can be tested without a live connection.
type reader interface {
	ReadMessage(maxLen int) ([]byte, error)
	WriteMessage(b []byte) error
}

// trimSentinel strips the trailing two-byte sentinel from a message.
func trimSentinel(msg []byte) []byte {
	return msg[:len(msg)-2]
}

// Perform runs the handshake sequence against sess and returns the
// authenticated robot, or the first typed failure encountered.
func Perform(sess reader) (*robot.Robot, error) {
	usernameMsg, err := sess.ReadMessage(wire.CeilingUsername)
	if err != nil {
		return nil, err
	}
	username := string(trimSentinel(usernameMsg))

	if err := sess.WriteMessage(wire.KeyRequest); err != nil {
		return nil, err
	}

	keyIDMsg, err := sess.ReadMessage(wire.CeilingKeyID)
	if err != nil {
		return nil, err
	}
	keyID, err := parseKeyID(keyIDMsg)
	if err != nil {
		return nil, err
	}

	serverConfirm, err := auth.ServerConfirm(username, keyID)
	if err != nil {
		// keyID was already range-checked by parseKeyID; this would only
		// fail if auth.Table and the range check ever drift apart.
		return nil, protoerr.NewKeyOutOfRange(err.Error())
	}
	if err := sess.WriteMessage(confirmationMessage(serverConfirm)); err != nil {
		return nil, err
	}

	clientConfirmMsg, err := sess.ReadMessage(wire.CeilingConfirmation)
	if err != nil {
		return nil, err
	}
	clientConfirm, err := parseConfirmation(clientConfirmMsg)
	if err != nil {
		return nil, err
	}

	expected, err := auth.ExpectedClientConfirm(username, keyID)
	if err != nil {
		return nil, protoerr.NewKeyOutOfRange(err.Error())
	}
	if clientConfirm != int(expected) {
		return nil, protoerr.NewLoginFailed("client confirmation did not match")
	}

	if err := sess.WriteMessage(wire.OK); err != nil {
		return nil, err
	}

	return &robot.Robot{Username: username, KeyID: keyID, Heading: robot.Unknown}, nil
}

// parseKeyID validates the KEY_ID message: digits only, then range-checked
// against 0..4. The numeric check is a syntax failure; the range check is
// its own, distinct failure class.
func parseKeyID(msg []byte) (int, error) {
	s := string(trimSentinel(msg))
	n, err := strconv.Atoi(s)
	if err != nil || !isUnsignedDigits(s) {
		return 0, protoerr.NewSyntax("key id is not a number: " + string(msg))
	}
	if n < auth.MinKeyID || n > auth.MaxKeyID {
		return 0, protoerr.NewKeyOutOfRange("key id out of range: " + s)
	}
	return n, nil
}

// parseConfirmation validates the CLIENT_CONFIRMATION message: digits only,
// at most 5 of them. The result is returned full-width (not truncated to
// uint16): a value like 65536..99999 is within the length/format rules but
// must still compare unequal to any uint16 expected confirmation, exactly
// as the original's plain integer comparison does, rather than silently
// wrapping mod 65536 and spuriously matching.
func parseConfirmation(msg []byte) (int, error) {
	s := string(trimSentinel(msg))
	if !isUnsignedDigits(s) || len(s) > wire.MaxConfirmationDigits {
		return 0, protoerr.NewSyntax("client confirmation is not a valid number: " + string(msg))
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, protoerr.NewSyntax("client confirmation is not a number: " + string(msg))
	}
	return n, nil
}

func isUnsignedDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// confirmationMessage renders a confirmation value as decimal ASCII
// followed by the sentinel.
func confirmationMessage(v uint16) []byte {
	out := append([]byte(strconv.Itoa(int(v))), wire.Sentinel[0], wire.Sentinel[1])
	return out
}
