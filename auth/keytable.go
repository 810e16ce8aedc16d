// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package auth computes the server and expected-client confirmation values
// for the handshake, keyed by a small, process-wide, read-only key table.
package auth

import "fmt"

// Key is a (server-secret, client-secret) pair for one key-id.
type Key struct {
	Server uint16
	Client uint16
}

// Table maps key-id to its secret pair. Shared read-only by all sessions.
var Table = map[int]Key{
	0: {23019, 32037},
	1: {32037, 29295},
	2: {18789, 13603},
	3: {16443, 29533},
	4: {18189, 21952},
}

// MinKeyID and MaxKeyID bound the valid key-id range.
const (
	MinKeyID = 0
	MaxKeyID = 4
)

// Hash returns the username hash: the sum of the username's character
// code points, multiplied by 1000, mod 65536. Summing runes (not raw UTF-8
// bytes) matches the original's per-character ord() over the decoded
// string; this only differs from a byte-sum for non-ASCII usernames.
func Hash(username string) uint16 {
	var sum int
	for _, c := range username {
		sum += int(c)
	}
	return uint16((sum * 1000) % 65536)
}

// ServerConfirm returns the server's confirmation value for username under
// keyID. keyID must already be validated to be in [MinKeyID, MaxKeyID].
func ServerConfirm(username string, keyID int) (uint16, error) {
	k, ok := Table[keyID]
	if !ok {
		return 0, fmt.Errorf("auth: key id %d out of range", keyID)
	}
	return uint16((int(Hash(username)) + int(k.Server)) % 65536), nil
}

// ExpectedClientConfirm returns the confirmation value a correctly
// authenticating client must send back under keyID.
func ExpectedClientConfirm(username string, keyID int) (uint16, error) {
	k, ok := Table[keyID]
	if !ok {
		return 0, fmt.Errorf("auth: key id %d out of range", keyID)
	}
	return uint16((int(Hash(username)) + int(k.Client)) % 65536), nil
}
