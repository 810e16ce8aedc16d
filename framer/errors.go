// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framer

import "errors"

// ErrNoSentinel reports that a message reached its length ceiling without
// the trailing sentinel appearing — the in-stream length-policing failure
// described by the framer's contract. Callers map this to a syntax failure.
var ErrNoSentinel = errors.New("framer: message reached ceiling without sentinel")

// ErrInvalidArgument reports a nil underlying reader.
var ErrInvalidArgument = errors.New("framer: invalid argument")
