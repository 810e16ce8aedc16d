// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package navigate steers an authenticated robot to the origin: heading
// inference, quadrant-based steering, obstacle evasion, and the final
// pickup/logout exchange.
package navigate

import (
	"regexp"
	"strconv"

	"code.hybscloud.com/originctl/protoerr"
	"code.hybscloud.com/originctl/robot"
	"code.hybscloud.com/originctl/wire"
)

// reader is the subset of session.Session the navigator needs.
type reader interface {
	ReadMessage(maxLen int) ([]byte, error)
	WriteMessage(b []byte) error
}

var okPattern = regexp.MustCompile(`^OK (-?[0-9]+) (-?[0-9]+)$`)

// readOK reads a CLIENT_OK reply and parses its coordinates.
func readOK(sess reader) (robot.Point, error) {
	msg, err := sess.ReadMessage(wire.CeilingOK)
	if err != nil {
		return robot.Point{}, err
	}
	body := string(msg[:len(msg)-2])
	m := okPattern.FindStringSubmatch(body)
	if m == nil {
		return robot.Point{}, protoerr.NewSyntax("malformed CLIENT_OK: " + body)
	}
	x, errX := strconv.Atoi(m[1])
	y, errY := strconv.Atoi(m[2])
	if errX != nil || errY != nil {
		return robot.Point{}, protoerr.NewSyntax("CLIENT_OK coordinates do not parse: " + body)
	}
	return robot.Point{X: x, Y: y}, nil
}

// turn issues a turn command, waits for its CLIENT_OK, and applies apply to
// the robot's symbolic heading. The reported coordinates are not used:
// heading is tracked symbolically via the turn tables, not re-inferred.
func turn(sess reader, rob *robot.Robot, cmd []byte, apply func(robot.Heading) robot.Heading) error {
	if err := sess.WriteMessage(cmd); err != nil {
		return err
	}
	if _, err := readOK(sess); err != nil {
		return err
	}
	rob.Heading = apply(rob.Heading)
	return nil
}

func turnLeft(sess reader, rob *robot.Robot) error {
	return turn(sess, rob, wire.TurnLeft, robot.Heading.TurnLeft)
}

func turnRight(sess reader, rob *robot.Robot) error {
	return turn(sess, rob, wire.TurnRight, robot.Heading.TurnRight)
}

// pickupAndLogout runs the origin exchange: GET MESSAGE, read one
// CLIENT_MESSAGE, LOGOUT.
func pickupAndLogout(sess reader) error {
	if err := sess.WriteMessage(wire.PickUp); err != nil {
		return err
	}
	if _, err := sess.ReadMessage(wire.CeilingMessage); err != nil {
		return err
	}
	return sess.WriteMessage(wire.Logout)
}

// checkOrigin sends the pickup/logout exchange and reports done=true if
// rob.Pos is the origin. Called immediately after every position update.
func checkOrigin(sess reader, rob *robot.Robot) (done bool, err error) {
	if rob.Pos != robot.Origin {
		return false, nil
	}
	if err := pickupAndLogout(sess); err != nil {
		return false, err
	}
	return true, nil
}

// doMove issues a MOVE, reads the resulting position, updates rob, and
// checks for the origin. moved reports whether the position actually
// changed (false signals an obstacle).
func doMove(sess reader, rob *robot.Robot) (moved bool, done bool, err error) {
	if err := sess.WriteMessage(wire.Move); err != nil {
		return false, false, err
	}
	pos, err := readOK(sess)
	if err != nil {
		return false, false, err
	}
	prev := rob.Pos
	rob.PrevPos, rob.Pos = prev, pos

	done, err = checkOrigin(sess, rob)
	if err != nil || done {
		return pos != prev, done, err
	}
	return pos != prev, false, nil
}

// initHeading runs the heading-inference phase: MOVE, MOVE, infer heading
// from the delta; if the robot didn't move, TURN LEFT and retry. The origin
// check fires eagerly on every reported position, including the first.
func initHeading(sess reader, rob *robot.Robot) (done bool, err error) {
	for {
		if err := sess.WriteMessage(wire.Move); err != nil {
			return false, err
		}
		first, err := readOK(sess)
		if err != nil {
			return false, err
		}
		rob.PrevPos, rob.Pos = rob.Pos, first
		if done, err := checkOrigin(sess, rob); done || err != nil {
			return done, err
		}

		if err := sess.WriteMessage(wire.Move); err != nil {
			return false, err
		}
		second, err := readOK(sess)
		if err != nil {
			return false, err
		}
		rob.PrevPos, rob.Pos = first, second
		if done, err := checkOrigin(sess, rob); done || err != nil {
			return done, err
		}

		heading := robot.Heading{DX: second.X - first.X, DY: second.Y - first.Y}
		if heading != robot.Unknown {
			rob.Heading = heading
			return false, nil
		}

		// No movement: an obstacle sits in front of the robot's initial
		// heading. Turn left (heading stays Unknown) and retry.
		if err := turnLeft(sess, rob); err != nil {
			return false, err
		}
	}
}

// Run steers rob to the origin and performs the pickup/logout exchange.
// It returns nil both when navigation completes and when a Non-terminal
// origin check mid-initialization already finished the session; any
// protocol failure is returned unchanged for the caller to report.
func Run(sess reader, rob *robot.Robot) error {
	done, err := initHeading(sess, rob)
	if err != nil || done {
		return err
	}

	for {
		desired := robot.Quadrant(rob.Pos)
		for rob.Heading != desired {
			if err := turnLeft(sess, rob); err != nil {
				return err
			}
		}

		moved, done, err := doMove(sess, rob)
		if err != nil || done {
			return err
		}
		if moved {
			continue
		}

		// Obstacle: evade sideways, restoring the original heading.
		if err := turnRight(sess, rob); err != nil {
			return err
		}
		_, done, err = doMove(sess, rob)
		if err != nil || done {
			return err
		}
		if err := turnLeft(sess, rob); err != nil {
			return err
		}
	}
}
