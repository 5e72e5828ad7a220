/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package pong

import "errors"

// ErrMalformedSnapshot is returned for inbound messages that lack the ball or
// the players object. Callers are expected to drop the message.
var ErrMalformedSnapshot = errors.New("malformed snapshot")
