/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package client implements the game client core: the connection state
// machine, input sampling and the per-frame loop that drives both.
package client

// State is the lifecycle of the connection to the game server.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
