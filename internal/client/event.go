/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

import "errors"

var ErrNotConnected = errors.New("not connected")

type EventKind int

const (
	EventOpen EventKind = iota
	EventMessage
	EventError
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventMessage:
		return "message"
	case EventError:
		return "error"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is a socket lifecycle notification. Socket identifies which dial
// produced it, so events from a replaced socket can be told apart.
type Event struct {
	Socket uint64
	Kind   EventKind
	Data   []byte
	Err    error
}

// Socket is one connection attempt handed out by a Transport.
type Socket interface {
	// Send queues a text message. It fails with ErrNotConnected if the socket
	// is not open.
	Send(data []byte) error
	// Close is safe to call more than once, and before the socket is open.
	Close() error
}

// Transport opens sockets. Dial must not block: the outcome of the attempt is
// reported later as an EventOpen or EventError on events, tagged with id.
// Implementations stop emitting once the socket is closed.
type Transport interface {
	Dial(url string, id uint64, events chan<- Event) Socket
}
