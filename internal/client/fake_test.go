/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

import "errors"

var errRefused = errors.New("connection refused")

type fakeSocket struct {
	transport *fakeTransport
	id        uint64
	url       string
	events    chan<- Event

	open   bool
	closed bool
	sent   [][]byte
}

func (s *fakeSocket) Send(data []byte) error {
	if s.closed || !s.open {
		return ErrNotConnected
	}

	s.sent = append(s.sent, data)

	return nil
}

func (s *fakeSocket) Close() error {
	if !s.closed {
		s.closed = true
		s.transport.live--
	}

	return nil
}

func (s *fakeSocket) emit(ev Event) {
	ev.Socket = s.id
	s.events <- ev
}

func (s *fakeSocket) Open() {
	s.open = true
	s.emit(Event{Kind: EventOpen})
}

func (s *fakeSocket) Message(data string) {
	s.emit(Event{Kind: EventMessage, Data: []byte(data)})
}

func (s *fakeSocket) Fail(err error) {
	s.Close()
	s.emit(Event{Kind: EventError, Err: err})
}

func (s *fakeSocket) RemoteClose() {
	s.Close()
	s.emit(Event{Kind: EventClose})
}

type fakeTransport struct {
	sockets []*fakeSocket
	live    int
	maxLive int
}

func (t *fakeTransport) Dial(url string, id uint64, events chan<- Event) Socket {
	s := &fakeSocket{
		transport: t,
		id:        id,
		url:       url,
		events:    events,
	}

	t.sockets = append(t.sockets, s)
	t.live++
	t.maxLive = max(t.maxLive, t.live)

	return s
}

func (t *fakeTransport) last() *fakeSocket {
	if len(t.sockets) == 0 {
		return nil
	}

	return t.sockets[len(t.sockets)-1]
}

type transition struct {
	prev, next State
}

type stateRecorder struct {
	transitions []transition
}

func (r *stateRecorder) record(prev, next State) {
	r.transitions = append(r.transitions, transition{prev, next})
}

func (r *stateRecorder) states() []State {
	if len(r.transitions) == 0 {
		return nil
	}

	out := []State{r.transitions[0].prev}
	for _, t := range r.transitions {
		out = append(out, t.next)
	}

	return out
}
