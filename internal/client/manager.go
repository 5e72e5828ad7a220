/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Seednode/pong/internal/pong"
)

const eventQueueSize = 256

// Hooks are invoked on the goroutine that calls Pump, Connect or Disconnect.
type Hooks struct {
	Open     func()
	Snapshot func(*pong.Snapshot)
	State    func(prev, next State)
}

// Status is a copy of the manager's state that is safe to read from any
// goroutine.
type Status struct {
	State    State          `json:"state"`
	Target   string         `json:"target,omitempty"`
	ConnID   string         `json:"conn_id,omitempty"`
	Error    string         `json:"error,omitempty"`
	Since    time.Time      `json:"since"`
	Snapshot *pong.Snapshot `json:"snapshot,omitempty"`
}

// Manager owns the single socket to the game server and turns its lifecycle
// into a State. All methods except Status must be called from the frame
// goroutine.
type Manager struct {
	log       zerolog.Logger
	transport Transport
	events    chan Event
	hooks     Hooks
	clock     func() time.Time

	state    State
	target   string
	socket   Socket
	socketID uint64
	connID   string
	lastErr  error
	since    time.Time
	snapshot *pong.Snapshot

	status atomic.Pointer[Status]
}

func NewManager(log zerolog.Logger, transport Transport) *Manager {
	m := &Manager{
		log:       log.With().Str("layer", "connection").Logger(),
		transport: transport,
		events:    make(chan Event, eventQueueSize),
		clock:     time.Now,
		state:     Disconnected,
	}
	m.since = m.clock()
	m.publish()

	return m
}

func (m *Manager) SetHooks(h Hooks) {
	m.hooks = h
}

// Connect closes the current socket, if any, and starts a new attempt
// against address. The outcome arrives through Pump.
func (m *Manager) Connect(address string) {
	m.closeSocket()

	m.socketID++
	m.target = TargetURL(address)
	m.connID = uuid.NewString()
	m.lastErr = nil
	m.setState(Connecting)

	m.log.Info().
		Str("target", m.target).
		Str("conn", m.connID).
		Msg("connecting")

	m.socket = m.transport.Dial(m.target, m.socketID, m.events)
}

// Disconnect closes the socket. It does nothing if there is none.
func (m *Manager) Disconnect() {
	if m.socket == nil {
		return
	}

	m.closeSocket()
	m.setState(Disconnected)

	m.log.Info().Str("conn", m.connID).Msg("disconnected by user")
}

// Send hands data to the open socket.
func (m *Manager) Send(data []byte) error {
	if m.socket == nil || m.state != Connected {
		return ErrNotConnected
	}

	return m.socket.Send(data)
}

// Pump applies the events queued so far, in arrival order, and returns how
// many it consumed. Events that arrive while pumping wait for the next call.
func (m *Manager) Pump() int {
	n := len(m.events)
	for i := 0; i < n; i++ {
		m.handle(<-m.events)
	}

	return n
}

func (m *Manager) State() State {
	return m.state
}

func (m *Manager) Target() string {
	return m.target
}

func (m *Manager) Snapshot() *pong.Snapshot {
	return m.snapshot
}

func (m *Manager) Status() Status {
	return *m.status.Load()
}

func (m *Manager) handle(ev Event) {
	if m.socket == nil || ev.Socket != m.socketID {
		m.log.Debug().
			Uint64("socket", ev.Socket).
			Stringer("event", ev.Kind).
			Msg("ignoring event from stale socket")
		return
	}

	switch ev.Kind {
	case EventOpen:
		if m.state != Connecting {
			return
		}

		m.setState(Connected)
		m.log.Info().Str("conn", m.connID).Msg("connected")

		if m.hooks.Open != nil {
			m.hooks.Open()
		}
	case EventMessage:
		if m.state != Connected {
			return
		}

		snapshot, err := pong.DecodeSnapshot(ev.Data)
		if err != nil {
			m.log.Debug().Err(err).Int("size", len(ev.Data)).Msg("dropping message")
			return
		}

		m.snapshot = snapshot
		m.publish()

		if m.hooks.Snapshot != nil {
			m.hooks.Snapshot(snapshot)
		}
	case EventError:
		m.lastErr = ev.Err
		m.closeSocket()

		// Failed is only for attempts that never opened.
		if m.state == Connecting {
			m.log.Warn().Err(ev.Err).Str("target", m.target).Msg("connection failed")
			m.setState(Failed)
		} else {
			m.log.Warn().Err(ev.Err).Str("conn", m.connID).Msg("connection lost")
			m.setState(Disconnected)
		}
	case EventClose:
		m.closeSocket()
		m.setState(Disconnected)

		m.log.Info().Str("conn", m.connID).Msg("connection closed")
	}
}

func (m *Manager) closeSocket() {
	if m.socket == nil {
		return
	}

	if err := m.socket.Close(); err != nil {
		m.log.Debug().Err(err).Msg("closing socket")
	}
	m.socket = nil
}

func (m *Manager) setState(next State) {
	prev := m.state
	m.state = next
	m.since = m.clock()
	m.publish()

	if prev != next && m.hooks.State != nil {
		m.hooks.State(prev, next)
	}
}

func (m *Manager) publish() {
	s := &Status{
		State:    m.state,
		Target:   m.target,
		ConnID:   m.connID,
		Since:    m.since,
		Snapshot: m.snapshot,
	}
	if m.lastErr != nil {
		s.Error = m.lastErr.Error()
	}

	m.status.Store(s)
}

// TargetURL turns a host:port into a websocket URL. Addresses that already
// carry a ws:// or wss:// scheme are returned unchanged.
func TargetURL(address string) string {
	address = strings.TrimSpace(address)
	if strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://") {
		return address
	}

	return "ws://" + address
}
