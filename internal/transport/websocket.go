/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package transport connects the client to a game server over websockets.
package transport

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Seednode/pong/internal/client"
)

const (
	sendQueueSize       = 8
	defaultWriteTimeout = 5 * time.Second
	closeGracePeriod    = time.Second
)

var ErrSendQueueFull = errors.New("send queue full")

type Config struct {
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
}

// Websocket dials one gorilla websocket per client.Socket. Each socket runs
// a reader and a writer goroutine; the reader is the only producer of events.
type Websocket struct {
	log          zerolog.Logger
	dialer       *websocket.Dialer
	writeTimeout time.Duration
}

func New(log zerolog.Logger, cfg Config) *Websocket {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	return &Websocket{
		log: log.With().Str("layer", "transport").Logger(),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		},
		writeTimeout: cfg.WriteTimeout,
	}
}

func (w *Websocket) Dial(url string, id uint64, events chan<- client.Event) client.Socket {
	s := &socket{
		log:          w.log.With().Uint64("socket", id).Logger(),
		id:           id,
		events:       events,
		send:         make(chan []byte, sendQueueSize),
		done:         make(chan struct{}),
		writeTimeout: w.writeTimeout,
	}

	go s.run(w.dialer, url)

	return s
}

type socket struct {
	log          zerolog.Logger
	id           uint64
	events       chan<- client.Event
	send         chan []byte
	done         chan struct{}
	writeTimeout time.Duration

	closeOnce sync.Once
	mu        sync.Mutex
	conn      *websocket.Conn
	open      atomic.Bool
}

func (s *socket) Send(data []byte) error {
	if !s.open.Load() || s.closed() {
		return client.ErrNotConnected
	}

	select {
	case s.send <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

func (s *socket) Close() error {
	var err error

	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()

		if conn == nil {
			return
		}

		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGracePeriod))

		err = conn.Close()
	})

	return err
}

func (s *socket) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *socket) emit(ev client.Event) {
	ev.Socket = s.id

	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *socket) run(dialer *websocket.Dialer, url string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if s.closed() {
			return
		}

		s.emit(client.Event{
			Kind: client.EventError,
			Err:  errors.Wrapf(err, "failed to connect to %s", url),
		})

		return
	}

	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		_ = conn.Close()

		s.log.Debug().Msg("closing socket superseded while dialing")

		return
	}
	s.conn = conn
	s.mu.Unlock()

	s.open.Store(true)
	s.emit(client.Event{Kind: client.EventOpen})

	go s.writePump(conn)
	s.readPump(conn)
}

func (s *socket) readPump(conn *websocket.Conn) {
	defer conn.Close()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Msg("connection dropped")
			}

			s.open.Store(false)
			s.emit(client.Event{Kind: client.EventClose, Err: err})

			return
		}

		if kind != websocket.TextMessage {
			s.log.Debug().Int("type", kind).Msg("ignoring non-text message")
			continue
		}

		s.emit(client.Event{Kind: client.EventMessage, Data: data})
	}
}

func (s *socket) writePump(conn *websocket.Conn) {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))

			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.log.Debug().Err(err).Msg("write failed")
				return
			}
		}
	}
}
