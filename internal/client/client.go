/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	PaddleStep   float64
	SendInterval time.Duration
}

// Client wires the manager, sampler and loop around one frame scheduler.
// Everything it owns runs on the goroutine that calls Frame.
type Client struct {
	Keys      *HeldKeys
	Manager   *Manager
	Sampler   *Sampler
	Loop      *Loop
	Scheduler *FrameScheduler
}

// New builds a client. hooks.Open, if set, runs after the loop is started.
func New(log zerolog.Logger, transport Transport, cfg Config, hooks Hooks) *Client {
	if cfg.PaddleStep <= 0 {
		cfg.PaddleStep = DefaultPaddleStep
	}
	if cfg.SendInterval <= 0 {
		cfg.SendInterval = DefaultSendInterval
	}

	c := &Client{
		Keys:      NewHeldKeys(),
		Manager:   NewManager(log, transport),
		Scheduler: &FrameScheduler{},
	}
	c.Sampler = NewSampler(log, c.Keys, c.Manager, cfg.PaddleStep, cfg.SendInterval)
	c.Loop = NewLoop(c.Scheduler, c.Manager, c.Sampler)

	open := hooks.Open
	hooks.Open = func() {
		c.Loop.Start()

		if open != nil {
			open()
		}
	}
	c.Manager.SetHooks(hooks)

	return c
}

// Frame applies pending socket events, then runs this frame's tasks.
func (c *Client) Frame() {
	c.Manager.Pump()
	c.Scheduler.RunFrame()
}

// Run drives Frame from a ticker until ctx is done, for use without a
// display. The connection is closed on return.
func (c *Client) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	defer c.Manager.Disconnect()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Frame()
		}
	}
}

// Toggle is the connect button: it connects from Disconnected or Failed,
// disconnects from Connected and ignores presses while a connection attempt
// is in flight.
func (c *Client) Toggle(address string) {
	switch c.Manager.State() {
	case Connected:
		c.Manager.Disconnect()
	case Disconnected, Failed:
		c.Manager.Connect(address)
	}
}
