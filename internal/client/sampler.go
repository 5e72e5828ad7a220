/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Seednode/pong/internal/pong"
)

const (
	DefaultPaddleStep   = 6
	DefaultSendInterval = 50 * time.Millisecond
)

type Sender interface {
	Send(data []byte) error
}

// Sampler moves the local paddle from the held keys once per frame and sends
// its position, at most once per send interval whatever the frame rate.
type Sampler struct {
	log     zerolog.Logger
	keys    *HeldKeys
	sender  Sender
	limiter *rate.Limiter
	step    float64

	paddle  float64
	sent    uint64
	dropped uint64
}

func NewSampler(log zerolog.Logger, keys *HeldKeys, sender Sender, step float64, interval time.Duration) *Sampler {
	return &Sampler{
		log:     log.With().Str("layer", "input").Logger(),
		keys:    keys,
		sender:  sender,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		step:    step,
		paddle:  pong.PaddleStartY,
	}
}

// Step runs one frame of sampling at time now.
func (s *Sampler) Step(now time.Time) {
	if s.keys.Any(UpKeys...) {
		s.paddle = pong.ClampPaddle(s.paddle - s.step)
	}
	if s.keys.Any(DownKeys...) {
		s.paddle = pong.ClampPaddle(s.paddle + s.step)
	}

	if !s.limiter.AllowN(now, 1) {
		return
	}

	data, err := pong.EncodePosition(s.paddle)
	if err != nil {
		s.log.Error().Err(err).Msg("encoding position")
		return
	}

	// Nothing is queued: the next frame samples a fresher position anyway.
	if err := s.sender.Send(data); err != nil {
		s.dropped++
		s.log.Debug().Err(err).Float64("y", s.paddle).Msg("position update dropped")
		return
	}

	s.sent++
}

func (s *Sampler) Paddle() float64 {
	return s.paddle
}

func (s *Sampler) Sent() uint64 {
	return s.sent
}

func (s *Sampler) Dropped() uint64 {
	return s.dropped
}
