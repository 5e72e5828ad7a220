/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

import "time"

type stateSource interface {
	State() State
}

type stepper interface {
	Step(now time.Time)
}

// Loop is the per-frame task chain. Once started it reposts itself every
// frame for the life of the process; while the connection is not up it only
// reposts, so a later connection needs no restart.
type Loop struct {
	sched   Scheduler
	conn    stateSource
	sampler stepper
	clock   func() time.Time

	running bool
	active  uint64
	idle    uint64
}

func NewLoop(sched Scheduler, conn stateSource, sampler stepper) *Loop {
	return &Loop{
		sched:   sched,
		conn:    conn,
		sampler: sampler,
		clock:   time.Now,
	}
}

// Start schedules the first tick. Calling it again has no effect.
func (l *Loop) Start() {
	if l.running {
		return
	}

	l.running = true
	l.sched.Schedule(l.tick)
}

func (l *Loop) Running() bool {
	return l.running
}

// Frames returns how many ticks sampled input and how many idled.
func (l *Loop) Frames() (active, idle uint64) {
	return l.active, l.idle
}

func (l *Loop) tick() {
	if l.conn.State() == Connected {
		l.sampler.Step(l.clock())
		l.active++
	} else {
		l.idle++
	}

	l.sched.Schedule(l.tick)
}
