/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

// Scheduler runs a task on the next frame.
type Scheduler interface {
	Schedule(task func())
}

// FrameScheduler queues tasks until RunFrame is called. A task scheduled
// while a frame is running is deferred to the following frame, so a task that
// reposts itself runs exactly once per frame.
type FrameScheduler struct {
	pending []func()
	running []func()
}

func (s *FrameScheduler) Schedule(task func()) {
	s.pending = append(s.pending, task)
}

// RunFrame runs every task queued before the call and returns how many ran.
func (s *FrameScheduler) RunFrame() int {
	s.running, s.pending = s.pending, s.running[:0]

	for _, task := range s.running {
		task()
	}

	n := len(s.running)
	clear(s.running)

	return n
}

func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}
