// This file is part of Katana.
//
// Katana is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Katana is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Katana.  If not, see <https://www.gnu.org/licenses/>.

// Package scheduler keeps the virtual clock for the emulated machine and
// fires callbacks when their deadline arrives. Time is measured in
// nanoseconds of guest time and only ever advances during a Tick(), which
// the machine driver calls between CPU slices. Devices therefore never see
// a callback while guest code is inside a translated block.
//
// A *Timer is a single-use handle. Rescheduling a recurring event means
// cancelling the old handle (or letting it fire) and scheduling a new one.
// The nil *Timer is the conventional "not scheduled" sentinel.
package scheduler

import (
	"fmt"
	"strings"
)

// Timer is the handle for a single scheduled callback.
type Timer struct {
	name     string
	callback func()
	deadline int64

	next      *Timer
	scheduled bool
}

// Scheduler maintains the virtual clock and the deadline-ordered list of
// pending timers.
type Scheduler struct {
	now  int64
	head *Timer
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time in nanoseconds.
func (s *Scheduler) Now() int64 {
	return s.now
}

// ScheduleTimer registers a callback to fire ns nanoseconds from the current
// virtual time. The returned handle can be used to cancel the timer or to
// ask how long it has left to run.
func (s *Scheduler) ScheduleTimer(name string, callback func(), ns int64) *Timer {
	if ns < 0 {
		ns = 0
	}

	t := &Timer{
		name:      name,
		callback:  callback,
		deadline:  s.now + ns,
		scheduled: true,
	}

	// insert in deadline order. timers with equal deadlines fire in the
	// order they were scheduled
	if s.head == nil || t.deadline < s.head.deadline {
		t.next = s.head
		s.head = t
		return t
	}

	e := s.head
	for e.next != nil && e.next.deadline <= t.deadline {
		e = e.next
	}
	t.next = e.next
	e.next = t

	return t
}

// CancelTimer removes a timer from the schedule. Cancelling a nil or
// already-fired timer is a no-op.
func (s *Scheduler) CancelTimer(t *Timer) {
	if t == nil || !t.scheduled {
		return
	}
	t.scheduled = false

	if s.head == t {
		s.head = t.next
		return
	}

	for e := s.head; e != nil; e = e.next {
		if e.next == t {
			e.next = t.next
			return
		}
	}
}

// RemainingTime returns the nanoseconds until the timer's deadline. A nil or
// unscheduled timer has no time remaining.
func (s *Scheduler) RemainingTime(t *Timer) int64 {
	if t == nil || !t.scheduled {
		return 0
	}
	return t.deadline - s.now
}

// NextDeadline returns the nanoseconds until the earliest pending deadline,
// or -1 if nothing is scheduled. The machine driver uses this to size CPU
// slices so that timers fire punctually.
func (s *Scheduler) NextDeadline() int64 {
	if s.head == nil {
		return -1
	}
	return s.head.deadline - s.now
}

// Tick advances the virtual clock by ns nanoseconds, firing every timer
// whose deadline falls inside the window, in deadline order. The clock reads
// as each timer's deadline during its callback.
//
// The set of timers to fire is fixed before any callback runs. A timer
// scheduled by a callback always waits for a future Tick even if its
// deadline falls inside the current window, so a zero-period reload cannot
// stall the clock.
func (s *Scheduler) Tick(ns int64) {
	if ns < 0 {
		return
	}
	target := s.now + ns

	// detach the due timers from the schedule
	due := s.head
	var last *Timer
	for e := s.head; e != nil && e.deadline <= target; e = e.next {
		last = e
	}
	if last == nil {
		s.now = target
		return
	}
	s.head = last.next
	last.next = nil

	for t := due; t != nil; {
		next := t.next
		t.next = nil

		// the scheduled flag drops if a callback earlier in this window
		// cancelled the timer
		if t.scheduled {
			t.scheduled = false
			s.now = t.deadline
			t.callback()
		}

		t = next
	}

	s.now = target
}

// String returns a summary of the pending timers, one per line. Timers are
// listed in the order they will fire.
func (s *Scheduler) String() string {
	b := strings.Builder{}
	if s.head == nil {
		b.WriteString("no timers scheduled\n")
		return b.String()
	}
	for e := s.head; e != nil; e = e.next {
		b.WriteString(fmt.Sprintf("%s: %dns\n", e.name, e.deadline-s.now))
	}
	return b.String()
}
