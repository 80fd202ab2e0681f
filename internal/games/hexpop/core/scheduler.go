package core

import "sort"

type scheduledTask struct {
	due uint64
	seq uint64
	fn  func()
}

// Scheduler runs deferred work on a later frame instead of blocking.
type Scheduler struct {
	frame uint64
	seq   uint64
	tasks []scheduledTask
}

// NewScheduler creates an empty scheduler at frame 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Frame returns the number of Advance calls so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// After schedules fn to run on the Advance call frames from now.
// frames <= 0 runs it on the next Advance.
func (s *Scheduler) After(frames int, fn func()) {
	if fn == nil {
		return
	}
	if frames < 1 {
		frames = 1
	}
	s.seq++
	s.tasks = append(s.tasks, scheduledTask{
		due: s.frame + uint64(frames),
		seq: s.seq,
		fn:  fn,
	})
}

// Advance moves to the next frame and runs every task now due, earliest
// first, then in scheduling order. Tasks scheduled by a running task wait
// for a later frame. It returns the number of tasks run.
func (s *Scheduler) Advance() int {
	s.frame++
	var due, later []scheduledTask
	for _, t := range s.tasks {
		if t.due <= s.frame {
			due = append(due, t)
		} else {
			later = append(later, t)
		}
	}
	s.tasks = later
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of tasks not yet run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Cancel drops every pending task.
func (s *Scheduler) Cancel() {
	s.tasks = nil
}
