// Package carousel drives story playback: a dwell timer per story, pause on
// press, tap navigation across owner groups, and a view mark on each entry.
package carousel

import (
	"sync"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/jonboulle/clockwork"
)

// DefaultDwell is how long a story stays on screen before auto-advancing.
const DefaultDwell = 5000 * time.Millisecond

type State int

const (
	Playing State = iota
	Paused
	Closed
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "closed"
	}
}

// Position addresses a story by group index and story index within the group.
type Position struct {
	Group int
	Story int
}

// MarkFunc is called once each time playback enters a story position.
type MarkFunc func(storyID string)

type Option func(*Session)

func WithDwell(d time.Duration) Option {
	return func(s *Session) { s.dwell = d }
}

// WithOnClose registers a callback run once when the session closes.
func WithOnClose(fn func()) Option {
	return func(s *Session) { s.onClose = fn }
}

// Session is one open carousel. It holds at most one live dwell timer;
// every transition stops the pending timer before scheduling a new one,
// and callbacks from superseded timers are ignored by generation.
type Session struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	dwell   time.Duration
	groups  []domain.StoryGroup
	pos     Position
	state   State
	timer   clockwork.Timer
	gen     uint64
	mark    MarkFunc
	onClose func()
}

type effect struct {
	mark   string
	closed bool
}

// Open starts playback at the first story of groups[startGroup]. Groups
// without stories are skipped: an empty startGroup starts at the next
// non-empty group after it, and an out-of-range startGroup, or one with no
// non-empty group after it, starts at the first non-empty group. With nothing
// to play the session starts closed.
func Open(clock clockwork.Clock, groups []domain.StoryGroup, startGroup int, mark MarkFunc, opts ...Option) *Session {
	s := &Session{
		clock: clock,
		dwell: DefaultDwell,
		mark:  mark,
	}
	for _, opt := range opts {
		opt(s)
	}

	start, found := 0, false
	for i, g := range groups {
		if len(g.Stories) == 0 {
			continue
		}
		if !found && startGroup >= 0 && i >= startGroup {
			start, found = len(s.groups), true
		}
		s.groups = append(s.groups, g)
	}

	if len(s.groups) == 0 {
		s.state = Closed
		return s
	}

	s.mu.Lock()
	e := s.enterLocked(Position{Group: start})
	s.mu.Unlock()
	s.apply(e)
	return s
}

// OpenOwn plays a single group, the viewer's own stories, closing after the last.
func OpenOwn(clock clockwork.Clock, own domain.StoryGroup, mark MarkFunc, opts ...Option) *Session {
	return Open(clock, []domain.StoryGroup{own}, 0, mark, opts...)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Position() Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Current returns the story on screen, or false once closed.
func (s *Session) Current() (domain.Story, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Closed {
		return domain.Story{}, false
	}
	return s.storyAtLocked(s.pos), true
}

// PointerDown pauses playback.
func (s *Session) PointerDown() {
	s.do(func() effect {
		if s.state != Playing {
			return effect{}
		}
		s.stopTimerLocked()
		s.state = Paused
		return effect{}
	})
}

// PointerUp resumes playback with a fresh dwell.
func (s *Session) PointerUp() {
	s.do(func() effect {
		if s.state != Paused {
			return effect{}
		}
		s.state = Playing
		s.scheduleLocked()
		return effect{}
	})
}

// Tap navigates back on the left half of width and forward on the right half.
func (s *Session) Tap(x, width float64) {
	if x < width/2 {
		s.Previous()
		return
	}
	s.Next()
}

func (s *Session) Next() {
	s.do(s.nextLocked)
}

func (s *Session) Previous() {
	s.do(func() effect {
		if s.state == Closed {
			return effect{}
		}
		switch {
		case s.pos.Story > 0:
			return s.enterLocked(Position{Group: s.pos.Group, Story: s.pos.Story - 1})
		case s.pos.Group > 0:
			prev := s.pos.Group - 1
			return s.enterLocked(Position{Group: prev, Story: len(s.groups[prev].Stories) - 1})
		default:
			// Very first story: nothing to go back to.
			return effect{}
		}
	})
}

// Close ends the session. Closing twice is a no-op.
func (s *Session) Close() {
	s.do(s.closeLocked)
}

func (s *Session) nextLocked() effect {
	if s.state == Closed {
		return effect{}
	}
	group := s.groups[s.pos.Group]
	switch {
	case s.pos.Story < len(group.Stories)-1:
		return s.enterLocked(Position{Group: s.pos.Group, Story: s.pos.Story + 1})
	case s.pos.Group < len(s.groups)-1:
		return s.enterLocked(Position{Group: s.pos.Group + 1})
	default:
		return s.closeLocked()
	}
}

func (s *Session) closeLocked() effect {
	if s.state == Closed {
		return effect{}
	}
	s.stopTimerLocked()
	s.state = Closed
	return effect{closed: true}
}

func (s *Session) enterLocked(pos Position) effect {
	s.pos = pos
	s.state = Playing
	s.scheduleLocked()
	return effect{mark: s.storyAtLocked(pos).ID}
}

func (s *Session) scheduleLocked() {
	s.stopTimerLocked()
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.dwell, func() { s.onTimer(gen) })
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *Session) onTimer(gen uint64) {
	s.do(func() effect {
		if gen != s.gen || s.state != Playing {
			return effect{}
		}
		s.timer = nil
		return s.nextLocked()
	})
}

func (s *Session) storyAtLocked(pos Position) domain.Story {
	return s.groups[pos.Group].Stories[pos.Story]
}

// do runs a transition under the lock and fires callbacks after releasing it,
// so callbacks may call back into the session.
func (s *Session) do(transition func() effect) {
	s.mu.Lock()
	e := transition()
	s.mu.Unlock()
	s.apply(e)
}

func (s *Session) apply(e effect) {
	if e.mark != "" && s.mark != nil {
		s.mark(e.mark)
	}
	if e.closed && s.onClose != nil {
		s.onClose()
	}
}
