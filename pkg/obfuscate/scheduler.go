// Package obfuscate implements the scrolling random glyph effect used for obfuscated text.
//
// A Scheduler runs one Job per obfuscated piece of text. Every tick a Job replaces the character under its cursor
// with a random one, hands the whole buffer to its writer, and moves the cursor along, wrapping back to the start.
// Jobs only stop when the Scheduler is cleared.
package obfuscate

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
	"unicode"

	"awesome-dragon.science/go/mcmotd/pkg/log"
)

// Defaults used when Options fields are left zero
const (
	DefaultInterval = 50 * time.Millisecond
	DefaultMinRune  = 64
	DefaultMaxRune  = 95
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// CheckRange returns an error if [lo, hi] could produce something other than a printable character. The range must
// not be backwards, must start and end on printable characters, must not go past unicode.MaxRune, and must not touch
// the surrogate block
func CheckRange(lo, hi rune) error {
	switch {
	case hi < lo:
		return fmt.Errorf("rune range [%d, %d] is backwards", lo, hi)
	case lo < ' ':
		return fmt.Errorf("rune range [%d, %d] includes control characters", lo, hi)
	case hi > unicode.MaxRune:
		return fmt.Errorf("rune range [%d, %d] goes past the last code point", lo, hi)
	case lo <= surrogateMax && hi >= surrogateMin:
		return fmt.Errorf("rune range [%d, %d] overlaps the surrogate block", lo, hi)
	case !unicode.IsPrint(lo) || !unicode.IsPrint(hi):
		return fmt.Errorf("rune range [%d, %d] does not start and end on printable characters", lo, hi)
	}

	return nil
}

// Options configures a Scheduler. A reversed rune range is swapped, and one that fails CheckRange is replaced with
// the default range
type Options struct {
	Interval time.Duration
	MinRune  rune
	MaxRune  rune
	Rand     *rand.Rand
}

func (o *Options) setDefaults() {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}

	if o.MinRune <= 0 && o.MaxRune <= 0 {
		o.MinRune, o.MaxRune = DefaultMinRune, DefaultMaxRune
	}

	if o.MaxRune < o.MinRune {
		o.MinRune, o.MaxRune = o.MaxRune, o.MinRune
	}

	if CheckRange(o.MinRune, o.MaxRune) != nil {
		o.MinRune, o.MaxRune = DefaultMinRune, DefaultMaxRune
	}

	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6F62667573636174)) //nolint:gosec // not crypto
	}
}

// Scheduler owns every running Job. Writes made by Jobs happen while holding the lock passed to NewScheduler, so
// whatever the writers modify can be guarded by that same lock
type Scheduler struct {
	host sync.Locker
	opts Options
	log  *log.Logger

	mu   sync.Mutex
	jobs []*Job

	onStop func(*Job) // called for each Job Clear stops, in stop order
}

// NewScheduler creates a Scheduler. host is held during every tick and during Clear
func NewScheduler(host sync.Locker, opts Options, logger *log.Logger) *Scheduler {
	opts.setDefaults()
	if logger == nil {
		logger = log.Discard()
	}

	return &Scheduler{host: host, opts: opts, log: logger}
}

// Interval returns the tick interval in use
func (s *Scheduler) Interval() time.Duration { return s.opts.Interval }

// Start begins obfuscating text. write is called with the updated text on every tick, with the host lock held.
// Nothing is written until the first tick. Empty text starts nothing
//
// Start does not take the host lock, so it is safe to call while holding it
func (s *Scheduler) Start(text string, write func(string)) {
	buf := []rune(text)
	if len(buf) == 0 {
		s.log.Trace("not starting obfuscation for empty text")
		return
	}

	j := &Job{
		buf:    buf,
		write:  write,
		ticker: time.NewTicker(s.opts.Interval),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, j)
	count := len(s.jobs)
	s.mu.Unlock()

	s.log.Tracef("started obfuscation job %d for %d characters", count, len(buf))

	go s.run(j)
}

func (s *Scheduler) run(j *Job) {
	for {
		select {
		case <-j.done:
			return
		case <-j.ticker.C:
			s.host.Lock()
			if !j.stopped {
				j.step(s.randomRune)
			}
			s.host.Unlock()
		}
	}
}

// randomRune must only be called with the host lock held, rand.Rand is not safe for concurrent use
func (s *Scheduler) randomRune() rune {
	return s.opts.MinRune + rune(s.opts.Rand.IntN(int(s.opts.MaxRune-s.opts.MinRune)+1))
}

// Clear stops every Job, most recently started first, and forgets them. Once Clear returns no Job it stopped will
// write again
func (s *Scheduler) Clear() {
	s.host.Lock()
	defer s.host.Unlock()

	s.ClearLocked()
}

// ClearLocked is Clear for callers already holding the host lock
func (s *Scheduler) ClearLocked() {
	s.mu.Lock()
	jobs := s.jobs
	s.jobs = nil
	s.mu.Unlock()

	for i := len(jobs) - 1; i >= 0; i-- {
		jobs[i].stop()

		if s.onStop != nil {
			s.onStop(jobs[i])
		}
	}

	if len(jobs) > 0 {
		s.log.Debugf("cleared %d obfuscation jobs", len(jobs))
	}
}

// Len returns the number of running Jobs
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.jobs)
}

// Job is a single running obfuscation
type Job struct {
	cursor int
	buf    []rune
	write  func(string)

	ticker  *time.Ticker
	done    chan struct{}
	stopped bool
}

// step advances the Job by one character
func (j *Job) step(next func() rune) {
	if j.cursor >= len(j.buf) {
		j.cursor = 0
	}

	j.buf[j.cursor] = next()
	j.write(string(j.buf))
	j.cursor++
}

func (j *Job) stop() {
	if j.stopped {
		return
	}

	j.stopped = true
	j.ticker.Stop()
	close(j.done)
}
