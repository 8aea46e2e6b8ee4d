package obfuscate

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_step(t *testing.T) {
	var got []string

	j := &Job{buf: []rune("abc"), write: func(s string) { got = append(got, s) }}
	replacements := []rune("XYZW")
	idx := 0
	next := func() rune {
		r := replacements[idx]
		idx++

		return r
	}

	for i := 0; i < 4; i++ {
		j.step(next)
	}

	assert.Equal(t, []string{"Xbc", "XYc", "XYZ", "WYZ"}, got)
	assert.Equal(t, 1, j.cursor)
}

func TestJob_stepMultibyte(t *testing.T) {
	var got string

	j := &Job{buf: []rune("§é"), write: func(s string) { got = s }}
	j.step(func() rune { return 'A' })

	assert.Equal(t, "Aé", got)
}

func TestOptions_setDefaults(t *testing.T) {
	tests := []struct {
		name    string
		in      Options
		wantInt time.Duration
		wantMin rune
		wantMax rune
	}{
		{"zero", Options{}, DefaultInterval, DefaultMinRune, DefaultMaxRune},
		{"negative interval", Options{Interval: -time.Second}, DefaultInterval, DefaultMinRune, DefaultMaxRune},
		{"custom", Options{Interval: time.Second, MinRune: 'a', MaxRune: 'z'}, time.Second, 'a', 'z'},
		{"swapped range", Options{MinRune: 'z', MaxRune: 'a'}, DefaultInterval, 'a', 'z'},
		{"control range", Options{MinRune: 0, MaxRune: 31}, DefaultInterval, DefaultMinRune, DefaultMaxRune},
		{"surrogates", Options{MinRune: 0xD800, MaxRune: 0xDFFF}, DefaultInterval, DefaultMinRune, DefaultMaxRune},
		{"past max rune", Options{MinRune: 'a', MaxRune: 0x110000}, DefaultInterval, DefaultMinRune, DefaultMaxRune},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			o := tt.in
			o.setDefaults()
			assert.Equal(t, tt.wantInt, o.Interval)
			assert.Equal(t, tt.wantMin, o.MinRune)
			assert.Equal(t, tt.wantMax, o.MaxRune)
			assert.NotNil(t, o.Rand)
		})
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  rune
		wantErr bool
	}{
		{"default", DefaultMinRune, DefaultMaxRune, false},
		{"printable ascii", ' ', '~', false},
		{"single", 'x', 'x', false},
		{"backwards", 'z', 'a', true},
		{"control", 0, 31, true},
		{"starts on control", 0x1F, 'a', true},
		{"ends on delete", 'a', 0x7F, true},
		{"surrogates", 0xD800, 0xDFFF, true},
		{"spans surrogates", 0xD000, 0xE000, true},
		{"past max rune", 0x10FFF0, 0x110010, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRange(tt.lo, tt.hi)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduler_randomRune(t *testing.T) {
	s := NewScheduler(&sync.Mutex{}, Options{Rand: rand.New(rand.NewPCG(1, 2))}, nil)

	seen := make(map[rune]bool)
	for i := 0; i < 5000; i++ {
		r := s.randomRune()
		require.GreaterOrEqual(t, r, rune(DefaultMinRune))
		require.LessOrEqual(t, r, rune(DefaultMaxRune))
		seen[r] = true
	}

	assert.True(t, seen[DefaultMinRune], "lower bound never drawn")
	assert.True(t, seen[DefaultMaxRune], "upper bound never drawn")
}

func TestScheduler_StartAndClear(t *testing.T) {
	host := &sync.Mutex{}
	s := NewScheduler(host, Options{Interval: time.Millisecond}, nil)

	var writes []string

	s.Start("hello", func(text string) { writes = append(writes, text) })
	assert.Equal(t, 1, s.Len())

	assert.Eventually(t, func() bool {
		host.Lock()
		defer host.Unlock()

		return len(writes) >= 10
	}, 2*time.Second, time.Millisecond)

	s.Clear()
	assert.Zero(t, s.Len())

	host.Lock()
	count := len(writes)
	for _, w := range writes {
		assert.Equal(t, 5, utf8.RuneCountInString(w))
	}
	host.Unlock()

	time.Sleep(20 * time.Millisecond)

	host.Lock()
	defer host.Unlock()
	assert.Len(t, writes, count, "job wrote after Clear")
}

func TestScheduler_ClearMany(t *testing.T) {
	host := &sync.Mutex{}
	s := NewScheduler(host, Options{Interval: time.Millisecond}, nil)

	counts := make([]int, 3)
	for i := range counts {
		i := i
		s.Start("abc", func(string) { counts[i]++ })
	}

	assert.Equal(t, 3, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())

	host.Lock()
	before := append([]int(nil), counts...)
	host.Unlock()

	time.Sleep(20 * time.Millisecond)

	host.Lock()
	defer host.Unlock()
	assert.Equal(t, before, counts)
}

func TestScheduler_ClearOrder(t *testing.T) {
	s := NewScheduler(&sync.Mutex{}, Options{Interval: time.Hour}, nil)

	for _, text := range []string{"one", "two", "three"} {
		s.Start(text, func(string) {})
	}

	s.mu.Lock()
	started := append([]*Job(nil), s.jobs...)
	s.mu.Unlock()
	require.Len(t, started, 3)

	var stopped []string

	s.onStop = func(j *Job) {
		assert.True(t, j.stopped)
		stopped = append(stopped, string(j.buf))
	}

	s.Clear()

	assert.Equal(t, []string{"three", "two", "one"}, stopped)

	for _, j := range started {
		assert.True(t, j.stopped)
	}
}

func TestScheduler_StartEmpty(t *testing.T) {
	s := NewScheduler(&sync.Mutex{}, Options{}, nil)
	s.Start("", func(string) { t.Error("empty job wrote") })

	assert.Zero(t, s.Len())
	s.Clear()
}
