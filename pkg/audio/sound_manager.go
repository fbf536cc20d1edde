// Package audio plays short tones for game events through the beep speaker.
// Audio is optional: when no output device is available every call is a
// no-op.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-pong/pkg/event"
	"github.com/opd-ai/go-pong/pkg/logging"
)

const sampleRate = beep.SampleRate(44100)

// maxToneFailures consecutive failures open the breaker for breakerTimeout
const (
	maxToneFailures = 3
	breakerTimeout  = 5 * time.Second
)

// Tone is a sine beep of fixed pitch and length
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// DefaultTones maps game events to the tone played for them
var DefaultTones = map[event.Type]Tone{
	event.BallBounced: {Frequency: 880, Duration: 50 * time.Millisecond},
	event.BallReset:   {Frequency: 220, Duration: 300 * time.Millisecond},
}

// Streamer builds a finite streamer for the tone
func (t Tone) Streamer() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, t.Frequency)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(t.Duration), sine), nil
}

// SoundManager mixes event tones into a single speaker stream
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	tones       map[event.Type]Tone
	logger      *logging.Logger
	breaker     *gobreaker.CircuitBreaker
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(logger *logging.Logger) *SoundManager {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("component", "audio")

	tones := make(map[event.Type]Tone, len(DefaultTones))
	for typ, tone := range DefaultTones {
		tones[typ] = tone
	}

	settings := gobreaker.Settings{
		Name:        "audio-tones",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxToneFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &SoundManager{
		mixer:   &beep.Mixer{},
		tones:   tones,
		logger:  logger,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// SetTone replaces the tone played for an event type
func (sm *SoundManager) SetTone(typ event.Type, tone Tone) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tones[typ] = tone
}

// Initialize opens the speaker. Failing is not fatal; the manager stays
// silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "init speaker")
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Attach subscribes the manager to every event that has a tone. The returned
// function removes the subscriptions.
func (sm *SoundManager) Attach(bus *event.Bus) func() {
	type sub struct {
		typ event.Type
		id  event.SubscriptionID
	}
	var subs []sub
	for typ := range sm.tones {
		id := bus.Subscribe(typ, func(e event.Event) { sm.Play(e.GetType()) })
		subs = append(subs, sub{typ, id})
	}
	return func() {
		for _, s := range subs {
			bus.Unsubscribe(s.typ, s.id)
		}
	}
}

// Play mixes in the tone for an event type
func (sm *SoundManager) Play(typ event.Type) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	tone, ok := sm.tones[typ]
	if !ok {
		return
	}
	_, err := sm.breaker.Execute(func() (interface{}, error) {
		streamer, err := tone.Streamer()
		if err != nil {
			return nil, err
		}
		speaker.Lock()
		sm.mixer.Add(streamer)
		speaker.Unlock()
		return nil, nil
	})
	if err != nil {
		sm.logger.Debug(context.Background(), "tone unavailable", "event", string(typ), "error", err.Error())
	}
}

// Cleanup silences the mixer and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
