package exercise

import (
	"math"
	"time"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

// Kind tells the renderer whether Count is a rep tally or a hold duration
type Kind string

const (
	KindReps Kind = "reps"
	KindHold Kind = "hold"
)

const (
	StatusStart     = "start"
	DefaultFeedback = "Get in position"
)

// State is the renderer-visible state of one exercise
type State struct {
	Count    float64 // whole reps, or elapsed hold seconds at one decimal
	Status   string  // exercise specific phase tag
	Feedback string  // never empty
	Kind     Kind
}

// Exercise is a per-exercise state machine fed one pose per processed frame.
// Implementations are not safe for concurrent use.
type Exercise interface {
	// Reset restores the freshly constructed state
	Reset()
	// Update advances the state machine with one pose frame
	Update(p pose.Pose)
	// State returns a copy of the current state
	State() State
}

// base carries the state shared by every exercise and the hold timer
type base struct {
	state State
	kind  Kind
	clock clock.Clock

	holding   bool
	holdStart time.Time
}

func newBase(kind Kind, clk clock.Clock) base {
	b := base{kind: kind, clock: clk}
	b.Reset()
	return b
}

func (b *base) Reset() {
	b.state = State{
		Count:    0,
		Status:   StatusStart,
		Feedback: DefaultFeedback,
		Kind:     b.kind,
	}
	b.holding = false
	b.holdStart = time.Time{}
}

func (b *base) State() State {
	return b.state
}

// rep counts one completed repetition
func (b *base) rep(feedback string) {
	b.state.Count++
	b.state.Feedback = feedback
}

// hold records a qualifying frame. The first one of a streak latches the start time
// and the displayed value restarts from zero.
func (b *base) hold(feedback string) {
	now := b.clock.Now()
	if !b.holding {
		b.holding = true
		b.holdStart = now
	}
	elapsed := float64(now.Sub(b.holdStart).Milliseconds()) / 1000
	b.state.Count = math.Round(elapsed*10) / 10
	b.state.Feedback = feedback
}

// breakHold ends the current streak. Count keeps the last held value.
func (b *base) breakHold(feedback string) {
	b.holding = false
	b.holdStart = time.Time{}
	b.state.Feedback = feedback
}
