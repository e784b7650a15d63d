package routine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/events"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/exercise"
)

// ErrUnknownRoutine is returned when starting a routine id that is not in the catalog
var ErrUnknownRoutine = errors.New("unknown routine")

// Status represents whether a routine is running
type Status int

const (
	StatusIdle    Status = iota // No routine active
	StatusRunning               // Routine in progress
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Switcher activates an exercise by name. Implemented by *exercise.Registry.
type Switcher interface {
	SwitchTo(name string) error
}

// Run is one execution of a routine, created on Start and dropped on stop or completion
type Run struct {
	ID               string
	Routine          Routine
	Index            int
	RemainingSeconds int
	LastTickAt       time.Time
}

// State is the renderer-facing snapshot of the scheduler
type State struct {
	Status           Status
	RunID            string
	RoutineID        string
	RoutineName      string
	Label            string
	ExerciseName     string
	RemainingSeconds int
	StepIndex        int
	StepCount        int
}

// Active reports whether a routine is running
func (s State) Active() bool {
	return s.Status == StatusRunning
}

// Completion describes a routine that ran through all of its steps
type Completion struct {
	RunID      string
	RoutineID  string
	Steps      int
	FinishedAt time.Time
}

// Scheduler walks through the steps of one routine at a time, switching the
// active exercise as each step's countdown expires. It is driven by Tick from
// the processing loop and is not safe for concurrent use.
type Scheduler struct {
	switcher Switcher
	clock    clock.Clock
	logger   *log.Logger

	run      *Run
	complete *events.CallbackEvent[Completion]
}

func NewScheduler(switcher Switcher, clk clock.Clock, logger *log.Logger) *Scheduler {
	if switcher == nil {
		panic("Scheduler: switcher cannot be nil")
	}
	if clk == nil {
		panic("Scheduler: clock cannot be nil")
	}
	if logger == nil {
		panic("Scheduler: logger cannot be nil")
	}

	return &Scheduler{
		switcher: switcher,
		clock:    clk,
		logger:   logger,
		complete: events.NewCallbackEvent[Completion](false),
	}
}

// Start begins the routine with the given id at its first step. A routine
// already running is replaced.
func (s *Scheduler) Start(id string) error {
	r, ok := GetRoutineByID(id)
	if !ok {
		s.logger.Printf("Scheduler: Unknown routine %q", id)
		return fmt.Errorf("%w: %q", ErrUnknownRoutine, id)
	}
	if len(r.Steps) == 0 {
		return fmt.Errorf("routine %q has no steps", id)
	}

	if s.run != nil {
		s.logger.Printf("Scheduler: Replacing routine '%s' (run %s)", s.run.Routine.ID, s.run.ID)
	}

	s.run = &Run{ID: uuid.NewString(), Routine: r}
	s.logger.Printf("Scheduler: Routine '%s' started (run %s, %v)", r.ID, s.run.ID, r.TotalDuration())
	s.activate(0, s.clock.Now())
	return nil
}

// Tick advances the countdown by at most one second. It returns true when
// this tick completed the routine.
func (s *Scheduler) Tick(now time.Time) bool {
	if s.run == nil {
		return false
	}
	if now.Sub(s.run.LastTickAt) < time.Second {
		return false
	}

	s.run.RemainingSeconds--
	s.run.LastTickAt = now
	if s.run.RemainingSeconds > 0 {
		return false
	}

	if next := s.run.Index + 1; next < len(s.run.Routine.Steps) {
		s.activate(next, now)
		return false
	}

	completion := Completion{
		RunID:      s.run.ID,
		RoutineID:  s.run.Routine.ID,
		Steps:      len(s.run.Routine.Steps),
		FinishedAt: now,
	}
	s.logger.Printf("Scheduler: Routine '%s' complete (run %s)", completion.RoutineID, completion.RunID)
	s.Stop()
	s.complete.Notify(completion)
	return true
}

// Stop drops the current run, if any, and returns to the default exercise
func (s *Scheduler) Stop() {
	if s.run != nil {
		s.logger.Printf("Scheduler: Routine '%s' stopped at step %d/%d",
			s.run.Routine.ID, s.run.Index+1, len(s.run.Routine.Steps))
		s.run = nil
	}
	if err := s.switcher.SwitchTo(exercise.DefaultExercise); err != nil {
		s.logger.Printf("Scheduler: Failed to restore default exercise: %v", err)
	}
}

// State returns a snapshot of the current run
func (s *Scheduler) State() State {
	if s.run == nil {
		return State{Status: StatusIdle}
	}

	step := s.run.Routine.Steps[s.run.Index]
	return State{
		Status:           StatusRunning,
		RunID:            s.run.ID,
		RoutineID:        s.run.Routine.ID,
		RoutineName:      s.run.Routine.Name,
		Label:            step.Label,
		ExerciseName:     step.ExerciseName,
		RemainingSeconds: s.run.RemainingSeconds,
		StepIndex:        s.run.Index,
		StepCount:        len(s.run.Routine.Steps),
	}
}

// ListenToComplete registers a callback for routine completion. Callbacks run
// on the ticking goroutine after the scheduler has returned to idle.
func (s *Scheduler) ListenToComplete(callback func(Completion)) func() {
	return s.complete.Listen(callback)
}

func (s *Scheduler) activate(index int, now time.Time) {
	step := s.run.Routine.Steps[index]
	s.run.Index = index
	s.run.RemainingSeconds = step.DurationSeconds
	s.run.LastTickAt = now

	if err := s.switcher.SwitchTo(step.ExerciseName); err != nil {
		s.logger.Printf("Scheduler: Step '%s' cannot activate: %v", step.Label, err)
		return
	}
	s.logger.Printf("Scheduler: Step %d/%d '%s' (%s, %ds)",
		index+1, len(s.run.Routine.Steps), step.Label, step.ExerciseName, step.DurationSeconds)
}
