package trainer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/exercise"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"
)

// ErrRoutineActive is returned when selecting an exercise by hand while a routine drives the selection
var ErrRoutineActive = errors.New("a routine is running")

// Session is the application context. It owns the exercise registry and the
// routine scheduler and serialises every mutation, since pose frames arrive on
// the processing goroutine while commands arrive from the UI.
type Session struct {
	model  *UIModel
	clock  clock.Clock
	logger *log.Logger

	mu        sync.Mutex
	registry  *exercise.Registry
	scheduler *routine.Scheduler
	frames    uint64
}

// NewSession builds the registry and scheduler and activates startExercise
func NewSession(model *UIModel, clk clock.Clock, startExercise string, logger *log.Logger) (*Session, error) {
	if model == nil {
		panic("Session: model cannot be nil")
	}
	if clk == nil {
		panic("Session: clock cannot be nil")
	}
	if logger == nil {
		panic("Session: logger cannot be nil")
	}

	registry := exercise.NewRegistry(clk, logger)
	if err := registry.SwitchTo(startExercise); err != nil {
		return nil, fmt.Errorf("start exercise: %w", err)
	}

	s := &Session{
		model:     model,
		clock:     clk,
		logger:    logger,
		registry:  registry,
		scheduler: routine.NewScheduler(registry, clk, logger),
	}

	// runs inside ProcessPoses with mu held, so it must not call back into the session
	s.scheduler.ListenToComplete(func(c routine.Completion) {
		s.logger.Printf("Session: Routine Complete! (%s, %d steps)", c.RoutineID, c.Steps)
		s.model.NotifyRoutineComplete(c)
	})

	s.model.SetView(s.Snapshot())
	return s, nil
}

// ProcessPoses handles the output of one provider call. The routine tick runs
// before the exercise update and both see the same frame. Only the first pose
// is used; an empty result carries no new information.
func (s *Session) ProcessPoses(poses []pose.Pose) {
	if len(poses) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.scheduler.Tick(s.clock.Now())
	s.registry.Current().Update(poses[0])
	s.publish()
}

// SwitchTo activates the named exercise and resets it. An unknown name is
// reported as such even while a routine runs.
func (s *Session) SwitchTo(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry.Get(name); !ok {
		return s.registry.SwitchTo(name)
	}
	if s.scheduler.State().Active() {
		return ErrRoutineActive
	}
	if err := s.registry.SwitchTo(name); err != nil {
		return err
	}
	s.publish()
	return nil
}

// Options lists the selectable exercise names in catalog order
func (s *Session) Options() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Names()
}

// RoutineStart begins the routine with the given id
func (s *Session) RoutineStart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scheduler.Start(id); err != nil {
		return err
	}
	s.publish()
	return nil
}

// RoutineStop abandons the running routine and returns to the default exercise
func (s *Session) RoutineStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler.Stop()
	s.publish()
}

// RoutineState returns the scheduler snapshot
func (s *Session) RoutineState() routine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.State()
}

// FramesProcessed returns how many non-empty frames have been applied
func (s *Session) FramesProcessed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Snapshot returns the current view
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildView()
}

// publish hands the current view to the model. Publishing under mu keeps the
// model in the same order as the mutations.
// MUST be called with mu held.
func (s *Session) publish() {
	s.model.SetView(s.buildView())
}

// buildView assembles the renderer view.
// MUST be called with mu held.
func (s *Session) buildView() View {
	name := s.registry.CurrentName()
	state := s.registry.Current().State()

	view := View{
		Exercise:    name,
		DisplayName: exercise.DisplayName(name),
		Count:       state.Count,
		Status:      state.Status,
		Feedback:    state.Feedback,
		Kind:        state.Kind,
	}

	if rs := s.scheduler.State(); rs.Active() {
		view.Routine = &RoutineView{
			RunID:            rs.RunID,
			ID:               rs.RoutineID,
			Label:            rs.Label,
			RemainingSeconds: rs.RemainingSeconds,
			StepIndex:        rs.StepIndex,
			StepCount:        rs.StepCount,
		}
	}
	return view
}
