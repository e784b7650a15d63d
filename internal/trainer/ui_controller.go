package trainer

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"
)

// UIController handles UI events and coordinates with the Session and UIModel
type UIController struct {
	model   *UIModel
	session *Session
	logger  *log.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, session *Session, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if session == nil {
		panic("UIController: session cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &UIController{
		model:   model,
		session: session,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	// registered before returning so no completion can slip past
	completeChan := make(chan routine.Completion, 1)
	unregister := model.ListenToRoutineComplete(completeChan)
	c.wg.Add(1)
	go_func_utils.SafeGo(logger, func() { c.listenToRoutineComplete(completeChan, unregister) })

	return c
}

// A finished routine hands control back to the exercise screen
func (c *UIController) listenToRoutineComplete(ch <-chan routine.Completion, unregister func()) {
	defer c.wg.Done()
	defer unregister()

	for {
		select {
		case <-c.ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			c.model.SetMode(UIModeExercise)
		}
	}
}

// SwitchTo selects an exercise by registry name
func (c *UIController) SwitchTo(name string) error {
	if err := c.session.SwitchTo(name); err != nil {
		c.logger.Printf("UIController: Cannot switch to %q: %v", name, err)
		return err
	}
	c.logger.Printf("Exercise selected: %s", name)
	return nil
}

// GetOptions lists the selectable exercise names
func (c *UIController) GetOptions() []string {
	return c.session.Options()
}

// RoutineStart begins a routine and shows the exercise screen it drives
func (c *UIController) RoutineStart(id string) error {
	if err := c.session.RoutineStart(id); err != nil {
		c.logger.Printf("UIController: Cannot start routine %q: %v", id, err)
		return err
	}
	if r, ok := routine.GetRoutineByID(id); ok {
		c.logger.Printf("Routine started: %s", r.Name)
	}
	c.model.SetMode(UIModeExercise)
	return nil
}

// RoutineStop abandons the running routine
func (c *UIController) RoutineStop() {
	if !c.session.RoutineState().Active() {
		c.logger.Printf("No routine running")
		return
	}
	c.session.RoutineStop()
	c.logger.Printf("Routine stopped")
}

// OnExerciseSelected handles a selection from the exercise list
func (c *UIController) OnExerciseSelected(index int) {
	options := c.session.Options()
	if index < 0 || index >= len(options) {
		c.logger.Printf("Invalid exercise index: %d", index)
		return
	}
	_ = c.SwitchTo(options[index])
}

// OnRoutineSelected handles a selection from the routine list
func (c *UIController) OnRoutineSelected(index int) {
	if index < 0 || index >= len(routine.AllRoutines) {
		c.logger.Printf("Invalid routine index: %d", index)
		return
	}
	_ = c.RoutineStart(routine.AllRoutines[index].ID)
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// Shutdown stops the controller goroutines
func (c *UIController) Shutdown() {
	c.cancel()
	c.wg.Wait()
}
