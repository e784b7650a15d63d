package trainer

import (
	"log"
	"sync"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"
)

// HeadlessUIViewImpl implements UIViewImpl without a terminal. It logs what a
// screen would show and blocks in Run until stopped. Used when the process is
// not attached to a TTY or when the websocket provider serves the display.
type HeadlessUIViewImpl struct {
	logger *log.Logger

	mu          sync.Mutex
	currentMode UIMode
	last        View
	notices     []string

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewHeadlessUIView(logger *log.Logger) *HeadlessUIViewImpl {
	if logger == nil {
		panic("HeadlessUIViewImpl: logger cannot be nil")
	}
	return &HeadlessUIViewImpl{
		logger:      logger,
		currentMode: UIModeExercise,
		stopChan:    make(chan struct{}),
	}
}

func (ui *HeadlessUIViewImpl) Initialize(controller *UIController)            {}
func (ui *HeadlessUIViewImpl) SetupKeyboardHandlers(controller *UIController) {}
func (ui *HeadlessUIViewImpl) Draw() error                                    { return nil }
func (ui *HeadlessUIViewImpl) GetLogViewHeight() int                          { return 0 }
func (ui *HeadlessUIViewImpl) ClearLogView()                                  {}
func (ui *HeadlessUIViewImpl) WriteLogLine(line string) error                 { return nil }
func (ui *HeadlessUIViewImpl) SetExerciseList(names []string)                 {}
func (ui *HeadlessUIViewImpl) SetRoutineList(routines []routine.Routine)      {}

// Run blocks until Stop is called
func (ui *HeadlessUIViewImpl) Run() error {
	<-ui.stopChan
	return nil
}

// Stop releases Run. Safe to call multiple times.
func (ui *HeadlessUIViewImpl) Stop() {
	ui.stopOnce.Do(func() { close(ui.stopChan) })
}

func (ui *HeadlessUIViewImpl) SetMode(mode UIMode) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	ui.currentMode = mode
}

func (ui *HeadlessUIViewImpl) GetCurrentMode() UIMode {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.currentMode
}

// UpdateView logs count and feedback changes, not every status flip
func (ui *HeadlessUIViewImpl) UpdateView(view View) {
	ui.mu.Lock()
	prev := ui.last
	ui.last = view
	ui.mu.Unlock()

	if view.Title() != prev.Title() || view.DisplayValue() != prev.DisplayValue() || view.Feedback != prev.Feedback {
		ui.logger.Printf("Display: %s %s %s", view.Title(), view.DisplayValue(), view.Feedback)
	}
}

func (ui *HeadlessUIViewImpl) ShowNotice(message string) {
	ui.mu.Lock()
	ui.notices = append(ui.notices, message)
	ui.mu.Unlock()
	ui.logger.Printf("Display: %s", message)
}

// LastView returns the most recently rendered view
func (ui *HeadlessUIViewImpl) LastView() View {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.last
}

// Notices returns every notice shown so far
func (ui *HeadlessUIViewImpl) Notices() []string {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return append([]string(nil), ui.notices...)
}
