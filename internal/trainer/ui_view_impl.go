package trainer

import "github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	SetMode(mode UIMode)
	GetCurrentMode() UIMode

	// --- Log View (shared across modes) ---

	// GetLogViewHeight returns the visible height of the log view, 0 if there is none
	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Exercise Mode ---

	// SetExerciseList populates the exercise selection list
	SetExerciseList(names []string)

	// UpdateView renders the counter panel
	UpdateView(view View)

	// ShowNotice displays a transient message such as a finished routine
	ShowNotice(message string)

	// --- Routine Mode ---

	SetRoutineList(routines []routine.Routine)
}
