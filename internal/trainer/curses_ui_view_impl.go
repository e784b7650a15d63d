package trainer

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/exercise"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"
)

// Page names for tview.Pages
const (
	pageExercise = "exercise"
	pageRoutines = "routines"
)

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	currentMode UIMode

	// counter state, written by the display refresh and the completion listener
	counterMu sync.Mutex
	notice    string // cleared by the next routine start or exercise change
	lastView  View

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: mode content on left, logs on right

	// Exercise mode components
	exerciseFlex       *tview.Flex
	exerciseTabWidgets []*tview.Box
	exerciseList       *tview.List
	counterPanel       *tview.TextView

	// Routine mode components
	routineFlex        *tview.Flex
	routineTabWidgets  []*tview.Box
	routineList        *tview.List
	routineDetailPanel *tview.TextView
	routines           []routine.Routine
}

func NewCursesUIView(logger *log.Logger, app *tview.Application) *CursesUIViewImpl {
	if logger == nil {
		panic("CursesUIViewImpl: logger cannot be nil")
	}
	if app == nil {
		panic("CursesUIViewImpl: app cannot be nil")
	}
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		currentMode: UIModeExercise,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// No SetChangedFunc with app.Draw() here: it can hang during shutdown when
	// the app has stopped but log lines are still arriving.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initExerciseMode(controller)
	ui.initRoutineMode(controller)

	ui.pages.AddPage(pageExercise, ui.exerciseFlex, true, true)
	ui.pages.AddPage(pageRoutines, ui.routineFlex, true, false)

	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	ui.setFocusForCurrentMode()
}

func (ui *CursesUIViewImpl) initExerciseMode(controller *UIController) {
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]Enter[white] Select  |  [yellow]Tab[white] Cycle  |  [yellow]X[white] Stop Routine  |  [yellow]Esc[white] Quit\n[yellow]1[white] Exercises  |  [yellow]2[white] Routines")

	ui.exerciseList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Exercise selected: index=%d, name=%s", index, mainText)
			controller.OnExerciseSelected(index)
		})
	ui.exerciseList.SetBorder(true).SetTitle(" Exercises ")

	ui.counterPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.counterPanel.SetBorder(true).SetTitle(" Counter ")

	ui.exerciseTabWidgets = append(ui.exerciseTabWidgets, ui.exerciseList.Box, ui.counterPanel.Box)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.exerciseList, 24, 0, true).
		AddItem(ui.counterPanel, 0, 1, false)

	ui.exerciseFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(body, 0, 1, true)
}

func (ui *CursesUIViewImpl) initRoutineMode(controller *UIController) {
	ui.routineList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Routine selected: index=%d, name=%s", index, mainText)
			controller.OnRoutineSelected(index)
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateRoutineDetailsDisplay(index)
		})
	ui.routineList.SetBorder(true).SetTitle(" Routines ")

	ui.routineDetailPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.routineDetailPanel.SetBorder(true).SetTitle(" Routine Details ")
	ui.updateRoutineDetailsDisplay(-1)

	ui.routineTabWidgets = append(ui.routineTabWidgets, ui.routineList.Box, ui.routineDetailPanel.Box)

	ui.routineFlex = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.routineList, 0, 1, true).
		AddItem(ui.routineDetailPanel, 0, 1, false)
}

// SetExerciseList populates the exercise selection list
func (ui *CursesUIViewImpl) SetExerciseList(names []string) {
	ui.exerciseList.Clear()
	for _, name := range names {
		ui.exerciseList.AddItem(exercise.DisplayName(name), "", 0, nil)
	}
}

// SetRoutineList populates the routine selection list
func (ui *CursesUIViewImpl) SetRoutineList(routines []routine.Routine) {
	ui.routines = routines
	ui.routineList.Clear()

	for _, r := range routines {
		ui.routineList.AddItem(r.Name, formatDuration(r.TotalDuration()), 0, nil)
	}

	if len(routines) > 0 {
		ui.updateRoutineDetailsDisplay(0)
	}
}

// formatDuration formats a duration as "N min" or "N s" when under a minute
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d s", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	if seconds := int(d.Seconds()) % 60; seconds > 0 {
		return fmt.Sprintf("%d min %d s", minutes, seconds)
	}
	return fmt.Sprintf("%d min", minutes)
}

func (ui *CursesUIViewImpl) updateRoutineDetailsDisplay(index int) {
	if ui.routineDetailPanel == nil {
		return
	}

	var text string

	if index < 0 || index >= len(ui.routines) {
		text = "\n\n  [yellow]Routines[white]\n\n"
		text += "  Select a routine from the list to view details.\n"
	} else {
		r := ui.routines[index]
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", r.Name)
		text += fmt.Sprintf("  [gray]Duration:[white] %s\n", formatDuration(r.TotalDuration()))
		text += fmt.Sprintf("  [gray]Steps:[white] %d\n\n", len(r.Steps))
		for i, step := range r.Steps {
			text += fmt.Sprintf("    %d. %s [gray](%s, %d s)[white]\n", i+1, step.Label, exercise.DisplayName(step.ExerciseName), step.DurationSeconds)
		}
		text += "\n  [green]Press Enter to start this routine[white]\n"
	}

	ui.routineDetailPanel.SetText(text)
}

// UpdateView renders the counter panel
func (ui *CursesUIViewImpl) UpdateView(view View) {
	ui.counterMu.Lock()
	defer ui.counterMu.Unlock()
	// the switch back after a finished routine keeps the notice
	if view.Routine != nil || (ui.lastView.Routine == nil && view.Exercise != ui.lastView.Exercise) {
		ui.notice = ""
	}
	ui.lastView = view
	ui.renderCounter()
}

// ShowNotice displays message under the counter until the next change of exercise
func (ui *CursesUIViewImpl) ShowNotice(message string) {
	ui.counterMu.Lock()
	defer ui.counterMu.Unlock()
	ui.notice = message
	ui.renderCounter()
}

// renderCounter MUST be called with counterMu held
func (ui *CursesUIViewImpl) renderCounter() {
	if ui.counterPanel == nil {
		return
	}
	view := ui.lastView

	var b strings.Builder
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "[yellow]%s[white]\n\n", tview.Escape(view.Title()))

	valueColor := "white"
	if view.ActivePhase() {
		valueColor = "aqua"
	}
	fmt.Fprintf(&b, "[%s::b]%s[-::-]\n\n", valueColor, tview.Escape(view.DisplayValue()))

	if view.Status != "" {
		fmt.Fprintf(&b, "[gray]%s[white]\n\n", tview.Escape(view.Status))
	}

	feedbackColor := "orange"
	if view.Positive() {
		feedbackColor = "green"
	}
	fmt.Fprintf(&b, "[%s]%s[white]\n", feedbackColor, tview.Escape(view.Feedback))

	if view.Routine != nil {
		fmt.Fprintf(&b, "\n[gray]Step %d/%d  |  X to stop[white]\n", view.Routine.StepIndex+1, view.Routine.StepCount)
	}
	if ui.notice != "" {
		fmt.Fprintf(&b, "\n[green::b]%s[-::-]\n", tview.Escape(ui.notice))
	}

	ui.counterPanel.SetText(b.String())
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeExercise:
		ui.pages.SwitchToPage(pageExercise)
	case UIModeRoutines:
		ui.pages.SwitchToPage(pageRoutines)
	}

	ui.setFocusForCurrentMode()
	ui.app.Draw()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	if widgets := ui.getTabWidgetsForCurrentMode(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModeExercise:
		return ui.exerciseTabWidgets
	case UIModeRoutines:
		return ui.routineTabWidgets
	default:
		return nil
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// the model notifies us back through BaseUIView
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			widgetCount := len(widgets)
			if widgetCount > 0 {
				for i := 0; i < widgetCount+1; i++ {
					idx := i % widgetCount
					if widgets[idx].HasFocus() {
						ui.app.SetFocus(widgets[(idx+1)%widgetCount])
						break
					}
				}
			}
			return nil
		}

		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		if event.Key() == tcell.KeyRune && (event.Rune() == 'x' || event.Rune() == 'X') {
			controller.RoutineStop()
			return nil
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
