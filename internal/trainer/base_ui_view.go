package trainer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"
)

// routineCompleteNotice is shown when a routine runs to its end
const routineCompleteNotice = "Routine Complete!"

// BaseUIView contains the base logic shared by all UI implementations
type BaseUIView struct {
	uiViewImpl    UIViewImpl
	uiModel       *UIModel
	uiController  *UIController
	displayPeriod time.Duration
	context       context.Context
	cancelFunc    context.CancelFunc
	waitGroup     sync.WaitGroup
	logger        *log.Logger
}

// NewBaseUIViewArg holds the arguments for creating a new BaseUIView
type NewBaseUIViewArg struct {
	UIViewImpl    UIViewImpl
	UIModel       *UIModel
	UIController  *UIController
	DisplayRateHz float64 // how often the counter panel is refreshed
	Logger        *log.Logger
}

// NewBaseUIView creates a new BaseUIView with the given implementation
func NewBaseUIView(args NewBaseUIViewArg) *BaseUIView {
	if args.Logger == nil {
		panic("BaseUIView: logger cannot be nil")
	}
	if args.UIViewImpl == nil {
		panic("BaseUIView: UIViewImpl cannot be nil")
	}
	if args.UIModel == nil {
		panic("BaseUIView: UIModel cannot be nil")
	}
	if args.UIController == nil {
		panic("BaseUIView: UIController cannot be nil")
	}
	rate := args.DisplayRateHz
	if rate <= 0 {
		rate = DefaultDisplayRateHz
	}
	ctx, cancel := context.WithCancel(context.Background())

	base := &BaseUIView{
		uiViewImpl:    args.UIViewImpl,
		uiModel:       args.UIModel,
		uiController:  args.UIController,
		displayPeriod: time.Duration(float64(time.Second) / rate),
		context:       ctx,
		cancelFunc:    cancel,
		logger:        args.Logger,
	}

	args.UIViewImpl.Initialize(args.UIController)
	args.UIViewImpl.SetupKeyboardHandlers(args.UIController)

	args.UIViewImpl.SetExerciseList(args.UIController.GetOptions())
	args.UIViewImpl.SetRoutineList(routine.AllRoutines)
	args.UIViewImpl.SetMode(args.UIModel.GetUIState().Mode)
	// the refresh loop compares against exactly what was rendered here
	initial := args.UIModel.GetView()
	args.UIViewImpl.UpdateView(initial)

	base.waitGroup.Add(2)
	go_func_utils.SafeGo(base.logger, func() { base.monitorLogResize() })
	go_func_utils.SafeGo(base.logger, func() { base.refreshDisplay(initial) })
	base.updateLogDisplay()

	base.setupEventListeners()

	return base
}

func (base *BaseUIView) setupEventListeners() {
	// Listen to log messages from model
	logChan := make(chan string, 1)
	logUnregister := base.uiModel.ListenToLog(logChan)
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, func() {
		defer base.waitGroup.Done()
		defer logUnregister()
		for {
			select {
			case <-base.context.Done():
				return
			case _, ok := <-logChan:
				if !ok {
					return
				}
				// When a new log arrives, update the display to show the tail
				base.updateLogDisplay()
			}
		}
	})

	// Listen to close application event from model
	closeChan := make(chan struct{}, 1)
	closeUnregister := base.uiModel.ListenToCloseApplication(closeChan)
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, func() {
		defer base.waitGroup.Done()
		defer closeUnregister()
		select {
		case <-base.context.Done():
			return
		case _, ok := <-closeChan:
			if !ok {
				return
			}
			base.uiViewImpl.Stop()
		}
	})

	// Listen to UI state changes from model
	uiStateChan := make(chan UIState, 1)
	uiStateUnregister := base.uiModel.ListenToUIState(uiStateChan)
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, func() {
		defer base.waitGroup.Done()
		defer uiStateUnregister()
		for {
			select {
			case <-base.context.Done():
				return
			case state, ok := <-uiStateChan:
				if !ok {
					return
				}
				base.uiViewImpl.SetMode(state.Mode)
				base.draw()
			}
		}
	})

	// Listen to finished routines
	completeChan := make(chan routine.Completion, 1)
	completeUnregister := base.uiModel.ListenToRoutineComplete(completeChan)
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, func() {
		defer base.waitGroup.Done()
		defer completeUnregister()
		for {
			select {
			case <-base.context.Done():
				return
			case _, ok := <-completeChan:
				if !ok {
					return
				}
				base.uiViewImpl.ShowNotice(routineCompleteNotice)
				base.draw()
			}
		}
	})
}

// refreshDisplay redraws the counter panel at the display rate, independent of
// how fast poses arrive. Only views differing from last, the view the
// implementation currently shows, are pushed.
func (base *BaseUIView) refreshDisplay(last View) {
	defer base.waitGroup.Done()
	ticker := time.NewTicker(base.displayPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-base.context.Done():
			return
		case <-ticker.C:
			view := base.uiModel.GetView()
			if view.Equal(last) {
				continue
			}
			last = view
			base.uiViewImpl.UpdateView(view)
			base.draw()
		}
	}
}

func (base *BaseUIView) updateLogDisplay() {
	// Get the visible height of the log view
	height := base.uiViewImpl.GetLogViewHeight()
	if height <= 0 {
		return
	}

	logLines := base.uiModel.GetLogTail(height)

	base.uiViewImpl.ClearLogView()
	for _, line := range logLines {
		if err := base.uiViewImpl.WriteLogLine(line); err != nil {
			base.logger.Printf("BaseUIView: Error writing to log view: %v", err)
		}
	}
}

func (base *BaseUIView) monitorLogResize() {
	defer base.waitGroup.Done()
	var lastHeight int
	ticker := time.NewTicker(logResizeCheckPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-base.context.Done():
			return
		case <-ticker.C:
			height := base.uiViewImpl.GetLogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				base.updateLogDisplay()
				base.draw()
			}
		}
	}
}

func (base *BaseUIView) draw() {
	if err := base.uiViewImpl.Draw(); err != nil {
		base.logger.Printf("BaseUIView: Error drawing: %v", err)
	}
}

// Shutdown stops all goroutines and waits for them to finish
func (base *BaseUIView) Shutdown() {
	base.logger.Println("BaseUIView: Shutting down")
	base.cancelFunc()
	base.waitGroup.Wait()
	base.logger.Println("BaseUIView: Shutdown complete")
}

// Run starts the UI and blocks until it exits
func (base *BaseUIView) Run() error {
	return base.uiViewImpl.Run()
}
