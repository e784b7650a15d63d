package trainer

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/events"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// UIModel holds what renderers show: the latest exercise view, the UI mode
// and the log tail. Producers push state in, views listen for changes.
type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	viewEvent             *events.ChannelEvent[View]
	view                  View
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	routineCompleteEvent  *events.ChannelEvent[routine.Completion]
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

func NewUIModel(logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		viewEvent:             events.NewChannelEvent[View](true),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeExercise},
		routineCompleteEvent:  events.NewChannelEvent[routine.Completion](false),
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}

	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToView registers a channel to receive every changed view
func (m *UIModel) ListenToView(ch chan<- View) func() {
	return m.viewEvent.Listen(ch)
}

// GetView returns the latest view
func (m *UIModel) GetView() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// SetView stores view and notifies listeners when it differs from the previous one
func (m *UIModel) SetView(view View) {
	m.mu.Lock()
	if m.view.Equal(view) {
		m.mu.Unlock()
		return
	}
	m.view = view
	m.mu.Unlock()

	m.viewEvent.Notify(view)
}

// ListenToCloseApplication registers a channel to receive close application signals
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToRoutineComplete registers a channel to receive finished routines
func (m *UIModel) ListenToRoutineComplete(ch chan<- routine.Completion) func() {
	return m.routineCompleteEvent.Listen(ch)
}

// NotifyRoutineComplete forwards a routine completion to listeners
func (m *UIModel) NotifyRoutineComplete(c routine.Completion) {
	m.routineCompleteEvent.Notify(c)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}

	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
