package trainer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/routine"
)

func TestUIModel_SetViewNotifiesOnChange(t *testing.T) {
	model, _ := newTestModel(t)
	ch := make(chan View, 4)
	unregister := model.ListenToView(ch)
	defer unregister()

	view := View{Exercise: "squat", Count: 1}
	model.SetView(view)
	model.SetView(view)

	assert.Equal(t, view, <-ch)
	assert.Empty(t, ch)
	assert.Equal(t, view, model.GetView())

	model.SetView(View{Exercise: "squat", Count: 2})
	assert.Equal(t, 2.0, (<-ch).Count)
}

func TestUIModel_LateViewListenerGetsLatest(t *testing.T) {
	model, _ := newTestModel(t)
	model.SetView(View{Exercise: "plank", Count: 4.2})

	ch := make(chan View, 1)
	unregister := model.ListenToView(ch)
	defer unregister()

	select {
	case v := <-ch:
		assert.Equal(t, "plank", v.Exercise)
	default:
		t.Fatal("expected the latest view on registration")
	}
}

func TestUIModel_SetMode(t *testing.T) {
	model, _ := newTestModel(t)
	assert.Equal(t, UIModeExercise, model.GetUIState().Mode)

	ch := make(chan UIState, 4)
	unregister := model.ListenToUIState(ch)
	defer unregister()

	model.SetMode(UIModeRoutines)
	model.SetMode(UIModeRoutines)

	assert.Equal(t, UIModeRoutines, (<-ch).Mode)
	assert.Empty(t, ch)
	assert.Equal(t, UIModeRoutines, model.GetUIState().Mode)
}

func TestUIModel_LogTail(t *testing.T) {
	model, logChan := newTestModel(t)
	lines := make(chan string, 8)
	unregister := model.ListenToLog(lines)
	defer unregister()

	logChan <- "one\n"
	logChan <- "two\n"
	logChan <- "three\n"

	assert.Eventually(t, func() bool {
		return len(model.GetLogTail(10)) == 3
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"two\n", "three\n"}, model.GetLogTail(2))
	assert.Empty(t, model.GetLogTail(0))
	assert.Equal(t, "one\n", <-lines)
}

func TestUIModel_LogTailIsBounded(t *testing.T) {
	model, logChan := newTestModel(t)

	for i := 0; i < maxLogLines+5; i++ {
		logChan <- "line\n"
	}
	logChan <- "last\n"

	assert.Eventually(t, func() bool {
		tail := model.GetLogTail(1)
		return len(tail) == 1 && tail[0] == "last\n"
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, model.GetLogTail(maxLogLines*2), maxLogLines)
}

func TestUIModel_RoutineCompleteAndClose(t *testing.T) {
	model, _ := newTestModel(t)

	completions := make(chan routine.Completion, 1)
	unregisterComplete := model.ListenToRoutineComplete(completions)
	defer unregisterComplete()
	closes := make(chan struct{}, 1)
	unregisterClose := model.ListenToCloseApplication(closes)
	defer unregisterClose()

	model.NotifyRoutineComplete(routine.Completion{RoutineID: "warmup", Steps: 3})
	model.RequestCloseApplication()

	assert.Equal(t, "warmup", (<-completions).RoutineID)
	select {
	case <-closes:
	default:
		t.Fatal("expected a close request")
	}
}

func TestNewUIModel_PanicsOnNil(t *testing.T) {
	assert.PanicsWithValue(t, "UIModel: logger cannot be nil", func() {
		NewUIModel(nil, make(chan string))
	})
	assert.PanicsWithValue(t, "UIModel: uiLogChan cannot be nil", func() {
		NewUIModel(discardLogger(), nil)
	})
}
