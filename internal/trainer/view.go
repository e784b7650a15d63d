package trainer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/exercise"
)

// RoutineView is the renderer-facing part of a running routine
type RoutineView struct {
	RunID            string `json:"runId"`
	ID               string `json:"id"`
	Label            string `json:"label"`
	RemainingSeconds int    `json:"remainingSeconds"`
	StepIndex        int    `json:"stepIndex"`
	StepCount        int    `json:"stepCount"`
}

// View is everything a renderer needs for one display cycle
type View struct {
	Exercise    string        `json:"exercise"`
	DisplayName string        `json:"displayName"`
	Count       float64       `json:"count"`
	Status      string        `json:"status"`
	Feedback    string        `json:"feedback"`
	Kind        exercise.Kind `json:"kind"`
	Routine     *RoutineView  `json:"routine,omitempty"`
}

// Equal compares two views by value, including the routine part
func (v View) Equal(other View) bool {
	if v.Exercise != other.Exercise || v.DisplayName != other.DisplayName ||
		v.Count != other.Count || v.Status != other.Status ||
		v.Feedback != other.Feedback || v.Kind != other.Kind {
		return false
	}
	if v.Routine == nil || other.Routine == nil {
		return v.Routine == other.Routine
	}
	return *v.Routine == *other.Routine
}

// Title is the routine step label while a routine runs, else the exercise name
func (v View) Title() string {
	if v.Routine != nil {
		return strings.ToUpper(v.Routine.Label)
	}
	return strings.ToUpper(v.Exercise)
}

// DisplayValue is the routine countdown while a routine runs, else the count
func (v View) DisplayValue() string {
	if v.Routine != nil {
		return fmt.Sprintf("%d s", v.Routine.RemainingSeconds)
	}
	if v.Kind == exercise.KindHold {
		return fmt.Sprintf("%.1f s", v.Count)
	}
	return fmt.Sprintf("%.0f", v.Count)
}

// Positive reports whether the feedback is encouragement
func (v View) Positive() bool {
	for _, word := range positiveFeedbackWords {
		if strings.Contains(v.Feedback, word) {
			return true
		}
	}
	return false
}

// ActivePhase reports whether the status marks the working phase of a rep
func (v View) ActivePhase() bool {
	return slices.Contains(activePhaseStatuses, v.Status)
}
