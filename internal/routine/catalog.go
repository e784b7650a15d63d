package routine

import "time"

// Step is one timed exercise within a routine
type Step struct {
	ExerciseName    string // registry key activated for this step
	DurationSeconds int
	Label           string // shown instead of the exercise name while the step runs
}

// Routine is an ordered list of timed steps
type Routine struct {
	ID    string
	Name  string
	Steps []Step
}

// TotalDuration returns the summed duration of all steps
func (r Routine) TotalDuration() time.Duration {
	var total time.Duration
	for _, step := range r.Steps {
		total += time.Duration(step.DurationSeconds) * time.Second
	}
	return total
}

// AllRoutines defines the built-in routines in menu order
var AllRoutines = []Routine{
	{
		ID:   "warmup",
		Name: "Warm Up",
		Steps: []Step{
			{ExerciseName: "jumpingjack", DurationSeconds: 30, Label: "Warm Up: Jacks"},
			{ExerciseName: "highknees", DurationSeconds: 30, Label: "Warm Up: Knees"},
			{ExerciseName: "squat", DurationSeconds: 30, Label: "Leg Activation"},
		},
	},
	{
		ID:   "stretch",
		Name: "Stretch",
		Steps: []Step{
			{ExerciseName: "forwardfold", DurationSeconds: 20, Label: "Hamstrings"},
			{ExerciseName: "sidestretch", DurationSeconds: 20, Label: "Side Body"},
			{ExerciseName: "wallsit", DurationSeconds: 20, Label: "Final Hold"},
		},
	},
}

// GetRoutineByID returns the routine with the given id
func GetRoutineByID(id string) (Routine, bool) {
	for _, r := range AllRoutines {
		if r.ID == id {
			return r, true
		}
	}
	return Routine{}, false
}

// IDs lists the routine ids in menu order
func IDs() []string {
	ids := make([]string, 0, len(AllRoutines))
	for _, r := range AllRoutines {
		ids = append(ids, r.ID)
	}
	return ids
}
