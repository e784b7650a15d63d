package trainer

import "time"

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeExercise UIMode = iota // Exercise selection and live counter
	UIModeRoutines               // Guided routine selection
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeExercise, DisplayName: "Exercises", KeyBinding: '1'},
	{Mode: UIModeRoutines, DisplayName: "Routines", KeyBinding: '2'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// Feedback containing any of these words is rendered as encouragement rather than a correction
var positiveFeedbackWords = []string{"Good", "Hold", "Burn"}

// Statuses that mark the working phase of a rep, highlighted in the counter panel
var activePhaseStatuses = []string{"down", "star", "in"}

const (
	DefaultPoseRateHz    = 10
	DefaultDisplayRateHz = 30

	logResizeCheckPeriod = 100 * time.Millisecond
	maxLogLines          = 1000

	// provider failures are logged on the first and then every Nth consecutive cycle
	providerErrorLogEvery = 50
)
