package exercise

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
)

// ErrUnknownExercise is returned when switching to a name that is not registered
var ErrUnknownExercise = errors.New("unknown exercise")

// DefaultExercise is active on startup and after a routine stops
const DefaultExercise = "squat"

// maxSuggestionDistance bounds how far a typo may be from a known name to be suggested
const maxSuggestionDistance = 3

type catalogEntry struct {
	name string
	make func(clk clock.Clock) Exercise
}

// catalog lists every exercise in selection order
var catalog = []catalogEntry{
	{"squat", func(clock.Clock) Exercise { return NewSquat() }},
	{"pushup", func(clock.Clock) Exercise { return NewPushUp() }},
	{"lunge", func(clock.Clock) Exercise { return NewLunge() }},
	{"dip", func(clock.Clock) Exercise { return NewDip() }},
	{"situp", func(clock.Clock) Exercise { return NewSitUp() }},
	{"legraise", func(clock.Clock) Exercise { return NewLegRaise() }},
	{"donkeykick", func(clock.Clock) Exercise { return NewDonkeyKick() }},
	{"calfraise", func(clock.Clock) Exercise { return NewCalfRaise() }},
	{"jumpingjack", func(clock.Clock) Exercise { return NewJumpingJack() }},
	{"highknees", func(clock.Clock) Exercise { return NewHighKnees() }},
	{"buttkicks", func(clock.Clock) Exercise { return NewButtKicks() }},
	{"squatjump", func(clock.Clock) Exercise { return NewSquatJump() }},
	{"boxjump", func(clock.Clock) Exercise { return NewBoxJump() }},
	{"plank", func(c clock.Clock) Exercise { return NewPlank(c) }},
	{"sideplank", func(c clock.Clock) Exercise { return NewSidePlank(c) }},
	{"wallsit", func(c clock.Clock) Exercise { return NewWallSit(c) }},
	{"glutebridge", func(c clock.Clock) Exercise { return NewGluteBridge(c) }},
	{"bicycle", func(clock.Clock) Exercise { return NewBicycleCrunch() }},
	{"climbers", func(clock.Clock) Exercise { return NewMountainClimber() }},
	{"burpee", func(clock.Clock) Exercise { return NewBurpee() }},
	{"sidestretch", func(c clock.Clock) Exercise { return NewSideStretch(c) }},
	{"forwardfold", func(c clock.Clock) Exercise { return NewForwardFold(c) }},
}

// Registry owns one exercise instance per name for the lifetime of the process
// and tracks which one is active. It is not safe for concurrent use.
type Registry struct {
	exercises map[string]Exercise
	names     []string
	current   string
	logger    *log.Logger
}

// NewRegistry builds every exercise up front with DefaultExercise active
func NewRegistry(clk clock.Clock, logger *log.Logger) *Registry {
	if clk == nil {
		panic("Registry: clock cannot be nil")
	}
	if logger == nil {
		panic("Registry: logger cannot be nil")
	}

	r := &Registry{
		exercises: make(map[string]Exercise, len(catalog)),
		names:     make([]string, 0, len(catalog)),
		current:   DefaultExercise,
		logger:    logger,
	}
	for _, entry := range catalog {
		r.exercises[entry.name] = entry.make(clk)
		r.names = append(r.names, entry.name)
	}
	return r
}

// Current returns the active exercise
func (r *Registry) Current() Exercise {
	return r.exercises[r.current]
}

// CurrentName returns the key of the active exercise
func (r *Registry) CurrentName() string {
	return r.current
}

// Get returns the exercise registered under name
func (r *Registry) Get(name string) (Exercise, bool) {
	e, ok := r.exercises[name]
	return e, ok
}

// SwitchTo activates and resets the named exercise. Unknown names leave the
// active exercise untouched.
func (r *Registry) SwitchTo(name string) error {
	e, ok := r.exercises[name]
	if !ok {
		r.logger.Printf("Registry: Exercise not found: %q", name)
		if suggestion := r.suggest(name); suggestion != "" {
			return fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownExercise, name, suggestion)
		}
		return fmt.Errorf("%w: %q", ErrUnknownExercise, name)
	}

	r.current = name
	e.Reset()
	r.logger.Printf("Registry: Switched to %s", name)
	return nil
}

// Names returns every registered key in catalog order
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// suggest returns the closest registered name, or "" when nothing is close
func (r *Registry) suggest(name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range r.names {
		d := levenshtein.ComputeDistance(needle, candidate)
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}

// DisplayName capitalises an exercise key for selection lists
func DisplayName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
