package exercise

import (
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

// Hold exercises time how long a qualifying posture is kept without a break.
// Count shows the running streak only; a broken hold freezes the last value
// and the next qualifying frame restarts it from zero.

// Plank holds a straight shoulder-hip-ankle line
type Plank struct{ base }

func NewPlank(clk clock.Clock) *Plank { return &Plank{base: newBase(KindHold, clk)} }

func (e *Plank) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Hip, l.Ankle) {
		return
	}
	angle := pose.Angle(l.Shoulder, l.Hip, l.Ankle)

	if angle > 165 && angle < 195 {
		e.hold("Hold...")
		return
	}
	if angle <= 165 {
		e.breakHold("Lower Hips")
	} else {
		e.breakHold("Lift Hips")
	}
}

// SidePlank uses a wider band than the plank since the hips sag sideways
type SidePlank struct{ base }

func NewSidePlank(clk clock.Clock) *SidePlank { return &SidePlank{base: newBase(KindHold, clk)} }

func (e *SidePlank) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Hip, l.Ankle) {
		return
	}
	angle := pose.Angle(l.Shoulder, l.Hip, l.Ankle)

	if angle > 160 && angle < 200 {
		e.hold("Stay strong")
		return
	}
	e.breakHold("Align body")
}

// WallSit holds the knees near a right angle
type WallSit struct{ base }

func NewWallSit(clk clock.Clock) *WallSit { return &WallSit{base: newBase(KindHold, clk)} }

func (e *WallSit) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Hip, l.Knee, l.Ankle) {
		return
	}
	angle := pose.Angle(l.Hip, l.Knee, l.Ankle)

	if angle > 80 && angle < 110 {
		e.hold("Burn!")
		return
	}
	e.breakHold("Knees at 90°")
}

// GluteBridge holds the hips extended in line with shoulders and knees
type GluteBridge struct{ base }

func NewGluteBridge(clk clock.Clock) *GluteBridge { return &GluteBridge{base: newBase(KindHold, clk)} }

func (e *GluteBridge) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Hip, l.Knee) {
		return
	}

	if pose.Angle(l.Shoulder, l.Hip, l.Knee) > 160 {
		e.hold("Squeeze!")
		return
	}
	e.breakHold("Hips higher")
}

// SideStretch holds an overhead reach with the torso leaning off vertical
type SideStretch struct{ base }

func NewSideStretch(clk clock.Clock) *SideStretch { return &SideStretch{base: newBase(KindHold, clk)} }

func (e *SideStretch) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Wrist, l.Hip, l.Ankle) {
		return
	}
	bodyAngle := pose.Angle(l.Shoulder, l.Hip, l.Ankle)

	if l.Wrist.Y < l.Shoulder.Y && bodyAngle < 160 {
		e.hold("Feel the stretch")
		return
	}
	e.breakHold("Lean & Reach")
}

// ForwardFold holds the shoulders below hip height
type ForwardFold struct{ base }

func NewForwardFold(clk clock.Clock) *ForwardFold { return &ForwardFold{base: newBase(KindHold, clk)} }

func (e *ForwardFold) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Hip) {
		return
	}

	if l.Shoulder.Y > l.Hip.Y+30 {
		e.hold("Breathe...")
		return
	}
	e.breakHold("Touch Toes")
}
