package exercise

import (
	"math"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

const (
	calfRaiseMinNoseScore = 0.5
	calfRaiseDownBand     = 10.0 // px above baseline still treated as flat-footed
	calfRaiseUpOffset     = 40.0 // px above baseline that counts as a raise
	calfRaiseSmoothing    = 0.9

	jumpingJackSpreadPx = 150.0

	boxJumpAirRisePx    = 150.0
	boxJumpGroundRisePx = 50.0

	bicycleClosePx = 100.0
	climberFrontPx = 150.0

	burpeeHipHighY = 300.0
	burpeeHipLowY  = 350.0
)

// CalfRaise follows the nose height against a slowly adapting baseline, which
// absorbs camera and subject drift over a session. The baseline only moves
// while the heels are down so it never creeps toward the raised position.
type CalfRaise struct {
	base
	baselineY   float64
	hasBaseline bool
}

func NewCalfRaise() *CalfRaise { return &CalfRaise{base: newBase(KindReps, nil)} }

func (e *CalfRaise) Reset() {
	e.base.Reset()
	e.baselineY = 0
	e.hasBaseline = false
}

// Baseline returns the current smoothed resting nose height
func (e *CalfRaise) Baseline() (float64, bool) {
	return e.baselineY, e.hasBaseline
}

func (e *CalfRaise) Update(p pose.Pose) {
	nose := p[pose.Nose]
	if nose.Score < calfRaiseMinNoseScore {
		return
	}
	if !e.hasBaseline {
		e.baselineY = nose.Y
		e.hasBaseline = true
	}

	switch {
	case nose.Y > e.baselineY-calfRaiseDownBand:
		e.state.Status = "down"
		e.baselineY = e.baselineY*calfRaiseSmoothing + nose.Y*(1-calfRaiseSmoothing)
	case nose.Y < e.baselineY-calfRaiseUpOffset:
		if e.state.Status == "down" {
			e.rep("High heels!")
		}
		e.state.Status = "up"
	}
}

// JumpingJack combines hands-over-head with a wide stance. A rep lands when
// both signals drop back from the star shape.
type JumpingJack struct{ base }

func NewJumpingJack() *JumpingJack { return &JumpingJack{base: newBase(KindReps, nil)} }

func (e *JumpingJack) Update(p pose.Pose) {
	lw, rw := p[pose.LeftWrist], p[pose.RightWrist]
	la, ra := p[pose.LeftAnkle], p[pose.RightAnkle]
	if !pose.IsValid(lw, rw, la, ra) {
		return
	}
	nose := p[pose.Nose]

	handsUp := lw.Y < nose.Y && rw.Y < nose.Y
	legsWide := math.Abs(la.X-ra.X) > jumpingJackSpreadPx

	switch {
	case handsUp && legsWide:
		e.state.Status = "star"
		e.state.Feedback = "Together!"
	case !handsUp && !legsWide:
		if e.state.Status == "star" {
			e.rep("Go!")
		}
		e.state.Status = "pencil"
	}
}

// HighKnees counts each time either knee comes above its hip. Ungated.
type HighKnees struct{ base }

func NewHighKnees() *HighKnees { return &HighKnees{base: newBase(KindReps, nil)} }

func (e *HighKnees) Update(p pose.Pose) {
	leftUp := p[pose.LeftKnee].Y < p[pose.LeftHip].Y
	rightUp := p[pose.RightKnee].Y < p[pose.RightHip].Y

	if leftUp || rightUp {
		if e.state.Status == "down" {
			e.rep("Higher!")
		}
		e.state.Status = "up"
		return
	}
	e.state.Status = "down"
}

// BoxJump measures hip rise against the lowest hip position seen, which is
// taken as ground level. Ungated.
type BoxJump struct {
	base
	groundY   float64
	hasGround bool
}

func NewBoxJump() *BoxJump { return &BoxJump{base: newBase(KindReps, nil)} }

func (e *BoxJump) Reset() {
	e.base.Reset()
	e.groundY = 0
	e.hasGround = false
}

func (e *BoxJump) Update(p pose.Pose) {
	hip := pose.DominantLimbs(p).Hip
	if !e.hasGround || hip.Y > e.groundY {
		e.groundY = hip.Y
		e.hasGround = true
	}
	rise := e.groundY - hip.Y

	switch {
	case rise > boxJumpAirRisePx:
		if e.state.Status == "ground" {
			e.rep("On Box!")
		}
		e.state.Status = "air"
	case rise < boxJumpGroundRisePx:
		e.state.Status = "ground"
		e.state.Feedback = "Jump!"
	}
}

// BicycleCrunch counts each elbow-to-opposite-knee touch
type BicycleCrunch struct{ base }

func NewBicycleCrunch() *BicycleCrunch { return &BicycleCrunch{base: newBase(KindReps, nil)} }

func (e *BicycleCrunch) Update(p pose.Pose) {
	le, re := p[pose.LeftElbow], p[pose.RightElbow]
	lk, rk := p[pose.LeftKnee], p[pose.RightKnee]
	if !pose.IsValid(le, re, lk, rk) {
		return
	}

	if pose.Distance(le, rk) < bicycleClosePx || pose.Distance(re, lk) < bicycleClosePx {
		if e.state.Status == "open" {
			e.rep("Twist!")
		}
		e.state.Status = "close"
		return
	}
	e.state.Status = "open"
}

// MountainClimber counts each drive of the knee toward the elbow on the dominant side
type MountainClimber struct{ base }

func NewMountainClimber() *MountainClimber { return &MountainClimber{base: newBase(KindReps, nil)} }

func (e *MountainClimber) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Knee, l.Elbow) {
		return
	}

	if pose.Distance(l.Knee, l.Elbow) < climberFrontPx {
		if e.state.Status == "back" {
			e.rep("Fast!")
		}
		e.state.Status = "front"
		return
	}
	e.state.Status = "back"
}

type burpeePhase int

const (
	burpeeStand burpeePhase = iota
	burpeePlank
)

// Burpee needs an explicit phase because each transition guard reads hip
// height and torso straightness together. Ungated.
type Burpee struct {
	base
	phase burpeePhase
}

func NewBurpee() *Burpee { return &Burpee{base: newBase(KindReps, nil)} }

func (e *Burpee) Reset() {
	e.base.Reset()
	e.phase = burpeeStand
}

// Phase returns 0 while standing and 1 once the hips have dropped
func (e *Burpee) Phase() int {
	return int(e.phase)
}

func (e *Burpee) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	bodyAngle := pose.Angle(l.Shoulder, l.Hip, l.Ankle)
	hipY := l.Hip.Y

	if e.phase == burpeeStand && bodyAngle > 165 && hipY < burpeeHipHighY {
		e.state.Feedback = "Drop down!"
	}
	if e.phase == burpeeStand && hipY > burpeeHipLowY {
		e.phase = burpeePlank
		e.state.Status = "plank"
		e.state.Feedback = "Kick feet back!"
	}
	if e.phase == burpeePlank && hipY < burpeeHipHighY && bodyAngle > 160 {
		e.phase = burpeeStand
		e.state.Status = "stand"
		e.rep("Jump!")
	}
}
