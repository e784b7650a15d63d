package exercise

import "github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"

// Hinge exercises track one joint angle with two thresholds. The gap between the
// thresholds is a dead zone where the phase never changes, so jitter around a
// single cut-off cannot count a rep twice.

// Squat counts hip-knee-ankle flexion on the dominant side
type Squat struct{ base }

func NewSquat() *Squat { return &Squat{base: newBase(KindReps, nil)} }

func (e *Squat) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Hip, l.Knee, l.Ankle) {
		return
	}
	angle := pose.Angle(l.Hip, l.Knee, l.Ankle)

	switch {
	case angle > 165:
		if e.state.Status == "down" {
			e.rep("Good Rep!")
		}
		e.state.Status = "up"
	case angle < 100:
		e.state.Status = "down"
		e.state.Feedback = "Deep enough!"
	case angle < 140 && e.state.Status == "up":
		e.state.Feedback = "Lower..."
	}
}

// PushUp counts shoulder-elbow-wrist flexion
type PushUp struct{ base }

func NewPushUp() *PushUp { return &PushUp{base: newBase(KindReps, nil)} }

func (e *PushUp) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Elbow, l.Wrist) {
		return
	}
	angle := pose.Angle(l.Shoulder, l.Elbow, l.Wrist)

	switch {
	case angle > 160:
		if e.state.Status == "down" {
			e.rep("Up!")
		}
		e.state.Status = "up"
	case angle < 90:
		e.state.Status = "down"
		e.state.Feedback = "Good depth!"
	}
}

// Lunge works on whichever knee is bent further. It reads raw coordinates
// with no confidence gate, since the back leg is often partly occluded.
type Lunge struct{ base }

func NewLunge() *Lunge { return &Lunge{base: newBase(KindReps, nil)} }

func (e *Lunge) Update(p pose.Pose) {
	left := pose.SidePoints(p, pose.Left)
	right := pose.SidePoints(p, pose.Right)
	leftAngle := pose.Angle(left.Hip, left.Knee, left.Ankle)
	rightAngle := pose.Angle(right.Hip, right.Knee, right.Ankle)
	working := min(leftAngle, rightAngle)

	switch {
	case working > 160:
		if e.state.Status == "down" {
			e.rep("Nice lunge!")
		}
		e.state.Status = "up"
	case working < 100:
		e.state.Status = "down"
		e.state.Feedback = "Hold..."
	}
}

// Dip counts shoulder-elbow-wrist flexion with a shallower bottom than push-ups
type Dip struct{ base }

func NewDip() *Dip { return &Dip{base: newBase(KindReps, nil)} }

func (e *Dip) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Elbow, l.Wrist) {
		return
	}
	angle := pose.Angle(l.Shoulder, l.Elbow, l.Wrist)

	switch {
	case angle > 160:
		if e.state.Status == "down" {
			e.rep("Push up!")
		}
		e.state.Status = "up"
	case angle < 100:
		e.state.Status = "down"
		e.state.Feedback = "Deep..."
	}
}

// SitUp is inverted: lying flat is "down" and the rep lands on the crunch
type SitUp struct{ base }

func NewSitUp() *SitUp { return &SitUp{base: newBase(KindReps, nil)} }

func (e *SitUp) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Hip, l.Knee) {
		return
	}
	angle := pose.Angle(l.Shoulder, l.Hip, l.Knee)

	switch {
	case angle > 120:
		e.state.Status = "down"
		e.state.Feedback = "Crunch up!"
	case angle < 60:
		if e.state.Status == "down" {
			e.rep("Great core work!")
		}
		e.state.Status = "up"
	}
}

// LegRaise is inverted like SitUp, measured at the hip
type LegRaise struct{ base }

func NewLegRaise() *LegRaise { return &LegRaise{base: newBase(KindReps, nil)} }

func (e *LegRaise) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Shoulder, l.Hip, l.Knee) {
		return
	}
	angle := pose.Angle(l.Shoulder, l.Hip, l.Knee)

	switch {
	case angle > 170:
		e.state.Status = "down"
		e.state.Feedback = "Lift legs!"
	case angle < 100:
		if e.state.Status == "down" {
			e.rep("Control down...")
		}
		e.state.Status = "up"
	}
}

// DonkeyKick counts hip extension from all fours. Ungated.
type DonkeyKick struct{ base }

func NewDonkeyKick() *DonkeyKick { return &DonkeyKick{base: newBase(KindReps, nil)} }

func (e *DonkeyKick) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	angle := pose.Angle(l.Shoulder, l.Hip, l.Knee)

	switch {
	case angle < 100:
		e.state.Status = "in"
		e.state.Feedback = "Kick back!"
	case angle > 160:
		if e.state.Status == "in" {
			e.rep("Squeeze glute!")
		}
		e.state.Status = "out"
	}
}

// ButtKicks counts on reaching full knee flexion. Ungated.
type ButtKicks struct{ base }

func NewButtKicks() *ButtKicks { return &ButtKicks{base: newBase(KindReps, nil)} }

func (e *ButtKicks) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	angle := pose.Angle(l.Hip, l.Knee, l.Ankle)

	switch {
	case angle < 45:
		if e.state.Status == "down" {
			e.rep("Kick!")
		}
		e.state.Status = "up"
	case angle > 120:
		e.state.Status = "down"
	}
}

// SquatJump counts the explosive extension out of a deep squat
type SquatJump struct{ base }

func NewSquatJump() *SquatJump { return &SquatJump{base: newBase(KindReps, nil)} }

func (e *SquatJump) Update(p pose.Pose) {
	l := pose.DominantLimbs(p)
	if !pose.IsValid(l.Hip, l.Knee, l.Ankle) {
		return
	}
	angle := pose.Angle(l.Hip, l.Knee, l.Ankle)

	switch {
	case angle < 100:
		e.state.Status = "squat"
		e.state.Feedback = "EXPLODE UP!"
	case angle > 170 && e.state.Status == "squat":
		e.rep("Land Softly")
		e.state.Status = "jump"
	}
}
