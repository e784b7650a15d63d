package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

func noseAt(y, score float64) pose.Pose {
	p := confidentPose()
	p[pose.Nose] = pose.Keypoint{X: 320, Y: y, Score: score}
	return p
}

func TestCalfRaise_CountsRaisesAgainstBaseline(t *testing.T) {
	e := NewCalfRaise()

	for _, y := range []float64{300, 250, 300, 250, 300} {
		e.Update(noseAt(y, 0.9))
	}

	assert.Equal(t, 2.0, e.State().Count)
	assert.Equal(t, "down", e.State().Status)
	baseline, ok := e.Baseline()
	require.True(t, ok)
	assert.InDelta(t, 300, baseline, 0.001)
}

func TestCalfRaise_LowNoseScoreIsIgnored(t *testing.T) {
	e := NewCalfRaise()
	e.Update(noseAt(300, 0.4))

	_, ok := e.Baseline()
	assert.False(t, ok)
	assert.Equal(t, StatusStart, e.State().Status)
}

func TestCalfRaise_BaselineDriftsWhileDown(t *testing.T) {
	e := NewCalfRaise()
	e.Update(noseAt(300, 0.9))
	e.Update(noseAt(310, 0.9))

	baseline, _ := e.Baseline()
	assert.InDelta(t, 301, baseline, 0.001)
}

func TestCalfRaise_ResetClearsBaseline(t *testing.T) {
	e := NewCalfRaise()
	e.Update(noseAt(300, 0.9))
	e.Reset()

	_, ok := e.Baseline()
	assert.False(t, ok)
}

func jackPose(star bool) pose.Pose {
	p := confidentPose()
	p[pose.Nose].Y = 100
	if star {
		p[pose.LeftWrist].Y, p[pose.RightWrist].Y = 50, 50
		p[pose.LeftAnkle].X, p[pose.RightAnkle].X = 200, 400
	} else {
		p[pose.LeftWrist].Y, p[pose.RightWrist].Y = 300, 300
		p[pose.LeftAnkle].X, p[pose.RightAnkle].X = 300, 340
	}
	return p
}

func TestJumpingJack(t *testing.T) {
	e := NewJumpingJack()
	e.Update(jackPose(false))
	e.Update(jackPose(true))
	assert.Equal(t, "star", e.State().Status)
	assert.Equal(t, "Together!", e.State().Feedback)

	e.Update(jackPose(false))
	assert.Equal(t, 1.0, e.State().Count)
	assert.Equal(t, "pencil", e.State().Status)
}

func TestJumpingJack_HalfStarHoldsPhase(t *testing.T) {
	e := NewJumpingJack()
	e.Update(jackPose(true))

	p := jackPose(true)
	p[pose.LeftAnkle].X, p[pose.RightAnkle].X = 300, 340
	e.Update(p)

	assert.Equal(t, "star", e.State().Status)
	assert.Equal(t, 0.0, e.State().Count)
}

func TestJumpingJack_GatedOnWristsAndAnkles(t *testing.T) {
	e := NewJumpingJack()
	e.Update(jackPose(true))

	p := jackPose(false)
	p[pose.RightAnkle].Score = 0.1
	e.Update(p)

	assert.Equal(t, "star", e.State().Status)
	assert.Equal(t, 0.0, e.State().Count)
}

func kneesPose(leftUp, rightUp bool) pose.Pose {
	p := confidentPose()
	p[pose.LeftHip].Y, p[pose.RightHip].Y = 300, 300
	p[pose.LeftKnee].Y, p[pose.RightKnee].Y = 400, 400
	if leftUp {
		p[pose.LeftKnee].Y = 250
	}
	if rightUp {
		p[pose.RightKnee].Y = 250
	}
	return p
}

func TestHighKnees_EitherKneeCounts(t *testing.T) {
	e := NewHighKnees()
	e.Update(kneesPose(true, false))
	assert.Equal(t, 0.0, e.State().Count, "start status never counts")

	e.Update(kneesPose(false, false))
	e.Update(kneesPose(false, true))
	e.Update(kneesPose(false, false))
	e.Update(kneesPose(true, false))

	assert.Equal(t, 2.0, e.State().Count)
	assert.Equal(t, "up", e.State().Status)
}

func hipAt(y float64) pose.Pose {
	p := confidentPose()
	p[pose.LeftHip].Y, p[pose.RightHip].Y = y, y
	return p
}

func TestBoxJump_GroundIsLowestHip(t *testing.T) {
	e := NewBoxJump()
	for _, y := range []float64{400, 200, 380, 230} {
		e.Update(hipAt(y))
	}
	assert.Equal(t, 2.0, e.State().Count)
	assert.Equal(t, "air", e.State().Status)

	e.Reset()
	e.Update(hipAt(200))
	assert.Equal(t, "ground", e.State().Status)
	assert.Equal(t, 0.0, e.State().Count)
}

func bicyclePose(touch bool) pose.Pose {
	p := confidentPose()
	p[pose.LeftElbow] = pose.Keypoint{X: 100, Y: 100, Score: 0.9}
	p[pose.RightElbow] = pose.Keypoint{X: 500, Y: 100, Score: 0.9}
	p[pose.LeftKnee] = pose.Keypoint{X: 150, Y: 300, Score: 0.9}
	p[pose.RightKnee] = pose.Keypoint{X: 450, Y: 300, Score: 0.9}
	if touch {
		p[pose.RightKnee].X, p[pose.RightKnee].Y = 120, 120
	}
	return p
}

func TestBicycleCrunch(t *testing.T) {
	e := NewBicycleCrunch()
	e.Update(bicyclePose(true))
	assert.Equal(t, 0.0, e.State().Count)

	e.Update(bicyclePose(false))
	e.Update(bicyclePose(true))
	e.Update(bicyclePose(true))
	assert.Equal(t, 1.0, e.State().Count)
	assert.Equal(t, "close", e.State().Status)
}

func climberPose(front bool) pose.Pose {
	p := confidentPose()
	kneeY := 400.0
	if front {
		kneeY = 150
	}
	for _, side := range []pose.Side{pose.Left, pose.Right} {
		knee, elbow := pose.LeftKnee, pose.LeftElbow
		if side == pose.Right {
			knee, elbow = pose.RightKnee, pose.RightElbow
		}
		p[elbow].X, p[elbow].Y = 300, 100
		p[knee].X, p[knee].Y = 300, kneeY
	}
	return p
}

func TestMountainClimber(t *testing.T) {
	e := NewMountainClimber()
	e.Update(climberPose(false))
	e.Update(climberPose(true))
	e.Update(climberPose(false))
	e.Update(climberPose(true))

	assert.Equal(t, 2.0, e.State().Count)
	assert.Equal(t, "front", e.State().Status)
	assert.Equal(t, "Fast!", e.State().Feedback)
}

func burpeePose(hipY float64) pose.Pose {
	p := confidentPose()
	for _, idx := range [][3]int{{pose.LeftShoulder, pose.LeftHip, pose.LeftAnkle}, {pose.RightShoulder, pose.RightHip, pose.RightAnkle}} {
		p[idx[0]].X, p[idx[0]].Y = 300, hipY-150
		p[idx[1]].X, p[idx[1]].Y = 300, hipY
		p[idx[2]].X, p[idx[2]].Y = 300, hipY+200
	}
	return p
}

func TestBurpee_FullCycle(t *testing.T) {
	e := NewBurpee()

	e.Update(burpeePose(250))
	assert.Equal(t, "Drop down!", e.State().Feedback)
	assert.Equal(t, 0, e.Phase())

	e.Update(burpeePose(400))
	assert.Equal(t, 1, e.Phase())
	assert.Equal(t, "plank", e.State().Status)

	e.Update(burpeePose(320))
	assert.Equal(t, 1, e.Phase(), "hips between the thresholds keep the phase")

	e.Update(burpeePose(250))
	assert.Equal(t, 0, e.Phase())
	assert.Equal(t, 1.0, e.State().Count)
	assert.Equal(t, "stand", e.State().Status)
	assert.Equal(t, "Jump!", e.State().Feedback)
}
