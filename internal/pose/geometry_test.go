package pose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngle_RightAngle(t *testing.T) {
	a := Keypoint{X: 0, Y: -100}
	b := Keypoint{X: 0, Y: 0}
	c := Keypoint{X: 100, Y: 0}
	assert.InDelta(t, 90.0, Angle(a, b, c), 1e-9)
}

func TestAngle_Straight(t *testing.T) {
	a := Keypoint{X: 0, Y: 0}
	b := Keypoint{X: 0, Y: 100}
	c := Keypoint{X: 0, Y: 200}
	assert.InDelta(t, 180.0, Angle(a, b, c), 1e-9)
}

func TestAngle_SymmetricInArguments(t *testing.T) {
	a := Keypoint{X: 10, Y: 40}
	b := Keypoint{X: 50, Y: 60}
	c := Keypoint{X: 120, Y: 30}
	assert.InDelta(t, Angle(a, b, c), Angle(c, b, a), 1e-9)
}

func TestAngle_ReducesReflexAngles(t *testing.T) {
	// raw atan2 difference is 270 degrees here, which must fold back to 90
	a := Keypoint{X: 0, Y: -100}
	b := Keypoint{X: 0, Y: 0}
	c := Keypoint{X: -100, Y: 0}
	got := Angle(a, b, c)
	assert.InDelta(t, 90.0, got, 1e-9)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 180.0)
}

func TestAngle_Range(t *testing.T) {
	b := Keypoint{X: 320, Y: 240}
	a := Keypoint{X: 320, Y: 140}
	for deg := 0.0; deg <= 360; deg += 7.5 {
		rad := deg * math.Pi / 180
		c := Keypoint{X: b.X + 100*math.Sin(rad), Y: b.Y - 100*math.Cos(rad)}
		got := Angle(a, b, c)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 180.0+1e-9)
	}
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Keypoint{X: 0, Y: 0}, Keypoint{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 0.0, Distance(Keypoint{X: 7, Y: 7}, Keypoint{X: 7, Y: 7}), 1e-9)
}

func TestDominantSide(t *testing.T) {
	var p Pose
	for _, i := range []int{LeftShoulder, LeftHip, LeftKnee, RightShoulder, RightHip, RightKnee} {
		p[i].Score = 0.5
	}
	assert.Equal(t, Left, DominantSide(p), "ties go to the left side")

	p[RightKnee].Score = 0.51
	assert.Equal(t, Right, DominantSide(p))

	p[LeftHip].Score = 0.9
	assert.Equal(t, Left, DominantSide(p))

	var empty Pose
	assert.Equal(t, Left, DominantSide(empty))
}

func TestSidePoints(t *testing.T) {
	var p Pose
	for i := range p {
		p[i] = Keypoint{X: float64(i), Y: float64(i * 10), Score: 1}
	}

	left := SidePoints(p, Left)
	assert.Equal(t, p[LeftShoulder], left.Shoulder)
	assert.Equal(t, p[LeftElbow], left.Elbow)
	assert.Equal(t, p[LeftWrist], left.Wrist)
	assert.Equal(t, p[LeftHip], left.Hip)
	assert.Equal(t, p[LeftKnee], left.Knee)
	assert.Equal(t, p[LeftAnkle], left.Ankle)

	right := SidePoints(p, Right)
	assert.Equal(t, p[RightShoulder], right.Shoulder)
	assert.Equal(t, p[RightElbow], right.Elbow)
	assert.Equal(t, p[RightWrist], right.Wrist)
	assert.Equal(t, p[RightHip], right.Hip)
	assert.Equal(t, p[RightKnee], right.Knee)
	assert.Equal(t, p[RightAnkle], right.Ankle)
}

func TestIsValid(t *testing.T) {
	good := Keypoint{Score: 0.31}
	edge := Keypoint{Score: 0.3}
	assert.True(t, IsValid())
	assert.True(t, IsValid(good, good))
	assert.False(t, IsValid(good, edge), "score must exceed the floor")
	assert.False(t, IsValid(Keypoint{}))
}
