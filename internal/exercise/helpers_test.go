package exercise

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

var testEpoch = time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// confidentPose returns a pose with every keypoint scored 0.9 at the origin
func confidentPose() pose.Pose {
	var p pose.Pose
	for i := range p {
		p[i].Score = 0.9
	}
	return p
}

// bend places a, b and c so that the angle at b is deg degrees.
// b sits at (320,240), a is 100px straight up and c is rotated from a by deg.
func bend(p *pose.Pose, a, b, c int, deg float64) {
	rad := deg * math.Pi / 180
	p[b].X, p[b].Y = 320, 240
	p[a].X, p[a].Y = 320, 140
	p[c].X, p[c].Y = 320+100*math.Sin(rad), 240-100*math.Cos(rad)
}

// bothSides applies bend to the left and right variants of a joint triple
func bothSides(p *pose.Pose, left, right [3]int, deg float64) {
	bend(p, left[0], left[1], left[2], deg)
	bend(p, right[0], right[1], right[2], deg)
}

var (
	kneeJoint  = [2][3]int{{pose.LeftHip, pose.LeftKnee, pose.LeftAnkle}, {pose.RightHip, pose.RightKnee, pose.RightAnkle}}
	elbowJoint = [2][3]int{{pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist}, {pose.RightShoulder, pose.RightElbow, pose.RightWrist}}
	hipJoint   = [2][3]int{{pose.LeftShoulder, pose.LeftHip, pose.LeftKnee}, {pose.RightShoulder, pose.RightHip, pose.RightKnee}}
	bodyLine   = [2][3]int{{pose.LeftShoulder, pose.LeftHip, pose.LeftAnkle}, {pose.RightShoulder, pose.RightHip, pose.RightAnkle}}
)

// angledPose builds a confident pose whose joint measures deg on both sides
func angledPose(joint [2][3]int, deg float64) pose.Pose {
	p := confidentPose()
	bothSides(&p, joint[0], joint[1], deg)
	return p
}

func feed(e Exercise, joint [2][3]int, angles ...float64) {
	for _, deg := range angles {
		e.Update(angledPose(joint, deg))
	}
}

type testClock = clock.Manual

func newTestClock() *testClock {
	return clock.NewManual(testEpoch)
}
