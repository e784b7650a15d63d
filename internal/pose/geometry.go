package pose

import "math"

// MinConfidence is the score a keypoint must exceed to be trusted
const MinConfidence = 0.3

// Side selects the left or right half of the body
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Limbs bundles the six keypoints of one body side
type Limbs struct {
	Shoulder Keypoint
	Elbow    Keypoint
	Wrist    Keypoint
	Hip      Keypoint
	Knee     Keypoint
	Ankle    Keypoint
}

// Angle returns the angle at vertex b between rays b->a and b->c, in degrees within [0,180].
// Every exercise threshold is calibrated against this exact formula.
func Angle(a, b, c Keypoint) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180.0 / math.Pi)
	if angle > 180.0 {
		return 360 - angle
	}
	return angle
}

// Distance returns the Euclidean distance between two keypoints in pixels
func Distance(a, b Keypoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// DominantSide picks the side with the higher summed shoulder+hip+knee confidence.
// Left wins ties.
func DominantSide(p Pose) Side {
	left := p[LeftShoulder].Score + p[LeftHip].Score + p[LeftKnee].Score
	right := p[RightShoulder].Score + p[RightHip].Score + p[RightKnee].Score
	if right > left {
		return Right
	}
	return Left
}

// SidePoints resolves the limb bundle for one side of the body
func SidePoints(p Pose, side Side) Limbs {
	if side == Right {
		return Limbs{
			Shoulder: p[RightShoulder],
			Elbow:    p[RightElbow],
			Wrist:    p[RightWrist],
			Hip:      p[RightHip],
			Knee:     p[RightKnee],
			Ankle:    p[RightAnkle],
		}
	}
	return Limbs{
		Shoulder: p[LeftShoulder],
		Elbow:    p[LeftElbow],
		Wrist:    p[LeftWrist],
		Hip:      p[LeftHip],
		Knee:     p[LeftKnee],
		Ankle:    p[LeftAnkle],
	}
}

// DominantLimbs is SidePoints on the dominant side
func DominantLimbs(p Pose) Limbs {
	return SidePoints(p, DominantSide(p))
}

// IsValid reports whether every keypoint is confident enough to analyse
func IsValid(points ...Keypoint) bool {
	for _, kp := range points {
		if kp.Score <= MinConfidence {
			return false
		}
	}
	return true
}
